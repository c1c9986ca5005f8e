package handler

import (
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/middleware"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/service"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// POST /auth/signup
func (h *AuthHandler) SignUp(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,max=64"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	user, err := h.authService.SignUp(req.Name, req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, user.Brief())
}

// POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	user, token, expireAt, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		RespondError(c, err)
		return
	}

	Success(c, gin.H{
		"user":      user.Brief(),
		"token":     token,
		"expire_at": expireAt,
	})
}

// GET /auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		Unauthorized(c, 40101, "not logged in")
		return
	}
	Success(c, user.Brief())
}
