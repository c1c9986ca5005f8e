package handler

import (
	"strconv"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/service"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	authService *service.AuthService
}

func NewUserHandler(authService *service.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// GET /users
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.authService.ListUsers()
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, briefs(users))
}

// GET /users/:id
func (h *UserHandler) Get(c *gin.Context) {
	id := parseID(c.Param("id"))

	user, err := h.authService.GetUserByID(id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if user == nil {
		NotFound(c, 40401, "user not found")
		return
	}
	Success(c, user.Brief())
}

// GET /users/search
func (h *UserHandler) Search(c *gin.Context) {
	keyword := c.Query("keyword")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 100 {
		limit = 20
	}

	users, err := h.authService.SearchUsers(keyword, limit)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, briefs(users))
}

func briefs(users []model.User) []model.UserBrief {
	out := make([]model.UserBrief, 0, len(users))
	for i := range users {
		out = append(out, users[i].Brief())
	}
	return out
}
