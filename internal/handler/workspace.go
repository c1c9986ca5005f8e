package handler

import (
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/middleware"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/service"
	"github.com/gin-gonic/gin"
)

type WorkspaceHandler struct {
	workspaceService *service.WorkspaceService
	authService      *service.AuthService
}

func NewWorkspaceHandler(workspaceService *service.WorkspaceService, authService *service.AuthService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaceService: workspaceService, authService: authService}
}

// POST /workspaces
func (h *WorkspaceHandler) Create(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required,max=128"`
		ImageURL string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	userID := middleware.GetCurrentUserID(c)
	workspace, err := h.workspaceService.Create(userID, req.Name, req.ImageURL)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.logOperation(userID, "create", workspace.ID, workspace.Name)
	Success(c, workspace)
}

// GET /workspaces/mine
func (h *WorkspaceHandler) GetMine(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	workspace, err := h.workspaceService.GetByOwner(userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	if workspace == nil {
		NotFound(c, 40401, "workspace not found")
		return
	}
	Success(c, workspace)
}

// GET /workspaces/search?name=
func (h *WorkspaceHandler) Search(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	name := c.Query("name")

	workspace, err := h.workspaceService.GetByName(userID, name)
	if err != nil {
		RespondError(c, err)
		return
	}
	if workspace == nil {
		NotFound(c, 40401, "workspace not found")
		return
	}
	Success(c, workspace)
}

// PUT /workspaces/:id
func (h *WorkspaceHandler) Update(c *gin.Context) {
	id := parseID(c.Param("id"))
	userID := middleware.GetCurrentUserID(c)

	var req struct {
		Name     *string `json:"name"`
		ImageURL *string `json:"image_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	workspace, err := h.workspaceService.Update(userID, id, req.Name, req.ImageURL)
	if err != nil {
		RespondError(c, err)
		return
	}
	if workspace == nil {
		NotFound(c, 40401, "workspace not found")
		return
	}

	h.logOperation(userID, "update", workspace.ID, workspace.Name)
	Success(c, workspace)
}

// DELETE /workspaces/:id
func (h *WorkspaceHandler) Delete(c *gin.Context) {
	id := parseID(c.Param("id"))
	userID := middleware.GetCurrentUserID(c)

	workspace, err := h.workspaceService.Delete(id, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	if workspace == nil {
		NotFound(c, 40401, "workspace not found")
		return
	}

	h.logOperation(userID, "delete", workspace.ID, workspace.Name)
	Success(c, gin.H{"message": "workspace deleted"})
}

func (h *WorkspaceHandler) logOperation(userID uint, action string, workspaceID uint, detail string) {
	_ = h.authService.CreateOperationLog(&model.OperationLog{
		UserID:       userID,
		Action:       action,
		ResourceType: "workspace",
		ResourceID:   workspaceID,
		Detail:       detail,
	})
}
