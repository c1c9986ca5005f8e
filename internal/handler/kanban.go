package handler

import (
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/middleware"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/service"
	"github.com/gin-gonic/gin"
)

type KanbanHandler struct {
	kanbanService *service.KanbanService
}

func NewKanbanHandler(kanbanService *service.KanbanService) *KanbanHandler {
	return &KanbanHandler{kanbanService: kanbanService}
}

// POST /boards
func (h *KanbanHandler) Create(c *gin.Context) {
	var req struct {
		WorkspaceID uint   `json:"workspace_id" binding:"required"`
		Name        string `json:"name" binding:"required,max=128"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	userID := middleware.GetCurrentUserID(c)
	board, err := h.kanbanService.CreateBoard(userID, req.WorkspaceID, req.Name)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, board)
}

// GET /boards/:id
func (h *KanbanHandler) Get(c *gin.Context) {
	id := parseID(c.Param("id"))
	board, err := h.kanbanService.GetBoard(id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if board == nil {
		NotFound(c, 40401, "board not found")
		return
	}
	Success(c, board)
}

// GET /boards/mine
func (h *KanbanHandler) GetMine(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	board, err := h.kanbanService.GetBoardCreatedBy(userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	if board == nil {
		NotFound(c, 40401, "board not found")
		return
	}
	Success(c, board)
}

// DELETE /boards/:id
func (h *KanbanHandler) Delete(c *gin.Context) {
	id := parseID(c.Param("id"))
	userID := middleware.GetCurrentUserID(c)

	board, err := h.kanbanService.DeleteBoard(userID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if board == nil {
		NotFound(c, 40401, "board not found")
		return
	}
	Success(c, gin.H{"message": "board deleted"})
}
