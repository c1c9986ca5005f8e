package handler

import (
	"time"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/middleware"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/service"
	"github.com/gin-gonic/gin"
)

type BountyHandler struct {
	bountyService *service.BountyService
	authService   *service.AuthService
}

func NewBountyHandler(bountyService *service.BountyService, authService *service.AuthService) *BountyHandler {
	return &BountyHandler{bountyService: bountyService, authService: authService}
}

// POST /bounties
func (h *BountyHandler) Create(c *gin.Context) {
	var req struct {
		WorkspaceID uint      `json:"workspace_id" binding:"required"`
		Title       string    `json:"title" binding:"required,max=256"`
		RepoLink    string    `json:"repo_link" binding:"required,max=512"`
		Amount      float64   `json:"amount" binding:"required,gt=0"`
		StartDate   time.Time `json:"start_date" binding:"required"`
		EndDate     time.Time `json:"end_date" binding:"required"`
		Description string    `json:"description" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	userID := middleware.GetCurrentUserID(c)
	bounty, err := h.bountyService.Create(userID, req.WorkspaceID, req.Title, req.RepoLink, req.Amount, req.StartDate, req.EndDate, req.Description)
	if err != nil {
		RespondError(c, err)
		return
	}

	h.logOperation(userID, "create", bounty.ID, bounty.Title)
	Success(c, bounty)
}

// GET /bounties
func (h *BountyHandler) List(c *gin.Context) {
	bounties, err := h.bountyService.List()
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, bounties)
}

// GET /bounties/created
func (h *BountyHandler) ListCreated(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)
	bounties, err := h.bountyService.ListCreatedBy(userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, bounties)
}

// GET /bounties/:id
func (h *BountyHandler) Get(c *gin.Context) {
	id := parseID(c.Param("id"))
	bounty, err := h.bountyService.GetByID(id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if bounty == nil {
		NotFound(c, 40401, "bounty not found")
		return
	}
	Success(c, bounty)
}

// PUT /bounties/:id
func (h *BountyHandler) Update(c *gin.Context) {
	id := parseID(c.Param("id"))
	userID := middleware.GetCurrentUserID(c)

	var req struct {
		Title       *string    `json:"title"`
		RepoLink    *string    `json:"repo_link"`
		Amount      *float64   `json:"amount"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
		Description *string    `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.RepoLink != nil {
		updates["repo_link"] = *req.RepoLink
	}
	if req.Amount != nil {
		updates["amount"] = *req.Amount
	}
	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}
	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}

	bounty, err := h.bountyService.Update(userID, id, updates)
	if err != nil {
		RespondError(c, err)
		return
	}
	if bounty == nil {
		NotFound(c, 40401, "bounty not found")
		return
	}
	Success(c, bounty)
}

// PUT /bounties/:id/status
func (h *BountyHandler) UpdateStatus(c *gin.Context) {
	id := parseID(c.Param("id"))
	userID := middleware.GetCurrentUserID(c)

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	bounty, err := h.bountyService.UpdateStatus(userID, id, req.Status)
	if err != nil {
		RespondError(c, err)
		return
	}
	if bounty == nil {
		NotFound(c, 40401, "bounty not found")
		return
	}
	Success(c, bounty)
}

// DELETE /bounties/:id
func (h *BountyHandler) Delete(c *gin.Context) {
	id := parseID(c.Param("id"))
	userID := middleware.GetCurrentUserID(c)

	bounty, err := h.bountyService.Delete(userID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if bounty == nil {
		NotFound(c, 40401, "bounty not found")
		return
	}

	h.logOperation(userID, "delete", bounty.ID, bounty.Title)
	Success(c, gin.H{"message": "bounty deleted"})
}

// DELETE /bounties
func (h *BountyHandler) DeleteAllCreated(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	removed, err := h.bountyService.DeleteAllCreatedBy(userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"removed": removed})
}

// POST /bounties/:id/participants
func (h *BountyHandler) Join(c *gin.Context) {
	id := parseID(c.Param("id"))
	userID := middleware.GetCurrentUserID(c)

	bounty, err := h.bountyService.AddParticipant(id, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, bounty)
}

// DELETE /bounties/:id/participants
func (h *BountyHandler) Leave(c *gin.Context) {
	id := parseID(c.Param("id"))
	userID := middleware.GetCurrentUserID(c)

	bounty, err := h.bountyService.RemoveParticipant(id, userID)
	if err != nil {
		RespondError(c, err)
		return
	}
	if bounty == nil {
		NotFound(c, 40401, "user is not a participant of this bounty")
		return
	}
	Success(c, bounty)
}

func (h *BountyHandler) logOperation(userID uint, action string, bountyID uint, detail string) {
	_ = h.authService.CreateOperationLog(&model.OperationLog{
		UserID:       userID,
		Action:       action,
		ResourceType: "bounty",
		ResourceID:   bountyID,
		Detail:       detail,
	})
}
