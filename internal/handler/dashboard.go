package handler

import (
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/middleware"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type DashboardHandler struct {
	db *gorm.DB
}

func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// GET /dashboard/stats
func (h *DashboardHandler) GetStats(c *gin.Context) {
	userID := middleware.GetCurrentUserID(c)

	var memberships int64
	h.db.Model(&model.TeamMember{}).Where("user_id = ?", userID).Count(&memberships)

	bountyStats := make(map[string]int64)
	for _, st := range []string{
		model.BountyStatusPending, model.BountyStatusActive, model.BountyStatusInProgress,
		model.BountyStatusCompleted, model.BountyStatusClosed,
	} {
		var count int64
		h.db.Model(&model.Bounty{}).Where("creator_id = ? AND status = ?", userID, st).Count(&count)
		bountyStats[st] = count
	}

	var joinedBounties int64
	h.db.Table("bounty_participants").Where("user_id = ?", userID).Count(&joinedBounties)

	taskStats := make(map[string]int64)
	for _, st := range []string{model.TaskStatusTodo, model.TaskStatusInProgress, model.TaskStatusDone} {
		var count int64
		h.db.Model(&model.Task{}).
			Where("status = ? AND id IN (SELECT task_id FROM task_assignees WHERE user_id = ?)", st, userID).
			Count(&count)
		taskStats[st] = count
	}

	var chats int64
	h.db.Table("chat_members").Where("user_id = ?", userID).Count(&chats)

	Success(c, gin.H{
		"memberships":     memberships,
		"bounties":        bountyStats,
		"joined_bounties": joinedBounties,
		"assigned_tasks":  taskStats,
		"chats":           chats,
	})
}

// GET /operation-logs
func (h *DashboardHandler) GetOperationLogs(c *gin.Context) {
	page, pageSize := parsePage(c)
	action := c.Query("action")
	resourceType := c.Query("resource_type")

	var userID *uint
	if s := c.Query("user_id"); s != "" {
		v := parseID(s)
		userID = &v
	}

	query := h.db.Model(&model.OperationLog{}).Preload("User")
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}
	if action != "" {
		query = query.Where("action = ?", action)
	}
	if resourceType != "" {
		query = query.Where("resource_type = ?", resourceType)
	}

	var total int64
	query.Count(&total)

	var logs []model.OperationLog
	if err := query.Order("created_at desc").Offset((page - 1) * pageSize).Limit(pageSize).Find(&logs).Error; err != nil {
		InternalError(c, err.Error())
		return
	}
	SuccessPaged(c, logs, total, page, pageSize)
}
