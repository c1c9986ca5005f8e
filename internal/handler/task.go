package handler

import (
	"time"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/middleware"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/service"
	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	taskService *service.TaskService
}

func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// POST /tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var req struct {
		BoardID     uint       `json:"board_id" binding:"required"`
		Title       string     `json:"title" binding:"required,max=256"`
		Description string     `json:"description"`
		DueDate     *time.Time `json:"due_date"`
		Attachment  string     `json:"attachment"`
		Comments    string     `json:"comments"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	userID := middleware.GetCurrentUserID(c)
	task, err := h.taskService.Create(userID, req.BoardID, req.Title, req.Description, req.DueDate, req.Attachment, req.Comments)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, task)
}

// GET /tasks?status=
func (h *TaskHandler) List(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != model.TaskStatusTodo && status != model.TaskStatusInProgress && status != model.TaskStatusDone {
		BadRequest(c, 40001, "unknown status filter")
		return
	}

	tasks, err := h.taskService.List(status)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, tasks)
}

// GET /tasks/:id
func (h *TaskHandler) Get(c *gin.Context) {
	id := parseID(c.Param("id"))
	task, err := h.taskService.GetByID(id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if task == nil {
		NotFound(c, 40401, "task not found")
		return
	}
	Success(c, task)
}

// PUT /tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id := parseID(c.Param("id"))
	userID := middleware.GetCurrentUserID(c)

	var req struct {
		Title       *string    `json:"title"`
		Description *string    `json:"description"`
		DueDate     *time.Time `json:"due_date"`
		Attachment  *string    `json:"attachment"`
		Comments    *string    `json:"comments"`
		Status      *string    `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}
	if req.Attachment != nil {
		updates["attachment"] = *req.Attachment
	}
	if req.Comments != nil {
		updates["comments"] = *req.Comments
	}
	if req.Status != nil {
		if *req.Status != model.TaskStatusTodo && *req.Status != model.TaskStatusInProgress && *req.Status != model.TaskStatusDone {
			BadRequest(c, 40001, "unknown status")
			return
		}
		updates["status"] = *req.Status
	}

	task, err := h.taskService.Update(userID, id, updates)
	if err != nil {
		RespondError(c, err)
		return
	}
	if task == nil {
		NotFound(c, 40401, "task not found")
		return
	}
	Success(c, task)
}

// POST /tasks/:id/assignees
func (h *TaskHandler) AddAssignee(c *gin.Context) {
	id := parseID(c.Param("id"))

	var req struct {
		UserID uint `json:"user_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, 40001, "invalid request: "+err.Error())
		return
	}

	task, err := h.taskService.AddAssignee(id, req.UserID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, task)
}

// DELETE /tasks/:id/assignees/:user_id
func (h *TaskHandler) RemoveAssignee(c *gin.Context) {
	id := parseID(c.Param("id"))
	assigneeID := parseID(c.Param("user_id"))

	task, err := h.taskService.RemoveAssignee(id, assigneeID)
	if err != nil {
		RespondError(c, err)
		return
	}
	if task == nil {
		NotFound(c, 40401, "user is not assigned to this task")
		return
	}
	Success(c, task)
}

// DELETE /tasks/:id
func (h *TaskHandler) Delete(c *gin.Context) {
	id := parseID(c.Param("id"))
	userID := middleware.GetCurrentUserID(c)

	task, err := h.taskService.Delete(userID, id)
	if err != nil {
		RespondError(c, err)
		return
	}
	if task == nil {
		NotFound(c, 40401, "task not found")
		return
	}
	Success(c, gin.H{"message": "task deleted"})
}
