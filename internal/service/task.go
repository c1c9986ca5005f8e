package service

import (
	"fmt"
	"time"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/apperr"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/keymutex"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"gorm.io/gorm"
)

type TaskService struct {
	db      *gorm.DB
	assigns *keymutex.KeyMutex
}

func NewTaskService(db *gorm.DB) *TaskService {
	return &TaskService{db: db, assigns: keymutex.New()}
}

func (s *TaskService) Create(creatorID, boardID uint, title, description string, dueDate *time.Time, attachment, comments string) (*model.Task, error) {
	if title == "" {
		return nil, apperr.Invalid("you need to provide a title for your task")
	}

	var count int64
	if err := s.db.Model(&model.KanbanBoard{}).Where("id = ?", boardID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("board not found")
	}

	task := &model.Task{
		Title:       title,
		Description: description,
		DueDate:     dueDate,
		Attachment:  attachment,
		Comments:    comments,
		Status:      model.TaskStatusTodo,
		BoardID:     boardID,
		CreatorID:   creatorID,
	}
	if err := s.db.Create(task).Error; err != nil {
		return nil, err
	}
	s.db.Preload("Creator").Preload("Board").First(task, task.ID)
	return task, nil
}

// List returns tasks, optionally filtered by status.
func (s *TaskService) List(status string) ([]model.Task, error) {
	query := s.db.Preload("Creator").Preload("Board").Preload("Assignees")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	var tasks []model.Task
	if err := query.Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetByID returns (nil, nil) when the task doesn't exist.
func (s *TaskService) GetByID(taskID uint) (*model.Task, error) {
	var task model.Task
	result := s.db.Preload("Creator").Preload("Board").Preload("Assignees").First(&task, taskID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &task, nil
}

// Update applies only the supplied fields, scoped to the creator. Returns
// (nil, nil) when (id, creator) doesn't resolve.
func (s *TaskService) Update(creatorID, taskID uint, updates map[string]interface{}) (*model.Task, error) {
	var task model.Task
	result := s.db.Where("id = ? AND creator_id = ?", taskID, creatorID).First(&task)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	if len(updates) > 0 {
		if err := s.db.Model(&task).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(taskID)
}

// IsMemberAssigned reports whether the user is already assigned to the task.
func (s *TaskService) IsMemberAssigned(taskID, userID uint) (bool, error) {
	var count int64
	err := s.db.Table("task_assignees").
		Where("task_id = ? AND user_id = ?", taskID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddAssignee assigns a user to a task. The assignment check is serialized
// per task because the append itself is not idempotent.
func (s *TaskService) AddAssignee(taskID, userID uint) (*model.Task, error) {
	key := fmt.Sprintf("task:assign:%d", taskID)
	s.assigns.Lock(key)
	defer s.assigns.Unlock(key)

	var task model.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("task not found")
		}
		return nil, err
	}

	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	assigned, err := s.IsMemberAssigned(taskID, userID)
	if err != nil {
		return nil, err
	}
	if assigned {
		return nil, apperr.Conflict("user is already assigned to this task")
	}

	if err := s.db.Model(&task).Association("Assignees").Append(&user); err != nil {
		return nil, err
	}
	return s.GetByID(taskID)
}

// RemoveAssignee unassigns a user. Returns (nil, nil) when the user is not
// assigned.
func (s *TaskService) RemoveAssignee(taskID, userID uint) (*model.Task, error) {
	var task model.Task
	if err := s.db.First(&task, taskID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("task not found")
		}
		return nil, err
	}

	assigned, err := s.IsMemberAssigned(taskID, userID)
	if err != nil {
		return nil, err
	}
	if !assigned {
		return nil, nil
	}

	if err := s.db.Model(&task).Association("Assignees").Delete(&model.User{ID: userID}); err != nil {
		return nil, err
	}
	return s.GetByID(taskID)
}

// Delete removes a task the user created, only once it is done. Returns
// (nil, nil) when (id, creator) doesn't resolve.
func (s *TaskService) Delete(creatorID, taskID uint) (*model.Task, error) {
	var task model.Task
	result := s.db.Where("id = ? AND creator_id = ?", taskID, creatorID).First(&task)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	if task.Status != model.TaskStatusDone {
		return nil, apperr.Precondition("task must be done before it can be deleted")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&task).Association("Assignees").Clear(); err != nil {
			return err
		}
		return tx.Delete(&task).Error
	})
	if err != nil {
		return nil, err
	}
	return &task, nil
}
