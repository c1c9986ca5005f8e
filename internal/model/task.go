package model

import (
	"time"

	"gorm.io/gorm"
)

// Task statuses. A task may only be deleted once it reaches done.
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "inprogress"
	TaskStatusDone       = "done"
)

type Task struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(256);not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	DueDate     *time.Time     `json:"due_date"`
	Attachment  string         `gorm:"type:varchar(512)" json:"attachment"`
	Comments    string         `gorm:"type:text" json:"comments"`
	Status      string         `gorm:"type:varchar(20);default:todo;index:idx_task_status" json:"status"`
	BoardID     uint           `gorm:"not null;index:idx_task_board" json:"board_id"`
	CreatorID   uint           `gorm:"not null;index:idx_task_creator" json:"creator_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Creator   *User        `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Board     *KanbanBoard `gorm:"foreignKey:BoardID" json:"board,omitempty"`
	Assignees []User       `gorm:"many2many:task_assignees" json:"assignees,omitempty"`
}

func (Task) TableName() string { return "tasks" }
