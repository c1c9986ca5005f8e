package model

import (
	"time"

	"gorm.io/gorm"
)

type KanbanBoard struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"type:varchar(128);not null" json:"name"`
	WorkspaceID uint           `gorm:"not null;index:idx_board_workspace" json:"workspace_id"`
	CreatorID   uint           `gorm:"not null;index:idx_board_creator" json:"creator_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Creator   *User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Workspace *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
}

func (KanbanBoard) TableName() string { return "kanban_boards" }
