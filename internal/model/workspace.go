package model

import (
	"time"

	"gorm.io/gorm"
)

// Workspace is a single-owner team container. The unique indexes on name and
// owner_id are load-bearing: they back the one-workspace-per-owner and
// global-name-uniqueness invariants at the store level.
type Workspace struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(128);uniqueIndex:uk_workspace_name;not null" json:"name"`
	OwnerID   uint           `gorm:"uniqueIndex:uk_workspace_owner;not null" json:"owner_id"`
	ImageURL  string         `gorm:"type:varchar(512)" json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Owner   *User        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Members []TeamMember `gorm:"foreignKey:WorkspaceID" json:"members,omitempty"`
}

func (Workspace) TableName() string { return "workspaces" }
