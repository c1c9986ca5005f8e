package model

import "time"

// RoleOwner is the membership role created atomically with a workspace.
// Exactly one per workspace; it gates every owner-only team operation.
const RoleOwner = "owner"

type TeamMember struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	WorkspaceID uint      `gorm:"not null;uniqueIndex:uk_workspace_user" json:"workspace_id"`
	UserID      uint      `gorm:"not null;uniqueIndex:uk_workspace_user;index:idx_user_id" json:"user_id"`
	Role        string    `gorm:"type:varchar(32);not null" json:"role"`
	Department  string    `gorm:"type:varchar(64)" json:"department"`
	JoinedAt    time.Time `gorm:"autoCreateTime" json:"joined_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (TeamMember) TableName() string { return "team_members" }
