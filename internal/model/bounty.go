package model

import (
	"time"

	"gorm.io/gorm"
)

// Bounty statuses. A bounty starts out pending and may only be deleted once
// it reaches closed.
const (
	BountyStatusPending    = "pending"
	BountyStatusActive     = "active"
	BountyStatusInProgress = "inprogress"
	BountyStatusCompleted  = "completed"
	BountyStatusClosed     = "closed"
)

type Bounty struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(256);not null" json:"title"`
	RepoLink    string         `gorm:"type:varchar(512);not null" json:"repo_link"`
	Amount      float64        `gorm:"not null" json:"amount"`
	StartDate   time.Time      `json:"start_date"`
	EndDate     time.Time      `json:"end_date"`
	Description string         `gorm:"type:text" json:"description"`
	Status      string         `gorm:"type:varchar(20);default:pending;index:idx_bounty_status" json:"status"`
	WorkspaceID uint           `gorm:"not null;index:idx_bounty_workspace" json:"workspace_id"`
	CreatorID   uint           `gorm:"not null;index:idx_bounty_creator" json:"creator_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Creator      *User      `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Workspace    *Workspace `gorm:"foreignKey:WorkspaceID" json:"workspace,omitempty"`
	Participants []User     `gorm:"many2many:bounty_participants" json:"participants,omitempty"`
}

func (Bounty) TableName() string { return "bounties" }
