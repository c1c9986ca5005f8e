package model

import "time"

type OperationLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uint      `gorm:"not null;index:idx_oplog_user" json:"user_id"`
	Action       string    `gorm:"type:varchar(32);not null" json:"action"`
	ResourceType string    `gorm:"type:varchar(32);not null;index:idx_oplog_resource" json:"resource_type"`
	ResourceID   uint      `json:"resource_id"`
	Detail       string    `gorm:"type:varchar(512)" json:"detail"`
	CreatedAt    time.Time `json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (OperationLog) TableName() string { return "operation_logs" }
