package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"type:varchar(64);not null" json:"name"`
	Email     string         `gorm:"type:varchar(128);uniqueIndex:uk_email;not null" json:"email"`
	Password  string         `gorm:"type:varchar(128);not null" json:"-"`
	ImageURL  string         `gorm:"type:varchar(512)" json:"image_url"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

type UserBrief struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"image_url,omitempty"`
}

func (u *User) Brief() UserBrief {
	return UserBrief{
		ID:       u.ID,
		Name:     u.Name,
		Email:    u.Email,
		ImageURL: u.ImageURL,
	}
}
