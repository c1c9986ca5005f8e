package model

import "time"

// Chat is a two-party conversation. Members are an unordered pair; lookup
// must match regardless of argument order.
type Chat struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Members []User `gorm:"many2many:chat_members" json:"members,omitempty"`
}

func (Chat) TableName() string { return "chats" }

type Message struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ChatID    uint      `gorm:"not null;index:idx_message_chat" json:"chat_id"`
	SenderID  uint      `gorm:"not null" json:"sender_id"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	ImageURL  string    `gorm:"type:varchar(512)" json:"image_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Message) TableName() string { return "messages" }
