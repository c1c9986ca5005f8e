package service

import (
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/apperr"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/sse"
	"gorm.io/gorm"
)

type MessageService struct {
	db  *gorm.DB
	hub *sse.Hub
}

func NewMessageService(db *gorm.DB) *MessageService {
	return &MessageService{db: db}
}

// SetHub attaches the stream hub; without one, messages are stored but not
// broadcast.
func (s *MessageService) SetHub(hub *sse.Hub) {
	s.hub = hub
}

func (s *MessageService) Create(chatID, senderID uint, text, imageURL string) (*model.Message, error) {
	if text == "" && imageURL == "" {
		return nil, apperr.Invalid("message needs text or an image")
	}

	var count int64
	if err := s.db.Model(&model.Chat{}).Where("id = ?", chatID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.NotFound("chat not found")
	}

	message := &model.Message{
		ChatID:   chatID,
		SenderID: senderID,
		Text:     text,
		ImageURL: imageURL,
	}
	if err := s.db.Create(message).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(chatID, sse.Event{Type: "message_created", Data: message})
	}
	return message, nil
}

// ListByChat returns the chat's messages ascending by creation time.
func (s *MessageService) ListByChat(chatID uint) ([]model.Message, error) {
	var messages []model.Message
	err := s.db.Where("chat_id = ?", chatID).
		Order("created_at asc, id asc").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// Edit updates the text of an existing message. Returns (nil, nil) when the
// message doesn't exist.
func (s *MessageService) Edit(messageID uint, text string) (*model.Message, error) {
	var message model.Message
	result := s.db.First(&message, messageID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	if err := s.db.Model(&message).Update("text", text).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(message.ChatID, sse.Event{Type: "message_edited", Data: message})
	}
	return &message, nil
}

// Delete removes a message. Returns (nil, nil) when it doesn't exist.
func (s *MessageService) Delete(messageID uint) (*model.Message, error) {
	var message model.Message
	result := s.db.First(&message, messageID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	if err := s.db.Delete(&message).Error; err != nil {
		return nil, err
	}

	if s.hub != nil {
		s.hub.Broadcast(message.ChatID, sse.Event{Type: "message_deleted", Data: message.ID})
	}
	return &message, nil
}
