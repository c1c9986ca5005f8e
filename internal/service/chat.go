package service

import (
	"fmt"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/apperr"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/keymutex"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"gorm.io/gorm"
)

type ChatService struct {
	db    *gorm.DB
	pairs *keymutex.KeyMutex
}

func NewChatService(db *gorm.DB) *ChatService {
	return &ChatService{db: db, pairs: keymutex.New()}
}

// pairKey normalizes the unordered member pair to a single lock key.
func pairKey(a, b uint) string {
	if a > b {
		a, b = b, a
	}
	return fmt.Sprintf("chat:pair:%d:%d", a, b)
}

// FindByMembers looks up the chat containing both users, regardless of
// argument order. Returns (nil, nil) when there is none.
func (s *ChatService) FindByMembers(firstID, secondID uint) (*model.Chat, error) {
	var chat model.Chat
	result := s.db.Preload("Members").
		Where("id IN (SELECT chat_id FROM chat_members WHERE user_id = ?)", firstID).
		Where("id IN (SELECT chat_id FROM chat_members WHERE user_id = ?)", secondID).
		First(&chat)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &chat, nil
}

// GetOrCreate returns the pair's chat, creating it when absent. The find and
// create are serialized on the normalized pair key so concurrent requests
// yield a single chat.
func (s *ChatService) GetOrCreate(firstID, secondID uint) (*model.Chat, error) {
	if firstID == secondID {
		return nil, apperr.Invalid("a chat needs two distinct members")
	}

	key := pairKey(firstID, secondID)
	s.pairs.Lock(key)
	defer s.pairs.Unlock(key)

	existing, err := s.FindByMembers(firstID, secondID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	var members []model.User
	if err := s.db.Where("id IN ?", []uint{firstID, secondID}).Find(&members).Error; err != nil {
		return nil, err
	}
	if len(members) != 2 {
		return nil, apperr.NotFound("user not found")
	}

	chat := &model.Chat{Members: members}
	if err := s.db.Create(chat).Error; err != nil {
		return nil, err
	}
	return chat, nil
}

// ListForUser returns every chat the user is a member of.
func (s *ChatService) ListForUser(userID uint) ([]model.Chat, error) {
	var chats []model.Chat
	err := s.db.Preload("Members").
		Where("id IN (SELECT chat_id FROM chat_members WHERE user_id = ?)", userID).
		Find(&chats).Error
	if err != nil {
		return nil, err
	}
	return chats, nil
}

// IsMember reports whether the user belongs to the chat.
func (s *ChatService) IsMember(chatID, userID uint) (bool, error) {
	var count int64
	err := s.db.Table("chat_members").
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	return count > 0, err
}

// Delete removes the chat and all its messages. Returns (nil, nil) when the
// chat doesn't exist.
func (s *ChatService) Delete(chatID uint) (*model.Chat, error) {
	var chat model.Chat
	result := s.db.First(&chat, chatID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("chat_id = ?", chatID).Delete(&model.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&chat).Association("Members").Clear(); err != nil {
			return err
		}
		return tx.Delete(&chat).Error
	})
	if err != nil {
		return nil, err
	}
	return &chat, nil
}
