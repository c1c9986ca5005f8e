package service

import (
	"fmt"
	"time"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/apperr"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/keymutex"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"gorm.io/gorm"
)

// Target statuses accepted by UpdateStatus. "closed" must be reachable here
// or the delete gate could never be satisfied.
var allowedBountyStatuses = map[string]bool{
	model.BountyStatusActive:     true,
	model.BountyStatusInProgress: true,
	model.BountyStatusCompleted:  true,
	model.BountyStatusClosed:     true,
}

type BountyService struct {
	db    *gorm.DB
	joins *keymutex.KeyMutex
}

func NewBountyService(db *gorm.DB) *BountyService {
	return &BountyService{db: db, joins: keymutex.New()}
}

// Create requires the creator to own the target workspace.
func (s *BountyService) Create(creatorID, workspaceID uint, title, repoLink string, amount float64, startDate, endDate time.Time, description string) (*model.Bounty, error) {
	var count int64
	if err := s.db.Model(&model.Workspace{}).Where("id = ? AND owner_id = ?", workspaceID, creatorID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.Forbidden("current user is not the owner of the workspace")
	}

	bounty := &model.Bounty{
		Title:       title,
		RepoLink:    repoLink,
		Amount:      amount,
		StartDate:   startDate,
		EndDate:     endDate,
		Description: description,
		Status:      model.BountyStatusPending,
		WorkspaceID: workspaceID,
		CreatorID:   creatorID,
	}
	if err := s.db.Create(bounty).Error; err != nil {
		return nil, err
	}
	s.db.Preload("Creator").Preload("Workspace").First(bounty, bounty.ID)
	return bounty, nil
}

func (s *BountyService) List() ([]model.Bounty, error) {
	var bounties []model.Bounty
	if err := s.db.Preload("Creator").Preload("Workspace").Preload("Participants").Find(&bounties).Error; err != nil {
		return nil, err
	}
	return bounties, nil
}

func (s *BountyService) ListCreatedBy(creatorID uint) ([]model.Bounty, error) {
	var bounties []model.Bounty
	if err := s.db.Preload("Creator").Preload("Workspace").Preload("Participants").
		Where("creator_id = ?", creatorID).Find(&bounties).Error; err != nil {
		return nil, err
	}
	return bounties, nil
}

// GetByID returns (nil, nil) when the bounty doesn't exist.
func (s *BountyService) GetByID(bountyID uint) (*model.Bounty, error) {
	var bounty model.Bounty
	result := s.db.Preload("Creator").Preload("Workspace").Preload("Participants").First(&bounty, bountyID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &bounty, nil
}

// Update applies only the supplied fields, scoped to the creator. Returns
// (nil, nil) when (id, creator) doesn't resolve.
func (s *BountyService) Update(creatorID, bountyID uint, updates map[string]interface{}) (*model.Bounty, error) {
	var bounty model.Bounty
	result := s.db.Where("id = ? AND creator_id = ?", bountyID, creatorID).First(&bounty)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	if len(updates) > 0 {
		if err := s.db.Model(&bounty).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return s.GetByID(bountyID)
}

// UpdateStatus transitions the status; only the creator may transition.
// Returns (nil, nil) when (id, creator) doesn't resolve.
func (s *BountyService) UpdateStatus(creatorID, bountyID uint, status string) (*model.Bounty, error) {
	var bounty model.Bounty
	result := s.db.Where("id = ? AND creator_id = ?", bountyID, creatorID).First(&bounty)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	if !allowedBountyStatuses[status] {
		return nil, apperr.Precondition(fmt.Sprintf("invalid status %q", status))
	}

	if err := s.db.Model(&bounty).Update("status", status).Error; err != nil {
		return nil, err
	}
	return s.GetByID(bountyID)
}

// Delete removes a bounty the user created, only once it is closed. Returns
// (nil, nil) when (id, creator) doesn't resolve.
func (s *BountyService) Delete(creatorID, bountyID uint) (*model.Bounty, error) {
	var bounty model.Bounty
	result := s.db.Where("id = ? AND creator_id = ?", bountyID, creatorID).First(&bounty)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	if bounty.Status != model.BountyStatusClosed {
		return nil, apperr.Precondition("bounty must be closed before it can be deleted")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&bounty).Association("Participants").Clear(); err != nil {
			return err
		}
		return tx.Delete(&bounty).Error
	})
	if err != nil {
		return nil, err
	}
	return &bounty, nil
}

// DeleteAllCreatedBy removes the user's closed bounties; open ones are left
// untouched. Returns the number removed.
func (s *BountyService) DeleteAllCreatedBy(creatorID uint) (int64, error) {
	result := s.db.Where("creator_id = ? AND status = ?", creatorID, model.BountyStatusClosed).
		Delete(&model.Bounty{})
	return result.RowsAffected, result.Error
}

// IsParticipantJoined reports whether the user already joined the bounty.
func (s *BountyService) IsParticipantJoined(bountyID, userID uint) (bool, error) {
	var count int64
	err := s.db.Table("bounty_participants").
		Where("bounty_id = ? AND user_id = ?", bountyID, userID).
		Count(&count).Error
	return count > 0, err
}

// AddParticipant joins a user to a bounty. The creator may not join their
// own bounty, and the membership check is serialized per bounty because the
// append itself is not idempotent.
func (s *BountyService) AddParticipant(bountyID, userID uint) (*model.Bounty, error) {
	key := fmt.Sprintf("bounty:join:%d", bountyID)
	s.joins.Lock(key)
	defer s.joins.Unlock(key)

	var bounty model.Bounty
	if err := s.db.First(&bounty, bountyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("bounty not found")
		}
		return nil, err
	}

	var user model.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	if bounty.CreatorID == userID {
		return nil, apperr.Precondition("the creator of a bounty cannot join it")
	}

	joined, err := s.IsParticipantJoined(bountyID, userID)
	if err != nil {
		return nil, err
	}
	if joined {
		return nil, apperr.Conflict("user has already joined this bounty")
	}

	if err := s.db.Model(&bounty).Association("Participants").Append(&user); err != nil {
		return nil, err
	}
	return s.GetByID(bountyID)
}

// RemoveParticipant leaves a bounty. Returns (nil, nil) when the user is not
// a participant.
func (s *BountyService) RemoveParticipant(bountyID, userID uint) (*model.Bounty, error) {
	var bounty model.Bounty
	if err := s.db.First(&bounty, bountyID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("bounty not found")
		}
		return nil, err
	}

	joined, err := s.IsParticipantJoined(bountyID, userID)
	if err != nil {
		return nil, err
	}
	if !joined {
		return nil, nil
	}

	if err := s.db.Model(&bounty).Association("Participants").Delete(&model.User{ID: userID}); err != nil {
		return nil, err
	}
	return s.GetByID(bountyID)
}
