package service

import (
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/apperr"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"gorm.io/gorm"
)

type KanbanService struct {
	db *gorm.DB
}

func NewKanbanService(db *gorm.DB) *KanbanService {
	return &KanbanService{db: db}
}

// CreateBoard requires the creator to own the target workspace.
func (s *KanbanService) CreateBoard(creatorID, workspaceID uint, name string) (*model.KanbanBoard, error) {
	if name == "" {
		return nil, apperr.Invalid("you need to provide a board name")
	}

	var count int64
	if err := s.db.Model(&model.Workspace{}).Where("id = ? AND owner_id = ?", workspaceID, creatorID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, apperr.Forbidden("current user is not the owner of the workspace")
	}

	board := &model.KanbanBoard{
		Name:        name,
		WorkspaceID: workspaceID,
		CreatorID:   creatorID,
	}
	if err := s.db.Create(board).Error; err != nil {
		return nil, err
	}
	s.db.Preload("Creator").Preload("Workspace").First(board, board.ID)
	return board, nil
}

// GetBoard returns (nil, nil) when the board doesn't exist.
func (s *KanbanService) GetBoard(boardID uint) (*model.KanbanBoard, error) {
	var board model.KanbanBoard
	result := s.db.Preload("Creator").Preload("Workspace").First(&board, boardID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &board, nil
}

// GetBoardCreatedBy returns the first board created by the user, (nil, nil)
// when there is none.
func (s *KanbanService) GetBoardCreatedBy(creatorID uint) (*model.KanbanBoard, error) {
	var board model.KanbanBoard
	result := s.db.Where("creator_id = ?", creatorID).First(&board)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &board, nil
}

// DeleteBoard removes a board the user created along with its tasks.
// Returns (nil, nil) when (id, creator) doesn't resolve.
func (s *KanbanService) DeleteBoard(creatorID, boardID uint) (*model.KanbanBoard, error) {
	var board model.KanbanBoard
	result := s.db.Preload("Creator").Preload("Workspace").
		Where("id = ? AND creator_id = ?", boardID, creatorID).First(&board)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&board).Error
	})
	if err != nil {
		return nil, err
	}
	return &board, nil
}
