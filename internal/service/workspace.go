package service

import (
	"strings"

	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/apperr"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/keymutex"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"gorm.io/gorm"
)

type WorkspaceService struct {
	db    *gorm.DB
	names *keymutex.KeyMutex
}

func NewWorkspaceService(db *gorm.DB) *WorkspaceService {
	return &WorkspaceService{db: db, names: keymutex.New()}
}

// Create makes a workspace and its owner membership in one transaction.
// Serialized per name so concurrent creates with the same name cannot both
// pass the uniqueness check; the unique indexes on name and owner_id are the
// backstop.
func (s *WorkspaceService) Create(ownerID uint, name, imageURL string) (*model.Workspace, error) {
	if name == "" {
		return nil, apperr.Invalid("you need to provide a workspace name")
	}

	s.names.Lock("workspace:name:" + name)
	defer s.names.Unlock("workspace:name:" + name)

	var count int64
	if err := s.db.Model(&model.Workspace{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("workspace name already exists")
	}

	if err := s.db.Model(&model.Workspace{}).Where("owner_id = ?", ownerID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("user can only create a single workspace")
	}

	workspace := &model.Workspace{
		Name:     name,
		OwnerID:  ownerID,
		ImageURL: imageURL,
	}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(workspace).Error; err != nil {
			return err
		}
		owner := &model.TeamMember{
			WorkspaceID: workspace.ID,
			UserID:      ownerID,
			Role:        model.RoleOwner,
		}
		return tx.Create(owner).Error
	})
	if err != nil {
		return nil, err
	}
	return workspace, nil
}

// Update applies only the supplied fields. Returns (nil, nil) when no
// workspace with that id is owned by ownerID.
func (s *WorkspaceService) Update(ownerID, workspaceID uint, name, imageURL *string) (*model.Workspace, error) {
	var workspace model.Workspace
	result := s.db.Where("id = ? AND owner_id = ?", workspaceID, ownerID).First(&workspace)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	updates := make(map[string]interface{})
	if name != nil {
		s.names.Lock("workspace:name:" + *name)
		defer s.names.Unlock("workspace:name:" + *name)

		var count int64
		if err := s.db.Model(&model.Workspace{}).Where("name = ? AND id != ?", *name, workspaceID).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, apperr.Conflict("workspace name already exists")
		}
		updates["name"] = *name
	}
	if imageURL != nil {
		updates["image_url"] = *imageURL
	}
	if len(updates) > 0 {
		if err := s.db.Model(&workspace).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &workspace, nil
}

// Delete removes the workspace with its closed bounties, boards, tasks and
// memberships. Refuses while any bounty is still open; the service is the
// single place this gate lives. Returns (nil, nil) when (id, owner) doesn't
// resolve.
func (s *WorkspaceService) Delete(workspaceID, ownerID uint) (*model.Workspace, error) {
	var workspace model.Workspace
	result := s.db.Where("id = ? AND owner_id = ?", workspaceID, ownerID).First(&workspace)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	var open int64
	if err := s.db.Model(&model.Bounty{}).
		Where("workspace_id = ? AND status != ?", workspaceID, model.BountyStatusClosed).
		Count(&open).Error; err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, apperr.Precondition("workspace has open bounties")
	}

	// The cascade hard-deletes: the unique name and owner_id slots must free
	// up for reuse, and soft-deleted children would keep their join rows
	// alive. Join tables carry no DeletedAt, so they are cleared explicitly
	// before their parents go.
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(
			"DELETE FROM bounty_participants WHERE bounty_id IN (SELECT id FROM bounties WHERE workspace_id = ?)",
			workspaceID).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("workspace_id = ?", workspaceID).Delete(&model.Bounty{}).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM task_assignees WHERE task_id IN (SELECT id FROM tasks WHERE board_id IN (SELECT id FROM kanban_boards WHERE workspace_id = ?))",
			workspaceID).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("board_id IN (SELECT id FROM kanban_boards WHERE workspace_id = ?)", workspaceID).
			Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("workspace_id = ?", workspaceID).Delete(&model.KanbanBoard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("workspace_id = ?", workspaceID).Delete(&model.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&workspace).Error
	})
	if err != nil {
		return nil, err
	}
	return &workspace, nil
}

// GetByName does a case-insensitive substring match scoped to the owner.
// Returns (nil, nil) when nothing matches.
func (s *WorkspaceService) GetByName(ownerID uint, name string) (*model.Workspace, error) {
	var workspace model.Workspace
	result := s.db.Where("owner_id = ? AND LOWER(name) LIKE ?", ownerID, "%"+strings.ToLower(name)+"%").
		First(&workspace)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &workspace, nil
}

// GetByOwner returns the owner's workspace, (nil, nil) when they have none.
func (s *WorkspaceService) GetByOwner(ownerID uint) (*model.Workspace, error) {
	var workspace model.Workspace
	result := s.db.Where("owner_id = ?", ownerID).First(&workspace)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &workspace, nil
}

// GetByID returns (nil, nil) when the workspace doesn't exist.
func (s *WorkspaceService) GetByID(workspaceID uint) (*model.Workspace, error) {
	var workspace model.Workspace
	result := s.db.Preload("Owner").First(&workspace, workspaceID)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	return &workspace, nil
}
