package service

import (
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/apperr"
	"github.com/0xThirdspace/Thirdspace-Backend-Api/internal/model"
	"gorm.io/gorm"
)

type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// AddUserToWorkspace materializes an accepted invitation. Only the invited
// person may accept: the requesting user's email must match the invited
// email.
func (s *TeamService) AddUserToWorkspace(workspaceID uint, email, role, department string, requesterID uint) (*model.TeamMember, error) {
	var user model.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}

	var workspace model.Workspace
	if err := s.db.First(&workspace, workspaceID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("workspace not found")
		}
		return nil, err
	}

	var requester model.User
	if err := s.db.First(&requester, requesterID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperr.NotFound("user not found")
		}
		return nil, err
	}
	if requester.Email != email {
		return nil, apperr.Forbidden("only the invited user can accept this invitation")
	}

	var count int64
	if err := s.db.Model(&model.TeamMember{}).Where("workspace_id = ? AND user_id = ?", workspaceID, user.ID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("user is already a member of this workspace")
	}

	member := &model.TeamMember{
		WorkspaceID: workspaceID,
		UserID:      user.ID,
		Role:        role,
		Department:  department,
	}
	if err := s.db.Create(member).Error; err != nil {
		return nil, err
	}
	return member, nil
}

// GetUserTeamRole is the authorization primitive gating owner-only
// operations.
func (s *TeamService) GetUserTeamRole(workspaceID, userID uint) (string, error) {
	var count int64
	if err := s.db.Model(&model.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return "", apperr.NotFound("user not found")
	}

	if err := s.db.Model(&model.Workspace{}).Where("id = ?", workspaceID).Count(&count).Error; err != nil {
		return "", err
	}
	if count == 0 {
		return "", apperr.NotFound("workspace not found")
	}

	var member model.TeamMember
	if err := s.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).First(&member).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", apperr.NotFound("user is not a member of this workspace")
		}
		return "", err
	}
	return member.Role, nil
}

// ListMembers returns the workspace roster with user profiles preloaded.
func (s *TeamService) ListMembers(workspaceID uint) ([]model.TeamMember, error) {
	var members []model.TeamMember
	if err := s.db.Preload("User").Where("workspace_id = ?", workspaceID).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

// RemoveMember deletes one membership. Returns (nil, nil) when absent.
func (s *TeamService) RemoveMember(workspaceID, userID uint) (*model.TeamMember, error) {
	var member model.TeamMember
	result := s.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).First(&member)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}
	if err := s.db.Delete(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// RemoveAllMembers clears the roster except the owner membership, which can
// never be removed through this path.
func (s *TeamService) RemoveAllMembers(workspaceID uint) (int64, error) {
	result := s.db.Where("workspace_id = ? AND role != ?", workspaceID, model.RoleOwner).
		Delete(&model.TeamMember{})
	return result.RowsAffected, result.Error
}

// UpdateMember partially updates role/department. Returns (nil, nil) when
// the membership is absent.
func (s *TeamService) UpdateMember(workspaceID, userID uint, role, department *string) (*model.TeamMember, error) {
	var member model.TeamMember
	result := s.db.Where("workspace_id = ? AND user_id = ?", workspaceID, userID).First(&member)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, result.Error
	}

	updates := make(map[string]interface{})
	if role != nil {
		updates["role"] = *role
	}
	if department != nil {
		updates["department"] = *department
	}
	if len(updates) > 0 {
		if err := s.db.Model(&member).Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return &member, nil
}
