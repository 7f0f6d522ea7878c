package postgres

import (
	"context"

	"github.com/planloop/planloop/internal/domain/entity"
	"gorm.io/gorm"
)

type WorkspaceStorage struct {
	db *gorm.DB
}

func NewWorkspaceStorage(db *gorm.DB) *WorkspaceStorage {
	return &WorkspaceStorage{
		db: db,
	}
}

func (s *WorkspaceStorage) Create(ctx context.Context, workspace *entity.Workspace) (*entity.Workspace, error) {
	err := s.db.WithContext(ctx).Create(&workspace).Error
	return workspace, err
}

func (s *WorkspaceStorage) Get(ctx context.Context, id string) (*entity.Workspace, error) {
	var workspace entity.Workspace
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&workspace).Error
	return &workspace, err
}

func (s *WorkspaceStorage) GetByOrganizationID(ctx context.Context, organizationID string) ([]entity.Workspace, error) {
	var workspaces []entity.Workspace
	err := s.db.WithContext(ctx).Where("organization_id = ?", organizationID).Find(&workspaces).Error
	return workspaces, err
}

// GetByUserID returns the workspaces the user is a member of, oldest first.
func (s *WorkspaceStorage) GetByUserID(ctx context.Context, userID uint) ([]entity.Workspace, error) {
	var workspaces []entity.Workspace
	err := s.db.WithContext(ctx).
		Joins("JOIN workspace_members ON workspace_members.workspace_id = workspaces.id").
		Where("workspace_members.user_id = ?", userID).
		Order("workspaces.created_at").
		Find(&workspaces).Error
	return workspaces, err
}

func (s *WorkspaceStorage) Update(ctx context.Context, workspace *entity.Workspace) (*entity.Workspace, error) {
	err := s.db.WithContext(ctx).Save(&workspace).Error
	return workspace, err
}

func (s *WorkspaceStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Workspace{}).Error
}

func (s *WorkspaceStorage) AddMember(ctx context.Context, member *entity.WorkspaceMember) (*entity.WorkspaceMember, error) {
	err := s.db.WithContext(ctx).Create(&member).Error
	return member, err
}

func (s *WorkspaceStorage) RemoveMember(ctx context.Context, workspaceID string, userID uint) error {
	return s.db.WithContext(ctx).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Delete(&entity.WorkspaceMember{}).Error
}

// GetMembers returns all members of the workspace.
func (s *WorkspaceStorage) GetMembers(ctx context.Context, workspaceID string) ([]entity.WorkspaceMember, error) {
	var members []entity.WorkspaceMember
	err := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID).Find(&members).Error
	return members, err
}

// HasUser reports whether the user is a member of the workspace.
func (s *WorkspaceStorage) HasUser(ctx context.Context, workspaceID string, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.WorkspaceMember{}).
		Where("workspace_id = ? AND user_id = ?", workspaceID, userID).
		Count(&count).Error
	return count > 0, err
}
