package service

import (
	"context"

	"github.com/planloop/planloop/internal/domain/entity"
)

type WorkspaceStorage interface {
	Create(ctx context.Context, workspace *entity.Workspace) (*entity.Workspace, error)
	Get(ctx context.Context, id string) (*entity.Workspace, error)
	GetByOrganizationID(ctx context.Context, organizationID string) ([]entity.Workspace, error)
	GetByUserID(ctx context.Context, userID uint) ([]entity.Workspace, error)
	Update(ctx context.Context, workspace *entity.Workspace) (*entity.Workspace, error)
	Delete(ctx context.Context, id string) error
	AddMember(ctx context.Context, member *entity.WorkspaceMember) (*entity.WorkspaceMember, error)
	RemoveMember(ctx context.Context, workspaceID string, userID uint) error
	GetMembers(ctx context.Context, workspaceID string) ([]entity.WorkspaceMember, error)
	HasUser(ctx context.Context, workspaceID string, userID uint) (bool, error)
}

type WorkspaceService struct {
	storage WorkspaceStorage
}

func NewWorkspaceService(storage WorkspaceStorage) *WorkspaceService {
	return &WorkspaceService{
		storage: storage,
	}
}

func (s *WorkspaceService) Create(ctx context.Context, workspace *entity.Workspace, creatorID uint) (*entity.Workspace, error) {
	created, err := s.storage.Create(ctx, workspace)
	if err != nil {
		return nil, err
	}

	_, err = s.storage.AddMember(ctx, &entity.WorkspaceMember{
		WorkspaceID: created.ID,
		UserID:      creatorID,
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *WorkspaceService) Get(ctx context.Context, id string) (*entity.Workspace, error) {
	return s.storage.Get(ctx, id)
}

func (s *WorkspaceService) GetByOrganizationID(ctx context.Context, organizationID string) ([]entity.Workspace, error) {
	return s.storage.GetByOrganizationID(ctx, organizationID)
}

func (s *WorkspaceService) Update(ctx context.Context, workspace *entity.Workspace) (*entity.Workspace, error) {
	return s.storage.Update(ctx, workspace)
}

func (s *WorkspaceService) Delete(ctx context.Context, id string) error {
	return s.storage.Delete(ctx, id)
}

func (s *WorkspaceService) AddMember(ctx context.Context, workspaceID string, userID uint) (*entity.WorkspaceMember, error) {
	return s.storage.AddMember(ctx, &entity.WorkspaceMember{
		WorkspaceID: workspaceID,
		UserID:      userID,
	})
}

func (s *WorkspaceService) RemoveMember(ctx context.Context, workspaceID string, userID uint) error {
	return s.storage.RemoveMember(ctx, workspaceID, userID)
}

func (s *WorkspaceService) GetMembers(ctx context.Context, workspaceID string) ([]entity.WorkspaceMember, error) {
	return s.storage.GetMembers(ctx, workspaceID)
}

func (s *WorkspaceService) HasUser(ctx context.Context, workspaceID string, userID uint) (bool, error) {
	return s.storage.HasUser(ctx, workspaceID, userID)
}
