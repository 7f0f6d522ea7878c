package service

import (
	"context"
	"fmt"

	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/entity"
)

type sessionUserStorage interface {
	Get(ctx context.Context, id uint) (*entity.User, error)
}

type sessionOrganizationService interface {
	Create(ctx context.Context, organization *entity.Organization) (*entity.Organization, error)
	GetByUserID(ctx context.Context, userID uint) ([]entity.Organization, error)
}

type sessionWorkspaceService interface {
	Create(ctx context.Context, workspace *entity.Workspace, creatorID uint) (*entity.Workspace, error)
	GetByOrganizationID(ctx context.Context, organizationID string) ([]entity.Workspace, error)
	GetMembers(ctx context.Context, workspaceID string) ([]entity.WorkspaceMember, error)
}

// SessionService resolves the caller's default organization and workspace,
// creating both on first use. This is a first-run convenience, not an error
// recovery path.
type SessionService struct {
	userStorage   sessionUserStorage
	organizations sessionOrganizationService
	workspaces    sessionWorkspaceService
}

func NewSessionService(
	userStorage sessionUserStorage,
	organizations sessionOrganizationService,
	workspaces sessionWorkspaceService,
) *SessionService {
	return &SessionService{
		userStorage:   userStorage,
		organizations: organizations,
		workspaces:    workspaces,
	}
}

func (s *SessionService) GetSession(ctx context.Context, userID uint) (*dto.Session, error) {
	user, err := s.userStorage.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	organization, err := s.defaultOrganization(ctx, user)
	if err != nil {
		return nil, err
	}

	workspace, err := s.defaultWorkspace(ctx, organization, user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.Session{
		ID:             user.ID,
		Email:          user.Email,
		WorkspaceID:    workspace.ID,
		OrganizationID: organization.ID,
	}, nil
}

func (s *SessionService) defaultOrganization(ctx context.Context, user *entity.User) (*entity.Organization, error) {
	organizations, err := s.organizations.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	if len(organizations) > 0 {
		return &organizations[0], nil
	}

	return s.organizations.Create(ctx, &entity.Organization{
		Name:    fmt.Sprintf("%s's organization", user.Name),
		OwnerID: user.ID,
	})
}

func (s *SessionService) defaultWorkspace(ctx context.Context, organization *entity.Organization, userID uint) (*entity.Workspace, error) {
	workspaces, err := s.workspaces.GetByOrganizationID(ctx, organization.ID)
	if err != nil {
		return nil, err
	}
	for i := range workspaces {
		members, errMembers := s.workspaces.GetMembers(ctx, workspaces[i].ID)
		if errMembers != nil {
			return nil, errMembers
		}
		for _, member := range members {
			if member.UserID == userID {
				return &workspaces[i], nil
			}
		}
	}

	return s.workspaces.Create(ctx, &entity.Workspace{
		OrganizationID: organization.ID,
		Name:           "General",
	}, userID)
}
