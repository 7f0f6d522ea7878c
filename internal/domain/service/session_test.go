package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/planloop/planloop/internal/domain/entity"
)

type fakeSessionUsers struct {
	users map[uint]*entity.User
}

func (f *fakeSessionUsers) Get(_ context.Context, id uint) (*entity.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

type fakeSessionOrganizations struct {
	byUser map[uint][]entity.Organization
}

func (f *fakeSessionOrganizations) Create(_ context.Context, organization *entity.Organization) (*entity.Organization, error) {
	organization.ID = uuid.NewString()
	f.byUser[organization.OwnerID] = append(f.byUser[organization.OwnerID], *organization)
	return organization, nil
}

func (f *fakeSessionOrganizations) GetByUserID(_ context.Context, userID uint) ([]entity.Organization, error) {
	return f.byUser[userID], nil
}

type fakeSessionWorkspaces struct {
	byOrganization map[string][]entity.Workspace
	members        map[string][]entity.WorkspaceMember
}

func (f *fakeSessionWorkspaces) Create(_ context.Context, workspace *entity.Workspace, creatorID uint) (*entity.Workspace, error) {
	workspace.ID = uuid.NewString()
	f.byOrganization[workspace.OrganizationID] = append(f.byOrganization[workspace.OrganizationID], *workspace)
	f.members[workspace.ID] = []entity.WorkspaceMember{{WorkspaceID: workspace.ID, UserID: creatorID}}
	return workspace, nil
}

func (f *fakeSessionWorkspaces) GetByOrganizationID(_ context.Context, organizationID string) ([]entity.Workspace, error) {
	return f.byOrganization[organizationID], nil
}

func (f *fakeSessionWorkspaces) GetMembers(_ context.Context, workspaceID string) ([]entity.WorkspaceMember, error) {
	return f.members[workspaceID], nil
}

func newSessionFixture() (*SessionService, *fakeSessionOrganizations, *fakeSessionWorkspaces) {
	users := &fakeSessionUsers{users: map[uint]*entity.User{
		1: {Model: gorm.Model{ID: 1}, Email: "ada@example.com", Name: "Ada"},
	}}
	organizations := &fakeSessionOrganizations{byUser: make(map[uint][]entity.Organization)}
	workspaces := &fakeSessionWorkspaces{
		byOrganization: make(map[string][]entity.Workspace),
		members:        make(map[string][]entity.WorkspaceMember),
	}
	return NewSessionService(users, organizations, workspaces), organizations, workspaces
}

func TestSessionService_FirstRunCreatesDefaults(t *testing.T) {
	sessions, organizations, workspaces := newSessionFixture()

	session, err := sessions.GetSession(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, uint(1), session.ID)
	assert.Equal(t, "ada@example.com", session.Email)
	assert.NotEmpty(t, session.OrganizationID)
	assert.NotEmpty(t, session.WorkspaceID)

	require.Len(t, organizations.byUser[1], 1)
	assert.Equal(t, "Ada's organization", organizations.byUser[1][0].Name)

	created := workspaces.byOrganization[session.OrganizationID]
	require.Len(t, created, 1)
	assert.Equal(t, "General", created[0].Name)
}

func TestSessionService_ReusesExistingDefaults(t *testing.T) {
	sessions, organizations, workspaces := newSessionFixture()

	first, err := sessions.GetSession(context.Background(), 1)
	require.NoError(t, err)

	second, err := sessions.GetSession(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, first.OrganizationID, second.OrganizationID)
	assert.Equal(t, first.WorkspaceID, second.WorkspaceID)
	assert.Len(t, organizations.byUser[1], 1)
	assert.Len(t, workspaces.byOrganization[first.OrganizationID], 1)
}

func TestSessionService_UnknownUser(t *testing.T) {
	sessions, _, _ := newSessionFixture()

	_, err := sessions.GetSession(context.Background(), 99)
	assert.Error(t, err)
}
