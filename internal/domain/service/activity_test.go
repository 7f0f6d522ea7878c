package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planloop/planloop/internal/domain/common/errorz"
	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/entity"
)

type fakePlanFeed struct {
	byOwner        map[uint][]entity.Plan
	byWorkspace    map[string][]entity.Plan
	byOrganization map[string][]entity.Plan
}

func (f *fakePlanFeed) GetByOwnerID(_ context.Context, ownerID uint, from *time.Time) ([]entity.Plan, error) {
	return filterPlans(f.byOwner[ownerID], from), nil
}

func (f *fakePlanFeed) GetByWorkspaceID(_ context.Context, workspaceID string, from *time.Time) ([]entity.Plan, error) {
	return filterPlans(f.byWorkspace[workspaceID], from), nil
}

func (f *fakePlanFeed) GetByOrganizationID(_ context.Context, organizationID string, from *time.Time) ([]entity.Plan, error) {
	return filterPlans(f.byOrganization[organizationID], from), nil
}

func filterPlans(plans []entity.Plan, from *time.Time) []entity.Plan {
	if from == nil {
		return plans
	}
	var filtered []entity.Plan
	for _, plan := range plans {
		if plan.TouchedAt().Before(*from) {
			continue
		}
		filtered = append(filtered, plan)
	}
	return filtered
}

type fakePostFeed struct {
	byAuthor       map[uint][]entity.Post
	byWorkspace    map[string][]entity.Post
	byOrganization map[string][]entity.Post
}

func (f *fakePostFeed) GetByAuthorID(_ context.Context, authorID uint, _ *time.Time) ([]entity.Post, error) {
	return f.byAuthor[authorID], nil
}

func (f *fakePostFeed) GetByWorkspaceID(_ context.Context, workspaceID string, _ *time.Time) ([]entity.Post, error) {
	return f.byWorkspace[workspaceID], nil
}

func (f *fakePostFeed) GetByOrganizationID(_ context.Context, organizationID string, _ *time.Time) ([]entity.Post, error) {
	return f.byOrganization[organizationID], nil
}

// fakeMembership answers HasUser from a set of "scopeID/userID" pairs and
// serves as both the organization and workspace membership check.
type fakeMembership struct {
	members map[string]map[uint]bool
}

func (f *fakeMembership) HasUser(_ context.Context, scopeID string, userID uint) (bool, error) {
	return f.members[scopeID][userID], nil
}

func strPtr(s string) *string { return &s }

func timePtr(t time.Time) *time.Time { return &t }

func TestActivityService_OwnerScope_OrderedByTouchTime(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	plans := &fakePlanFeed{byOwner: map[uint][]entity.Plan{
		1: {
			// Created early but updated late: the update time wins.
			{ID: "plan-a", CreatedAt: base, UpdatedAt: timePtr(base.Add(3 * time.Hour))},
			{ID: "plan-b", CreatedAt: base.Add(1 * time.Hour)},
		},
	}}
	posts := &fakePostFeed{byAuthor: map[uint][]entity.Post{
		1: {
			// Never updated, but created after plan-a's creation. Falls
			// between the two plans on creation time alone.
			{ID: "post-a", CreatedAt: base.Add(2 * time.Hour)},
		},
	}}
	activities := NewActivityService(plans, posts, &fakeMembership{}, &fakeMembership{})

	feed, err := activities.GetActivitiesFor(context.Background(), 1, nil, nil, nil)
	require.NoError(t, err)

	require.Len(t, feed, 3)
	assert.Equal(t, "plan-a", feed[0].EntityID())
	assert.Equal(t, "post-a", feed[1].EntityID())
	assert.Equal(t, "plan-b", feed[2].EntityID())
}

func TestActivityService_OwnerScope_FromFilter(t *testing.T) {
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	plans := &fakePlanFeed{byOwner: map[uint][]entity.Plan{
		1: {
			{ID: "plan-old", CreatedAt: base.Add(-48 * time.Hour)},
			{ID: "plan-new", CreatedAt: base},
		},
	}}
	posts := &fakePostFeed{}
	activities := NewActivityService(plans, posts, &fakeMembership{}, &fakeMembership{})

	from := base.Add(-time.Hour)
	feed, err := activities.GetActivitiesFor(context.Background(), 1, nil, nil, &from)
	require.NoError(t, err)

	require.Len(t, feed, 1)
	assert.Equal(t, "plan-new", feed[0].EntityID())
}

func TestActivityService_OrganizationScope_RequiresMembership(t *testing.T) {
	plans := &fakePlanFeed{byOrganization: map[string][]entity.Plan{
		"org-1": {{ID: "plan-a", CreatedAt: time.Now()}},
	}}
	posts := &fakePostFeed{}
	organizations := &fakeMembership{members: map[string]map[uint]bool{
		"org-1": {1: true},
	}}
	activities := NewActivityService(plans, posts, organizations, &fakeMembership{})

	feed, err := activities.GetActivitiesFor(context.Background(), 1, nil, strPtr("org-1"), nil)
	require.NoError(t, err)
	assert.Len(t, feed, 1)

	// A non-member gets ErrForbidden, never a quietly empty feed.
	_, err = activities.GetActivitiesFor(context.Background(), 2, nil, strPtr("org-1"), nil)
	assert.ErrorIs(t, err, errorz.ErrForbidden)
}

func TestActivityService_WorkspaceScope_RequiresBothMemberships(t *testing.T) {
	plans := &fakePlanFeed{byWorkspace: map[string][]entity.Plan{
		"ws-1": {{ID: "plan-a", CreatedAt: time.Now()}},
	}}
	posts := &fakePostFeed{}
	organizations := &fakeMembership{members: map[string]map[uint]bool{
		"org-1": {1: true, 2: true},
	}}
	workspaces := &fakeMembership{members: map[string]map[uint]bool{
		"ws-1": {1: true},
	}}
	activities := NewActivityService(plans, posts, organizations, workspaces)

	feed, err := activities.GetActivitiesFor(context.Background(), 1, strPtr("ws-1"), strPtr("org-1"), nil)
	require.NoError(t, err)
	assert.Len(t, feed, 1)

	// Organization member but not a workspace member.
	_, err = activities.GetActivitiesFor(context.Background(), 2, strPtr("ws-1"), strPtr("org-1"), nil)
	assert.ErrorIs(t, err, errorz.ErrForbidden)
}

func TestSortActivities_TieBrokenByID(t *testing.T) {
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	activities := []dto.Activity{
		dto.NewPostActivity(entity.Post{ID: "b", CreatedAt: at}),
		dto.NewPlanActivity(entity.Plan{ID: "a", CreatedAt: at}),
	}

	dto.SortActivities(activities)

	assert.Equal(t, "a", activities[0].EntityID())
	assert.Equal(t, "b", activities[1].EntityID())
}
