package service

import (
	"context"
	"time"

	"github.com/planloop/planloop/internal/domain/common/errorz"
	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/entity"
)

type activityPlanStorage interface {
	GetByOwnerID(ctx context.Context, ownerID uint, from *time.Time) ([]entity.Plan, error)
	GetByWorkspaceID(ctx context.Context, workspaceID string, from *time.Time) ([]entity.Plan, error)
	GetByOrganizationID(ctx context.Context, organizationID string, from *time.Time) ([]entity.Plan, error)
}

type activityPostStorage interface {
	GetByAuthorID(ctx context.Context, authorID uint, from *time.Time) ([]entity.Post, error)
	GetByWorkspaceID(ctx context.Context, workspaceID string, from *time.Time) ([]entity.Post, error)
	GetByOrganizationID(ctx context.Context, organizationID string, from *time.Time) ([]entity.Post, error)
}

type activityOrganizationStorage interface {
	HasUser(ctx context.Context, organizationID string, userID uint) (bool, error)
}

type activityWorkspaceStorage interface {
	HasUser(ctx context.Context, workspaceID string, userID uint) (bool, error)
}

// ActivityService merges plans and posts into a single reverse-chronological
// feed, scoped by actor, organization or workspace.
type ActivityService struct {
	planStorage         activityPlanStorage
	postStorage         activityPostStorage
	organizationStorage activityOrganizationStorage
	workspaceStorage    activityWorkspaceStorage
}

func NewActivityService(
	planStorage activityPlanStorage,
	postStorage activityPostStorage,
	organizationStorage activityOrganizationStorage,
	workspaceStorage activityWorkspaceStorage,
) *ActivityService {
	return &ActivityService{
		planStorage:         planStorage,
		postStorage:         postStorage,
		organizationStorage: organizationStorage,
		workspaceStorage:    workspaceStorage,
	}
}

// GetActivitiesFor resolves the feed scope top-down: no organization means the
// actor's own entities; an organization means everything under its workspaces;
// a workspace narrows to that workspace alone. Membership checks fail closed —
// an actor outside the requested scope gets ErrForbidden, never an empty feed.
func (s *ActivityService) GetActivitiesFor(
	ctx context.Context,
	actorID uint,
	workspaceID *string,
	organizationID *string,
	from *time.Time,
) ([]dto.Activity, error) {
	var (
		plans []entity.Plan
		posts []entity.Post
		err   error
	)

	switch {
	case organizationID == nil:
		plans, err = s.planStorage.GetByOwnerID(ctx, actorID, from)
		if err != nil {
			return nil, err
		}
		posts, err = s.postStorage.GetByAuthorID(ctx, actorID, from)
		if err != nil {
			return nil, err
		}

	case workspaceID == nil:
		ok, errHas := s.organizationStorage.HasUser(ctx, *organizationID, actorID)
		if errHas != nil {
			return nil, errHas
		}
		if !ok {
			return nil, errorz.ErrForbidden
		}
		plans, err = s.planStorage.GetByOrganizationID(ctx, *organizationID, from)
		if err != nil {
			return nil, err
		}
		posts, err = s.postStorage.GetByOrganizationID(ctx, *organizationID, from)
		if err != nil {
			return nil, err
		}

	default:
		ok, errHas := s.organizationStorage.HasUser(ctx, *organizationID, actorID)
		if errHas != nil {
			return nil, errHas
		}
		if !ok {
			return nil, errorz.ErrForbidden
		}
		ok, errHas = s.workspaceStorage.HasUser(ctx, *workspaceID, actorID)
		if errHas != nil {
			return nil, errHas
		}
		if !ok {
			return nil, errorz.ErrForbidden
		}
		plans, err = s.planStorage.GetByWorkspaceID(ctx, *workspaceID, from)
		if err != nil {
			return nil, err
		}
		posts, err = s.postStorage.GetByWorkspaceID(ctx, *workspaceID, from)
		if err != nil {
			return nil, err
		}
	}

	activities := make([]dto.Activity, 0, len(plans)+len(posts))
	for _, plan := range plans {
		activities = append(activities, dto.NewPlanActivity(plan))
	}
	for _, post := range posts {
		activities = append(activities, dto.NewPostActivity(post))
	}
	dto.SortActivities(activities)

	return activities, nil
}
