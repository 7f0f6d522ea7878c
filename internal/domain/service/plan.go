package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/pkg/logger"
)

type PlanStorage interface {
	Create(ctx context.Context, plan *entity.Plan) (*entity.Plan, error)
	Get(ctx context.Context, id string) (*entity.Plan, error)
	Update(ctx context.Context, plan *entity.Plan) (*entity.Plan, error)
	Delete(ctx context.Context, id string) error
	GetByOwnerID(ctx context.Context, ownerID uint, from *time.Time) ([]entity.Plan, error)
	GetByWorkspaceID(ctx context.Context, workspaceID string, from *time.Time) ([]entity.Plan, error)
}

type activityNotifier interface {
	SendToWorkspaceMembers(ctx context.Context, workspaceID string, excludeUserID uint, payload interface{}) ([]entity.WorkspaceMember, error)
}

// activityMessage wraps an activity delta in the websocket envelope.
func activityMessage(action string, activity dto.Activity) dto.WebsocketMessage {
	payload, err := json.Marshal(activity)
	if err != nil {
		logger.Log.Errorf("failed to marshal %s payload for %s: %v", action, activity.EntityID(), err)
	}
	return dto.WebsocketMessage{
		Action:  action,
		Payload: payload,
	}
}

type PlanService struct {
	storage  PlanStorage
	notifier activityNotifier
}

func NewPlanService(storage PlanStorage, notifier activityNotifier) *PlanService {
	return &PlanService{
		storage:  storage,
		notifier: notifier,
	}
}

func (s *PlanService) Create(ctx context.Context, plan *entity.Plan) (*entity.Plan, error) {
	created, err := s.storage.Create(ctx, plan)
	if err != nil {
		return nil, err
	}
	s.notifyWorkspace(ctx, created, dto.ActionActivityCreated, created.OwnerID)
	return created, nil
}

func (s *PlanService) Get(ctx context.Context, id string) (*entity.Plan, error) {
	return s.storage.Get(ctx, id)
}

func (s *PlanService) GetByOwnerID(ctx context.Context, ownerID uint) ([]entity.Plan, error) {
	return s.storage.GetByOwnerID(ctx, ownerID, nil)
}

func (s *PlanService) GetByWorkspaceID(ctx context.Context, workspaceID string) ([]entity.Plan, error) {
	return s.storage.GetByWorkspaceID(ctx, workspaceID, nil)
}

// Update stamps UpdatedAt explicitly; the feed orders by it once set.
func (s *PlanService) Update(ctx context.Context, plan *entity.Plan, actorID uint) (*entity.Plan, error) {
	now := time.Now()
	plan.UpdatedAt = &now

	updated, err := s.storage.Update(ctx, plan)
	if err != nil {
		return nil, err
	}
	s.notifyWorkspace(ctx, updated, dto.ActionActivityUpdated, actorID)
	return updated, nil
}

func (s *PlanService) Delete(ctx context.Context, id string, actorID uint) error {
	plan, err := s.storage.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = s.storage.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyWorkspace(ctx, plan, dto.ActionActivityDeleted, actorID)
	return nil
}

func (s *PlanService) notifyWorkspace(ctx context.Context, plan *entity.Plan, action string, excludeUserID uint) {
	if s.notifier == nil || plan.WorkspaceID == nil {
		return
	}
	message := activityMessage(action, dto.NewPlanActivity(*plan))
	_, _ = s.notifier.SendToWorkspaceMembers(ctx, *plan.WorkspaceID, excludeUserID, message)
}
