package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/pkg/logger/types"
	"gorm.io/gorm"
)

type reminderPlanStorage interface {
	GetStartingBetween(ctx context.Context, from, to time.Time) ([]entity.Plan, error)
}

type reminderStorage interface {
	CreateReminder(ctx context.Context, reminder *entity.PlanReminder) error
	GetUnremindedMembers(ctx context.Context, plan entity.Plan, reminderType entity.ReminderType) ([]entity.WorkspaceMember, error)
}

type reminderConnectionStorage interface {
	GetLatestByUserID(ctx context.Context, userID uint) (*entity.Connection, error)
}

// ReminderService pushes reminders for plans starting soon to the members of
// the plan's workspace, once per (plan, user, reminder type).
type ReminderService struct {
	planStorage       reminderPlanStorage
	reminderStorage   reminderStorage
	connectionStorage reminderConnectionStorage
	deliverer         deliverer

	logger *types.Logger
}

func NewReminderService(
	planStorage reminderPlanStorage,
	reminderStorage reminderStorage,
	connectionStorage reminderConnectionStorage,
	deliverer deliverer,
	logger *types.Logger,
) *ReminderService {
	return &ReminderService{
		planStorage:       planStorage,
		reminderStorage:   reminderStorage,
		connectionStorage: connectionStorage,
		deliverer:         deliverer,
		logger:            logger,
	}
}

// StartScheduler starts the reminder scheduler.
func (s *ReminderService) StartScheduler() {
	s.logger.Info("Starting reminder scheduler")
	go func() {
		ticker := time.NewTicker(1 * time.Minute)
		defer ticker.Stop()

		for range ticker.C {
			s.checkAndRemind(context.Background())
		}
	}()
}

// checkAndRemind scans plans starting in the next 25 hours (to cover both day
// and hour reminders) and sends whichever reminder window applies.
func (s *ReminderService) checkAndRemind(ctx context.Context) {
	now := time.Now()

	plans, err := s.planStorage.GetStartingBetween(ctx, now, now.Add(25*time.Hour))
	if err != nil {
		s.logger.Errorf("failed to get upcoming plans: %v", err)
		return
	}

	for _, plan := range plans {
		untilStart := plan.StartTime.Sub(now)

		if untilStart >= 23*time.Hour && untilStart <= 24*time.Hour {
			s.sendReminders(ctx, plan, entity.ReminderTypeDay)
		}

		if untilStart >= 55*time.Minute && untilStart <= 60*time.Minute {
			s.sendReminders(ctx, plan, entity.ReminderTypeHour)
		}
	}
}

func (s *ReminderService) sendReminders(ctx context.Context, plan entity.Plan, reminderType entity.ReminderType) {
	members, err := s.reminderStorage.GetUnremindedMembers(ctx, plan, reminderType)
	if err != nil {
		s.logger.Errorf("failed to get unreminded members for plan %s: %v", plan.ID, err)
		return
	}

	for _, member := range members {
		connection, errLookup := s.connectionStorage.GetLatestByUserID(ctx, member.UserID)
		if errLookup == nil {
			s.deliverer.Deliver(ctx, dto.Notify{
				ID:      uuid.NewString(),
				Type:    "plan:reminder",
				Title:   plan.Name,
				Content: fmt.Sprintf("%q starts at %s", plan.Name, plan.StartTime.Format(time.RFC3339)),
			}, connection.ConnectionID)
		} else if !errors.Is(errLookup, gorm.ErrRecordNotFound) {
			s.logger.Errorf("failed to look up connection for user %d: %v", member.UserID, errLookup)
			continue
		}

		reminder := &entity.PlanReminder{
			PlanID: plan.ID,
			UserID: member.UserID,
			Type:   reminderType,
		}
		if errCreate := s.reminderStorage.CreateReminder(ctx, reminder); errCreate != nil {
			s.logger.Errorf("failed to record reminder for plan %s user %d: %v", plan.ID, member.UserID, errCreate)
		}
	}
}
