package postgres

import (
	"context"
	"time"

	"github.com/planloop/planloop/internal/domain/entity"
	"gorm.io/gorm"
)

type PlanStorage struct {
	db *gorm.DB
}

func NewPlanStorage(db *gorm.DB) *PlanStorage {
	return &PlanStorage{
		db: db,
	}
}

func (s *PlanStorage) Create(ctx context.Context, plan *entity.Plan) (*entity.Plan, error) {
	err := s.db.WithContext(ctx).Create(&plan).Error
	return plan, err
}

func (s *PlanStorage) Get(ctx context.Context, id string) (*entity.Plan, error) {
	var plan entity.Plan
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&plan).Error
	return &plan, err
}

func (s *PlanStorage) Update(ctx context.Context, plan *entity.Plan) (*entity.Plan, error) {
	err := s.db.WithContext(ctx).Save(&plan).Error
	return plan, err
}

func (s *PlanStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Plan{}).Error
}

// GetByOwnerID returns the plans owned directly by the user, optionally
// limited to plans created at or after from.
func (s *PlanStorage) GetByOwnerID(ctx context.Context, ownerID uint, from *time.Time) ([]entity.Plan, error) {
	var plans []entity.Plan
	query := s.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	err := query.Find(&plans).Error
	return plans, err
}

// GetByWorkspaceID returns the plans linked to the workspace.
func (s *PlanStorage) GetByWorkspaceID(ctx context.Context, workspaceID string, from *time.Time) ([]entity.Plan, error) {
	var plans []entity.Plan
	query := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	err := query.Find(&plans).Error
	return plans, err
}

// GetByOrganizationID returns the plans reachable via any workspace under the organization.
func (s *PlanStorage) GetByOrganizationID(ctx context.Context, organizationID string, from *time.Time) ([]entity.Plan, error) {
	var plans []entity.Plan
	query := s.db.WithContext(ctx).
		Joins("JOIN workspaces ON workspaces.id = plans.workspace_id").
		Where("workspaces.organization_id = ? AND workspaces.deleted_at IS NULL", organizationID)
	if from != nil {
		query = query.Where("plans.created_at >= ?", *from)
	}
	err := query.Find(&plans).Error
	return plans, err
}

// GetStartingBetween returns workspace-linked plans whose start time falls in
// the [from, to) window. Used by the reminder scheduler.
func (s *PlanStorage) GetStartingBetween(ctx context.Context, from, to time.Time) ([]entity.Plan, error) {
	var plans []entity.Plan
	err := s.db.WithContext(ctx).
		Where("start_time >= ? AND start_time < ? AND workspace_id IS NOT NULL", from, to).
		Find(&plans).Error
	return plans, err
}
