package postgres

import (
	"context"

	"github.com/planloop/planloop/internal/domain/entity"
	"gorm.io/gorm"
)

type OrganizationStorage struct {
	db *gorm.DB
}

func NewOrganizationStorage(db *gorm.DB) *OrganizationStorage {
	return &OrganizationStorage{
		db: db,
	}
}

func (s *OrganizationStorage) Create(ctx context.Context, organization *entity.Organization) (*entity.Organization, error) {
	err := s.db.WithContext(ctx).Create(&organization).Error
	return organization, err
}

func (s *OrganizationStorage) Get(ctx context.Context, id string) (*entity.Organization, error) {
	var organization entity.Organization
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&organization).Error
	return &organization, err
}

func (s *OrganizationStorage) Update(ctx context.Context, organization *entity.Organization) (*entity.Organization, error) {
	err := s.db.WithContext(ctx).Save(&organization).Error
	return organization, err
}

// Delete is a function that deletes an organization and its workspaces from the database.
func (s *OrganizationStorage) Delete(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Organization{}).Error
	if err != nil {
		return err
	}
	err = s.db.WithContext(ctx).Where("organization_id = ?", id).Delete(&entity.Workspace{}).Error
	return err
}

// GetByUserID returns the organizations the user is a member of, oldest first.
func (s *OrganizationStorage) GetByUserID(ctx context.Context, userID uint) ([]entity.Organization, error) {
	var organizations []entity.Organization
	err := s.db.WithContext(ctx).
		Joins("JOIN organization_members ON organization_members.organization_id = organizations.id").
		Where("organization_members.user_id = ?", userID).
		Order("organizations.created_at").
		Find(&organizations).Error
	return organizations, err
}

func (s *OrganizationStorage) AddMember(ctx context.Context, member *entity.OrganizationMember) (*entity.OrganizationMember, error) {
	err := s.db.WithContext(ctx).Create(&member).Error
	return member, err
}

func (s *OrganizationStorage) RemoveMember(ctx context.Context, organizationID string, userID uint) error {
	return s.db.WithContext(ctx).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Delete(&entity.OrganizationMember{}).Error
}

// HasUser reports whether the user is a member of the organization.
func (s *OrganizationStorage) HasUser(ctx context.Context, organizationID string, userID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&entity.OrganizationMember{}).
		Where("organization_id = ? AND user_id = ?", organizationID, userID).
		Count(&count).Error
	return count > 0, err
}
