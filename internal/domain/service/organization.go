package service

import (
	"context"
	"time"

	"github.com/planloop/planloop/internal/adapters/database/redis/codes"
	"github.com/planloop/planloop/internal/domain/entity"
	"github.com/planloop/planloop/pkg/generator"
)

const inviteTTL = 72 * time.Hour

type OrganizationStorage interface {
	Create(ctx context.Context, organization *entity.Organization) (*entity.Organization, error)
	Get(ctx context.Context, id string) (*entity.Organization, error)
	Update(ctx context.Context, organization *entity.Organization) (*entity.Organization, error)
	Delete(ctx context.Context, id string) error
	GetByUserID(ctx context.Context, userID uint) ([]entity.Organization, error)
	AddMember(ctx context.Context, member *entity.OrganizationMember) (*entity.OrganizationMember, error)
	RemoveMember(ctx context.Context, organizationID string, userID uint) error
	HasUser(ctx context.Context, organizationID string, userID uint) (bool, error)
}

type inviteCodeStorage interface {
	Get(ctx context.Context, code string) (codes.Invite, error)
	Set(ctx context.Context, code string, invite codes.Invite, expiration time.Duration) error
	Clear(ctx context.Context, code string) error
}

type inviteMailer interface {
	SendInviteEmail(to, code, organizationName string)
}

type OrganizationService struct {
	storage OrganizationStorage
	codes   inviteCodeStorage
	mailer  inviteMailer
}

func NewOrganizationService(storage OrganizationStorage, codes inviteCodeStorage, mailer inviteMailer) *OrganizationService {
	return &OrganizationService{
		storage: storage,
		codes:   codes,
		mailer:  mailer,
	}
}

// Create creates the organization and enrolls the owner as its first member.
func (s *OrganizationService) Create(ctx context.Context, organization *entity.Organization) (*entity.Organization, error) {
	created, err := s.storage.Create(ctx, organization)
	if err != nil {
		return nil, err
	}

	_, err = s.storage.AddMember(ctx, &entity.OrganizationMember{
		OrganizationID: created.ID,
		UserID:         created.OwnerID,
		Role:           "owner",
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *OrganizationService) Get(ctx context.Context, id string) (*entity.Organization, error) {
	return s.storage.Get(ctx, id)
}

func (s *OrganizationService) GetByUserID(ctx context.Context, userID uint) ([]entity.Organization, error) {
	return s.storage.GetByUserID(ctx, userID)
}

func (s *OrganizationService) Update(ctx context.Context, organization *entity.Organization) (*entity.Organization, error) {
	return s.storage.Update(ctx, organization)
}

func (s *OrganizationService) Delete(ctx context.Context, id string) error {
	return s.storage.Delete(ctx, id)
}

func (s *OrganizationService) HasUser(ctx context.Context, organizationID string, userID uint) (bool, error) {
	return s.storage.HasUser(ctx, organizationID, userID)
}

func (s *OrganizationService) RemoveMember(ctx context.Context, organizationID string, userID uint) error {
	return s.storage.RemoveMember(ctx, organizationID, userID)
}

// Invite generates an invite code for the email, stores it with a TTL and
// sends it out. The email is sent asynchronously by the mailer.
func (s *OrganizationService) Invite(ctx context.Context, organizationID, email string) (string, error) {
	organization, err := s.storage.Get(ctx, organizationID)
	if err != nil {
		return "", err
	}

	code, err := generator.InviteCode(12)
	if err != nil {
		return "", err
	}

	err = s.codes.Set(ctx, code, codes.Invite{
		OrganizationID: organizationID,
		Email:          email,
	}, inviteTTL)
	if err != nil {
		return "", err
	}

	s.mailer.SendInviteEmail(email, code, organization.Name)
	return code, nil
}

// AcceptInvite redeems a code and enrolls the user as a member.
func (s *OrganizationService) AcceptInvite(ctx context.Context, code string, userID uint) (*entity.OrganizationMember, error) {
	invite, err := s.codes.Get(ctx, code)
	if err != nil {
		return nil, err
	}

	member, err := s.storage.AddMember(ctx, &entity.OrganizationMember{
		OrganizationID: invite.OrganizationID,
		UserID:         userID,
		Role:           "member",
	})
	if err != nil {
		return nil, err
	}

	_ = s.codes.Clear(ctx, code)
	return member, nil
}
