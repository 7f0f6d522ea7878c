package service

import (
	"context"

	"github.com/planloop/planloop/internal/domain/entity"
)

type UserStorage interface {
	Create(ctx context.Context, user *entity.User) (*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) (*entity.User, error)
	Count(ctx context.Context) (int64, error)
	GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.User, error)
}

type UserService struct {
	storage UserStorage
}

func NewUserService(storage UserStorage) *UserService {
	return &UserService{
		storage: storage,
	}
}

func (s *UserService) Create(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.storage.Create(ctx, user)
}

func (s *UserService) Get(ctx context.Context, id uint) (*entity.User, error) {
	return s.storage.Get(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return s.storage.GetByEmail(ctx, email)
}

func (s *UserService) Update(ctx context.Context, user *entity.User) (*entity.User, error) {
	return s.storage.Update(ctx, user)
}

func (s *UserService) Count(ctx context.Context) (int64, error) {
	return s.storage.Count(ctx)
}

func (s *UserService) GetWithPagination(ctx context.Context, offset, limit int, order string) ([]entity.User, error) {
	return s.storage.GetWithPagination(ctx, offset, limit, order)
}

// Ban toggles the banned flag for a user.
func (s *UserService) Ban(ctx context.Context, id uint) (*entity.User, error) {
	user, err := s.storage.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	user.Banned = !user.Banned
	return s.storage.Update(ctx, user)
}
