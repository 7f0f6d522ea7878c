package service

import (
	"context"

	"github.com/planloop/planloop/internal/domain/entity"
)

type CommentStorage interface {
	Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error)
	Get(ctx context.Context, id string) (*entity.Comment, error)
	GetByParent(ctx context.Context, parentType entity.CommentParent, parentID string) ([]entity.Comment, error)
	Update(ctx context.Context, comment *entity.Comment) (*entity.Comment, error)
	Delete(ctx context.Context, id string) error
}

type CommentService struct {
	storage CommentStorage
}

func NewCommentService(storage CommentStorage) *CommentService {
	return &CommentService{
		storage: storage,
	}
}

func (s *CommentService) Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	return s.storage.Create(ctx, comment)
}

func (s *CommentService) Get(ctx context.Context, id string) (*entity.Comment, error) {
	return s.storage.Get(ctx, id)
}

func (s *CommentService) GetByParent(ctx context.Context, parentType entity.CommentParent, parentID string) ([]entity.Comment, error) {
	return s.storage.GetByParent(ctx, parentType, parentID)
}

func (s *CommentService) Update(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	return s.storage.Update(ctx, comment)
}

func (s *CommentService) Delete(ctx context.Context, id string) error {
	return s.storage.Delete(ctx, id)
}
