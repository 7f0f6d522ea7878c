package postgres

import (
	"context"

	"github.com/planloop/planloop/internal/domain/entity"
	"gorm.io/gorm"
)

type CommentStorage struct {
	db *gorm.DB
}

func NewCommentStorage(db *gorm.DB) *CommentStorage {
	return &CommentStorage{
		db: db,
	}
}

func (s *CommentStorage) Create(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	err := s.db.WithContext(ctx).Create(&comment).Error
	return comment, err
}

func (s *CommentStorage) Get(ctx context.Context, id string) (*entity.Comment, error) {
	var comment entity.Comment
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error
	return &comment, err
}

// GetByParent returns the comments on a plan or post, oldest first.
func (s *CommentStorage) GetByParent(ctx context.Context, parentType entity.CommentParent, parentID string) ([]entity.Comment, error) {
	var comments []entity.Comment
	err := s.db.WithContext(ctx).
		Where("parent_type = ? AND parent_id = ?", parentType, parentID).
		Order("created_at").
		Find(&comments).Error
	return comments, err
}

func (s *CommentStorage) Update(ctx context.Context, comment *entity.Comment) (*entity.Comment, error) {
	err := s.db.WithContext(ctx).Save(&comment).Error
	return comment, err
}

func (s *CommentStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Comment{}).Error
}
