package postgres

import (
	"context"
	"time"

	"github.com/planloop/planloop/internal/domain/entity"
	"gorm.io/gorm"
)

type PostStorage struct {
	db *gorm.DB
}

func NewPostStorage(db *gorm.DB) *PostStorage {
	return &PostStorage{
		db: db,
	}
}

func (s *PostStorage) Create(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	err := s.db.WithContext(ctx).Create(&post).Error
	return post, err
}

func (s *PostStorage) Get(ctx context.Context, id string) (*entity.Post, error) {
	var post entity.Post
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&post).Error
	return &post, err
}

func (s *PostStorage) Update(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	err := s.db.WithContext(ctx).Save(&post).Error
	return post, err
}

func (s *PostStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&entity.Post{}).Error
}

// GetByAuthorID returns the posts authored directly by the user, optionally
// limited to posts created at or after from.
func (s *PostStorage) GetByAuthorID(ctx context.Context, authorID uint, from *time.Time) ([]entity.Post, error) {
	var posts []entity.Post
	query := s.db.WithContext(ctx).Where("author_id = ?", authorID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	err := query.Find(&posts).Error
	return posts, err
}

// GetByWorkspaceID returns the posts linked to the workspace.
func (s *PostStorage) GetByWorkspaceID(ctx context.Context, workspaceID string, from *time.Time) ([]entity.Post, error) {
	var posts []entity.Post
	query := s.db.WithContext(ctx).Where("workspace_id = ?", workspaceID)
	if from != nil {
		query = query.Where("created_at >= ?", *from)
	}
	err := query.Find(&posts).Error
	return posts, err
}

// GetByOrganizationID returns the posts reachable via any workspace under the organization.
func (s *PostStorage) GetByOrganizationID(ctx context.Context, organizationID string, from *time.Time) ([]entity.Post, error) {
	var posts []entity.Post
	query := s.db.WithContext(ctx).
		Joins("JOIN workspaces ON workspaces.id = posts.workspace_id").
		Where("workspaces.organization_id = ? AND workspaces.deleted_at IS NULL", organizationID)
	if from != nil {
		query = query.Where("posts.created_at >= ?", *from)
	}
	err := query.Find(&posts).Error
	return posts, err
}
