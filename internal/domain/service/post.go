package service

import (
	"context"
	"time"

	"github.com/planloop/planloop/internal/domain/dto"
	"github.com/planloop/planloop/internal/domain/entity"
)

type PostStorage interface {
	Create(ctx context.Context, post *entity.Post) (*entity.Post, error)
	Get(ctx context.Context, id string) (*entity.Post, error)
	Update(ctx context.Context, post *entity.Post) (*entity.Post, error)
	Delete(ctx context.Context, id string) error
	GetByAuthorID(ctx context.Context, authorID uint, from *time.Time) ([]entity.Post, error)
	GetByWorkspaceID(ctx context.Context, workspaceID string, from *time.Time) ([]entity.Post, error)
}

type PostService struct {
	storage  PostStorage
	notifier activityNotifier
}

func NewPostService(storage PostStorage, notifier activityNotifier) *PostService {
	return &PostService{
		storage:  storage,
		notifier: notifier,
	}
}

func (s *PostService) Create(ctx context.Context, post *entity.Post) (*entity.Post, error) {
	created, err := s.storage.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	s.notifyWorkspace(ctx, created, dto.ActionActivityCreated, created.AuthorID)
	return created, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*entity.Post, error) {
	return s.storage.Get(ctx, id)
}

func (s *PostService) GetByAuthorID(ctx context.Context, authorID uint) ([]entity.Post, error) {
	return s.storage.GetByAuthorID(ctx, authorID, nil)
}

func (s *PostService) GetByWorkspaceID(ctx context.Context, workspaceID string) ([]entity.Post, error) {
	return s.storage.GetByWorkspaceID(ctx, workspaceID, nil)
}

func (s *PostService) Update(ctx context.Context, post *entity.Post, actorID uint) (*entity.Post, error) {
	now := time.Now()
	post.UpdatedAt = &now

	updated, err := s.storage.Update(ctx, post)
	if err != nil {
		return nil, err
	}
	s.notifyWorkspace(ctx, updated, dto.ActionActivityUpdated, actorID)
	return updated, nil
}

func (s *PostService) Delete(ctx context.Context, id string, actorID uint) error {
	post, err := s.storage.Get(ctx, id)
	if err != nil {
		return err
	}
	if err = s.storage.Delete(ctx, id); err != nil {
		return err
	}
	s.notifyWorkspace(ctx, post, dto.ActionActivityDeleted, actorID)
	return nil
}

func (s *PostService) notifyWorkspace(ctx context.Context, post *entity.Post, action string, excludeUserID uint) {
	if s.notifier == nil || post.WorkspaceID == nil {
		return
	}
	message := activityMessage(action, dto.NewPostActivity(*post))
	_, _ = s.notifier.SendToWorkspaceMembers(ctx, *post.WorkspaceID, excludeUserID, message)
}
