package sessions

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/planloop/planloop/internal/domain/common/errorz"
	"github.com/redis/go-redis/v9"
)

// Storage keeps revocable session records keyed by token id. A token that is
// absent here is treated as logged out even if its signature still verifies.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

func (s *Storage) Get(ctx context.Context, tokenID string) (uint, error) {
	data, err := s.redis.Get(ctx, tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, errorz.ErrInvalidToken
		}
		return 0, err
	}
	userID, err := strconv.ParseUint(data, 10, 64)
	if err != nil {
		return 0, errorz.ErrInvalidToken
	}
	return uint(userID), nil
}

func (s *Storage) Set(ctx context.Context, tokenID string, userID uint, expiration time.Duration) error {
	return s.redis.Set(ctx, tokenID, fmt.Sprintf("%d", userID), expiration).Err()
}

func (s *Storage) Clear(ctx context.Context, tokenID string) error {
	return s.redis.Del(ctx, tokenID).Err()
}
