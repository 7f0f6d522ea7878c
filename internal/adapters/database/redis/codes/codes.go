package codes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/planloop/planloop/internal/domain/common/errorz"
	"github.com/redis/go-redis/v9"
)

// Storage keeps pending organization invite codes. Each code maps to the
// organization it grants access to and the email it was sent to.
type Storage struct {
	redis *redis.Client
}

func NewStorage(client *redis.Client) *Storage {
	return &Storage{
		redis: client,
	}
}

type Invite struct {
	OrganizationID string
	Email          string
}

func (s *Storage) Get(ctx context.Context, code string) (Invite, error) {
	data, err := s.redis.Get(ctx, code).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Invite{}, errorz.ErrInvalidCode
		}
		return Invite{}, err
	}

	inviteSlice := strings.Split(data, ":")
	if len(inviteSlice) != 2 {
		return Invite{}, errorz.ErrInvalidCode
	}

	return Invite{
		OrganizationID: inviteSlice[0],
		Email:          inviteSlice[1],
	}, nil
}

func (s *Storage) Set(ctx context.Context, code string, invite Invite, expiration time.Duration) error {
	return s.redis.Set(ctx, code, fmt.Sprintf("%s:%s", invite.OrganizationID, invite.Email), expiration).Err()
}

func (s *Storage) Clear(ctx context.Context, code string) error {
	return s.redis.Del(ctx, code).Err()
}
