package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

const resetKeyPrefix = "pwd:reset:token:"

type resetTicket struct {
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ResetStore keeps password reset tickets in Redis, keyed by the token digest.
type ResetStore struct {
	rdb redis.Cmdable
}

func NewResetStore(rdb redis.Cmdable) *ResetStore {
	return &ResetStore{rdb: rdb}
}

func (s *ResetStore) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, s.rdb, resetKeyPrefix+tokenHash, resetTicket{UserID: userID, CreatedAt: time.Now().UTC()}, ttl)
}

// Take consumes the ticket with GETDEL so a token redeems at most once.
func (s *ResetStore) Take(ctx context.Context, tokenHash string) (string, bool, error) {
	var t resetTicket
	ok, err := helpers.RedisTakeJSON(ctx, s.rdb, resetKeyPrefix+tokenHash, &t)
	if err != nil || !ok {
		return "", false, err
	}
	return t.UserID, t.UserID != "", nil
}
