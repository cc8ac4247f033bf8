package redisinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const consumedKeyPrefix = "consumed_jti:"

// ConsumedTokenStore records token identifiers that have already been
// redeemed. Entries expire together with the token they guard, so the set
// never grows beyond the live token population.
type ConsumedTokenStore struct {
	rdb *redis.Client
}

func NewConsumedTokenStore(rdb *redis.Client) *ConsumedTokenStore {
	return &ConsumedTokenStore{rdb: rdb}
}

// Consume marks jti as redeemed. Returns false if it was already consumed.
// ttl should cover the token's remaining validity window.
func (s *ConsumedTokenStore) Consume(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		ttl = time.Minute
	}
	ok, err := s.rdb.SetNX(ctx, consumedKeyPrefix+jti, 1, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("consume token %s: %w", jti, err)
	}
	return ok, nil
}
