// Package redis keeps notification bookkeeping in Redis.
package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "buffet:"

// Guard implements NotificationGuard with SETNX keys that expire after the
// requested ttl.
type Guard struct {
	client goredis.UniversalClient
}

func NewGuard(client goredis.UniversalClient) *Guard {
	return &Guard{client: client}
}

// Acquire sets key if it is absent. It returns false when another caller
// already holds it.
func (g *Guard) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	ok, err := g.client.SetNX(ctx, keyPrefix+key, 1, ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// Release deletes key. Releasing a key that is not held is not an error.
func (g *Guard) Release(ctx context.Context, key string) error {
	return g.client.Del(ctx, keyPrefix+key).Err()
}
