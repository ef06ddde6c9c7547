package redis_test

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"buffet/internal/adapters/out/redis"
	"buffet/internal/core/domain/model/kernel"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getRedisClient(t *testing.T) *goredis.Client {
	t.Helper()

	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := goredis.NewClient(&goredis.Options{Addr: addr})
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client
}

func TestGuard_AcquireOnce(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	key := "notified:ready:" + kernel.NewUUID().String()
	t.Cleanup(func() {
		client.Del(context.Background(), "buffet:"+key)
	})

	guard := redis.NewGuard(client)

	first, err := guard.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	second, err := guard.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)

	assert.True(t, first)
	assert.False(t, second)

	ttl, err := client.TTL(ctx, "buffet:"+key).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestGuard_ReleaseAllowsReacquire(t *testing.T) {
	client := getRedisClient(t)
	ctx := context.Background()
	key := "notified:ready:" + kernel.NewUUID().String()
	t.Cleanup(func() {
		client.Del(context.Background(), "buffet:"+key)
	})

	guard := redis.NewGuard(client)

	first, err := guard.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	require.True(t, first)

	require.NoError(t, guard.Release(ctx, key))
	require.NoError(t, guard.Release(ctx, key))

	again, err := guard.Acquire(ctx, key, time.Minute)
	require.NoError(t, err)
	assert.True(t, again)
}

func TestGuard_ConcurrentAcquireHasSingleWinner(t *testing.T) {
	client := getRedisClient(t)
	key := "notified:ready:" + kernel.NewUUID().String()
	t.Cleanup(func() {
		client.Del(context.Background(), "buffet:"+key)
	})

	guard := redis.NewGuard(client)

	var (
		wg      sync.WaitGroup
		winners atomic.Int32
	)
	for range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := guard.Acquire(context.Background(), key, time.Minute)
			if err == nil && ok {
				winners.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}

func TestGuard_UnreachableServerReturnsError(t *testing.T) {
	client := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() {
		_ = client.Close()
	})

	ok, err := redis.NewGuard(client).Acquire(context.Background(), "k", time.Minute)

	require.Error(t, err)
	assert.False(t, ok)
}
