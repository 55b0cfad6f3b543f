package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRateLimitCache_Allow(t *testing.T) {
	mr, client := setupRedis(t)
	now := time.Date(2026, 10, 18, 12, 0, 5, 0, time.UTC)
	rl := &rateLimitCache{client: client, limit: 2, window: time.Minute, now: func() time.Time { return now }}
	ctx := context.Background()

	ok, remaining, err := rl.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 1, remaining)

	ok, remaining, err = rl.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, 0, remaining)

	ok, remaining, err = rl.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, remaining)

	// other clients have their own budget
	ok, _, err = rl.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, ok)

	key := "ratelimit:10.0.0.1:" + "1792324800"
	assert.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))
}

func TestRateLimitCache_TTLNotExtendedByLaterHits(t *testing.T) {
	mr, client := setupRedis(t)
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	rl := &rateLimitCache{client: client, limit: 10, window: time.Minute, now: func() time.Time { return now }}
	ctx := context.Background()
	key := "ratelimit:c:1792324800"

	_, _, err := rl.Allow(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, mr.TTL(key))

	mr.FastForward(20 * time.Second)
	now = now.Add(20 * time.Second)
	_, remaining, err := rl.Allow(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, 8, remaining)
	assert.Equal(t, 40*time.Second, mr.TTL(key))
}

func TestRateLimitCache_NewWindowResets(t *testing.T) {
	_, client := setupRedis(t)
	now := time.Date(2026, 10, 18, 12, 0, 59, 0, time.UTC)
	rl := &rateLimitCache{client: client, limit: 1, window: time.Minute, now: func() time.Time { return now }}
	ctx := context.Background()

	ok, _, err := rl.Allow(ctx, "c")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, _, _ = rl.Allow(ctx, "c")
	assert.False(t, ok)

	now = now.Add(time.Second)
	ok, _, err = rl.Allow(ctx, "c")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRateLimitCache_RedisDown(t *testing.T) {
	mr, client := setupRedis(t)
	rl := NewRateLimitCache(client, 5, time.Minute)
	mr.Close()

	_, _, err := rl.Allow(context.Background(), "c")
	assert.Error(t, err)
}
