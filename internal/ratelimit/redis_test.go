package ratelimit

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRedisStore(t *testing.T, policy Policy) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisStore(client, policy, WithKeyPrefix("test:contact")), mr
}

func TestRedisStore_FixedWindow(t *testing.T) {
	store, mr := newRedisStore(t, DefaultPolicy())
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		ok, err := store.Allow(ctx, "203.0.113.7")
		require.NoError(t, err)
		assert.True(t, ok, "call %d", i)
	}

	ok, err := store.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.False(t, ok)

	count, err := mr.Get("test:contact:203.0.113.7")
	require.NoError(t, err)
	assert.Equal(t, "5", count, "rejection does not increment")
	assert.Equal(t, 15*time.Minute+time.Millisecond, mr.TTL("test:contact:203.0.113.7"))

	mr.FastForward(15*time.Minute + time.Second)

	ok, err = store.Allow(ctx, "203.0.113.7")
	require.NoError(t, err)
	assert.True(t, ok, "expired window re-admits")

	count, _ = mr.Get("test:contact:203.0.113.7")
	assert.Equal(t, "1", count)
}

func TestRedisStore_IncrementKeepsWindowDeadline(t *testing.T) {
	store, mr := newRedisStore(t, Policy{Limit: 3, Window: time.Minute})
	ctx := context.Background()

	_, err := store.Allow(ctx, "k")
	require.NoError(t, err)
	mr.FastForward(40 * time.Second)
	_, err = store.Allow(ctx, "k")
	require.NoError(t, err)

	assert.Equal(t, 20*time.Second+time.Millisecond, mr.TTL("test:contact:k"))
}

func TestRedisStore_DeadlineBelongsToOldWindow(t *testing.T) {
	store, mr := newRedisStore(t, Policy{Limit: 1, Window: time.Minute})
	ctx := context.Background()

	ok, err := store.Allow(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)

	mr.FastForward(time.Minute)
	ok, err = store.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok, "request at resetAt counts in the current window")

	mr.FastForward(time.Millisecond)
	ok, err = store.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok, "request after resetAt opens a new window")
}

func TestRedisStore_BackendError(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client, DefaultPolicy())

	ok, err := store.Allow(context.Background(), "k")
	assert.Error(t, err)
	assert.False(t, ok)
}
