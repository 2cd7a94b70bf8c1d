package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryStore_FixedWindow(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(DefaultPolicy(), WithClock(clock.Now))

	for i := 1; i <= 5; i++ {
		assert.True(t, store.CheckAndConsume("10.0.0.1"), "call %d", i)
		clock.Advance(time.Minute)
	}
	assert.False(t, store.CheckAndConsume("10.0.0.1"), "6th call inside the window")

	rec, ok := store.Lookup("10.0.0.1")
	require.True(t, ok)
	assert.Equal(t, 5, rec.Count, "rejection does not mutate")

	// Window opened at 10:00 and resets strictly after 10:15.
	clock.Advance(10 * time.Minute) // 10:15
	assert.False(t, store.CheckAndConsume("10.0.0.1"), "exactly at resetAt is still the old window")

	clock.Advance(time.Second)
	assert.True(t, store.CheckAndConsume("10.0.0.1"))

	rec, _ = store.Lookup("10.0.0.1")
	assert.Equal(t, 1, rec.Count)
	assert.Equal(t, clock.Now().Add(15*time.Minute), rec.ResetAt)
}

func TestMemoryStore_KeysAreIndependent(t *testing.T) {
	store := NewMemoryStore(Policy{Limit: 1, Window: time.Hour})

	assert.True(t, store.CheckAndConsume("a"))
	assert.False(t, store.CheckAndConsume("a"))
	assert.True(t, store.CheckAndConsume("b"))
	assert.Equal(t, 2, store.Len())
}

func TestMemoryStore_BoundaryBurst(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(DefaultPolicy(), WithClock(clock.Now))

	// First request opens the window, the rest arrive right before it closes.
	assert.True(t, store.CheckAndConsume("k"))
	clock.Advance(15*time.Minute - time.Second)
	for i := 0; i < 4; i++ {
		assert.True(t, store.CheckAndConsume("k"))
	}
	clock.Advance(2 * time.Second)
	for i := 0; i < 5; i++ {
		assert.True(t, store.CheckAndConsume("k"), "new window admits a full quota")
	}
	assert.False(t, store.CheckAndConsume("k"))
}

func TestMemoryStore_StaleKeysAreKept(t *testing.T) {
	clock := newFakeClock()
	store := NewMemoryStore(DefaultPolicy(), WithClock(clock.Now))

	for i := 0; i < 3; i++ {
		store.CheckAndConsume(fmt.Sprintf("client-%d", i))
	}
	clock.Advance(24 * time.Hour)
	assert.Equal(t, 3, store.Len())

	store.Reset()
	assert.Equal(t, 0, store.Len())
}

func TestMemoryStore_ConcurrentSameKey(t *testing.T) {
	store := NewMemoryStore(DefaultPolicy())

	var admitted atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Allow(context.Background(), "same")
			assert.NoError(t, err)
			if ok {
				admitted.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(5), admitted.Load())
	rec, _ := store.Lookup("same")
	assert.Equal(t, 5, rec.Count)
}

func TestPolicy_Normalize(t *testing.T) {
	p := Policy{}.normalize()
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, DefaultWindow, p.Window)
}
