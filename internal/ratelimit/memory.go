package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Record is the per-key window state.
type Record struct {
	Count   int
	ResetAt time.Time
}

// MemoryStore keeps one Record per key for the life of the process. Keys
// are never evicted; an expired record is only reset when its key returns.
// A single mutex covers the whole map.
type MemoryStore struct {
	mu      sync.Mutex
	records map[string]*Record
	policy  Policy
	now     func() time.Time
}

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithClock overrides the time source.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) { s.now = now }
}

// NewMemoryStore creates an in-process fixed-window limiter.
func NewMemoryStore(policy Policy, opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{
		records: make(map[string]*Record),
		policy:  policy.normalize(),
		now:     time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Allow implements Limiter. It never returns an error.
func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	return s.CheckAndConsume(key), nil
}

// CheckAndConsume admits key if its window has room, counting the request.
func (s *MemoryStore) CheckAndConsume(key string) bool {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	switch {
	case !ok:
		s.records[key] = &Record{Count: 1, ResetAt: now.Add(s.policy.Window)}
		return true
	case now.After(rec.ResetAt):
		rec.Count = 1
		rec.ResetAt = now.Add(s.policy.Window)
		return true
	case rec.Count < s.policy.Limit:
		rec.Count++
		return true
	default:
		return false
	}
}

// Lookup returns a copy of key's record.
func (s *MemoryStore) Lookup(key string) (Record, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[key]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Len is the number of keys held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Reset drops every record.
func (s *MemoryStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = make(map[string]*Record)
}
