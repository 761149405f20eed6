package session

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrEmptyKey indicates the caller key was blank after trimming.
var ErrEmptyKey = errors.New("session: empty caller key")

type memoryEntry struct {
	turns   []Turn
	updated time.Time
}

// MemoryStore keeps conversation history in process memory. Entries expire
// lazily: a Get past the TTL evicts the entry and reports no history.
type MemoryStore struct {
	mu       sync.Mutex
	entries  map[string]memoryEntry
	ttl      time.Duration
	maxTurns int
	now      func() time.Time
}

// MemoryOption customizes a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithMemoryClock overrides the store's time source.
func WithMemoryClock(now func() time.Time) MemoryOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

// NewMemoryStore builds an in-memory store. A non-positive ttl disables
// expiry; a non-positive maxTurns disables history truncation.
func NewMemoryStore(ttl time.Duration, maxTurns int, opts ...MemoryOption) *MemoryStore {
	store := &MemoryStore{
		entries:  make(map[string]memoryEntry),
		ttl:      ttl,
		maxTurns: maxTurns,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	return store
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]Turn, error) {
	key = normalizeKey(key)
	if key == "" {
		return nil, ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return []Turn{}, nil
	}
	if s.expired(entry) {
		delete(s.entries, key)
		return []Turn{}, nil
	}
	turns := make([]Turn, len(entry.turns))
	copy(turns, entry.turns)
	return turns, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, turns []Turn) error {
	key = normalizeKey(key)
	if key == "" {
		return ErrEmptyKey
	}

	trimmed := Trim(turns, s.maxTurns)
	stored := make([]Turn, len(trimmed))
	copy(stored, trimmed)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{turns: stored, updated: s.now()}
	return nil
}

func (s *MemoryStore) Evict(_ context.Context, key string) error {
	key = normalizeKey(key)
	if key == "" {
		return ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// Sweep removes every expired entry and reports how many were evicted.
func (s *MemoryStore) Sweep(_ context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for key, entry := range s.entries {
		if s.expired(entry) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed, nil
}

// Close satisfies Store; a memory store holds no external resources.
func (s *MemoryStore) Close() error { return nil }

func (s *MemoryStore) expired(entry memoryEntry) bool {
	if s.ttl <= 0 {
		return false
	}
	return s.now().Sub(entry.updated) > s.ttl
}
