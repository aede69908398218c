package storage

import (
	"context"
	"sync"
	"time"

	"agora/internal/domain/service"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStorage implements service.KVStorage in process. Expired keys are
// dropped when touched and on every write.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStorage creates an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get returns a copy of the value or service.ErrKeyNotFound.
func (s *MemoryStorage) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookupLocked(key)
	if !ok {
		return nil, service.ErrKeyNotFound
	}

	return cloneBytes(entry.value), nil
}

// Set stores a copy of value. A zero ttl keeps the key until deleted.
func (s *MemoryStorage) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)

	entry := memoryEntry{value: cloneBytes(value)}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}
	s.entries[key] = entry

	return nil
}

// Delete removes key.
func (s *MemoryStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)

	return nil
}

// Take returns the value and removes it.
func (s *MemoryStorage) Take(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.lookupLocked(key)
	if !ok {
		return nil, service.ErrKeyNotFound
	}
	delete(s.entries, key)

	return entry.value, nil
}

func (s *MemoryStorage) lookupLocked(key string) (memoryEntry, bool) {
	entry, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if entry.expired(s.now()) {
		delete(s.entries, key)

		return memoryEntry{}, false
	}

	return entry, true
}

func (s *MemoryStorage) sweepLocked(now time.Time) {
	for key, entry := range s.entries {
		if entry.expired(now) {
			delete(s.entries, key)
		}
	}
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}

	return append([]byte(nil), b...)
}
