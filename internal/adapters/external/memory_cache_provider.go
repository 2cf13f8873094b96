package external

import (
	"context"
	"sync"
	"time"

	"weatherpush.app/internal/ports"
	"weatherpush.app/pkg/errors"
)

type memoryCacheEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryCacheEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCacheProviderAdapter is an in-process snapshot cache for
// single-instance deployments and tests.
type MemoryCacheProviderAdapter struct {
	mu      sync.RWMutex
	entries map[string]memoryCacheEntry
	hits    int64
	misses  int64
}

func NewMemoryCacheProviderAdapter() *MemoryCacheProviderAdapter {
	return &MemoryCacheProviderAdapter{
		entries: make(map[string]memoryCacheEntry),
	}
}

func (m *MemoryCacheProviderAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok || entry.expired(time.Now()) {
		if ok {
			delete(m.entries, key)
		}
		m.misses++
		return nil, errors.NewNotFoundError("cache key not found: " + key)
	}

	m.hits++
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, nil
}

func (m *MemoryCacheProviderAdapter) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	entry := memoryCacheEntry{value: stored}
	if ttl > 0 {
		entry.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = entry
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheProviderAdapter) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheProviderAdapter) Exists(ctx context.Context, key string) (bool, error) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()
	return ok && !entry.expired(time.Now()), nil
}

func (m *MemoryCacheProviderAdapter) Clear(ctx context.Context) error {
	m.mu.Lock()
	m.entries = make(map[string]memoryCacheEntry)
	m.mu.Unlock()
	return nil
}

func (m *MemoryCacheProviderAdapter) GetStats() ports.CacheStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return buildCacheStats(m.hits, m.misses)
}

func (m *MemoryCacheProviderAdapter) RecordHit() {
	m.mu.Lock()
	m.hits++
	m.mu.Unlock()
}

func (m *MemoryCacheProviderAdapter) RecordMiss() {
	m.mu.Lock()
	m.misses++
	m.mu.Unlock()
}

func (m *MemoryCacheProviderAdapter) RecordOperation(operation string, duration time.Duration) {}
