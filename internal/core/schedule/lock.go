package schedule

import (
	"fmt"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
)

// FireLock is the idempotency guard for the polling strategy: one fired
// notification per (calendar day, time, location) tuple. TryAcquire must be
// called before any asynchronous work starts so an overlapping tick cannot
// double-fire.
type FireLock interface {
	// TryAcquire atomically checks and sets the flag for key; it returns
	// false when the flag was already set.
	TryAcquire(key string) bool
}

// FireKey builds the day-scoped lock key. A new day yields a new key, so
// flags never need explicit expiry.
func FireKey(day time.Time, clockTime, locationKey string) string {
	return fmt.Sprintf("%s|%s|%s", day.Format("2006-01-02"), clockTime, locationKey)
}

// MemoryFireLock is a clock-injected keyed lock. Entries older than the
// retention window are swept on acquire to keep the map bounded.
type MemoryFireLock struct {
	clock     clock.Clock
	retention time.Duration
	mu        sync.Mutex
	acquired  map[string]time.Time
}

// NewMemoryFireLock creates a fire lock keeping entries for retention;
// zero retention defaults to 48h, comfortably past the day scope of keys.
func NewMemoryFireLock(clk clock.Clock, retention time.Duration) *MemoryFireLock {
	if retention <= 0 {
		retention = 48 * time.Hour
	}
	return &MemoryFireLock{
		clock:     clk,
		retention: retention,
		acquired:  make(map[string]time.Time),
	}
}

func (l *MemoryFireLock) TryAcquire(key string) bool {
	now := l.clock.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.sweep(now)

	if _, exists := l.acquired[key]; exists {
		return false
	}
	l.acquired[key] = now
	return true
}

func (l *MemoryFireLock) sweep(now time.Time) {
	cutoff := now.Add(-l.retention)
	for key, at := range l.acquired {
		if at.Before(cutoff) {
			delete(l.acquired, key)
		}
	}
}
