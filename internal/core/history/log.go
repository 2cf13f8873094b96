package history

import "sync"

// DefaultLimit caps the log at the most recent entries; the oldest are
// dropped on append.
const DefaultLimit = 50

// Log is the bounded, de-duplicated local record of raised notifications.
// All operations are synchronous and touch nothing beyond the log itself.
type Log struct {
	mu      sync.RWMutex
	limit   int
	enabled bool
	records []Record
}

// NewLog creates a history log; limit <= 0 means DefaultLimit.
func NewLog(limit int, enabled bool) *Log {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Log{
		limit:   limit,
		enabled: enabled,
	}
}

// SetEnabled toggles whether appends are recorded
func (l *Log) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

// Append prepends the record and truncates to the limit. Appending is a
// no-op when the log is disabled or a record with the same ID exists.
func (l *Log) Append(record Record) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled {
		return
	}
	for _, existing := range l.records {
		if existing.ID == record.ID {
			return
		}
	}

	l.records = append([]Record{record}, l.records...)
	if len(l.records) > l.limit {
		l.records = l.records[:l.limit]
	}
}

// MarkAllRead sets read on every record
func (l *Log) MarkAllRead() {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i := range l.records {
		l.records[i].Read = true
	}
}

// DeleteAll clears the log entirely
func (l *Log) DeleteAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = nil
}

// ListAll returns the records, newest first
func (l *Log) ListAll() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records in the log
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
