package subscription

import (
	"time"
)

// FingerprintLength is the number of trailing endpoint characters used as the
// storage key. Sufficient entropy for this domain; collisions are
// accepted-risk, not cryptographically load-bearing.
const FingerprintLength = 32

// Location is an optional fixed notification target. Absent means "use the
// device's most recent known location".
type Location struct {
	Name string
	Lat  float64
	Lon  float64
}

// Record represents one registered push delivery target
type Record struct {
	ID         string
	Endpoint   string
	P256dh     string
	Auth       string
	Location   *Location
	Enabled    bool
	CreatedAt  time.Time
	LastUsedAt time.Time
}

// Fingerprint derives the stable storage key from an endpoint descriptor
func Fingerprint(endpoint string) string {
	if len(endpoint) <= FingerprintLength {
		return endpoint
	}
	return endpoint[len(endpoint)-FingerprintLength:]
}

// HasLocation reports whether the record carries a fixed target location
func (r *Record) HasLocation() bool {
	return r.Location != nil
}

// Touch updates the last-used timestamp on a registration replay
func (r *Record) Touch(now time.Time) {
	r.LastUsedAt = now
}
