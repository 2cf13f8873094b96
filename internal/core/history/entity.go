package history

import (
	"encoding/json"
	"time"
)

// RecordType distinguishes routine summaries from severe-weather alerts
type RecordType int

const (
	RecordTypeUnknown RecordType = iota
	RecordTypeWeatherDaily
	RecordTypeAlert
)

// String returns the string representation of the record type
func (t RecordType) String() string {
	switch t {
	case RecordTypeWeatherDaily:
		return "weather_daily"
	case RecordTypeAlert:
		return "alert"
	default:
		return "unknown"
	}
}

// IsValid checks if the record type is valid
func (t RecordType) IsValid() bool {
	return t == RecordTypeWeatherDaily || t == RecordTypeAlert
}

// RecordTypeFromString converts string to RecordType enum
func RecordTypeFromString(s string) RecordType {
	switch s {
	case "weather_daily":
		return RecordTypeWeatherDaily
	case "alert":
		return RecordTypeAlert
	default:
		return RecordTypeUnknown
	}
}

// UnmarshalJSON implements json.Unmarshaler interface
func (t *RecordType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*t = RecordTypeFromString(s)
	return nil
}

// MarshalJSON implements json.Marshaler interface
func (t RecordType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// Record is one locally raised notification
type Record struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	Timestamp time.Time  `json:"timestamp"`
	Read      bool       `json:"read"`
	Type      RecordType `json:"type"`
}
