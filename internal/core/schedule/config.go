package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"weatherpush.app/internal/core/weather"
	"weatherpush.app/pkg/validation"
)

// Config describes one recurring notification schedule: a daily wall-clock
// time plus the weekdays it fires on.
type Config struct {
	Enabled bool
	// Time is local wall-clock "HH:MM"
	Time string
	// Days holds weekday indices 0-6 (Sunday = 0)
	Days []int
	// Location is the fixed notification target; nil means live device
	// location
	Location *weather.Coordinate
	// SeparateAlerts raises severe-weather alerts as distinct
	// notifications from the routine summary
	SeparateAlerts bool
	// HistoryEnabled persists fired notifications to the local history log
	HistoryEnabled bool
}

// IsValid validates the schedule configuration
func (c *Config) IsValid() error {
	if !c.Enabled {
		return fmt.Errorf("schedule is disabled")
	}
	if !validation.IsValidClockTime(c.Time) {
		return fmt.Errorf("time must be HH:MM, got %q", c.Time)
	}
	if !validation.IsValidWeekdaySet(c.Days) {
		return fmt.Errorf("days must be a non-empty set of weekday indices 0-6")
	}
	if c.Location != nil {
		if err := c.Location.IsValid(); err != nil {
			return err
		}
	}
	return nil
}

// FiresOn reports whether the schedule fires on the given weekday
func (c *Config) FiresOn(weekday int) bool {
	for _, d := range c.Days {
		if d == weekday {
			return true
		}
	}
	return false
}

// ClockTime returns the parsed hour and minute of the schedule
func (c *Config) ClockTime() (hour, minute int, err error) {
	parts := strings.SplitN(strings.TrimSpace(c.Time), ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("time must be HH:MM, got %q", c.Time)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid hour in %q", c.Time)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid minute in %q", c.Time)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("time out of range: %q", c.Time)
	}
	return hour, minute, nil
}

// LocationKey returns the lock-key component identifying the schedule's
// location; fixed locations bucket by group key, live location is a
// fixed marker.
func (c *Config) LocationKey() string {
	if c.Location == nil {
		return "device"
	}
	return weather.GroupKey(c.Location.Lat, c.Location.Lon, weather.DefaultGroupPrecision)
}
