package schedule

import (
	"fmt"
	"time"
)

// maxDayWalk bounds the day-by-day weekday search; any non-empty weekday
// set matches within a week.
const maxDayWalk = 7

// NextFireTime computes the next instant the schedule fires, starting from
// now: today's candidate at the configured wall-clock time, advanced one day
// if already past, then walked day-by-day to a weekday in the set.
func NextFireTime(now time.Time, cfg Config) (time.Time, error) {
	if err := cfg.IsValid(); err != nil {
		return time.Time{}, err
	}

	hour, minute, err := cfg.ClockTime()
	if err != nil {
		return time.Time{}, err
	}

	candidate := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 1)
	}

	for i := 0; i < maxDayWalk; i++ {
		if cfg.FiresOn(int(candidate.Weekday())) {
			return candidate, nil
		}
		candidate = candidate.AddDate(0, 0, 1)
	}

	return time.Time{}, fmt.Errorf("no firing weekday within %d days", maxDayWalk)
}

// MatchesMinute reports whether the instant lands exactly on the schedule's
// wall-clock minute on a firing weekday. Used by the polling strategy.
func MatchesMinute(at time.Time, cfg Config) bool {
	hour, minute, err := cfg.ClockTime()
	if err != nil {
		return false
	}
	return at.Hour() == hour && at.Minute() == minute && cfg.FiresOn(int(at.Weekday()))
}
