package validation

import (
	"regexp"
	"strings"
)

var clockTimeRegex = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// IsValidClockTime validates "HH:MM" wall-clock time format
func IsValidClockTime(t string) bool {
	return clockTimeRegex.MatchString(strings.TrimSpace(t))
}

// IsValidWeekdaySet checks that the weekday set is non-empty and within 0-6
func IsValidWeekdaySet(days []int) bool {
	if len(days) == 0 {
		return false
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}

// IsValidCoordinate checks latitude/longitude bounds
func IsValidCoordinate(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// IsNotEmpty checks if string is not empty after trimming
func IsNotEmpty(s string) bool {
	return strings.TrimSpace(s) != ""
}

// TrimAndValidate trims string and validates it's not empty
func TrimAndValidate(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	return trimmed, trimmed != ""
}
