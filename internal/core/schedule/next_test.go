package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"weatherpush.app/internal/core/weather"
)

func everyDay() []int { return []int{0, 1, 2, 3, 4, 5, 6} }

func TestNextFireTime_TodayBeforeScheduledTime(t *testing.T) {
	// Tuesday 2025-03-04, 06:30.
	now := time.Date(2025, 3, 4, 6, 30, 0, 0, time.UTC)
	cfg := Config{Enabled: true, Time: "07:00", Days: everyDay()}

	next, err := NextFireTime(now, cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 4, 7, 0, 0, 0, time.UTC), next)
}

func TestNextFireTime_TodayAlreadyPast(t *testing.T) {
	now := time.Date(2025, 3, 4, 7, 30, 0, 0, time.UTC)
	cfg := Config{Enabled: true, Time: "07:00", Days: everyDay()}

	next, err := NextFireTime(now, cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 5, 7, 0, 0, 0, time.UTC), next)
}

func TestNextFireTime_ExactlyAtScheduledTimeAdvances(t *testing.T) {
	now := time.Date(2025, 3, 4, 7, 0, 0, 0, time.UTC)
	cfg := Config{Enabled: true, Time: "07:00", Days: everyDay()}

	next, err := NextFireTime(now, cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 5, 7, 0, 0, 0, time.UTC), next)
}

func TestNextFireTime_WalksToNextFiringWeekday(t *testing.T) {
	// Tuesday; schedule fires on weekends only.
	now := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	cfg := Config{Enabled: true, Time: "07:00", Days: []int{0, 6}}

	next, err := NextFireTime(now, cfg)
	require.NoError(t, err)
	// Saturday 2025-03-08.
	assert.Equal(t, time.Date(2025, 3, 8, 7, 0, 0, 0, time.UTC), next)
	assert.Equal(t, time.Saturday, next.Weekday())
}

func TestNextFireTime_SingleWeekdayWrapsWeek(t *testing.T) {
	// Wednesday 08:00; fires Wednesdays at 07:00 means next week.
	now := time.Date(2025, 3, 5, 8, 0, 0, 0, time.UTC)
	cfg := Config{Enabled: true, Time: "07:00", Days: []int{3}}

	next, err := NextFireTime(now, cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 12, 7, 0, 0, 0, time.UTC), next)
}

func TestNextFireTime_InvalidConfig(t *testing.T) {
	now := time.Date(2025, 3, 4, 6, 30, 0, 0, time.UTC)

	tests := []struct {
		name string
		cfg  Config
	}{
		{"disabled", Config{Enabled: false, Time: "07:00", Days: everyDay()}},
		{"bad time", Config{Enabled: true, Time: "25:00", Days: everyDay()}},
		{"empty days", Config{Enabled: true, Time: "07:00", Days: nil}},
		{"day out of range", Config{Enabled: true, Time: "07:00", Days: []int{7}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NextFireTime(now, tt.cfg)
			assert.Error(t, err)
		})
	}
}

func TestMatchesMinute(t *testing.T) {
	cfg := Config{Enabled: true, Time: "07:00", Days: []int{2}}

	tuesday := time.Date(2025, 3, 4, 7, 0, 30, 0, time.UTC)
	assert.True(t, MatchesMinute(tuesday, cfg))

	assert.False(t, MatchesMinute(tuesday.Add(time.Minute), cfg))
	assert.False(t, MatchesMinute(tuesday.Add(-time.Minute), cfg))

	// Same minute on a non-firing weekday.
	wednesday := tuesday.AddDate(0, 0, 1)
	assert.False(t, MatchesMinute(wednesday, cfg))
}

func TestConfig_LocationKey(t *testing.T) {
	cfg := Config{Enabled: true, Time: "07:00", Days: everyDay()}
	assert.Equal(t, "device", cfg.LocationKey())

	cfg.Location = &weather.Coordinate{Lat: -30.03, Lon: -51.21}
	fixed := cfg.LocationKey()
	assert.NotEqual(t, "device", fixed)

	// Neighboring coordinates map to the same key.
	cfg.Location = &weather.Coordinate{Lat: -30.02, Lon: -51.24}
	assert.Equal(t, fixed, cfg.LocationKey())
}
