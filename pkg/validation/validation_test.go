package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidClockTime(t *testing.T) {
	valid := []string{"00:00", "07:00", "12:30", "23:59", " 07:00 "}
	for _, v := range valid {
		assert.True(t, IsValidClockTime(v), v)
	}

	invalid := []string{"", "24:00", "7:00", "07:60", "07-00", "07:00:00", "noon"}
	for _, v := range invalid {
		assert.False(t, IsValidClockTime(v), v)
	}
}

func TestIsValidWeekdaySet(t *testing.T) {
	assert.True(t, IsValidWeekdaySet([]int{0, 1, 2, 3, 4, 5, 6}))
	assert.True(t, IsValidWeekdaySet([]int{6}))
	assert.False(t, IsValidWeekdaySet(nil))
	assert.False(t, IsValidWeekdaySet([]int{}))
	assert.False(t, IsValidWeekdaySet([]int{7}))
	assert.False(t, IsValidWeekdaySet([]int{-1}))
	assert.False(t, IsValidWeekdaySet([]int{1, 8}))
}

func TestIsValidCoordinate(t *testing.T) {
	assert.True(t, IsValidCoordinate(-30.03, -51.21))
	assert.True(t, IsValidCoordinate(0, 0))
	assert.True(t, IsValidCoordinate(-90, 180))
	assert.False(t, IsValidCoordinate(-90.01, 0))
	assert.False(t, IsValidCoordinate(0, 180.5))
}

func TestTrimAndValidate(t *testing.T) {
	s, ok := TrimAndValidate("  Porto Alegre  ")
	assert.True(t, ok)
	assert.Equal(t, "Porto Alegre", s)

	_, ok = TrimAndValidate("   ")
	assert.False(t, ok)

	assert.True(t, IsNotEmpty("x"))
	assert.False(t, IsNotEmpty(" "))
}
