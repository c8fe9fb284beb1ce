package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseWallClock(t *testing.T) {
	minute, err := ParseWallClock("09:30")
	assert.NoError(t, err)
	assert.Equal(t, 9*60+30, minute)

	_, err = ParseWallClock("9:30am")
	assert.Error(t, err)
}

func TestCombineDateAndTime(t *testing.T) {
	combined, err := CombineDateAndTime("2026-09-07", "14:15")
	assert.NoError(t, err)
	assert.Equal(t, "2026-09-07T14:15", combined.Format("2006-01-02T15:04"))
}

func TestDayOfWeek(t *testing.T) {
	monday, err := DayOfWeek("2026-09-07")
	assert.NoError(t, err)
	assert.Equal(t, 1, monday)

	sunday, err := DayOfWeek("2026-09-06")
	assert.NoError(t, err)
	assert.Equal(t, 0, sunday)
}

func TestIsPastDate(t *testing.T) {
	now := time.Date(2026, 9, 7, 13, 0, 0, 0, time.UTC)

	past, err := IsPastDate("2026-09-06", now)
	assert.NoError(t, err)
	assert.True(t, past)

	// Today does not count as past even late in the day.
	today, err := IsPastDate("2026-09-07", now)
	assert.NoError(t, err)
	assert.False(t, today)

	future, err := IsPastDate("2026-09-08", now)
	assert.NoError(t, err)
	assert.False(t, future)
}
