package utils

import (
	"time"
	"tokenbook-service/internal/pkg/constvars"
)

// ParseWallClock returns the minute-of-day for a HH:MM string.
func ParseWallClock(value string) (int, error) {
	parsed, err := time.Parse(constvars.WallClockLayout, value)
	if err != nil {
		return 0, err
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// CombineDateAndTime applies a wall-clock HH:MM to a concrete YYYY-MM-DD date.
func CombineDateAndTime(date, wallClock string) (time.Time, error) {
	parsedDate, err := time.Parse(constvars.DateLayout, date)
	if err != nil {
		return time.Time{}, err
	}
	minuteOfDay, err := ParseWallClock(wallClock)
	if err != nil {
		return time.Time{}, err
	}
	return parsedDate.Add(time.Duration(minuteOfDay) * time.Minute), nil
}

// DayOfWeek resolves a YYYY-MM-DD date to its weekday, Sunday = 0.
func DayOfWeek(date string) (int, error) {
	parsedDate, err := time.Parse(constvars.DateLayout, date)
	if err != nil {
		return 0, err
	}
	return int(parsedDate.Weekday()), nil
}

// IsPastDate reports whether date is strictly before today in the given location.
func IsPastDate(date string, now time.Time) (bool, error) {
	parsedDate, err := time.ParseInLocation(constvars.DateLayout, date, now.Location())
	if err != nil {
		return false, err
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return parsedDate.Before(today), nil
}
