package entities

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Day is a day of the week as stored with an availability record
type Day string

const (
	DayMonday    Day = "Monday"
	DayTuesday   Day = "Tuesday"
	DayWednesday Day = "Wednesday"
	DayThursday  Day = "Thursday"
	DayFriday    Day = "Friday"
	DaySaturday  Day = "Saturday"
	DaySunday    Day = "Sunday"
)

// Days lists the week starting on Monday
var Days = []Day{DayMonday, DayTuesday, DayWednesday, DayThursday, DayFriday, DaySaturday, DaySunday}

// DayFromWeekday converts a time.Weekday
func DayFromWeekday(w time.Weekday) Day {
	return Day(w.String())
}

// DayOf returns the day of week of t in its own location
func DayOf(t time.Time) Day {
	return DayFromWeekday(t.Weekday())
}

// ParseDay accepts a case-insensitive English day name
func ParseDay(value string) (Day, error) {
	for _, d := range Days {
		if strings.EqualFold(string(d), strings.TrimSpace(value)) {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown day %q", value)
}

// Valid reports whether d is one of the seven days
func (d Day) Valid() bool {
	return slices.Contains(Days, d)
}
