package availability

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidWindow indicates working-window bounds that do not form a same-day range
	ErrInvalidWindow = errors.New("invalid working window")

	// ErrInvalidDuration indicates a non-positive slot duration
	ErrInvalidDuration = errors.New("invalid slot duration")

	// ErrInvalidBusyInterval indicates a busy interval that ends before it starts
	ErrInvalidBusyInterval = errors.New("invalid busy interval")
)

// TimeOfDay is a wall-clock time without a date, minute precision
type TimeOfDay struct {
	Hour   int
	Minute int
}

// ParseTimeOfDay parses an "HH:mm" string
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(value), ":")
	if !ok || len(hh) == 0 || len(hh) > 2 || len(mm) != 2 {
		return TimeOfDay{}, fmt.Errorf("time of day %q: expected HH:mm", value)
	}

	hour, err := strconv.Atoi(hh)
	if err != nil || hour < 0 || hour > 23 {
		return TimeOfDay{}, fmt.Errorf("time of day %q: hour out of range", value)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil || minute < 0 || minute > 59 {
		return TimeOfDay{}, fmt.Errorf("time of day %q: minute out of range", value)
	}

	return TimeOfDay{Hour: hour, Minute: minute}, nil
}

// String formats the time as "HH:mm"
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Minutes returns the number of minutes since midnight
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Before reports whether t is earlier in the day than other
func (t TimeOfDay) Before(other TimeOfDay) bool {
	return t.Minutes() < other.Minutes()
}

// On anchors the time of day to the calendar date of date in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour, t.Minute, 0, 0, loc)
}

// WorkingWindow is the bookable interval of a single calendar day.
// Date only contributes its year, month and day; the bounds are resolved in Location.
type WorkingWindow struct {
	Date     time.Time
	From     TimeOfDay
	Till     TimeOfDay
	Location *time.Location
}

// Validate checks that From is strictly before Till
func (w WorkingWindow) Validate() error {
	if !w.From.Before(w.Till) {
		return fmt.Errorf("%w: from %s must be before till %s", ErrInvalidWindow, w.From, w.Till)
	}
	return nil
}

// Bounds returns the absolute instants of the window start and end
func (w WorkingWindow) Bounds() (time.Time, time.Time) {
	return w.From.On(w.Date, w.Location), w.Till.On(w.Date, w.Location)
}

// BusyInterval is an occupied range taken from an external calendar
type BusyInterval struct {
	Start time.Time `json:"start" yaml:"start"`
	End   time.Time `json:"end" yaml:"end"`
}

// NewBusyInterval builds a busy interval, rejecting one that ends before it starts
func NewBusyInterval(start, end time.Time) (BusyInterval, error) {
	if end.Before(start) {
		return BusyInterval{}, fmt.Errorf("%w: end %s before start %s",
			ErrInvalidBusyInterval, end.UTC().Format(time.RFC3339), start.UTC().Format(time.RFC3339))
	}
	return BusyInterval{Start: start.UTC(), End: end.UTC()}, nil
}

// BusyIntervalFromUnix converts a pair of epoch seconds into a busy interval
func BusyIntervalFromUnix(start, end int64) (BusyInterval, error) {
	return NewBusyInterval(time.Unix(start, 0), time.Unix(end, 0))
}
