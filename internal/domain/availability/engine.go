// Package availability computes bookable slot start times from a working window,
// a slot duration and the busy intervals of an external calendar.
//
// Everything here is a pure function of its arguments: the reference "now" is passed
// in by the caller, so results are deterministic and safe to compute concurrently.
package availability

import (
	"fmt"
	"time"
)

// Grid returns the candidate slot starts of the window: From, From+d, ... while the
// start is strictly before Till. The last slot may end after Till.
func Grid(window WorkingWindow, duration time.Duration) ([]time.Time, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("%w: %s", ErrInvalidDuration, duration)
	}
	if err := window.Validate(); err != nil {
		return nil, err
	}

	from, till := window.Bounds()
	// a till inside a skipped DST hour can resolve before from
	if !from.Before(till) {
		return []time.Time{}, nil
	}
	slots := make([]time.Time, 0, int(till.Sub(from)/duration)+1)
	for cursor := from; cursor.Before(till); cursor = cursor.Add(duration) {
		slots = append(slots, cursor)
	}
	return slots, nil
}

// Blocks reports whether busy makes the slot [start, end) unavailable.
//
// The boundaries are asymmetric: a slot starting exactly at busy.End is free, a slot
// ending exactly at busy.Start is free, and a slot identical to busy is blocked.
func Blocks(busy BusyInterval, start, end time.Time) bool {
	// starts during busy
	if !start.Before(busy.Start) && start.Before(busy.End) {
		return true
	}
	// ends during busy
	if end.After(busy.Start) && !end.After(busy.End) {
		return true
	}
	// spans busy
	return start.Before(busy.Start) && end.After(busy.End)
}

// ComputeFreeSlots returns the grid slots that start strictly after now and are not
// blocked by any busy interval, in ascending order.
func ComputeFreeSlots(window WorkingWindow, durationMinutes int, busy []BusyInterval, now time.Time) ([]time.Time, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: %d minutes", ErrInvalidDuration, durationMinutes)
	}
	duration := time.Duration(durationMinutes) * time.Minute

	grid, err := Grid(window, duration)
	if err != nil {
		return nil, err
	}

	free := make([]time.Time, 0, len(grid))
	for _, slot := range grid {
		if !slot.After(now) {
			continue
		}
		if blocked(slot, slot.Add(duration), busy) {
			continue
		}
		free = append(free, slot)
	}
	return free, nil
}

func blocked(start, end time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		if Blocks(b, start, end) {
			return true
		}
	}
	return false
}
