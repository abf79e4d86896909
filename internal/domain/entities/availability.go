package entities

import (
	"time"
)

// Availability is a user's working window for one day of the week
type Availability struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	Day       Day       `json:"day" db:"day"`
	FromTime  string    `json:"from_time" db:"from_time"` // HH:mm
	TillTime  string    `json:"till_time" db:"till_time"` // HH:mm
	IsActive  bool      `json:"is_active" db:"is_active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// DaySchedule is an availability record joined with what is needed to query its
// owner's calendar
type DaySchedule struct {
	Availability
	Username   string `json:"username" db:"username"`
	Timezone   string `json:"timezone" db:"timezone"`
	GrantID    string `json:"-" db:"grant_id"`
	GrantEmail string `json:"-" db:"grant_email"`
}

// Slot is a bookable start time ready for presentation
type Slot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Time  string    `json:"time"`
	Link  string    `json:"link,omitempty"`
}

// DayAvailability is the set of free slots of a user on one date
type DayAvailability struct {
	Username string `json:"username"`
	Date     string `json:"date"`
	Day      Day    `json:"day"`
	Timezone string `json:"timezone"`
	Duration int    `json:"duration"`
	From     string `json:"from"`
	Till     string `json:"till"`
	Slots    []Slot `json:"slots"`
}
