package entities

import (
	"time"
)

// User represents a person whose calendar can be booked
type User struct {
	ID         string    `json:"id" db:"id"`
	Username   string    `json:"username" db:"username"`
	Email      string    `json:"email" db:"email"`
	Name       string    `json:"name" db:"name"`
	Timezone   string    `json:"timezone" db:"timezone"`
	GrantID    string    `json:"-" db:"grant_id"`
	GrantEmail string    `json:"-" db:"grant_email"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// HasCalendar reports whether the user connected an external calendar
func (u *User) HasCalendar() bool {
	return u.GrantID != "" && u.GrantEmail != ""
}
