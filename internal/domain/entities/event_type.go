package entities

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"
)

// VideoCallSoftware is the conferencing tool attached to an event type
type VideoCallSoftware string

const (
	VideoCallZoom  VideoCallSoftware = "Zoom Meeting"
	VideoCallMeet  VideoCallSoftware = "Google Meet"
	VideoCallTeams VideoCallSoftware = "Microsoft Teams"
	VideoCallNone  VideoCallSoftware = "NULL"
)

// EventDurations are the booking lengths, in minutes, an event type may use
var EventDurations = []int{15, 30, 45, 60, 90, 120, 150, 180, 210, 240}

var eventURLPattern = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)

// EventType is a bookable kind of meeting owned by a user
type EventType struct {
	ID                string            `json:"id" db:"id"`
	UserID            string            `json:"user_id" db:"user_id"`
	Title             string            `json:"title" db:"title"`
	URL               string            `json:"url" db:"url"`
	Description       string            `json:"description" db:"description"`
	Duration          int               `json:"duration" db:"duration"`
	VideoCallSoftware VideoCallSoftware `json:"video_call_software" db:"video_call_software"`
	Active            bool              `json:"active" db:"active"`
	CreatedAt         time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at" db:"updated_at"`
}

// Validate checks the fields a user fills in when creating an event type
func (e *EventType) Validate() error {
	e.Title = strings.TrimSpace(e.Title)
	e.URL = strings.ToLower(strings.TrimSpace(e.URL))
	e.Description = strings.TrimSpace(e.Description)

	if e.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if e.Title == "" || len(e.Title) > 150 {
		return fmt.Errorf("title must be between 1 and 150 characters")
	}
	if !eventURLPattern.MatchString(e.URL) || len(e.URL) > 150 {
		return fmt.Errorf("url must be lowercase letters, digits and single dashes")
	}
	if len(e.Description) > 300 {
		return fmt.Errorf("description must be at most 300 characters")
	}
	if !slices.Contains(EventDurations, e.Duration) {
		return fmt.Errorf("duration %d is not one of %v", e.Duration, EventDurations)
	}

	switch e.VideoCallSoftware {
	case "":
		e.VideoCallSoftware = VideoCallNone
	case VideoCallZoom, VideoCallMeet, VideoCallTeams, VideoCallNone:
	default:
		return fmt.Errorf("unsupported video call software %q", e.VideoCallSoftware)
	}
	return nil
}
