package repositories

import (
	"context"

	"github.com/thongular/booking/internal/domain/entities"
)

// AvailabilityRepository defines the interface for working-window data operations
type AvailabilityRepository interface {
	// GetForDay retrieves the active working window of a user for a day of the week,
	// joined with the owner's time zone and calendar grant
	GetForDay(ctx context.Context, username string, day entities.Day) (*entities.DaySchedule, error)

	// ListByUser retrieves all seven day records of a user
	ListByUser(ctx context.Context, userID string) ([]*entities.Availability, error)

	// Update updates the window of an existing day record
	Update(ctx context.Context, availability *entities.Availability) error
}
