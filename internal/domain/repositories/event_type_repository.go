package repositories

import (
	"context"

	"github.com/thongular/booking/internal/domain/entities"
)

// EventTypeRepository defines the interface for event type data operations
type EventTypeRepository interface {
	// Create creates a new event type
	Create(ctx context.Context, eventType *entities.EventType) error

	// GetByURL retrieves an event type by its owner's username and URL slug
	GetByURL(ctx context.Context, username, url string) (*entities.EventType, error)

	// ListByUser retrieves the event types of a user
	ListByUser(ctx context.Context, userID string) ([]*entities.EventType, error)
}
