package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/thongular/booking/internal/domain/entities"
	"github.com/thongular/booking/internal/domain/repositories"
	apperrors "github.com/thongular/booking/pkg/errors"
)

// EventTypeService handles event type management
type EventTypeService struct {
	repo repositories.EventTypeRepository
}

// NewEventTypeService creates a new event type service
func NewEventTypeService(repo repositories.EventTypeRepository) *EventTypeService {
	return &EventTypeService{repo: repo}
}

// Create validates and stores a new event type. New event types are active.
func (s *EventTypeService) Create(ctx context.Context, eventType *entities.EventType) error {
	if err := eventType.Validate(); err != nil {
		return apperrors.WrapValidationError(err.Error(), err)
	}

	if eventType.ID == "" {
		eventType.ID = uuid.New().String()
	}
	eventType.Active = true
	eventType.CreatedAt = time.Now()
	eventType.UpdatedAt = eventType.CreatedAt

	return s.repo.Create(ctx, eventType)
}

// ListByUser returns the event types of a user
func (s *EventTypeService) ListByUser(ctx context.Context, userID string) ([]*entities.EventType, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user_id is required")
	}
	return s.repo.ListByUser(ctx, userID)
}
