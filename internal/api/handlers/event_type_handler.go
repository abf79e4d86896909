package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/thongular/booking/internal/domain/entities"
)

// EventTypeService defines the interface for event type operations
type EventTypeService interface {
	Create(ctx context.Context, eventType *entities.EventType) error
	ListByUser(ctx context.Context, userID string) ([]*entities.EventType, error)
}

// EventTypeHandler handles event type requests
type EventTypeHandler struct {
	service EventTypeService
}

// NewEventTypeHandler creates a new event type handler
func NewEventTypeHandler(service EventTypeService) *EventTypeHandler {
	return &EventTypeHandler{service: service}
}

// CreateEventType handles POST /api/event-types
func (h *EventTypeHandler) CreateEventType(w http.ResponseWriter, r *http.Request) {
	var eventType entities.EventType
	if err := json.NewDecoder(r.Body).Decode(&eventType); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.service.Create(r.Context(), &eventType); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, eventType)
}

// ListEventTypes handles GET /api/users/{userId}/event-types
func (h *EventTypeHandler) ListEventTypes(w http.ResponseWriter, r *http.Request) {
	eventTypes, err := h.service.ListByUser(r.Context(), r.PathValue("userId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"event_types": eventTypes,
	})
}
