package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/thongular/booking/internal/domain/entities"
)

const dateLayout = "2006-01-02"

// AvailabilityService defines the interface for availability operations
type AvailabilityService interface {
	GetDayAvailability(ctx context.Context, username string, date time.Time, duration int) (*entities.DayAvailability, error)
	GetEventTypeAvailability(ctx context.Context, username, eventURL string, date time.Time) (*entities.DayAvailability, error)
	UpdateWorkingWindow(ctx context.Context, availability *entities.Availability) error
	ListWorkingWindows(ctx context.Context, userID string) ([]*entities.Availability, error)
}

// AvailabilityHandler handles availability requests
type AvailabilityHandler struct {
	service AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(service AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
	}
}

// GetAvailability handles GET /api/users/{username}/availability?date=YYYY-MM-DD&duration=30
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	if username == "" {
		respondWithError(w, http.StatusBadRequest, "username is required")
		return
	}

	date, ok := parseDate(w, r)
	if !ok {
		return
	}

	durationStr := r.URL.Query().Get("duration")
	if durationStr == "" {
		respondWithError(w, http.StatusBadRequest, "duration query parameter is required")
		return
	}
	duration, err := strconv.Atoi(durationStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid duration (use whole minutes)")
		return
	}

	result, err := h.service.GetDayAvailability(r.Context(), username, date, duration)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// GetEventTypeSlots handles GET /api/users/{username}/event-types/{url}/slots?date=YYYY-MM-DD
func (h *AvailabilityHandler) GetEventTypeSlots(w http.ResponseWriter, r *http.Request) {
	username := r.PathValue("username")
	eventURL := r.PathValue("url")
	if username == "" || eventURL == "" {
		respondWithError(w, http.StatusBadRequest, "username and event type url are required")
		return
	}

	date, ok := parseDate(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetEventTypeAvailability(r.Context(), username, eventURL, date)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

type workingWindowRequest struct {
	FromTime string `json:"from_time"`
	TillTime string `json:"till_time"`
	IsActive *bool  `json:"is_active"`
}

// UpdateWorkingWindow handles PUT /api/users/{userId}/availability/{day}
func (h *AvailabilityHandler) UpdateWorkingWindow(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("userId")
	day, err := entities.ParseDay(r.PathValue("day"))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	var req workingWindowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	availability := &entities.Availability{
		UserID:   userID,
		Day:      day,
		FromTime: req.FromTime,
		TillTime: req.TillTime,
		IsActive: true,
	}
	if req.IsActive != nil {
		availability.IsActive = *req.IsActive
	}

	if err := h.service.UpdateWorkingWindow(r.Context(), availability); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, availability)
}

// ListWorkingWindows handles GET /api/users/{userId}/working-hours
func (h *AvailabilityHandler) ListWorkingWindows(w http.ResponseWriter, r *http.Request) {
	windows, err := h.service.ListWorkingWindows(r.Context(), r.PathValue("userId"))
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"availability": windows,
	})
}

func parseDate(w http.ResponseWriter, r *http.Request) (time.Time, bool) {
	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		respondWithError(w, http.StatusBadRequest, "date query parameter is required")
		return time.Time{}, false
	}
	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid date format (use YYYY-MM-DD)")
		return time.Time{}, false
	}
	return date, true
}
