package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thongular/booking/internal/api/handlers"
	"github.com/thongular/booking/internal/domain/entities"
	apperrors "github.com/thongular/booking/pkg/errors"
)

// MockAvailabilityService defines the mock service
type MockAvailabilityService struct {
	mock.Mock
}

func (m *MockAvailabilityService) GetDayAvailability(ctx context.Context, username string, date time.Time, duration int) (*entities.DayAvailability, error) {
	args := m.Called(ctx, username, date, duration)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DayAvailability), args.Error(1)
}

func (m *MockAvailabilityService) GetEventTypeAvailability(ctx context.Context, username, eventURL string, date time.Time) (*entities.DayAvailability, error) {
	args := m.Called(ctx, username, eventURL, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.DayAvailability), args.Error(1)
}

func (m *MockAvailabilityService) UpdateWorkingWindow(ctx context.Context, availability *entities.Availability) error {
	args := m.Called(ctx, availability)
	return args.Error(0)
}

func (m *MockAvailabilityService) ListWorkingWindows(ctx context.Context, userID string) ([]*entities.Availability, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Availability), args.Error(1)
}

var slotDate = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func availabilityRequest(target string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	req.SetPathValue("username", "alice")
	return req
}

func TestAvailabilityHandler_GetAvailability(t *testing.T) {
	t.Run("returns the free slots", func(t *testing.T) {
		mockService := new(MockAvailabilityService)
		handler := handlers.NewAvailabilityHandler(mockService)

		result := &entities.DayAvailability{
			Username: "alice",
			Date:     "2026-03-02",
			Day:      entities.DayMonday,
			Duration: 30,
			Slots:    []entities.Slot{{Time: "09:30", Link: "https://book.example.com/alice?date=2026-03-02&time=09:30"}},
		}
		mockService.On("GetDayAvailability", mock.Anything, "alice", slotDate, 30).Return(result, nil)

		w := httptest.NewRecorder()
		handler.GetAvailability(w, availabilityRequest("/api/users/alice/availability?date=2026-03-02&duration=30"))

		assert.Equal(t, http.StatusOK, w.Code)
		var body entities.DayAvailability
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Slots, 1)
		assert.Equal(t, "09:30", body.Slots[0].Time)
		mockService.AssertExpectations(t)
	})

	badRequests := map[string]string{
		"missing date":     "/api/users/alice/availability?duration=30",
		"bad date":         "/api/users/alice/availability?date=02-03-2026&duration=30",
		"missing duration": "/api/users/alice/availability?date=2026-03-02",
		"bad duration":     "/api/users/alice/availability?date=2026-03-02&duration=half",
	}
	for name, target := range badRequests {
		t.Run(name, func(t *testing.T) {
			mockService := new(MockAvailabilityService)
			handler := handlers.NewAvailabilityHandler(mockService)

			w := httptest.NewRecorder()
			handler.GetAvailability(w, availabilityRequest(target))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			mockService.AssertNotCalled(t, "GetDayAvailability", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}

	errorCases := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.NewValidationError("duration must be positive"), http.StatusBadRequest},
		{"not found", apperrors.NewNotFoundError("no availability configured"), http.StatusNotFound},
		{"external", apperrors.NewExternalError("failed to fetch calendar availability", errors.New("timeout")), http.StatusBadGateway},
		{"internal", apperrors.NewInternalError("boom", nil), http.StatusInternalServerError},
		{"plain error", errors.New("unexpected"), http.StatusInternalServerError},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAvailabilityService)
			handler := handlers.NewAvailabilityHandler(mockService)
			mockService.On("GetDayAvailability", mock.Anything, "alice", slotDate, 0).Return(nil, tt.err)

			w := httptest.NewRecorder()
			handler.GetAvailability(w, availabilityRequest("/api/users/alice/availability?date=2026-03-02&duration=0"))

			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), `"error"`)
		})
	}
}

func TestAvailabilityHandler_GetEventTypeSlots(t *testing.T) {
	mockService := new(MockAvailabilityService)
	handler := handlers.NewAvailabilityHandler(mockService)
	mockService.On("GetEventTypeAvailability", mock.Anything, "alice", "intro-call", slotDate).
		Return(&entities.DayAvailability{Username: "alice", Duration: 15, Slots: []entities.Slot{}}, nil)

	req := availabilityRequest("/api/users/alice/event-types/intro-call/slots?date=2026-03-02")
	req.SetPathValue("url", "intro-call")
	w := httptest.NewRecorder()
	handler.GetEventTypeSlots(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slots":[]`)
	mockService.AssertExpectations(t)
}

func TestAvailabilityHandler_UpdateWorkingWindow(t *testing.T) {
	newRequest := func(day, body string) *http.Request {
		req := httptest.NewRequest(http.MethodPut, "/api/users/user-1/availability/"+day, bytes.NewBufferString(body))
		req.SetPathValue("userId", "user-1")
		req.SetPathValue("day", day)
		return req
	}

	t.Run("updates the window", func(t *testing.T) {
		mockService := new(MockAvailabilityService)
		handler := handlers.NewAvailabilityHandler(mockService)
		mockService.On("UpdateWorkingWindow", mock.Anything, mock.MatchedBy(func(a *entities.Availability) bool {
			return a.UserID == "user-1" && a.Day == entities.DayTuesday && a.FromTime == "08:00" && !a.IsActive
		})).Return(nil)

		w := httptest.NewRecorder()
		handler.UpdateWorkingWindow(w, newRequest("tuesday", `{"from_time":"08:00","till_time":"12:00","is_active":false}`))

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("unknown day", func(t *testing.T) {
		mockService := new(MockAvailabilityService)
		handler := handlers.NewAvailabilityHandler(mockService)

		w := httptest.NewRecorder()
		handler.UpdateWorkingWindow(w, newRequest("someday", `{"from_time":"08:00","till_time":"12:00"}`))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("invalid payload", func(t *testing.T) {
		mockService := new(MockAvailabilityService)
		handler := handlers.NewAvailabilityHandler(mockService)

		w := httptest.NewRecorder()
		handler.UpdateWorkingWindow(w, newRequest("monday", "invalid-json"))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAvailabilityHandler_ListWorkingWindows(t *testing.T) {
	mockService := new(MockAvailabilityService)
	handler := handlers.NewAvailabilityHandler(mockService)
	mockService.On("ListWorkingWindows", mock.Anything, "user-1").
		Return([]*entities.Availability{{ID: "av-1", Day: entities.DayMonday, FromTime: "09:00", TillTime: "17:00"}}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/users/user-1/working-hours", nil)
	req.SetPathValue("userId", "user-1")
	w := httptest.NewRecorder()
	handler.ListWorkingWindows(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"from_time":"09:00"`)
}
