package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thongular/booking/internal/api/handlers"
	"github.com/thongular/booking/internal/api/routes"
	"github.com/thongular/booking/internal/domain/entities"
)

type stubAvailabilityService struct {
	username string
	eventURL string
	userID   string
	day      entities.Day
}

func (s *stubAvailabilityService) GetDayAvailability(ctx context.Context, username string, date time.Time, duration int) (*entities.DayAvailability, error) {
	s.username = username
	return &entities.DayAvailability{Username: username, Duration: duration, Slots: []entities.Slot{}}, nil
}

func (s *stubAvailabilityService) GetEventTypeAvailability(ctx context.Context, username, eventURL string, date time.Time) (*entities.DayAvailability, error) {
	s.username, s.eventURL = username, eventURL
	return &entities.DayAvailability{Username: username, Slots: []entities.Slot{}}, nil
}

func (s *stubAvailabilityService) UpdateWorkingWindow(ctx context.Context, a *entities.Availability) error {
	s.userID, s.day = a.UserID, a.Day
	return nil
}

func (s *stubAvailabilityService) ListWorkingWindows(ctx context.Context, userID string) ([]*entities.Availability, error) {
	s.userID = userID
	return []*entities.Availability{}, nil
}

type stubEventTypeService struct {
	userID string
}

func (s *stubEventTypeService) Create(ctx context.Context, eventType *entities.EventType) error {
	return nil
}

func (s *stubEventTypeService) ListByUser(ctx context.Context, userID string) ([]*entities.EventType, error) {
	s.userID = userID
	return []*entities.EventType{}, nil
}

func newTestRouter() (http.Handler, *stubAvailabilityService, *stubEventTypeService) {
	availability := &stubAvailabilityService{}
	eventTypes := &stubEventTypeService{}
	router := routes.NewRouter(
		handlers.NewAvailabilityHandler(availability),
		handlers.NewEventTypeHandler(eventTypes),
		"*",
		nil,
	)
	return router.SetupRoutes(), availability, eventTypes
}

func TestRouter(t *testing.T) {
	handler, availability, eventTypes := newTestRouter()

	serve := func(method, target, body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(method, target, strings.NewReader(body)))
		return w
	}

	t.Run("health", func(t *testing.T) {
		w := serve(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "OK", w.Body.String())
	})

	t.Run("day availability", func(t *testing.T) {
		w := serve(http.MethodGet, "/api/users/alice/availability?date=2026-03-02&duration=30", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", availability.username)
	})

	t.Run("event type slots", func(t *testing.T) {
		w := serve(http.MethodGet, "/api/users/bob/event-types/intro-call/slots?date=2026-03-02", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "bob", availability.username)
		assert.Equal(t, "intro-call", availability.eventURL)
	})

	t.Run("update working window", func(t *testing.T) {
		w := serve(http.MethodPut, "/api/users/user-9/availability/Friday", `{"from_time":"09:00","till_time":"17:00"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-9", availability.userID)
		assert.Equal(t, entities.DayFriday, availability.day)
	})

	t.Run("list event types", func(t *testing.T) {
		w := serve(http.MethodGet, "/api/users/user-3/event-types", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "user-3", eventTypes.userID)
	})

	t.Run("wrong method", func(t *testing.T) {
		w := serve(http.MethodDelete, "/api/event-types", "")
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})
}
