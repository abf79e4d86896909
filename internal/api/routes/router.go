package routes

import (
	"net/http"

	"github.com/thongular/booking/internal/api/handlers"
	"github.com/thongular/booking/internal/api/middleware"
	"github.com/thongular/booking/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	availabilityHandler *handlers.AvailabilityHandler
	eventTypeHandler    *handlers.EventTypeHandler

	allowedOrigins string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	availabilityHandler *handlers.AvailabilityHandler,
	eventTypeHandler *handlers.EventTypeHandler,
	allowedOrigins string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:                 http.NewServeMux(),
		availabilityHandler: availabilityHandler,
		eventTypeHandler:    eventTypeHandler,
		allowedOrigins:      allowedOrigins,
		metrics:             metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Public booking endpoints
	r.mux.HandleFunc("GET /api/users/{username}/availability", r.availabilityHandler.GetAvailability)
	r.mux.HandleFunc("GET /api/users/{username}/event-types/{url}/slots", r.availabilityHandler.GetEventTypeSlots)

	// Owner endpoints
	r.mux.HandleFunc("GET /api/users/{userId}/working-hours", r.availabilityHandler.ListWorkingWindows)
	r.mux.HandleFunc("PUT /api/users/{userId}/availability/{day}", r.availabilityHandler.UpdateWorkingWindow)
	r.mux.HandleFunc("GET /api/users/{userId}/event-types", r.eventTypeHandler.ListEventTypes)
	r.mux.HandleFunc("POST /api/event-types", r.eventTypeHandler.CreateEventType)

	// Apply middleware in reverse order (last middleware wraps first)
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)
	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
