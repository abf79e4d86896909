package providers

import (
	"context"
	"time"

	"github.com/thongular/booking/internal/domain/availability"
)

// CalendarProvider defines the interface for external calendar services (Nylas, etc.)
type CalendarProvider interface {
	// GetBusyIntervals returns the occupied ranges of the account identified by
	// grantID and email within [from, to]. Intervals are normalized to UTC instants.
	GetBusyIntervals(ctx context.Context, grantID, email string, from, to time.Time) ([]availability.BusyInterval, error)
}
