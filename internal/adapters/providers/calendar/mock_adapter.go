package calendar

import (
	"context"
	"fmt"
	"time"

	"github.com/thongular/booking/internal/domain/availability"
	"github.com/thongular/booking/internal/domain/providers"
)

// MockAdapter returns a fixed busy list for local development and tests
type MockAdapter struct {
	busy []availability.BusyInterval
}

// NewMockAdapter creates a mock calendar provider. With no intervals every slot is free.
func NewMockAdapter(busy ...availability.BusyInterval) *MockAdapter {
	return &MockAdapter{busy: busy}
}

var _ providers.CalendarProvider = (*MockAdapter)(nil)

// GetBusyIntervals returns the configured intervals that touch [from, to]
func (m *MockAdapter) GetBusyIntervals(ctx context.Context, grantID, email string, from, to time.Time) ([]availability.BusyInterval, error) {
	if to.Before(from) {
		return nil, fmt.Errorf("invalid time range")
	}

	out := make([]availability.BusyInterval, 0, len(m.busy))
	for _, b := range m.busy {
		if b.End.Before(from) || b.Start.After(to) {
			continue
		}
		out = append(out, b)
	}
	return out, nil
}
