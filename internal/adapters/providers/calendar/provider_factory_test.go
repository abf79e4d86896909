package calendar

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thongular/booking/internal/domain/availability"
	"github.com/thongular/booking/pkg/config"
)

type failingProvider struct{}

func (failingProvider) GetBusyIntervals(ctx context.Context, grantID, email string, from, to time.Time) ([]availability.BusyInterval, error) {
	return nil, errors.New("provider down")
}

func TestNewCalendarProvider(t *testing.T) {
	t.Run("mock provider when configured", func(t *testing.T) {
		p := NewCalendarProvider(config.CalendarConfig{Provider: config.CalendarProviderMock, APIKey: "key"})
		assert.IsType(t, &MockAdapter{}, p)
	})

	t.Run("mock provider without api key", func(t *testing.T) {
		p := NewCalendarProvider(config.CalendarConfig{Provider: config.CalendarProviderNylas})
		assert.IsType(t, &MockAdapter{}, p)
	})

	t.Run("nylas behind fallback wrapper", func(t *testing.T) {
		p := NewCalendarProvider(config.CalendarConfig{Provider: config.CalendarProviderNylas, APIKey: "key", MaxAttempts: 1})
		fallback, ok := p.(*FallbackProvider)
		require.True(t, ok)
		assert.IsType(t, &NylasAdapter{}, fallback.primary)
	})
}

func TestFallbackProvider(t *testing.T) {
	from := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	ctx := context.Background()

	t.Run("missing grant is rejected", func(t *testing.T) {
		p := &FallbackProvider{primary: failingProvider{}, fallback: NewMockAdapter()}
		_, err := p.GetBusyIntervals(ctx, "", "", from, to)
		assert.ErrorIs(t, err, ErrMissingGrant)
	})

	t.Run("missing grant uses fallback when allowed", func(t *testing.T) {
		p := &FallbackProvider{primary: failingProvider{}, fallback: NewMockAdapter(), allowMissingGrant: true}
		busy, err := p.GetBusyIntervals(ctx, "", "", from, to)
		require.NoError(t, err)
		assert.Empty(t, busy)
	})

	t.Run("primary error surfaces without fallback", func(t *testing.T) {
		p := &FallbackProvider{primary: failingProvider{}, fallback: NewMockAdapter()}
		_, err := p.GetBusyIntervals(ctx, "grant", "", from, to)
		assert.EqualError(t, err, "provider down")
	})

	t.Run("primary error falls back when allowed", func(t *testing.T) {
		p := &FallbackProvider{primary: failingProvider{}, fallback: NewMockAdapter(), allowFallback: true}
		busy, err := p.GetBusyIntervals(ctx, "grant", "", from, to)
		require.NoError(t, err)
		assert.Empty(t, busy)
	})
}

func TestMockAdapter_FiltersToRange(t *testing.T) {
	day := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	inside := availability.BusyInterval{Start: day.Add(9 * time.Hour), End: day.Add(10 * time.Hour)}
	outside := availability.BusyInterval{Start: day.Add(-5 * time.Hour), End: day.Add(-4 * time.Hour)}

	m := NewMockAdapter(inside, outside)
	busy, err := m.GetBusyIntervals(context.Background(), "", "", day, day.Add(24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, []availability.BusyInterval{inside}, busy)

	_, err = m.GetBusyIntervals(context.Background(), "", "", day, day.Add(-time.Hour))
	assert.Error(t, err)
}
