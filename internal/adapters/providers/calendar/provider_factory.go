package calendar

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/thongular/booking/internal/domain/availability"
	"github.com/thongular/booking/internal/domain/providers"
	"github.com/thongular/booking/pkg/config"
)

// ErrMissingGrant indicates the user has not connected a calendar account.
var ErrMissingGrant = errors.New("calendar grant id is required")

// NewCalendarProvider creates a resilient provider with optional mock fallback.
func NewCalendarProvider(cfg config.CalendarConfig) providers.CalendarProvider {
	if cfg.Provider == config.CalendarProviderMock || cfg.APIKey == "" {
		log.Warn().Str("provider", cfg.Provider).Msg("Calendar provider not configured, using mock calendar")
		return NewMockAdapter()
	}

	return &FallbackProvider{
		primary: NewNylasAdapter(NylasConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Timeout:     cfg.Timeout,
			MaxAttempts: cfg.MaxAttempts,
		}),
		fallback:          NewMockAdapter(),
		allowFallback:     cfg.AllowMockFallback,
		allowMissingGrant: cfg.AllowMissingGrant,
	}
}

// FallbackProvider wraps a primary provider with optional mock fallback.
type FallbackProvider struct {
	primary           providers.CalendarProvider
	fallback          providers.CalendarProvider
	allowFallback     bool
	allowMissingGrant bool
}

func (p *FallbackProvider) GetBusyIntervals(ctx context.Context, grantID, email string, from, to time.Time) ([]availability.BusyInterval, error) {
	if grantID == "" {
		if p.allowMissingGrant && p.fallback != nil {
			return p.fallback.GetBusyIntervals(ctx, grantID, email, from, to)
		}
		return nil, ErrMissingGrant
	}

	if p.primary == nil {
		if p.fallback != nil {
			return p.fallback.GetBusyIntervals(ctx, grantID, email, from, to)
		}
		return nil, errors.New("calendar provider not configured")
	}

	busy, err := p.primary.GetBusyIntervals(ctx, grantID, email, from, to)
	if err != nil && p.allowFallback && p.fallback != nil {
		log.Warn().Err(err).Str("grant_id", grantID).Msg("Calendar provider failed, falling back to mock")
		return p.fallback.GetBusyIntervals(ctx, grantID, email, from, to)
	}
	return busy, err
}
