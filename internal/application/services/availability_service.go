package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/thongular/booking/internal/domain/availability"
	"github.com/thongular/booking/internal/domain/entities"
	"github.com/thongular/booking/internal/domain/providers"
	"github.com/thongular/booking/internal/domain/repositories"
	"github.com/thongular/booking/internal/infrastructure/observability"
	"github.com/thongular/booking/pkg/config"
	apperrors "github.com/thongular/booking/pkg/errors"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// AvailabilityService turns stored working windows and external calendars into bookable slots
type AvailabilityService struct {
	availabilityRepo repositories.AvailabilityRepository
	eventTypeRepo    repositories.EventTypeRepository
	calendar         providers.CalendarProvider
	defaultLocation  *time.Location
	publicBaseURL    string
	metrics          *observability.Metrics
	clock            func() time.Time
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(
	availabilityRepo repositories.AvailabilityRepository,
	eventTypeRepo repositories.EventTypeRepository,
	calendar providers.CalendarProvider,
	cfg config.BookingConfig,
	metrics *observability.Metrics,
) *AvailabilityService {
	return &AvailabilityService{
		availabilityRepo: availabilityRepo,
		eventTypeRepo:    eventTypeRepo,
		calendar:         calendar,
		defaultLocation:  cfg.Location(),
		publicBaseURL:    strings.TrimRight(cfg.PublicBaseURL, "/"),
		metrics:          metrics,
		clock:            time.Now,
	}
}

// SetClock replaces the source of the current time
func (s *AvailabilityService) SetClock(clock func() time.Time) {
	s.clock = clock
}

// GetDayAvailability returns the free slots of username on date for a meeting of duration minutes.
// Only the year, month and day of date are used.
func (s *AvailabilityService) GetDayAvailability(ctx context.Context, username string, date time.Time, duration int) (*entities.DayAvailability, error) {
	return s.dayAvailability(ctx, username, "", date, duration)
}

// GetEventTypeAvailability returns the free slots of an event type on date
func (s *AvailabilityService) GetEventTypeAvailability(ctx context.Context, username, eventURL string, date time.Time) (*entities.DayAvailability, error) {
	eventType, err := s.eventTypeRepo.GetByURL(ctx, username, eventURL)
	if err != nil {
		return nil, err
	}
	if !eventType.Active {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("event type %s is not active", eventURL))
	}

	return s.dayAvailability(ctx, username, eventType.URL, date, eventType.Duration)
}

func (s *AvailabilityService) dayAvailability(ctx context.Context, username, eventURL string, date time.Time, duration int) (*entities.DayAvailability, error) {
	ctx, span := observability.StartSpan(ctx, "AvailabilityService.GetDayAvailability")
	defer span.End()

	if duration <= 0 {
		s.recordOutcome(ctx, "invalid", 0)
		return nil, apperrors.WrapValidationError("duration must be a positive number of minutes", availability.ErrInvalidDuration)
	}

	y, m, d := date.Date()
	calendarDate := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	day := entities.DayOf(calendarDate)

	observability.SetSpanAttributes(span,
		attribute.String("booking.username", username),
		attribute.String("booking.date", calendarDate.Format(DateLayout)),
		attribute.Int("booking.duration", duration),
	)

	schedule, err := s.availabilityRepo.GetForDay(ctx, username, day)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	loc := s.location(ctx, schedule.Timezone)
	from, err := availability.ParseTimeOfDay(schedule.FromTime)
	if err != nil {
		return nil, apperrors.NewInternalError("stored working window is malformed", err)
	}
	till, err := availability.ParseTimeOfDay(schedule.TillTime)
	if err != nil {
		return nil, apperrors.NewInternalError("stored working window is malformed", err)
	}

	dayStart := time.Date(y, m, d, 0, 0, 0, 0, loc)
	dayEnd := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)

	window := availability.WorkingWindow{Date: dayStart, From: from, Till: till, Location: loc}
	if err := window.Validate(); err != nil {
		s.recordOutcome(ctx, "invalid", 0)
		return nil, apperrors.WrapValidationError("cannot compute slots", err)
	}

	started := time.Now()
	busy, err := s.calendar.GetBusyIntervals(ctx, schedule.GrantID, schedule.GrantEmail, dayStart, dayEnd)
	observability.RecordCalendarRequest(ctx, s.metrics, "calendar", time.Since(started), err)
	if err != nil {
		observability.RecordError(span, err)
		s.recordOutcome(ctx, "calendar_error", 0)
		return nil, apperrors.NewExternalError("failed to fetch calendar availability", err)
	}

	free, err := availability.ComputeFreeSlots(window, duration, busy, s.clock())
	if err != nil {
		s.recordOutcome(ctx, "invalid", 0)
		if errors.Is(err, availability.ErrInvalidWindow) || errors.Is(err, availability.ErrInvalidDuration) {
			return nil, apperrors.WrapValidationError("cannot compute slots", err)
		}
		return nil, apperrors.NewInternalError("failed to compute slots", err)
	}
	s.recordOutcome(ctx, "ok", len(free))

	observability.LoggerFromContext(ctx).Debug().
		Str("username", username).
		Str("date", calendarDate.Format(DateLayout)).
		Int("busy", len(busy)).
		Int("free", len(free)).
		Msg("Computed free slots")

	slotLength := time.Duration(duration) * time.Minute
	slots := make([]entities.Slot, 0, len(free))
	for _, start := range free {
		local := start.In(loc)
		label := local.Format("15:04")
		slots = append(slots, entities.Slot{
			Start: local,
			End:   local.Add(slotLength),
			Time:  label,
			Link:  s.bookingLink(username, eventURL, calendarDate, label),
		})
	}

	return &entities.DayAvailability{
		Username: username,
		Date:     calendarDate.Format(DateLayout),
		Day:      day,
		Timezone: loc.String(),
		Duration: duration,
		From:     from.String(),
		Till:     till.String(),
		Slots:    slots,
	}, nil
}

// UpdateWorkingWindow validates and stores the window of one day
func (s *AvailabilityService) UpdateWorkingWindow(ctx context.Context, a *entities.Availability) error {
	if a.UserID == "" {
		return apperrors.NewValidationError("user_id is required")
	}
	if !a.Day.Valid() {
		return apperrors.NewValidationError(fmt.Sprintf("invalid day %q", a.Day))
	}

	from, err := availability.ParseTimeOfDay(a.FromTime)
	if err != nil {
		return apperrors.WrapValidationError("invalid from_time", err)
	}
	till, err := availability.ParseTimeOfDay(a.TillTime)
	if err != nil {
		return apperrors.WrapValidationError("invalid till_time", err)
	}

	window := availability.WorkingWindow{From: from, Till: till}
	if err := window.Validate(); err != nil {
		return apperrors.WrapValidationError("from_time must be before till_time", err)
	}

	a.FromTime = from.String()
	a.TillTime = till.String()

	return s.availabilityRepo.Update(ctx, a)
}

// ListWorkingWindows returns the weekly schedule of a user
func (s *AvailabilityService) ListWorkingWindows(ctx context.Context, userID string) ([]*entities.Availability, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("user_id is required")
	}
	return s.availabilityRepo.ListByUser(ctx, userID)
}

func (s *AvailabilityService) location(ctx context.Context, name string) *time.Location {
	if name == "" {
		return s.defaultLocation
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("timezone", name).
			Msg("Unknown user time zone, using default")
		return s.defaultLocation
	}
	return loc
}

func (s *AvailabilityService) bookingLink(username, eventURL string, date time.Time, label string) string {
	path := url.PathEscape(username)
	if eventURL != "" {
		path += "/" + url.PathEscape(eventURL)
	}
	return fmt.Sprintf("%s/%s?date=%s&time=%s", s.publicBaseURL, path, date.Format(DateLayout), label)
}

func (s *AvailabilityService) recordOutcome(ctx context.Context, outcome string, free int) {
	observability.RecordSlotComputation(ctx, s.metrics, outcome, free)
}
