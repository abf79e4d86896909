package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/thongular/booking/internal/domain/entities"
	"github.com/thongular/booking/internal/domain/repositories"
	"github.com/thongular/booking/internal/infrastructure/clients/postgres"
	apperrors "github.com/thongular/booking/pkg/errors"
)

const uniqueViolation = "23505"

// EventTypeAdapter implements the EventTypeRepository interface
type EventTypeAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewEventTypeAdapter creates a new event type adapter
func NewEventTypeAdapter(client *postgres.Client) repositories.EventTypeRepository {
	return &EventTypeAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var eventTypeColumns = []interface{}{
	goqu.I("e.id"),
	goqu.I("e.user_id"),
	goqu.I("e.title"),
	goqu.I("e.url"),
	goqu.COALESCE(goqu.I("e.description"), "").As("description"),
	goqu.I("e.duration"),
	goqu.I("e.video_call_software"),
	goqu.I("e.active"),
	goqu.I("e.created_at"),
	goqu.I("e.updated_at"),
}

// Create creates a new event type
func (a *EventTypeAdapter) Create(ctx context.Context, eventType *entities.EventType) error {
	record := goqu.Record{
		"id":                  eventType.ID,
		"user_id":             eventType.UserID,
		"title":               eventType.Title,
		"url":                 eventType.URL,
		"description":         eventType.Description,
		"duration":            eventType.Duration,
		"video_call_software": string(eventType.VideoCallSoftware),
		"active":              eventType.Active,
		"created_at":          eventType.CreatedAt,
		"updated_at":          eventType.UpdatedAt,
	}

	query, args, err := a.db.Insert("event_types").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	defer a.client.Observe(ctx, "event_types.create", time.Now())
	_, err = a.client.DB().ExecContext(ctx, query, args...)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return apperrors.NewConflictError(fmt.Sprintf("event type with url %s already exists", eventType.URL))
	}
	if err != nil {
		return apperrors.NewInternalError("failed to create event type", err)
	}

	return nil
}

// GetByURL retrieves an event type by its owner's username and URL slug
func (a *EventTypeAdapter) GetByURL(ctx context.Context, username, url string) (*entities.EventType, error) {
	query, args, err := a.db.From(goqu.T("event_types").As("e")).
		InnerJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("e.user_id")))).
		Select(eventTypeColumns...).
		Where(goqu.Ex{"u.username": username, "e.url": url}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	defer a.client.Observe(ctx, "event_types.get_by_url", time.Now())
	eventType := &entities.EventType{}
	err = a.client.DB().GetContext(ctx, eventType, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("event type %s of %s not found", url, username))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get event type", err)
	}

	return eventType, nil
}

// ListByUser retrieves the event types of a user, newest first
func (a *EventTypeAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.EventType, error) {
	query, args, err := a.db.From(goqu.T("event_types").As("e")).
		Select(eventTypeColumns...).
		Where(goqu.Ex{"e.user_id": userID}).
		Order(goqu.I("e.created_at").Desc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	defer a.client.Observe(ctx, "event_types.list_by_user", time.Now())
	eventTypes := []*entities.EventType{}
	if err := a.client.DB().SelectContext(ctx, &eventTypes, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list event types", err)
	}

	return eventTypes, nil
}
