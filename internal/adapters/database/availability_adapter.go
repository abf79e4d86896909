package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/thongular/booking/internal/domain/entities"
	"github.com/thongular/booking/internal/domain/repositories"
	"github.com/thongular/booking/internal/infrastructure/clients/postgres"
	apperrors "github.com/thongular/booking/pkg/errors"
)

// AvailabilityAdapter implements the AvailabilityRepository interface
type AvailabilityAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewAvailabilityAdapter creates a new availability adapter
func NewAvailabilityAdapter(client *postgres.Client) repositories.AvailabilityRepository {
	return &AvailabilityAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var availabilityColumns = []interface{}{
	goqu.I("a.id"),
	goqu.I("a.user_id"),
	goqu.I("a.day"),
	goqu.I("a.from_time"),
	goqu.I("a.till_time"),
	goqu.I("a.is_active"),
	goqu.I("a.created_at"),
	goqu.I("a.updated_at"),
}

// GetForDay retrieves the active working window of a user for a day of the week
func (a *AvailabilityAdapter) GetForDay(ctx context.Context, username string, day entities.Day) (*entities.DaySchedule, error) {
	columns := append(append([]interface{}{}, availabilityColumns...),
		goqu.I("u.username"),
		goqu.COALESCE(goqu.I("u.timezone"), "").As("timezone"),
		goqu.COALESCE(goqu.I("u.grant_id"), "").As("grant_id"),
		goqu.COALESCE(goqu.I("u.grant_email"), "").As("grant_email"),
	)

	query, args, err := a.db.From(goqu.T("availability").As("a")).
		InnerJoin(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("a.user_id")))).
		Select(columns...).
		Where(goqu.Ex{
			"u.username":  username,
			"a.day":       string(day),
			"a.is_active": true,
		}).
		Limit(1).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	defer a.client.Observe(ctx, "availability.get_for_day", time.Now())
	schedule := &entities.DaySchedule{}
	err = a.client.DB().GetContext(ctx, schedule, query, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("no availability configured for %s on %s", username, day))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get availability", err)
	}

	return schedule, nil
}

// ListByUser retrieves all day records of a user in weekday order
func (a *AvailabilityAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Availability, error) {
	query, args, err := a.db.From(goqu.T("availability").As("a")).
		Select(availabilityColumns...).
		Where(goqu.Ex{"a.user_id": userID}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	defer a.client.Observe(ctx, "availability.list_by_user", time.Now())
	var rows []*entities.Availability
	if err := a.client.DB().SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, apperrors.NewInternalError("failed to list availability", err)
	}

	sortByWeekday(rows)
	return rows, nil
}

// Update updates the window of an existing day record
func (a *AvailabilityAdapter) Update(ctx context.Context, availability *entities.Availability) error {
	availability.UpdatedAt = time.Now()

	query, args, err := a.db.Update("availability").
		Set(goqu.Record{
			"from_time":  availability.FromTime,
			"till_time":  availability.TillTime,
			"is_active":  availability.IsActive,
			"updated_at": availability.UpdatedAt,
		}).
		Where(goqu.Ex{"user_id": availability.UserID, "day": string(availability.Day)}).
		Returning("id", "created_at").
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	defer a.client.Observe(ctx, "availability.update", time.Now())
	err = a.client.DB().QueryRowxContext(ctx, query, args...).Scan(&availability.ID, &availability.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NewNotFoundError(fmt.Sprintf("availability for %s on %s not found", availability.UserID, availability.Day))
	}
	if err != nil {
		return apperrors.NewInternalError("failed to update availability", err)
	}

	return nil
}

func sortByWeekday(rows []*entities.Availability) {
	order := make(map[entities.Day]int, len(entities.Days))
	for i, d := range entities.Days {
		order[d] = i
	}
	slices.SortStableFunc(rows, func(x, y *entities.Availability) int {
		return order[x.Day] - order[y.Day]
	})
}
