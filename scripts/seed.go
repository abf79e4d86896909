package main

import (
	"context"
	"os"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/thongular/booking/internal/adapters/database"
	"github.com/thongular/booking/internal/application/services"
	"github.com/thongular/booking/internal/domain/entities"
	"github.com/thongular/booking/internal/infrastructure/clients/postgres"
	"github.com/thongular/booking/internal/infrastructure/observability"
	"github.com/thongular/booking/pkg/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          TEXT PRIMARY KEY,
	username    TEXT NOT NULL UNIQUE,
	email       TEXT NOT NULL,
	name        TEXT NOT NULL DEFAULT '',
	timezone    TEXT,
	grant_id    TEXT,
	grant_email TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS availability (
	id         TEXT PRIMARY KEY,
	user_id    TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	day        TEXT NOT NULL,
	from_time  VARCHAR(5) NOT NULL DEFAULT '08:00',
	till_time  VARCHAR(5) NOT NULL DEFAULT '18:00',
	is_active  BOOLEAN NOT NULL DEFAULT true,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, day)
);

CREATE TABLE IF NOT EXISTS event_types (
	id                  TEXT PRIMARY KEY,
	user_id             TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	title               TEXT NOT NULL,
	url                 TEXT NOT NULL,
	description         TEXT,
	duration            INTEGER NOT NULL,
	video_call_software TEXT NOT NULL DEFAULT 'NULL',
	active              BOOLEAN NOT NULL DEFAULT true,
	created_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at          TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (user_id, url)
);
`

func main() {
	observability.InitLogger("booking-seed", "development")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DB")
	}
	defer pgClient.Close()

	ctx := context.Background()

	if _, err := pgClient.DB().ExecContext(ctx, schema); err != nil {
		log.Fatal().Err(err).Msg("Failed to create schema")
	}

	if os.Getenv("RESET_DB") == "true" {
		log.Info().Msg("RESET_DB=true detected, truncating tables before seeding")
		if _, err := pgClient.DB().ExecContext(ctx, `TRUNCATE TABLE event_types, availability, users CASCADE`); err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
	}

	db := goqu.New("postgres", pgClient.DB())
	now := time.Now()

	// 1. Seed the demo user
	user := entities.User{
		ID:         uuid.New().String(),
		Username:   getEnv("SEED_USERNAME", "demo"),
		Email:      getEnv("SEED_EMAIL", "demo@example.com"),
		Name:       "Demo User",
		Timezone:   cfg.Booking.DefaultTimezone,
		GrantID:    os.Getenv("SEED_GRANT_ID"),
		GrantEmail: os.Getenv("SEED_GRANT_EMAIL"),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	query, args, err := db.Insert("users").Rows(user).OnConflict(goqu.DoNothing()).ToSQL()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build user insert")
	}
	if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed user")
	}

	// 2. Seed the weekly schedule, weekdays active
	rows := make([]interface{}, 0, len(entities.Days))
	for _, day := range entities.Days {
		rows = append(rows, entities.Availability{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Day:       day,
			FromTime:  "09:00",
			TillTime:  "17:00",
			IsActive:  day != entities.DaySaturday && day != entities.DaySunday,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	query, args, err = db.Insert("availability").Rows(rows...).OnConflict(goqu.DoNothing()).ToSQL()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build availability insert")
	}
	if _, err := pgClient.DB().ExecContext(ctx, query, args...); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed availability")
	}

	// 3. Seed event types through the service so they are validated
	eventTypeService := services.NewEventTypeService(database.NewEventTypeAdapter(pgClient))
	eventTypes := []entities.EventType{
		{UserID: user.ID, Title: "Intro call", URL: "intro-call", Description: "A quick first conversation", Duration: 15, VideoCallSoftware: entities.VideoCallMeet},
		{UserID: user.ID, Title: "Consultation", URL: "consultation", Duration: 60, VideoCallSoftware: entities.VideoCallZoom},
	}
	for _, et := range eventTypes {
		if err := eventTypeService.Create(ctx, &et); err != nil {
			log.Warn().Err(err).Str("url", et.URL).Msg("Failed to create event type")
		}
	}

	log.Info().
		Str("username", user.Username).
		Int("event_types", len(eventTypes)).
		Msg("Seeding completed")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
