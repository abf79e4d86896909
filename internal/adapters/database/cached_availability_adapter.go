package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/thongular/booking/internal/domain/entities"
	"github.com/thongular/booking/internal/domain/providers"
	"github.com/thongular/booking/internal/domain/repositories"
)

// CachedAvailabilityAdapter wraps an AvailabilityRepository with read-through caching
type CachedAvailabilityAdapter struct {
	adapter repositories.AvailabilityRepository
	cache   providers.CacheProvider
	ttl     time.Duration
}

// NewCachedAvailabilityAdapter creates a new cached availability adapter
func NewCachedAvailabilityAdapter(adapter repositories.AvailabilityRepository, cache providers.CacheProvider, ttl time.Duration) repositories.AvailabilityRepository {
	if ttl <= 0 {
		ttl = defaultScheduleTTL
	}
	return &CachedAvailabilityAdapter{
		adapter: adapter,
		cache:   cache,
		ttl:     ttl,
	}
}

const defaultScheduleTTL = 5 * time.Minute

func scheduleCacheKey(username string, day entities.Day) string {
	return fmt.Sprintf("availability:%s:%s", username, day)
}

func ownerCacheKey(userID string) string {
	return fmt.Sprintf("availability:owner:%s", userID)
}

// cachedSchedule mirrors DaySchedule with the calendar grant kept in the payload
type cachedSchedule struct {
	entities.Availability
	Username   string `json:"username"`
	Timezone   string `json:"timezone"`
	GrantID    string `json:"grant_id"`
	GrantEmail string `json:"grant_email"`
}

// GetForDay retrieves a day schedule with caching
func (a *CachedAvailabilityAdapter) GetForDay(ctx context.Context, username string, day entities.Day) (*entities.DaySchedule, error) {
	cacheKey := scheduleCacheKey(username, day)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var schedule cachedSchedule
		uerr := json.Unmarshal(cached, &schedule)
		if uerr == nil {
			result := entities.DaySchedule(schedule)
			return &result, nil
		}
		log.Warn().Err(uerr).Str("key", cacheKey).Msg("Failed to unmarshal cached schedule")
	}

	schedule, err := a.adapter.GetForDay(ctx, username, day)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(cachedSchedule(*schedule)); err == nil {
		if err := a.cache.Set(ctx, cacheKey, data, a.ttl); err != nil {
			log.Warn().Err(err).Str("key", cacheKey).Msg("Failed to cache schedule")
		}
	}
	if err := a.cache.Set(ctx, ownerCacheKey(schedule.UserID), []byte(schedule.Username), a.ttl); err != nil {
		log.Warn().Err(err).Str("user_id", schedule.UserID).Msg("Failed to cache schedule owner")
	}

	return schedule, nil
}

// ListByUser is not cached
func (a *CachedAvailabilityAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Availability, error) {
	return a.adapter.ListByUser(ctx, userID)
}

// Update updates a day record and drops the cached schedule of its owner
func (a *CachedAvailabilityAdapter) Update(ctx context.Context, availability *entities.Availability) error {
	if err := a.adapter.Update(ctx, availability); err != nil {
		return err
	}

	username, err := a.cache.Get(ctx, ownerCacheKey(availability.UserID))
	if err != nil {
		// nothing cached for this owner
		return nil
	}
	if err := a.cache.Delete(ctx, scheduleCacheKey(string(username), availability.Day)); err != nil {
		log.Warn().Err(err).Str("user_id", availability.UserID).Msg("Failed to invalidate cached schedule")
	}
	return nil
}
