package flight

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"backend-tripnest/internal/itinerary"
)

// Cached wraps an Estimator with a redis TTL cache keyed by route and
// dates. Fare lookups are slow and priced per call; estimates for the same
// trip window rarely change within the TTL. Only successful estimates are
// cached.
type Cached struct {
	inner Estimator
	redis *redis.Client
	ttl   time.Duration
}

func NewCached(inner Estimator, redisClient *redis.Client, ttl time.Duration) *Cached {
	return &Cached{inner: inner, redis: redisClient, ttl: ttl}
}

func (c *Cached) Estimate(ctx context.Context, trip itinerary.Trip) (Estimate, error) {
	if c.redis == nil {
		return c.inner.Estimate(ctx, trip)
	}

	key := cacheKey(trip)
	if raw, err := c.redis.Get(ctx, key).Bytes(); err == nil {
		var est Estimate
		if json.Unmarshal(raw, &est) == nil {
			return est, nil
		}
	}

	est, err := c.inner.Estimate(ctx, trip)
	if err != nil {
		return Estimate{}, err
	}

	if raw, err := json.Marshal(est); err == nil {
		_ = c.redis.Set(ctx, key, raw, c.ttl).Err()
	}
	return est, nil
}

func cacheKey(trip itinerary.Trip) string {
	return "flight:" + trip.AirportCode + ":" + trip.StartDate + ":" + trip.EndDate
}
