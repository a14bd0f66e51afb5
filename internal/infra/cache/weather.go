package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"teetime/internal/domain/pricing"
	"teetime/internal/metrics"
	"teetime/internal/usecase/shared"

	"github.com/redis/go-redis/v9"
)

const weatherKeyPrefix = "weather:"

// WeatherCache is a read-through Redis cache in front of the weather store.
// Redis failures are logged and fall back to the primary; they never fail a
// pricing request.
type WeatherCache struct {
	primary shared.WeatherSource
	rdb     *redis.Client
	ttl     time.Duration
}

func NewWeatherCache(primary shared.WeatherSource, rdb *redis.Client, ttl time.Duration) *WeatherCache {
	return &WeatherCache{
		primary: primary,
		rdb:     rdb,
		ttl:     ttl,
	}
}

// cachedWeather wraps the snapshot so "no observation" can be cached too.
type cachedWeather struct {
	Snapshot *pricing.WeatherSnapshot `json:"snapshot"`
}

func (c *WeatherCache) LatestForCourse(ctx context.Context, courseName string) (*pricing.WeatherSnapshot, error) {
	data, err := c.rdb.Get(ctx, weatherKey(courseName)).Bytes()
	switch {
	case err == nil:
		var entry cachedWeather
		if jerr := json.Unmarshal(data, &entry); jerr == nil {
			metrics.WeatherCacheLookups.WithLabelValues("hit").Inc()
			return entry.Snapshot, nil
		}
		slog.Warn("discarding undecodable weather cache entry", "course", courseName)
	case errors.Is(err, redis.Nil):
	default:
		metrics.WeatherCacheLookups.WithLabelValues("error").Inc()
		slog.Warn("weather cache unavailable, reading primary", "course", courseName, "error", err.Error())
	}

	metrics.WeatherCacheLookups.WithLabelValues("miss").Inc()
	snapshot, err := c.primary.LatestForCourse(ctx, courseName)
	if err != nil {
		return nil, err
	}

	c.store(ctx, courseName, snapshot)
	return snapshot, nil
}

func (c *WeatherCache) store(ctx context.Context, courseName string, snapshot *pricing.WeatherSnapshot) {
	data, err := json.Marshal(cachedWeather{Snapshot: snapshot})
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, weatherKey(courseName), data, c.ttl).Err(); err != nil {
		slog.Warn("failed to cache weather", "course", courseName, "error", err.Error())
	}
}

func weatherKey(courseName string) string {
	return weatherKeyPrefix + courseName
}
