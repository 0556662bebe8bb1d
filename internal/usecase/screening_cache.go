package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cinema-operations/internal/dto/request"
	"cinema-operations/internal/dto/response"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const screeningCacheVersionKey = "screenings:version"

// ScreeningCache is an optional Redis-backed cache for the screening listing.
// Keys embed a version counter bumped on every committed mutation, so stale
// entries simply age out without scanning. A nil cache or nil client disables
// caching entirely.
type ScreeningCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *zap.Logger
}

func NewScreeningCache(client *redis.Client, ttl time.Duration, log *zap.Logger) *ScreeningCache {
	return &ScreeningCache{
		client: client,
		ttl:    ttl,
		log:    log.With(zap.String("component", "screening_cache")),
	}
}

func (c *ScreeningCache) enabled() bool {
	return c != nil && c.client != nil
}

func (c *ScreeningCache) Get(ctx context.Context, filter request.ScreeningFilter) ([]response.ScreeningResponse, bool) {
	if !c.enabled() {
		return nil, false
	}

	key, err := c.key(ctx, filter)
	if err != nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}

	var views []response.ScreeningResponse
	if err := json.Unmarshal(raw, &views); err != nil {
		c.log.Warn("Failed to decode cached screening list", zap.Error(err), zap.String("key", key))
		return nil, false
	}

	return views, true
}

func (c *ScreeningCache) Set(ctx context.Context, filter request.ScreeningFilter, views []response.ScreeningResponse) {
	if !c.enabled() {
		return
	}

	key, err := c.key(ctx, filter)
	if err != nil {
		return
	}

	raw, err := json.Marshal(views)
	if err != nil {
		c.log.Warn("Failed to encode screening list for cache", zap.Error(err))
		return
	}

	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn("Failed to store screening list in cache", zap.Error(err), zap.String("key", key))
	}
}

// Invalidate bumps the version counter, orphaning every cached listing.
func (c *ScreeningCache) Invalidate(ctx context.Context) {
	if !c.enabled() {
		return
	}

	if err := c.client.Incr(ctx, screeningCacheVersionKey).Err(); err != nil {
		c.log.Warn("Failed to bump screening cache version", zap.Error(err))
	}
}

func (c *ScreeningCache) key(ctx context.Context, filter request.ScreeningFilter) (string, error) {
	version, err := c.client.Get(ctx, screeningCacheVersionKey).Int64()
	if err != nil && err != redis.Nil {
		return "", err
	}

	return fmt.Sprintf("screenings:v%d:hall=%s&movie=%s&upcoming=%t",
		version, filter.HallID, filter.MovieID, filter.UpcomingOnly), nil
}
