package appointment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinicportal/models"
	"clinicportal/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	availabilityKeyPrefix = "availability:"
	availabilityGenPrefix = "availability:gen:"
)

// Cache holds resolved availability per date in Redis. A nil *Cache or a
// zero TTL disables caching entirely, so callers never branch on it.
//
// Entries are keyed by a per-date generation that Invalidate bumps. A
// resolve carries the generation it observed before reading storage into
// Set, so a Set racing an admission's Invalidate lands on the old
// generation's key, which no later Get reads. Without this, a slow resolve
// could re-cache a pre-admission slot list after the invalidation.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache builds an availability cache. Returns nil when ttl is zero.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil || ttl <= 0 {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) dataKey(date string, gen int64) string {
	return fmt.Sprintf("%s%s:%d", availabilityKeyPrefix, date, gen)
}

func (c *Cache) generation(ctx context.Context, date string) int64 {
	gen, err := c.client.Get(ctx, availabilityGenPrefix+date).Int64()
	if err != nil {
		return 0
	}
	return gen
}

// Get returns the cached availability for a date along with the generation
// the lookup observed. Callers must pass that generation back to Set.
func (c *Cache) Get(ctx context.Context, date string) ([]models.ServiceOption, int64, bool) {
	if c == nil {
		return nil, 0, false
	}
	gen := c.generation(ctx, date)
	data, err := c.client.Get(ctx, c.dataKey(date, gen)).Result()
	if err != nil {
		return nil, gen, false
	}
	var options []models.ServiceOption
	if err := json.Unmarshal([]byte(data), &options); err != nil {
		return nil, gen, false
	}
	return options, gen, true
}

// Set stores availability under the generation observed before the resolve
// read storage. If an Invalidate bumped the generation in between, the
// entry is written to a key no Get will ever return.
func (c *Cache) Set(ctx context.Context, date string, gen int64, options []models.ServiceOption) {
	if c == nil {
		return
	}
	data, err := json.Marshal(options)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.dataKey(date, gen), data, c.ttl).Err(); err != nil {
		utils.GetLogger().Warn("availability cache set failed", zap.String("date", date), zap.Error(err))
	}
}

// Invalidate bumps the date's generation. Both the current entry and any
// in-flight Set computed from the pre-admission state become unreadable.
// The generation key must outlive every data entry, otherwise its expiry
// would resurrect a stale entry written just before the bump.
func (c *Cache) Invalidate(ctx context.Context, date string) {
	if c == nil {
		return
	}
	genKey := availabilityGenPrefix + date
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, genKey)
	pipe.Expire(ctx, genKey, 2*c.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		utils.GetLogger().Warn("availability cache invalidation failed", zap.String("date", date), zap.Error(err))
	}
}
