package appointment

import (
	"context"
	"testing"
	"time"

	"clinicportal/models"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, ttl time.Duration) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewCache(client, ttl)
	require.NotNil(t, cache)
	return cache, mr
}

func TestCacheRoundTrip(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	options := []models.ServiceOption{
		{ID: "1", Name: "Cavity Filling", Price: 100, Slots: []string{"9:00", "11:00"}},
	}

	_, gen, ok := cache.Get(ctx, "2024-01-10")
	assert.False(t, ok)

	cache.Set(ctx, "2024-01-10", gen, options)

	cached, _, ok := cache.Get(ctx, "2024-01-10")
	require.True(t, ok)
	assert.Equal(t, options, cached)

	// Other dates are independent.
	_, _, ok = cache.Get(ctx, "2024-01-11")
	assert.False(t, ok)
}

func TestCacheDisabled(t *testing.T) {
	assert.Nil(t, NewCache(nil, time.Minute))

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	assert.Nil(t, NewCache(client, 0))

	// A nil cache is safe to use.
	var cache *Cache
	ctx := context.Background()
	_, gen, ok := cache.Get(ctx, "2024-01-10")
	assert.False(t, ok)
	cache.Set(ctx, "2024-01-10", gen, nil)
	cache.Invalidate(ctx, "2024-01-10")
}

func TestCacheInvalidateDropsEntry(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, gen, _ := cache.Get(ctx, "2024-01-10")
	cache.Set(ctx, "2024-01-10", gen, []models.ServiceOption{{Name: "Checkup"}})

	cache.Invalidate(ctx, "2024-01-10")

	_, _, ok := cache.Get(ctx, "2024-01-10")
	assert.False(t, ok)
}

func TestCacheStaleSetAfterInvalidateUnreadable(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	ctx := context.Background()

	// A resolve observes the generation, then an admission invalidates the
	// date before the resolve writes its result back.
	_, gen, _ := cache.Get(ctx, "2024-01-10")
	cache.Invalidate(ctx, "2024-01-10")
	cache.Set(ctx, "2024-01-10", gen, []models.ServiceOption{
		{Name: "Cavity Filling", Slots: []string{"9:00", "10:00", "11:00"}},
	})

	// The stale write landed on the old generation and is never served.
	_, _, ok := cache.Get(ctx, "2024-01-10")
	assert.False(t, ok)
}

func TestCacheEntryExpires(t *testing.T) {
	cache, mr := newTestCache(t, time.Minute)
	ctx := context.Background()

	_, gen, _ := cache.Get(ctx, "2024-01-10")
	cache.Set(ctx, "2024-01-10", gen, []models.ServiceOption{{Name: "Checkup"}})

	mr.FastForward(2 * time.Minute)

	_, _, ok := cache.Get(ctx, "2024-01-10")
	assert.False(t, ok)
}

func TestResolveAvailabilityServedFromCache(t *testing.T) {
	cache, _ := newTestCache(t, time.Minute)
	bookings := &mockBookingReader{}
	svc := &DefaultAvailabilityService{Services: cavityFillingFixture(), Bookings: bookings, Cache: cache}

	first, err := svc.ResolveAvailability(context.Background(), "2024-01-10")
	require.NoError(t, err)

	// A booking inserted behind the cache's back is not visible until the
	// entry is invalidated or expires.
	bookings.bookings = append(bookings.bookings, models.Booking{
		Service: "Cavity Filling", SelectedDate: "2024-01-10", Slot: "10:00", Email: "a@x.com",
	})

	second, err := svc.ResolveAvailability(context.Background(), "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	cache.Invalidate(context.Background(), "2024-01-10")

	third, err := svc.ResolveAvailability(context.Background(), "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00", "11:00"}, third[0].Slots)
}
