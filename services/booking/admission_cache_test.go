package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	bookingRepo "clinicportal/database/repository/booking"
	"clinicportal/models"
	"clinicportal/services/appointment"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticServiceRepo struct {
	options []models.ServiceOption
}

func (s *staticServiceRepo) GetAll(ctx context.Context) ([]models.ServiceOption, error) {
	out := make([]models.ServiceOption, len(s.options))
	for i, o := range s.options {
		o.Slots = append([]string(nil), o.Slots...)
		out[i] = o
	}
	return out, nil
}

func (s *staticServiceRepo) GetNames(ctx context.Context) ([]models.SpecialtyRef, error) {
	refs := make([]models.SpecialtyRef, len(s.options))
	for i, o := range s.options {
		refs[i] = models.SpecialtyRef{ID: o.ID, Name: o.Name}
	}
	return refs, nil
}

func (s *staticServiceRepo) GetByName(ctx context.Context, name string) (*models.ServiceOption, error) {
	for _, o := range s.options {
		if o.Name == name {
			return &o, nil
		}
	}
	return nil, nil
}

func (s *staticServiceRepo) Create(ctx context.Context, option *models.ServiceOption) error {
	s.options = append(s.options, *option)
	return nil
}

// gatedBookingRepo parks the first FindByDate after it has read its result,
// so a test can interleave an admission into a running resolve.
type gatedBookingRepo struct {
	*mockBookingRepo
	parked chan struct{}
	resume chan struct{}
	once   sync.Once
}

func (g *gatedBookingRepo) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	out, err := g.mockBookingRepo.FindByDate(ctx, date)
	g.once.Do(func() {
		close(g.parked)
		<-g.resume
	})
	return out, err
}

func newCacheFixture(t *testing.T) *appointment.Cache {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := appointment.NewCache(client, time.Minute)
	require.NotNil(t, cache)
	return cache
}

func TestAdmitBookingInvalidatesAvailabilityCache(t *testing.T) {
	cache := newCacheFixture(t)
	repo := &mockBookingRepo{}
	services := &staticServiceRepo{options: []models.ServiceOption{
		{ID: "1", Name: "Cavity Filling", Price: 100, Slots: []string{"9:00", "10:00", "11:00"}},
	}}

	availability := &appointment.DefaultAvailabilityService{Services: services, Bookings: repo, Cache: cache}
	admissions := NewBookingService(repo, bookingRepo.ScopeServiceDay, cache, nil)

	// Prime the cache with every slot open.
	before, err := availability.ResolveAvailability(context.Background(), "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00", "10:00", "11:00"}, before[0].Slots)

	result, err := admissions.AdmitBooking(context.Background(), candidateFixture())
	require.NoError(t, err)
	require.True(t, result.Admitted)

	// The admission dropped the cached entry, so the booked slot is gone.
	after, err := availability.ResolveAvailability(context.Background(), "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00", "11:00"}, after[0].Slots)
}

func TestStaleResolveCannotMaskAdmittedBooking(t *testing.T) {
	cache := newCacheFixture(t)
	repo := &gatedBookingRepo{
		mockBookingRepo: &mockBookingRepo{},
		parked:          make(chan struct{}),
		resume:          make(chan struct{}),
	}
	services := &staticServiceRepo{options: []models.ServiceOption{
		{ID: "1", Name: "Cavity Filling", Price: 100, Slots: []string{"9:00", "10:00", "11:00"}},
	}}

	availability := &appointment.DefaultAvailabilityService{Services: services, Bookings: repo, Cache: cache}
	admissions := NewBookingService(repo.mockBookingRepo, bookingRepo.ScopeServiceDay, cache, nil)

	// A resolve reads zero bookings and parks before writing to the cache.
	done := make(chan struct{})
	go func() {
		defer close(done)
		stale, err := availability.ResolveAvailability(context.Background(), "2024-01-10")
		assert.NoError(t, err)
		assert.Equal(t, []string{"9:00", "10:00", "11:00"}, stale[0].Slots)
	}()
	<-repo.parked

	// An admission lands and invalidates the date while the resolve is parked.
	result, err := admissions.AdmitBooking(context.Background(), candidateFixture())
	require.NoError(t, err)
	require.True(t, result.Admitted)

	// The resolve resumes and writes its pre-admission slot list.
	close(repo.resume)
	<-done

	// The stale write must not be served: the booked slot stays closed.
	fresh, err := availability.ResolveAvailability(context.Background(), "2024-01-10")
	require.NoError(t, err)
	assert.Equal(t, []string{"9:00", "11:00"}, fresh[0].Slots)
}
