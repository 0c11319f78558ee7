package booking

import (
	"context"
	"errors"
	"sync"
	"testing"

	bookingRepo "clinicportal/database/repository/booking"
	"clinicportal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Mock implementations

type mockBookingRepo struct {
	mu       sync.Mutex
	scope    bookingRepo.ConflictScope
	bookings []models.Booking
	findErr  error
	creatErr error
	forceDup bool

	// failFindOnCall limits findErr to the Nth FindConflicts call (1-based);
	// zero fails every call.
	failFindOnCall int
	findCalls      int
}

func (m *mockBookingRepo) key(date, service, email, slot string) string {
	k := date + "|" + service + "|" + email
	if m.scope == bookingRepo.ScopeSlot {
		k += "|" + slot
	}
	return k
}

func (m *mockBookingRepo) FindByDate(ctx context.Context, date string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.SelectedDate == date {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) FindConflicts(ctx context.Context, c models.BookingCandidate) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findCalls++
	if m.findErr != nil && (m.failFindOnCall == 0 || m.findCalls == m.failFindOnCall) {
		return nil, m.findErr
	}
	want := m.key(c.SelectedDate, c.Service, c.Email, c.Slot)
	var out []models.Booking
	for _, b := range m.bookings {
		if m.key(b.SelectedDate, b.Service, b.Email, b.Slot) == want {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) FindByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Booking
	for _, b := range m.bookings {
		if b.Email == email {
			out = append(out, b)
		}
	}
	return out, nil
}

func (m *mockBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.bookings {
		if b.ID == id {
			return &b, nil
		}
	}
	return nil, nil
}

// Create emulates the unique conflict index: a second insert for the same
// key fails with ErrDuplicateBooking.
func (m *mockBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	if m.creatErr != nil {
		return m.creatErr
	}
	if m.forceDup {
		return bookingRepo.ErrDuplicateBooking
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	want := m.key(booking.SelectedDate, booking.Service, booking.Email, booking.Slot)
	for _, b := range m.bookings {
		if m.key(b.SelectedDate, b.Service, b.Email, b.Slot) == want {
			return bookingRepo.ErrDuplicateBooking
		}
	}
	if booking.ID == "" {
		booking.ID = "bk-" + want
	}
	m.bookings = append(m.bookings, *booking)
	return nil
}

func (m *mockBookingRepo) MarkPaid(ctx context.Context, id, transactionID string) error {
	return nil
}

type mockNotifier struct {
	mu            sync.Mutex
	confirmations []models.Booking
	reminders     []models.Booking
	err           error
}

func (m *mockNotifier) QueueBookingConfirmation(ctx context.Context, b models.Booking) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.confirmations = append(m.confirmations, b)
	return nil
}

func (m *mockNotifier) QueueAppointmentReminder(ctx context.Context, b models.Booking) error {
	if m.err != nil {
		return m.err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reminders = append(m.reminders, b)
	return nil
}

func candidateFixture() models.BookingCandidate {
	return models.BookingCandidate{
		Service:      "Cavity Filling",
		SelectedDate: "2024-01-10",
		Email:        "a@x.com",
		Slot:         "10:00",
		Name:         "Alice",
		Price:        100,
	}
}

func newTestService(repo *mockBookingRepo, notifier *mockNotifier) *DefaultBookingService {
	scope := repo.scope
	if scope == "" {
		scope = bookingRepo.ScopeServiceDay
	}
	var svc *DefaultBookingService
	if notifier != nil {
		svc = NewBookingService(repo, scope, nil, notifier)
	} else {
		svc = NewBookingService(repo, scope, nil, nil)
	}
	return svc
}

func TestAdmitBookingAdmitsNewCandidate(t *testing.T) {
	repo := &mockBookingRepo{}
	notifier := &mockNotifier{}
	svc := newTestService(repo, notifier)

	result, err := svc.AdmitBooking(context.Background(), candidateFixture())
	require.NoError(t, err)
	assert.True(t, result.Admitted)
	assert.NotEmpty(t, result.BookingID)

	require.Len(t, repo.bookings, 1)
	assert.False(t, repo.bookings[0].Paid)
	assert.Equal(t, "10:00", repo.bookings[0].Slot)
	require.Len(t, notifier.confirmations, 1)
	require.Len(t, notifier.reminders, 1)
}

func TestAdmitBookingRejectsDuplicateKeyRegardlessOfSlot(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := newTestService(repo, nil)

	first := candidateFixture()
	_, err := svc.AdmitBooking(context.Background(), first)
	require.NoError(t, err)

	// Same (service, date, email) but a different slot is still rejected,
	// and the rejection names the previously booked slot.
	second := first
	second.Slot = "9:00"
	result, err := svc.AdmitBooking(context.Background(), second)
	require.NoError(t, err)
	assert.False(t, result.Admitted)
	assert.Equal(t, "10:00", result.ExistingSlot)
	assert.Len(t, repo.bookings, 1)
}

func TestAdmitBookingDifferentEmailAdmitted(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := newTestService(repo, nil)

	first := candidateFixture()
	_, err := svc.AdmitBooking(context.Background(), first)
	require.NoError(t, err)

	second := first
	second.Email = "b@x.com"
	second.Slot = "9:00"
	result, err := svc.AdmitBooking(context.Background(), second)
	require.NoError(t, err)
	assert.True(t, result.Admitted)

	booked, err := repo.FindByDate(context.Background(), "2024-01-10")
	require.NoError(t, err)
	assert.Len(t, booked, 2)
}

func TestAdmitBookingSlotScopeAllowsSecondSlot(t *testing.T) {
	repo := &mockBookingRepo{scope: bookingRepo.ScopeSlot}
	svc := newTestService(repo, nil)

	first := candidateFixture()
	_, err := svc.AdmitBooking(context.Background(), first)
	require.NoError(t, err)

	second := first
	second.Slot = "11:00"
	result, err := svc.AdmitBooking(context.Background(), second)
	require.NoError(t, err)
	assert.True(t, result.Admitted)

	// The exact same slot is still a duplicate.
	third := first
	result, err = svc.AdmitBooking(context.Background(), third)
	require.NoError(t, err)
	assert.False(t, result.Admitted)
	assert.Equal(t, "10:00", result.ExistingSlot)
}

func TestAdmitBookingValidation(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil)

	cases := []struct {
		name   string
		mutate func(*models.BookingCandidate)
	}{
		{"missing service", func(c *models.BookingCandidate) { c.Service = "" }},
		{"missing date", func(c *models.BookingCandidate) { c.SelectedDate = " " }},
		{"missing email", func(c *models.BookingCandidate) { c.Email = "" }},
		{"missing slot", func(c *models.BookingCandidate) { c.Slot = "" }},
		{"negative price", func(c *models.BookingCandidate) { c.Price = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			candidate := candidateFixture()
			tc.mutate(&candidate)
			_, err := svc.AdmitBooking(context.Background(), candidate)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
		})
	}
}

func TestAdmitBookingStorageFault(t *testing.T) {
	repo := &mockBookingRepo{findErr: errors.New("server selection timeout")}
	svc := newTestService(repo, nil)

	_, err := svc.AdmitBooking(context.Background(), candidateFixture())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server selection timeout")
}

func TestAdmitBookingNotifierFailureDoesNotFailAdmission(t *testing.T) {
	repo := &mockBookingRepo{}
	notifier := &mockNotifier{err: errors.New("queue unavailable")}
	svc := newTestService(repo, notifier)

	result, err := svc.AdmitBooking(context.Background(), candidateFixture())
	require.NoError(t, err)
	assert.True(t, result.Admitted)
	assert.Len(t, repo.bookings, 1)
}

func TestAdmitBookingDuplicateIndexRace(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := newTestService(repo, nil)

	// Simulate a racing process that inserted between our check and
	// insert: the repo already holds the booking, but FindConflicts is
	// bypassed by inserting directly.
	prior := models.Booking{
		ID:           "prior",
		Service:      "Cavity Filling",
		SelectedDate: "2024-01-10",
		Email:        "a@x.com",
		Slot:         "10:00",
	}
	require.NoError(t, repo.Create(context.Background(), &prior))

	result, err := svc.AdmitBooking(context.Background(), candidateFixture())
	require.NoError(t, err)
	assert.False(t, result.Admitted)
	assert.Equal(t, "10:00", result.ExistingSlot)
}

func TestAdmitBookingDuplicateRaceRequeryFault(t *testing.T) {
	// The insert loses a cross-process race and the follow-up conflict
	// query faults; the caller gets the storage error, not an empty
	// rejection.
	repo := &mockBookingRepo{
		forceDup:       true,
		findErr:        errors.New("server selection timeout"),
		failFindOnCall: 2,
	}
	svc := newTestService(repo, nil)

	_, err := svc.AdmitBooking(context.Background(), candidateFixture())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server selection timeout")
}

func TestAdmitBookingDuplicateRaceWithoutVisiblePrior(t *testing.T) {
	// The conflicting booking vanished between the failed insert and the
	// re-query; still a rejection, with no slot detail to report.
	repo := &mockBookingRepo{forceDup: true}
	svc := newTestService(repo, nil)

	result, err := svc.AdmitBooking(context.Background(), candidateFixture())
	require.NoError(t, err)
	assert.False(t, result.Admitted)
	assert.Empty(t, result.ExistingSlot)
}

func TestAdmitBookingConcurrentSameKeyAdmitsOnce(t *testing.T) {
	repo := &mockBookingRepo{}
	svc := newTestService(repo, nil)

	const attempts = 16
	results := make([]*models.AdmissionResult, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, err := svc.AdmitBooking(context.Background(), candidateFixture())
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	wg.Wait()

	admitted := 0
	for _, r := range results {
		if r != nil && r.Admitted {
			admitted++
		}
	}
	assert.Equal(t, 1, admitted)
	assert.Len(t, repo.bookings, 1)
}

func TestListByEmail(t *testing.T) {
	repo := &mockBookingRepo{bookings: []models.Booking{
		{ID: "1", Email: "a@x.com", Service: "Checkup"},
		{ID: "2", Email: "b@x.com", Service: "Checkup"},
		{ID: "3", Email: "a@x.com", Service: "Cleaning"},
	}}
	svc := newTestService(repo, nil)

	bookings, err := svc.ListByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Len(t, bookings, 2)
}

func TestGetByIDAbsent(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, nil)

	b, err := svc.GetByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, b)
}
