package bookingRepo

import (
	"context"
	"errors"

	"clinicportal/models"
)

// ErrDuplicateBooking is returned by Create when the unique conflict index
// rejects the insert. It is the storage-level backstop for the admission
// check: even two racing processes cannot both persist the same key.
var ErrDuplicateBooking = errors.New("duplicate booking for conflict key")

// ConflictScope selects the duplicate-booking key.
type ConflictScope string

const (
	// ScopeServiceDay keys conflicts on (selectedDate, service, email):
	// one booking per person per service per day, whatever the slot.
	ScopeServiceDay ConflictScope = "service-day"
	// ScopeSlot additionally includes the slot, so one person may hold
	// several different slots of the same service on the same day.
	ScopeSlot ConflictScope = "slot"
)

// ParseConflictScope maps a config string onto a scope, defaulting to
// ScopeServiceDay.
func ParseConflictScope(s string) ConflictScope {
	if ConflictScope(s) == ScopeSlot {
		return ScopeSlot
	}
	return ScopeServiceDay
}

// BookingRepository defines data access for bookings.
type BookingRepository interface {
	// FindByDate retrieves all bookings for a selected date.
	FindByDate(ctx context.Context, date string) ([]models.Booking, error)
	// FindConflicts retrieves bookings matching the candidate's conflict
	// key under the repository's configured scope.
	FindConflicts(ctx context.Context, candidate models.BookingCandidate) ([]models.Booking, error)
	// FindByEmail retrieves all bookings made by an email address.
	FindByEmail(ctx context.Context, email string) ([]models.Booking, error)
	// GetByID retrieves a single booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Create inserts a new booking. Returns ErrDuplicateBooking when the
	// conflict key is already taken.
	Create(ctx context.Context, booking *models.Booking) error
	// MarkPaid sets paid and the provider transaction ID on a booking.
	MarkPaid(ctx context.Context, id, transactionID string) error
}
