package booking

import (
	"context"

	"clinicportal/models"
)

// BookingService admits prospective bookings and answers booking queries.
type BookingService interface {
	// AdmitBooking decides whether the candidate may be persisted. A
	// conflicting prior booking produces a rejected AdmissionResult, not
	// an error; errors are storage faults or validation failures.
	AdmitBooking(ctx context.Context, candidate models.BookingCandidate) (*models.AdmissionResult, error)
	// ListByEmail returns all bookings made by an email address.
	ListByEmail(ctx context.Context, email string) ([]models.Booking, error)
	// GetByID returns a single booking or nil when absent.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}
