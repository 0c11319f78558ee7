package appointment

import (
	"context"

	"clinicportal/models"
)

// AvailabilityService computes open appointment slots per service for a
// given date. It is a pure read: bookings are never mutated here.
type AvailabilityService interface {
	// ResolveAvailability returns every appointment option with its slot
	// list reduced to the slots still open on the given date.
	ResolveAvailability(ctx context.Context, date string) ([]models.ServiceOption, error)
	// ListSpecialties returns the name-only projection of every option.
	ListSpecialties(ctx context.Context) ([]models.SpecialtyRef, error)
}
