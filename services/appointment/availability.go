package appointment

import (
	"context"
	"fmt"

	bookingRepo "clinicportal/database/repository/booking"
	serviceRepo "clinicportal/database/repository/service"
	"clinicportal/models"
	"clinicportal/utils"

	"go.uber.org/zap"
)

// DefaultAvailabilityService is the production implementation.
type DefaultAvailabilityService struct {
	Services serviceRepo.ServiceOptionRepository
	Bookings bookingRepo.BookingRepository
	Cache    *Cache
}

// ResolveAvailability subtracts the slots of the date's bookings from each
// option's slot template, preserving the template order. A date with no
// bookings (including a malformed date, which matches nothing) yields every
// slot open.
func (s *DefaultAvailabilityService) ResolveAvailability(ctx context.Context, date string) ([]models.ServiceOption, error) {
	cached, gen, ok := s.Cache.Get(ctx, date)
	if ok {
		return cached, nil
	}

	options, err := s.Services.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}

	booked, err := s.Bookings.FindByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}

	for i := range options {
		taken := make(map[string]struct{})
		for _, b := range booked {
			if b.Service == options[i].Name {
				taken[b.Slot] = struct{}{}
			}
		}

		open := make([]string, 0, len(options[i].Slots))
		for _, slot := range options[i].Slots {
			if _, ok := taken[slot]; !ok {
				open = append(open, slot)
			}
		}
		options[i].Slots = open
	}

	s.Cache.Set(ctx, date, gen, options)

	utils.GetLogger().Debug("resolved availability",
		zap.String("date", date),
		zap.Int("options", len(options)),
		zap.Int("bookings", len(booked)))
	return options, nil
}

// ListSpecialties returns just the option names, for pickers that do not
// need prices or slots.
func (s *DefaultAvailabilityService) ListSpecialties(ctx context.Context) ([]models.SpecialtyRef, error) {
	refs, err := s.Services.GetNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("availability: %w", err)
	}
	return refs, nil
}
