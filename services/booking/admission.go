package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	bookingRepo "clinicportal/database/repository/booking"
	"clinicportal/models"
	"clinicportal/services/appointment"
	"clinicportal/services/notification"
	"clinicportal/utils"

	"go.uber.org/zap"
)

// DefaultBookingService is the production implementation.
type DefaultBookingService struct {
	Repo         bookingRepo.BookingRepository
	Scope        bookingRepo.ConflictScope
	Cache        *appointment.Cache
	Notification notification.NotificationService

	locks *keyMutex
}

// NewBookingService wires a booking service with its per-key admission lock.
func NewBookingService(repo bookingRepo.BookingRepository, scope bookingRepo.ConflictScope,
	cache *appointment.Cache, notif notification.NotificationService) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:         repo,
		Scope:        scope,
		Cache:        cache,
		Notification: notif,
		locks:        newKeyMutex(),
	}
}

func validateCandidate(c models.BookingCandidate) error {
	switch {
	case strings.TrimSpace(c.Service) == "":
		return NewValidationError("service is required")
	case strings.TrimSpace(c.SelectedDate) == "":
		return NewValidationError("selectedDate is required")
	case strings.TrimSpace(c.Email) == "":
		return NewValidationError("email is required")
	case strings.TrimSpace(c.Slot) == "":
		return NewValidationError("slot is required")
	case c.Price < 0:
		return NewValidationError("price must not be negative")
	}
	return nil
}

func (s *DefaultBookingService) conflictKey(c models.BookingCandidate) string {
	key := c.SelectedDate + "|" + c.Service + "|" + c.Email
	if s.Scope == bookingRepo.ScopeSlot {
		key += "|" + c.Slot
	}
	return key
}

// AdmitBooking enforces the duplicate-booking rule and persists admitted
// candidates. The check-then-insert runs under a per-key mutex, and the
// repository's unique index backstops races from other processes; either
// way a duplicate surfaces as a rejection, never as a second admission.
func (s *DefaultBookingService) AdmitBooking(ctx context.Context, candidate models.BookingCandidate) (*models.AdmissionResult, error) {
	logger := utils.GetLogger()

	if err := validateCandidate(candidate); err != nil {
		return nil, err
	}

	key := s.conflictKey(candidate)
	s.locks.Lock(key)
	defer s.locks.Unlock(key)

	existing, err := s.Repo.FindConflicts(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("admission: %w", err)
	}
	if len(existing) > 0 {
		return &models.AdmissionResult{
			Admitted:     false,
			ExistingSlot: existing[0].Slot,
		}, nil
	}

	booked := models.Booking{
		Service:      candidate.Service,
		Slot:         candidate.Slot,
		SelectedDate: candidate.SelectedDate,
		Email:        candidate.Email,
		Name:         candidate.Name,
		Price:        candidate.Price,
		Paid:         false,
	}
	if err := s.Repo.Create(ctx, &booked); err != nil {
		if errors.Is(err, bookingRepo.ErrDuplicateBooking) {
			// Lost a cross-process race; report it as the rejection the
			// earlier request would have produced.
			return s.rejectFromPrior(ctx, candidate)
		}
		return nil, fmt.Errorf("admission: %w", err)
	}

	s.Cache.Invalidate(ctx, candidate.SelectedDate)

	// Fire-and-forget: notification failure never rolls back the booking.
	if s.Notification != nil {
		if err := s.Notification.QueueBookingConfirmation(ctx, booked); err != nil {
			logger.Warn("failed to queue booking confirmation",
				zap.String("bookingId", booked.ID), zap.Error(err))
		}
		if err := s.Notification.QueueAppointmentReminder(ctx, booked); err != nil {
			logger.Warn("failed to queue appointment reminder",
				zap.String("bookingId", booked.ID), zap.Error(err))
		}
	}

	logger.Info("booking admitted",
		zap.String("bookingId", booked.ID),
		zap.String("service", booked.Service),
		zap.String("date", booked.SelectedDate),
		zap.String("slot", booked.Slot))
	return &models.AdmissionResult{Admitted: true, BookingID: booked.ID}, nil
}

func (s *DefaultBookingService) rejectFromPrior(ctx context.Context, candidate models.BookingCandidate) (*models.AdmissionResult, error) {
	prior, err := s.Repo.FindConflicts(ctx, candidate)
	if err != nil {
		return nil, fmt.Errorf("admission: %w", err)
	}
	if len(prior) == 0 {
		// The conflicting booking vanished between the failed insert and
		// the re-query; still a rejection, just without the slot detail.
		return &models.AdmissionResult{Admitted: false}, nil
	}
	return &models.AdmissionResult{Admitted: false, ExistingSlot: prior[0].Slot}, nil
}

func (s *DefaultBookingService) ListByEmail(ctx context.Context, email string) ([]models.Booking, error) {
	bookings, err := s.Repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("booking lookup: %w", err)
	}
	return bookings, nil
}

func (s *DefaultBookingService) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("booking lookup: %w", err)
	}
	return b, nil
}
