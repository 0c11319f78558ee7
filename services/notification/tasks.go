package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"clinicportal/models"

	"github.com/hibiken/asynq"
)

const (
	TypeConfirmationSend = "booking:confirmation"
	TypeReminderSend     = "booking:reminder"
)

// DefaultNotificationService enqueues email tasks on the asynq queue; the
// email worker picks them up out of the request path.
type DefaultNotificationService struct {
	Client *asynq.Client
}

func payloadFor(booking models.Booking) models.BookingEmailPayload {
	return models.BookingEmailPayload{
		BookingID:    booking.ID,
		Email:        booking.Email,
		Name:         booking.Name,
		Service:      booking.Service,
		Slot:         booking.Slot,
		SelectedDate: booking.SelectedDate,
	}
}

func (s *DefaultNotificationService) QueueBookingConfirmation(ctx context.Context, booking models.Booking) error {
	b, err := json.Marshal(payloadFor(booking))
	if err != nil {
		return fmt.Errorf("marshal confirmation payload: %w", err)
	}
	task := asynq.NewTask(TypeConfirmationSend, b)
	if _, err := s.Client.EnqueueContext(ctx, task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("enqueue confirmation: %w", err)
	}
	return nil
}

func (s *DefaultNotificationService) QueueAppointmentReminder(ctx context.Context, booking models.Booking) error {
	appointmentDay, err := time.ParseInLocation("2006-01-02", booking.SelectedDate, time.Local)
	if err != nil {
		// Free-form dates cannot be scheduled; skip rather than fail.
		return nil
	}
	fireAt := appointmentDay.AddDate(0, 0, -1).Add(9 * time.Hour)
	if fireAt.Before(time.Now()) {
		return nil
	}

	b, err := json.Marshal(payloadFor(booking))
	if err != nil {
		return fmt.Errorf("marshal reminder payload: %w", err)
	}
	task := asynq.NewTask(TypeReminderSend, b)
	if _, err := s.Client.EnqueueContext(ctx, task, asynq.ProcessAt(fireAt), asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("enqueue reminder: %w", err)
	}
	return nil
}
