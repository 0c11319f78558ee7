package notification

import (
	"context"

	"clinicportal/models"
)

// NotificationService queues outbound booking email. Queueing (and sending)
// is best effort: callers treat failures as log-worthy, never fatal.
type NotificationService interface {
	// QueueBookingConfirmation enqueues the confirmation email for an
	// admitted booking, delivered as soon as a worker picks it up.
	QueueBookingConfirmation(ctx context.Context, booking models.Booking) error
	// QueueAppointmentReminder enqueues a reminder email scheduled for the
	// day before the appointment. Dates already in the past are skipped.
	QueueAppointmentReminder(ctx context.Context, booking models.Booking) error
}
