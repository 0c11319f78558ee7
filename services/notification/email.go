package notification

import (
	"context"
	"fmt"

	"clinicportal/models"
	"clinicportal/utils"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"go.uber.org/zap"
)

// EmailSender delivers a single email. Implementations can be swapped
// without touching the queue or the worker.
type EmailSender interface {
	Send(ctx context.Context, to, toName, subject, plain, html string) error
}

// SendGridSender sends email through the SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

// NewSendGridSender builds a SendGrid-backed sender. Returns nil when no API
// key is configured, which downgrades email to a logged no-op.
func NewSendGridSender(apiKey, fromEmail, fromName string) *SendGridSender {
	if apiKey == "" {
		return nil
	}
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *SendGridSender) Send(ctx context.Context, to, toName, subject, plain, html string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail(toName, to)
	message := mail.NewSingleEmail(from, subject, recipient, plain, html)

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid send failed: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", response.StatusCode)
	}
	utils.GetLogger().Info("email sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}

// ComposeConfirmation renders the confirmation email for a booking payload.
func ComposeConfirmation(p models.BookingEmailPayload) (subject, plain, html string) {
	subject = "Appointment at Doctors Portal"
	plain = fmt.Sprintf("Hello %s", p.Name)
	html = fmt.Sprintf(`<h3>Your appointment is confirmed</h3>
<div>
<p>Your appointment for %s at %s on %s is confirmed. Please be there on time.</p>
<p><strong>With Regards</strong></p>
<p>Doctors Portal Team</p>
</div>`, p.Service, p.Slot, p.SelectedDate)
	return subject, plain, html
}

// ComposeReminder renders the day-before reminder email.
func ComposeReminder(p models.BookingEmailPayload) (subject, plain, html string) {
	subject = "Appointment reminder"
	plain = fmt.Sprintf("Hello %s", p.Name)
	html = fmt.Sprintf(`<h3>Your appointment is tomorrow</h3>
<div>
<p>This is a reminder of your appointment for %s at %s on %s.</p>
<p><strong>With Regards</strong></p>
<p>Doctors Portal Team</p>
</div>`, p.Service, p.Slot, p.SelectedDate)
	return subject, plain, html
}
