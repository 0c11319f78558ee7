package notification

import (
	"testing"

	"clinicportal/models"

	"github.com/stretchr/testify/assert"
)

func TestComposeConfirmation(t *testing.T) {
	subject, plain, html := ComposeConfirmation(models.BookingEmailPayload{
		Name:         "Alice",
		Service:      "Cavity Filling",
		Slot:         "10:00",
		SelectedDate: "2024-01-10",
	})

	assert.Equal(t, "Appointment at Doctors Portal", subject)
	assert.Equal(t, "Hello Alice", plain)
	assert.Contains(t, html, "Cavity Filling at 10:00 on 2024-01-10")
	assert.Contains(t, html, "confirmed")
}

func TestComposeReminder(t *testing.T) {
	subject, _, html := ComposeReminder(models.BookingEmailPayload{
		Name:         "Alice",
		Service:      "Cavity Filling",
		Slot:         "10:00",
		SelectedDate: "2024-01-10",
	})

	assert.Equal(t, "Appointment reminder", subject)
	assert.Contains(t, html, "tomorrow")
	assert.Contains(t, html, "Cavity Filling at 10:00 on 2024-01-10")
}

func TestNewSendGridSenderWithoutKey(t *testing.T) {
	assert.Nil(t, NewSendGridSender("", "clinic@x.com", "Clinic"))
}
