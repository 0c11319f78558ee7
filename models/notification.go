package models

// BookingEmailPayload is the queued payload for confirmation and reminder
// email tasks. It carries everything the worker needs so it never has to
// read the booking back from storage.
type BookingEmailPayload struct {
	BookingID    string `json:"bookingId"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Service      string `json:"service"`
	Slot         string `json:"slot"`
	SelectedDate string `json:"selectedDate"`
}
