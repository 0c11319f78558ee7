package models

import "time"

// Booking is an admitted appointment. It references a ServiceOption by name
// and occupies one of that option's slots on SelectedDate. Paid and
// TransactionID are set only when a payment is recorded; bookings are never
// deleted in the normal flow.
type Booking struct {
	ID            string    `bson:"id" json:"id"`
	Service       string    `bson:"service" json:"service"`
	Slot          string    `bson:"slot" json:"slot"`
	SelectedDate  string    `bson:"selectedDate" json:"selectedDate"`
	Email         string    `bson:"email" json:"email"`
	Name          string    `bson:"name" json:"name"`
	Price         float64   `bson:"price" json:"price"`
	Paid          bool      `bson:"paid" json:"paid"`
	TransactionID string    `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// BookingCandidate is the client-supplied payload for an admission attempt.
type BookingCandidate struct {
	Service      string  `json:"service"`
	SelectedDate string  `json:"selectedDate"`
	Email        string  `json:"email"`
	Slot         string  `json:"slot"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
}

// AdmissionResult reports the outcome of an admission attempt. A rejected
// candidate is a normal outcome, not an error: ExistingSlot names the slot
// already held by the conflicting booking.
type AdmissionResult struct {
	Admitted     bool   `json:"admitted"`
	BookingID    string `json:"bookingId,omitempty"`
	ExistingSlot string `json:"existingSlot,omitempty"`
}
