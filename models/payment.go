package models

import "time"

// Payment records a settled charge against a booking. TransactionID comes
// from the payment provider; the referenced booking is marked paid when the
// payment is recorded.
type Payment struct {
	ID            string    `bson:"id" json:"id"`
	BookingID     string    `bson:"booking" json:"booking"`
	Email         string    `bson:"email" json:"email"`
	Price         float64   `bson:"price" json:"price"`
	TransactionID string    `bson:"transactionId" json:"transactionId"`
	CreatedAt     time.Time `bson:"createdAt" json:"createdAt"`
}

// PaymentIntentRequest asks the provider for a client secret covering the
// booking price. Price is in the major currency unit.
type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}
