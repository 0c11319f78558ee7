package payment

import (
	"context"
	"fmt"
	"math"

	bookingRepo "clinicportal/database/repository/booking"
	paymentRepo "clinicportal/database/repository/payment"
	"clinicportal/models"
	"clinicportal/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// PaymentService creates provider payment intents and records settled
// charges against bookings.
type PaymentService interface {
	// CreatePaymentIntent asks Stripe for a card payment intent covering
	// the price and returns its client secret.
	CreatePaymentIntent(ctx context.Context, price float64) (string, error)
	// RecordPayment persists a settled payment and marks the referenced
	// booking paid with the provider transaction ID.
	RecordPayment(ctx context.Context, payment models.Payment) (*models.Payment, error)
}

// DefaultPaymentService is the production implementation.
type DefaultPaymentService struct {
	Payments paymentRepo.PaymentRepository
	Bookings bookingRepo.BookingRepository
}

func (s *DefaultPaymentService) CreatePaymentIntent(ctx context.Context, price float64) (string, error) {
	if price <= 0 {
		return "", fmt.Errorf("price must be positive")
	}

	// Stripe amounts are in the minor unit.
	amount := int64(math.Round(price * 100))
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(string(stripe.CurrencyUSD)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("payment intent: %w", err)
	}
	return pi.ClientSecret, nil
}

func (s *DefaultPaymentService) RecordPayment(ctx context.Context, payment models.Payment) (*models.Payment, error) {
	if payment.BookingID == "" || payment.TransactionID == "" {
		return nil, fmt.Errorf("booking and transactionId are required")
	}

	if err := s.Payments.Create(ctx, &payment); err != nil {
		return nil, fmt.Errorf("payment record: %w", err)
	}

	if err := s.Bookings.MarkPaid(ctx, payment.BookingID, payment.TransactionID); err != nil {
		// The payment document survives; the booking flag is retried by
		// the caller or reconciled manually.
		utils.GetLogger().Error("failed to flag booking paid",
			zap.String("bookingId", payment.BookingID), zap.Error(err))
		return nil, fmt.Errorf("payment record: %w", err)
	}

	utils.GetLogger().Info("payment recorded",
		zap.String("paymentId", payment.ID),
		zap.String("bookingId", payment.BookingID))
	return &payment, nil
}
