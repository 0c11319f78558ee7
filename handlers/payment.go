package handlers

import (
	"net/http"

	"clinicportal/models"
	"clinicportal/services/payment"
	"clinicportal/utils"

	"github.com/gin-gonic/gin"
)

// PaymentHandler serves payment-intent creation and payment recording.
type PaymentHandler struct {
	Payments payment.PaymentService
}

func NewPaymentHandler(svc payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{Payments: svc}
}

// CreatePaymentIntent returns a Stripe client secret for the booking price.
// POST /create-payment-intent (auth)
func (h *PaymentHandler) CreatePaymentIntent(c *gin.Context) {
	var input models.PaymentIntentRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payment payload")
		return
	}

	clientSecret, err := h.Payments.CreatePaymentIntent(c.Request.Context(), input.Price)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"clientSecret": clientSecret})
}

// RecordPayment stores a settled payment and flags the booking paid.
// POST /payments (auth)
func (h *PaymentHandler) RecordPayment(c *gin.Context) {
	var input models.Payment
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payment payload")
		return
	}

	recorded, err := h.Payments.RecordPayment(c.Request.Context(), input)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: "Payment successful", Data: recorded})
}
