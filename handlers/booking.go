package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"clinicportal/middleware"
	"clinicportal/models"
	"clinicportal/services/booking"
	"clinicportal/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves admission and booking queries.
type BookingHandler struct {
	Bookings booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Bookings: svc}
}

// CreateBooking admits a prospective booking. POST /bookings
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var candidate models.BookingCandidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking payload")
		return
	}

	result, err := h.Bookings.AdmitBooking(c.Request.Context(), candidate)
	if err != nil {
		var vErr *booking.ValidationError
		if errors.As(err, &vErr) {
			utils.JSONError(c, http.StatusBadRequest, vErr.Message)
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	if !result.Admitted {
		msg := "You already have a booking for this service on this date"
		if result.ExistingSlot != "" {
			msg = fmt.Sprintf("You already have a booking at %s", result.ExistingSlot)
		}
		c.JSON(http.StatusOK, models.APIResponse{
			Success: false,
			Message: msg,
		})
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{
		Success: true,
		Message: "Booking Confirmed",
		Data:    result,
	})
}

// GetBookings lists the caller's own bookings. GET /bookings?email=<e>
func (h *BookingHandler) GetBookings(c *gin.Context) {
	email := c.Query("email")
	caller := middleware.CallerEmail(c)

	if email == "" {
		email = caller
	}
	if email != caller {
		utils.JSONError(c, http.StatusForbidden, "forbidden access")
		return
	}

	bookings, err := h.Bookings.ListByEmail(c.Request.Context(), email)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: bookings})
}

// GetBookingByID returns one of the caller's bookings. GET /bookings/:id
func (h *BookingHandler) GetBookingByID(c *gin.Context) {
	id := c.Param("id")

	b, err := h.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	if b == nil {
		utils.JSONError(c, http.StatusNotFound, "booking not found")
		return
	}
	if b.Email != middleware.CallerEmail(c) {
		utils.JSONError(c, http.StatusForbidden, "forbidden access")
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: b})
}
