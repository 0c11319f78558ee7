package handlers

import (
	"net/http"

	"clinicportal/models"
	"clinicportal/services/appointment"
	"clinicportal/utils"

	"github.com/gin-gonic/gin"
)

// AppointmentHandler serves availability reads.
type AppointmentHandler struct {
	Availability appointment.AvailabilityService
}

func NewAppointmentHandler(svc appointment.AvailabilityService) *AppointmentHandler {
	return &AppointmentHandler{Availability: svc}
}

// GetAppointments returns every appointment option with the open slots for
// the requested date. GET /appointments?date=<d>
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	date := c.Query("date")

	options, err := h.Availability.ResolveAvailability(c.Request.Context(), date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: options})
}

// GetSpecialties returns the name-only option projection. GET /specialty
func (h *AppointmentHandler) GetSpecialties(c *gin.Context) {
	refs, err := h.Availability.ListSpecialties(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: refs})
}
