package handlers

import (
	"net/http"

	"clinicportal/models"
	"clinicportal/services/doctor"
	"clinicportal/utils"

	"github.com/gin-gonic/gin"
)

// DoctorHandler serves roster management, admin gated by the router.
type DoctorHandler struct {
	Doctors doctor.DoctorService
}

func NewDoctorHandler(svc doctor.DoctorService) *DoctorHandler {
	return &DoctorHandler{Doctors: svc}
}

// AddDoctor creates a roster entry. POST /doctors (admin)
func (h *DoctorHandler) AddDoctor(c *gin.Context) {
	var input models.Doctor
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid doctor payload")
		return
	}

	created, err := h.Doctors.AddDoctor(c.Request.Context(), input)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusCreated, models.APIResponse{Success: true, Message: "Doctor Added", Data: created})
}

// GetDoctors lists the roster. GET /doctors (admin)
func (h *DoctorHandler) GetDoctors(c *gin.Context) {
	doctors, err := h.Doctors.ListDoctors(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Data: doctors})
}

// DeleteDoctor removes a roster entry. DELETE /doctors/:id (admin)
func (h *DoctorHandler) DeleteDoctor(c *gin.Context) {
	if err := h.Doctors.RemoveDoctor(c.Request.Context(), c.Param("id")); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}

	c.JSON(http.StatusOK, models.APIResponse{Success: true, Message: "Deletion successful"})
}
