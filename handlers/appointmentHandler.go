package handlers

import (
	"MediCitas/middlewares"
	"MediCitas/services"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service services.AppointmentService
}

func NewAppointmentHandler(service services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

// Calendar returns the occupied slots of one doctor as calendar events.
func (h *AppointmentHandler) Calendar(c *gin.Context) {
	idStr := c.Param("doctor_id")
	doctorID, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid doctor ID"})
		return
	}

	events, err := h.service.CalendarForDoctor(c.Request.Context(), uint(doctorID))
	if err != nil {
		middlewares.HttpError(c, "Failed to load appointments", 500, err)
		return
	}
	c.JSON(200, events)
}

// Cancel soft-deletes an appointment so its slot opens up again.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, err := appointmentID(c)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid appointment ID"})
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Appointment not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to cancel appointment"})
		return
	}
	c.JSON(200, gin.H{"message": "Appointment cancelled"})
}

func (h *AppointmentHandler) Restore(c *gin.Context) {
	id, err := appointmentID(c)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid appointment ID"})
		return
	}

	if err := h.service.Restore(c.Request.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Appointment not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to restore appointment"})
		return
	}
	c.JSON(200, gin.H{"message": "Appointment restored"})
}

func appointmentID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("appointment_id"), 10, 32)
	return uint(id), err
}
