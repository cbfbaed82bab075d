package handlers

import (
	"MediCitas/services"
	"errors"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	scheduler services.Scheduler
}

func NewBookingHandler(scheduler services.Scheduler) *BookingHandler {
	return &BookingHandler{scheduler: scheduler}
}

// Book creates or edits an appointment. The request carries the patient
// snapshot together with the slot, so one call handles walk-ins and
// returning patients alike.
func (h *BookingHandler) Book(c *gin.Context) {
	var req services.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	appointment, message, err := h.scheduler.Schedule(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(404, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrSlotOccupied),
			errors.Is(err, services.ErrInvalidPhone),
			errors.Is(err, services.ErrInvalidNationalID),
			errors.Is(err, services.ErrInvalidInterval):
			c.JSON(400, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": "Failed to schedule appointment"})
		}
		return
	}

	c.JSON(201, gin.H{
		"message":        message,
		"appointment_id": appointment.ID,
	})
}
