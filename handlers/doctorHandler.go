package handlers

import (
	"MediCitas/models"
	"MediCitas/services"
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type DoctorHandler struct {
	service services.DoctorService
}

func NewDoctorHandler(service services.DoctorService) *DoctorHandler {
	return &DoctorHandler{service: service}
}

// GetActive lists the bookable doctors for the public booking page.
func (h *DoctorHandler) GetActive(c *gin.Context) {
	doctors, err := h.service.GetAll(c.Request.Context(), false)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load doctors"})
		return
	}
	c.JSON(200, doctors)
}

// GetAll lists every doctor, trashed ones included, for the back office.
func (h *DoctorHandler) GetAll(c *gin.Context) {
	doctors, err := h.service.GetAll(c.Request.Context(), true)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load doctors"})
		return
	}
	c.JSON(200, doctors)
}

func (h *DoctorHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("doctor_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid doctor ID"})
		return
	}

	doctor, err := h.service.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Doctor not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load doctor"})
		return
	}
	c.JSON(200, doctor)
}

func (h *DoctorHandler) Create(c *gin.Context) {
	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.Create(c.Request.Context(), &doctor); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(201, doctor)
}

func (h *DoctorHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("doctor_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid doctor ID"})
		return
	}

	var doctor models.Doctor
	if err := c.ShouldBindJSON(&doctor); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	doctor.ID = uint(id)

	if err := h.service.Update(c.Request.Context(), &doctor); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Doctor not found"})
			return
		}
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, doctor)
}

func (h *DoctorHandler) Deactivate(c *gin.Context) {
	h.setActive(c, h.service.Deactivate, "Doctor deactivated")
}

func (h *DoctorHandler) Restore(c *gin.Context) {
	h.setActive(c, h.service.Restore, "Doctor restored")
}

func (h *DoctorHandler) setActive(c *gin.Context, op func(ctx context.Context, id uint) error, message string) {
	id, err := strconv.ParseUint(c.Param("doctor_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid doctor ID"})
		return
	}

	if err := op(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Doctor not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to update doctor status"})
		return
	}
	c.JSON(200, gin.H{"message": message})
}
