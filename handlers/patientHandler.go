package handlers

import (
	"MediCitas/models"
	"MediCitas/services"
	"context"
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PatientHandler struct {
	service services.PatientService
}

func NewPatientHandler(service services.PatientService) *PatientHandler {
	return &PatientHandler{service: service}
}

// Search powers the predictive national-id field on the booking form.
// An empty query returns an empty list rather than the whole roster.
func (h *PatientHandler) Search(c *gin.Context) {
	patients, err := h.service.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to search patients"})
		return
	}
	c.JSON(200, patients)
}

func (h *PatientHandler) GetByNationalID(c *gin.Context) {
	patient, err := h.service.GetByNationalID(c.Request.Context(), c.Param("national_id"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Patient not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to load patient"})
		return
	}
	c.JSON(200, patient)
}

func (h *PatientHandler) GetAll(c *gin.Context) {
	includeInactive := c.Query("include_inactive") == "true"
	patients, err := h.service.GetAll(c.Request.Context(), includeInactive)
	if err != nil {
		c.JSON(500, gin.H{"error": "Failed to load patients"})
		return
	}
	c.JSON(200, patients)
}

func (h *PatientHandler) Create(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.Create(c.Request.Context(), &patient); err != nil {
		switch {
		case errors.Is(err, services.ErrPatientExists):
			c.JSON(409, gin.H{"error": err.Error()})
		case errors.Is(err, services.ErrInvalidNationalID),
			errors.Is(err, services.ErrInvalidPhone):
			c.JSON(400, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": "Failed to create patient"})
		}
		return
	}
	c.JSON(201, patient)
}

func (h *PatientHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("patient_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid patient ID"})
		return
	}

	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}
	patient.ID = uint(id)

	if err := h.service.Update(c.Request.Context(), &patient); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(404, gin.H{"error": "Patient not found"})
		case errors.Is(err, services.ErrInvalidPhone):
			c.JSON(400, gin.H{"error": err.Error()})
		default:
			c.JSON(500, gin.H{"error": "Failed to update patient"})
		}
		return
	}
	c.JSON(200, patient)
}

// Deactivate trashes the patient and cascades to their appointments.
func (h *PatientHandler) Deactivate(c *gin.Context) {
	h.setActive(c, h.service.Deactivate, "Patient deactivated")
}

// Restore revives the patient record. Appointments trashed by the cascade
// stay trashed.
func (h *PatientHandler) Restore(c *gin.Context) {
	h.setActive(c, h.service.Restore, "Patient restored")
}

func (h *PatientHandler) setActive(c *gin.Context, op func(ctx context.Context, id uint) error, message string) {
	id, err := strconv.ParseUint(c.Param("patient_id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid patient ID"})
		return
	}

	if err := op(c.Request.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(404, gin.H{"error": "Patient not found"})
			return
		}
		c.JSON(500, gin.H{"error": "Failed to update patient status"})
		return
	}
	c.JSON(200, gin.H{"message": message})
}
