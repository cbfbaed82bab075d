package handlers

import (
	"MediCitas/middlewares"
	"MediCitas/models"
	"MediCitas/services"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	service services.SettingsService
}

func NewSettingsHandler(service services.SettingsService) *SettingsHandler {
	return &SettingsHandler{service: service}
}

func (h *SettingsHandler) Get(c *gin.Context) {
	settings, err := h.service.Get(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Failed to load clinic settings", 500, err)
		return
	}
	c.JSON(200, settings)
}

func (h *SettingsHandler) Update(c *gin.Context) {
	var settings models.ClinicSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		c.JSON(400, gin.H{"error": "Invalid request body"})
		return
	}

	if err := h.service.Update(c.Request.Context(), &settings); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, settings)
}
