package handlers

import (
	"MediCitas/middlewares"
	"MediCitas/services"

	"github.com/gin-gonic/gin"
)

type StatsHandler struct {
	service services.StatsService
}

func NewStatsHandler(service services.StatsService) *StatsHandler {
	return &StatsHandler{service: service}
}

// Totals returns the active doctor/patient/appointment counts for the
// dashboard cards.
func (h *StatsHandler) Totals(c *gin.Context) {
	stats, err := h.service.Totals(c.Request.Context())
	if err != nil {
		middlewares.HttpError(c, "Failed to load stats", 500, err)
		return
	}
	c.JSON(200, stats)
}
