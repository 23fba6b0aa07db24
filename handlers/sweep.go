package handlers

import (
	"net/http"

	"brightwash/services/alerts"
	"brightwash/utils"

	"github.com/gin-gonic/gin"
)

// SweepHandler serves the operator-facing weather sweep trigger.
type SweepHandler struct {
	Sweeper alerts.Scheduler
}

// NewSweepHandler constructs a SweepHandler.
func NewSweepHandler(sweeper alerts.Scheduler) *SweepHandler {
	return &SweepHandler{Sweeper: sweeper}
}

// RunWeatherSweep triggers a sweep over upcoming appointments.
func (h *SweepHandler) RunWeatherSweep(c *gin.Context) {
	result, err := h.Sweeper.RunWeatherSweep(c.Request.Context())
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable, "weather sweep failed", err.Error())
		return
	}
	c.JSON(http.StatusOK, result)
}
