package handlers

import (
	"net/http"
	"time"

	"brightwash/services/availability"
	"brightwash/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AvailabilityHandler serves the bookable-slots endpoint.
type AvailabilityHandler struct {
	Service availability.Service
}

// NewAvailabilityHandler constructs an AvailabilityHandler.
func NewAvailabilityHandler(svc availability.Service) *AvailabilityHandler {
	return &AvailabilityHandler{Service: svc}
}

// GetAvailability returns the ordered ISO-8601 start times for a service.
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	service := c.Query("service")
	if service == "" {
		utils.JSONError(c, http.StatusBadRequest, "Missing required query parameter: service", "")
		return
	}

	slots, err := h.Service.AvailableSlots(c.Request.Context(), service)
	if err != nil {
		utils.GetLogger().Error("availability lookup failed",
			zap.String("service", service), zap.Error(err))
		utils.JSONError(c, http.StatusServiceUnavailable,
			"Scheduling temporarily unavailable", "Please contact support if this persists.")
		return
	}

	starts := make([]string, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Format(time.RFC3339))
	}

	c.JSON(http.StatusOK, gin.H{
		"service": service,
		"slots":   starts,
	})
}
