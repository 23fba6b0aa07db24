package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"brightwash/models"
	"brightwash/services/booking"
	"brightwash/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves booking commit, cancel and listing endpoints.
type BookingHandler struct {
	Coordinator booking.Coordinator
}

// NewBookingHandler constructs a BookingHandler.
func NewBookingHandler(coordinator booking.Coordinator) *BookingHandler {
	return &BookingHandler{Coordinator: coordinator}
}

type bookingRequest struct {
	Service  string              `json:"service" binding:"required"`
	Start    string              `json:"start" binding:"required"` // RFC 3339
	Customer models.CustomerInfo `json:"customer" binding:"required"`
}

// CreateBooking commits a booking for the requested slot.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var input bookingRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	start, err := time.Parse(time.RFC3339, input.Start)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start time", "start must be RFC 3339")
		return
	}

	appt, err := h.Coordinator.Commit(c.Request.Context(), input.Service, start, input.Customer)
	if err != nil {
		var conflict *booking.ConflictError
		if errors.As(err, &conflict) {
			utils.JSONError(c, http.StatusConflict,
				"That time was just taken", "Please pick another slot.")
			return
		}
		var upstream *booking.UpstreamError
		if errors.As(err, &upstream) {
			utils.JSONError(c, http.StatusServiceUnavailable,
				"Scheduling temporarily unavailable", "Please contact support if this persists.")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "booking failed", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"appointmentId":  appt.ID,
		"confirmedStart": appt.Start.Format(time.RFC3339),
	})
}

// CancelBooking removes a booking's calendar hold and marks it cancelled.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id := c.Param("id")

	if err := h.Coordinator.Cancel(c.Request.Context(), id); err != nil {
		var upstream *booking.UpstreamError
		if errors.As(err, &upstream) {
			utils.JSONError(c, http.StatusServiceUnavailable,
				"Scheduling temporarily unavailable", "Please contact support if this persists.")
			return
		}
		utils.JSONError(c, http.StatusNotFound, "appointment not found", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"cancelled": id})
}

// ListBookings returns confirmed appointments in the next N days (default 14).
func (h *BookingHandler) ListBookings(c *gin.Context) {
	days := 14
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			utils.JSONError(c, http.StatusBadRequest, "invalid days parameter", "")
			return
		}
		days = parsed
	}

	appts, err := h.Coordinator.ListUpcoming(c.Request.Context(), days)
	if err != nil {
		utils.JSONError(c, http.StatusServiceUnavailable,
			"Scheduling temporarily unavailable", "Please contact support if this persists.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"appointments": appts})
}
