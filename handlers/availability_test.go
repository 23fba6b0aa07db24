package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"brightwash/services/availability"
)

func availabilityRouter(svc availability.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/availability", NewAvailabilityHandler(svc).GetAvailability)
	return r
}

type stubAvailability struct {
	slots []time.Time
	err   error
}

func (s *stubAvailability) AvailableSlots(ctx context.Context, service string) ([]time.Time, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.slots, nil
}

func TestGetAvailabilityReturnsOrderedStarts(t *testing.T) {
	svc := &stubAvailability{slots: []time.Time{
		time.Date(2026, 9, 8, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 9, 8, 9, 30, 0, 0, time.UTC),
	}}
	r := availabilityRouter(svc)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?service=Express+Wash", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body %s", w.Code, w.Body.String())
	}
	var resp struct {
		Service string   `json:"service"`
		Slots   []string `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp.Service != "Express Wash" {
		t.Fatalf("service = %q", resp.Service)
	}
	want := []string{"2026-09-08T09:00:00Z", "2026-09-08T09:30:00Z"}
	if len(resp.Slots) != len(want) || resp.Slots[0] != want[0] || resp.Slots[1] != want[1] {
		t.Fatalf("slots = %v, want %v", resp.Slots, want)
	}
}

func TestGetAvailabilityEmptyIsStillOK(t *testing.T) {
	r := availabilityRouter(&stubAvailability{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?service=Unknown", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var resp struct {
		Slots []string `json:"slots"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response json: %v", err)
	}
	if resp.Slots == nil || len(resp.Slots) != 0 {
		t.Fatalf("slots = %v, want empty array", resp.Slots)
	}
}

func TestGetAvailabilityRequiresService(t *testing.T) {
	r := availabilityRouter(&stubAvailability{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability", nil))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestGetAvailabilityCalendarFailureIs503(t *testing.T) {
	r := availabilityRouter(&stubAvailability{err: errors.New("calendar api 500")})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/availability?service=Express+Wash", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}
