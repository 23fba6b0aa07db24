package routes

import (
	"time"

	"brightwash/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// HandlerBundle carries the assembled handlers for route registration.
type HandlerBundle struct {
	Availability *handlers.AvailabilityHandler
	Booking      *handlers.BookingHandler
	Sweep        *handlers.SweepHandler
}

// RegisterSchedulingRoutes registers the availability and booking endpoints.
func RegisterSchedulingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api")
	{
		api.GET("/availability", hb.Availability.GetAvailability)
		api.POST("/bookings", hb.Booking.CreateBooking)
		api.GET("/bookings", hb.Booking.ListBookings)
		api.DELETE("/bookings/:id", hb.Booking.CancelBooking)
	}
}

// RegisterInternalRoutes registers operator-facing endpoints. These are not
// exposed publicly; deployment keeps them behind the internal load balancer.
func RegisterInternalRoutes(r *gin.Engine, hb *HandlerBundle) {
	internal := r.Group("/internal")
	{
		internal.POST("/weather-sweep", hb.Sweep.RunWeatherSweep)
	}
}

// RegisterHealthRoute registers the health probe endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes wires up CORS and every route group.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterSchedulingRoutes(r, hb)
	RegisterInternalRoutes(r, hb)
	RegisterHealthRoute(r)
}
