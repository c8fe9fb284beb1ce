package routers

import (
	"time"
	"tokenbook-service/internal/app/delivery/http/controllers"
	"tokenbook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, appointmentController *controllers.AppointmentController) {
	// The booking write path gets a tighter per-IP budget than the global
	// limiter, with a cool-off for clients that keep hammering.
	bookingLimiter := newBookingRateLimiter()

	router.With(middlewares.Authenticate, bookingLimiter.Limit).Post("/", appointmentController.BookAppointment)
	router.With(middlewares.Authenticate).Get("/{appointmentID}", appointmentController.FindByID)
	router.With(middlewares.Authenticate).Patch("/{appointmentID}/status", appointmentController.UpdateStatus)
}

func newBookingRateLimiter() *middlewares.RateLimiter {
	return middlewares.NewRateLimiter(5, time.Second, 30*time.Second)
}
