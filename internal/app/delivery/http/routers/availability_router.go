package routers

import (
	"tokenbook-service/internal/app/delivery/http/controllers"
	"tokenbook-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, _ *middlewares.Middlewares, availabilityController *controllers.AvailabilityController) {
	router.Get("/{doctorID}", availabilityController.GetDailyAvailability)
}
