package route

import (
	"github.com/gofiber/fiber/v2"

	eventService "chilume_backend/internals/features/events/service"
	"chilume_backend/internals/features/registrations/controller"
	"chilume_backend/internals/features/registrations/service"
	"chilume_backend/internals/middlewares"
)

func RegistrationRoutes(api fiber.Router, svc *service.Service, catalog *eventService.Catalog) {
	ctrl := controller.NewRegistrationController(svc, catalog)

	api.Get("/register", ctrl.FormContext)
	api.Post("/registrations", middlewares.RegisterRateLimiter(), ctrl.Submit)
	api.Get("/registration-success", ctrl.Success)
}
