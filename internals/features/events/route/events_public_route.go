package route

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/features/events/controller"
	"chilume_backend/internals/features/events/service"
)

func EventPublicRoutes(api fiber.Router, catalog *service.Catalog) {
	ctrl := controller.NewEventController(catalog)

	events := api.Group("/events")
	events.Get("/", ctrl.ListEvents)
	events.Get("/:id", ctrl.GetEventByID)
}
