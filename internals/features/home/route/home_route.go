package route

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	eventService "chilume_backend/internals/features/events/service"
	"chilume_backend/internals/features/home/controller"
	"chilume_backend/internals/features/home/service"
)

func HomePublicRoutes(api fiber.Router, catalog *eventService.Catalog, participants docstore.ParticipantStore) {
	ctrl := controller.NewHomeController(service.NewService(catalog, participants))
	api.Get("/home", ctrl.GetHome)
}
