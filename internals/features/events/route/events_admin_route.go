package route

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/events/controller"
	"chilume_backend/internals/features/events/service"
)

func EventAdminRoutes(admin fiber.Router, store docstore.EventStore, catalog *service.Catalog) {
	ctrl := controller.NewEventAdminController(store, catalog)

	events := admin.Group("/events")
	events.Post("/", ctrl.CreateEvent)
	events.Patch("/:id", ctrl.UpdateEvent)
	events.Put("/:id/winners", ctrl.SetWinners)
	events.Get("/:id/roster.csv", ctrl.ExportRosterCSV)
}
