package route

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/dashboard/controller"
	eventService "chilume_backend/internals/features/events/service"
)

func DashboardAdminRoutes(admin fiber.Router, store docstore.Store, catalog *eventService.Catalog) {
	ctrl := controller.NewDashboardController(catalog, store, store)
	admin.Get("/dashboard", ctrl.GetDashboard)
}
