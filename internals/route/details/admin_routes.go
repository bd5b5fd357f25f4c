package details

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	dashboardRoute "chilume_backend/internals/features/dashboard/route"
	eventRoute "chilume_backend/internals/features/events/route"
	eventService "chilume_backend/internals/features/events/service"
	expenseRoute "chilume_backend/internals/features/expenses/route"
	participantRoute "chilume_backend/internals/features/participants/route"
)

func AdminRoutes(admin fiber.Router, store docstore.Store, catalog *eventService.Catalog) {
	dashboardRoute.DashboardAdminRoutes(admin, store, catalog)
	eventRoute.EventAdminRoutes(admin, store, catalog)
	participantRoute.ParticipantAdminRoutes(admin, store)
	expenseRoute.ExpenseAdminRoutes(admin, store)
}
