package route

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/participants/controller"
)

func ParticipantAdminRoutes(admin fiber.Router, store docstore.ParticipantStore) {
	ctrl := controller.NewParticipantController(store)
	admin.Get("/participants", ctrl.ListParticipants)
}
