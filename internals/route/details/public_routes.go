package details

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	eventRoute "chilume_backend/internals/features/events/route"
	eventService "chilume_backend/internals/features/events/service"
	homeRoute "chilume_backend/internals/features/home/route"
	regRoute "chilume_backend/internals/features/registrations/route"
	regService "chilume_backend/internals/features/registrations/service"
)

func PublicRoutes(public fiber.Router, store docstore.Store, catalog *eventService.Catalog, registrations *regService.Service) {
	homeRoute.HomePublicRoutes(public, catalog, store)
	eventRoute.EventPublicRoutes(public, catalog)
	regRoute.RegistrationRoutes(public, registrations, catalog)
}
