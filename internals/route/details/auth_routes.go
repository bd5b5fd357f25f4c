package details

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/configs"
	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/users/auth/identity"
	authRoute "chilume_backend/internals/features/users/auth/route"
)

func AuthRoutes(auth fiber.Router, provider identity.Provider, admins docstore.AdminStore, cfg configs.AppConfig) {
	authRoute.AuthRoutes(auth, provider, admins, cfg.AdminDefaultEmail, cfg.Environment == "production")
}
