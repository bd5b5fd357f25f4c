package route

import (
	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/users/auth/controller"
	"chilume_backend/internals/features/users/auth/identity"
	"chilume_backend/internals/middlewares"
	authMiddleware "chilume_backend/internals/middlewares/auth"
)

func AuthRoutes(router fiber.Router, provider identity.Provider, admins docstore.AdminStore, defaultEmail string, secureCookie bool) {
	ctrl := controller.NewAuthController(provider, admins, defaultEmail, secureCookie)

	router.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	router.Post("/logout", ctrl.Logout)
	router.Get("/me", authMiddleware.AuthMiddleware(provider, admins), ctrl.Me)
}
