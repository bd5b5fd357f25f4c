package auth

import (
	"github.com/gofiber/fiber/v2"

	adminModel "chilume_backend/internals/features/users/admins/model"
	"chilume_backend/internals/features/users/auth/identity"
)

// CurrentAdmin returns the profile resolved by AuthMiddleware, or nil.
func CurrentAdmin(c *fiber.Ctx) *adminModel.AdminModel {
	a, _ := c.Locals(localsAdmin).(*adminModel.AdminModel)
	return a
}

func CurrentSession(c *fiber.Ctx) *identity.Session {
	s, _ := c.Locals(localsSession).(*identity.Session)
	return s
}
