// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/users/auth/identity"
	helper "chilume_backend/internals/helpers"
	"chilume_backend/internals/logger"
)

const (
	localsAdmin   = "admin"
	localsSession = "session"
	localsRole    = "userRole"

	AccessTokenCookie = "access_token"
)

// AuthMiddleware verifies the bearer token (or access_token cookie), then
// resolves the admin profile by the session email.
func AuthMiddleware(provider identity.Provider, admins docstore.AdminStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := ExtractBearerToken(c)
		if err != nil {
			return helper.JsonErrorCode(c, fiber.StatusUnauthorized, string(identity.CodeMissingToken), err.Error(), nil)
		}

		ctx := c.UserContext()
		session, err := provider.Verify(ctx, token)
		if err != nil {
			return respondAuthError(c, err)
		}

		admin, err := admins.FindAdminByEmail(ctx, session.Email)
		switch {
		case errors.Is(err, docstore.ErrNotFound):
			return helper.JsonErrorCode(c, fiber.StatusUnauthorized, string(identity.CodeUserNotFound),
				"No admin account found for this session.", nil)
		case err != nil:
			logger.LogE("admin lookup failed", "email", session.Email, "error", err)
			return helper.JsonError(c, fiber.StatusServiceUnavailable, "Could not load admin profile")
		case !admin.AdminIsActive:
			return helper.JsonErrorCode(c, fiber.StatusForbidden, string(identity.CodeUserDisabled),
				"This account has been disabled.", nil)
		}

		c.Locals(localsSession, session)
		c.Locals(localsAdmin, admin)
		c.Locals(localsRole, admin.AdminRole)
		return c.Next()
	}
}

// ExtractBearerToken reads "Authorization: Bearer <tok>" or falls back to the
// access_token cookie.
func ExtractBearerToken(c *fiber.Ctx) (string, error) {
	auth := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	if auth == "" {
		if tok := c.Cookies(AccessTokenCookie); tok != "" {
			auth = "Bearer " + tok
		}
	}
	if auth == "" {
		return "", errors.New("unauthorized - no token provided")
	}

	fields := strings.Fields(auth)
	if len(fields) < 2 || !strings.EqualFold(fields[0], "Bearer") {
		return "", errors.New("unauthorized - invalid token format")
	}
	tok := strings.Trim(strings.TrimSpace(fields[1]), "\"'")
	if tok == "" {
		return "", errors.New("unauthorized - empty token")
	}
	return tok, nil
}

// respondAuthError renders an identity error; anything else is a 500.
func respondAuthError(c *fiber.Ctx, err error) error {
	var ae *identity.AuthError
	if !errors.As(err, &ae) {
		logger.LogE("auth failed", "error", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "authentication failed")
	}
	status := fiber.StatusUnauthorized
	switch {
	case ae.Forbidden():
		status = fiber.StatusForbidden
	case ae.Code == identity.CodeUnknown || ae.Code == identity.CodeNotConfigured:
		logger.LogE("identity provider error", "code", ae.Code, "error", ae.Err)
		status = fiber.StatusServiceUnavailable
	}
	return helper.JsonErrorCode(c, status, string(ae.Code), ae.Message(), nil)
}

// RespondAuthError is shared with the auth controller.
func RespondAuthError(c *fiber.Ctx, err error) error {
	return respondAuthError(c, err)
}
