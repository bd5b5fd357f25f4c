package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/docstore"
	"chilume_backend/internals/features/users/auth/identity"
	helper "chilume_backend/internals/helpers"
	"chilume_backend/internals/logger"
	authMiddleware "chilume_backend/internals/middlewares/auth"
)

type AuthController struct {
	Provider     identity.Provider
	Admins       docstore.AdminStore
	DefaultEmail string
	SecureCookie bool
}

func NewAuthController(provider identity.Provider, admins docstore.AdminStore, defaultEmail string, secureCookie bool) *AuthController {
	return &AuthController{
		Provider:     provider,
		Admins:       admins,
		DefaultEmail: defaultEmail,
		SecureCookie: secureCookie,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login
// Email may be omitted; the organizer key then signs in the default admin.
func (ac *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = ac.DefaultEmail
	}
	if strings.TrimSpace(req.Password) == "" {
		return helper.JsonValidationError(c, map[string][]string{"password": {"password is required"}})
	}

	session, err := ac.Provider.SignIn(c.UserContext(), email, req.Password)
	if err != nil {
		logger.LogW("sign in rejected", "email", email, "error", err)
		return authMiddleware.RespondAuthError(c, err)
	}

	ac.setAccessCookie(c, session.Token, session.ExpiresAt)
	return helper.JsonOK(c, "Signed in", fiber.Map{
		"access_token": session.Token,
		"expires_at":   session.ExpiresAt,
		"admin": fiber.Map{
			"admin_id": session.AdminID,
			"email":    session.Email,
			"role":     session.Role,
		},
	})
}

// POST /api/auth/logout
func (ac *AuthController) Logout(c *fiber.Ctx) error {
	if tok, err := authMiddleware.ExtractBearerToken(c); err == nil {
		if err := ac.Provider.SignOut(c.UserContext(), tok); err != nil {
			logger.LogW("sign out failed", "error", err)
		}
	}
	ac.setAccessCookie(c, "", time.Now().Add(-time.Hour))
	return helper.JsonOK(c, "Signed out", nil)
}

// GET /api/auth/me
func (ac *AuthController) Me(c *fiber.Ctx) error {
	admin := authMiddleware.CurrentAdmin(c)
	session := authMiddleware.CurrentSession(c)
	if admin == nil || session == nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}
	return helper.JsonOK(c, "ok", fiber.Map{
		"admin":      admin,
		"expires_at": session.ExpiresAt,
	})
}

func (ac *AuthController) setAccessCookie(c *fiber.Ctx, value string, expires time.Time) {
	sameSite := fiber.CookieSameSiteLaxMode
	if ac.SecureCookie {
		sameSite = fiber.CookieSameSiteNoneMode
	}
	c.Cookie(&fiber.Cookie{
		Name:     authMiddleware.AccessTokenCookie,
		Value:    value,
		HTTPOnly: true,
		Secure:   ac.SecureCookie,
		SameSite: sameSite,
		Path:     "/",
		Expires:  expires,
	})
}
