package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	helper "chilume_backend/internals/helpers"
)

func limitByIP(max int, window time.Duration, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return helper.JsonError(c, fiber.StatusTooManyRequests, message)
		},
	})
}

// Global limiter for every endpoint
func GlobalRateLimiter() fiber.Handler {
	return limitByIP(100, time.Minute, "Too many requests. Please try again later.")
}

// Stricter limiter for admin sign-in
func LoginRateLimiter() fiber.Handler {
	return limitByIP(5, time.Minute, "Too many sign-in attempts. Please wait a moment.")
}

// Limiter for participant registration submits
func RegisterRateLimiter() fiber.Handler {
	return limitByIP(10, 5*time.Minute, "Too many registration attempts. Please wait a few minutes.")
}
