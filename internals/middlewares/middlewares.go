package middlewares

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/utils"

	"chilume_backend/internals/configs"
	"chilume_backend/internals/logger"
	accessLog "chilume_backend/internals/middlewares/logger"
)

const LocalsRequestID = "reqid"

// RequestContext tags the request with an id and bounds every downstream
// store call by timeout through the user context.
func RequestContext(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = utils.UUID()
		}
		c.Set("X-Request-ID", id)
		c.Locals(LocalsRequestID, id)

		start := time.Now()
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)

		err := c.Next()
		if dur := time.Since(start); dur > timeout/2 {
			logger.LogW("slow request", "request_id", id, "method", c.Method(),
				"path", c.OriginalURL(), "status", c.Response().StatusCode(), "duration", dur.String())
		}
		return err
	}
}

func SetupMiddlewares(app *fiber.App, cfg configs.AppConfig) {
	app.Use(RequestContext(cfg.RequestTimeout))
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware(cfg.CorsOrigin))
	app.Use(accessLog.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
