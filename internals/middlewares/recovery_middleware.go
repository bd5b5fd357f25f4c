package middlewares

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"chilume_backend/internals/logger"
)

// RecoveryMiddleware turns a panic into a 500 and logs it with the request id.
func RecoveryMiddleware() fiber.Handler {
	return recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			logger.LogE("panic recovered",
				"request_id", c.Locals(LocalsRequestID),
				"method", c.Method(),
				"path", c.Path(),
				"panic", fmt.Sprint(e),
			)
		},
	})
}
