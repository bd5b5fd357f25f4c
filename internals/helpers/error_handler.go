package helper

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"chilume_backend/internals/logger"
)

// FiberErrorHandler renders errors that escape a handler (unknown routes,
// body limits, returned *fiber.Error) in the standard error shape.
func FiberErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	logger.LogE("unhandled error", "method", c.Method(), "path", c.OriginalURL(), "error", err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal server error")
}
