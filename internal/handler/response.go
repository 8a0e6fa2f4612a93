package handler

import (
	"context"
	"errors"

	"employee-directory/internal/domain"
	"employee-directory/internal/logging"

	"github.com/gofiber/fiber/v2"
)

// Auth routes answer errors as {"msg": ...}, employee routes as
// {"error": ...}; the client reads whichever its route uses.
const (
	authErrorKey     = "msg"
	employeeErrorKey = "error"
)

func respondError(c *fiber.Ctx, log logging.Logger, key string, err error) error {
	code, msg := domain.StatusOf(err)
	if code >= fiber.StatusInternalServerError {
		log.Error(c.UserContext(), "request failed",
			"method", c.Method(), "path", c.Path(), "status", code, "error", err)
	}
	return c.Status(code).JSON(fiber.Map{key: msg})
}

// ErrorHandler is the app-wide fallback for errors returned by handlers or
// raised by fiber itself (unknown route, body too large).
func ErrorHandler(log logging.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(fiber.Map{"error": fe.Message})
		}

		code, msg := domain.StatusOf(err)
		if code >= fiber.StatusInternalServerError {
			log.Error(context.Background(), "unhandled error", "path", c.Path(), "error", err)
		}
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}
