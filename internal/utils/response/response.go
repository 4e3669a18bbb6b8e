package response

import (
	"log"

	domainerrors "dilspay/internal/errors"

	"github.com/gofiber/fiber/v2"
)

func Success(c *fiber.Ctx, message string, data interface{}) error {
	return c.JSON(fiber.Map{
		"message": message,
		"data":    data,
	})
}

func Error(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}

func BadRequest(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusBadRequest, message)
}

func Unauthorized(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusUnauthorized, message)
}

func NotFound(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusNotFound, message)
}

func ServerError(c *fiber.Ctx, message string) error {
	return Error(c, fiber.StatusInternalServerError, message)
}

// Domain maps a DomainError to its HTTP status, keeping the machine-readable
// code in the body. Internal faults are logged but never detailed to the
// caller.
func Domain(c *fiber.Ctx, err error) error {
	de, ok := domainerrors.AsDomain(err)
	if !ok {
		log.Printf("internal error: %v", err)
		return ServerError(c, "internal error")
	}

	status := fiber.StatusInternalServerError
	switch de.Kind {
	case domainerrors.KindValidation:
		status = fiber.StatusBadRequest
	case domainerrors.KindAuth:
		status = fiber.StatusUnauthorized
	case domainerrors.KindNotFound:
		status = fiber.StatusNotFound
	case domainerrors.KindConflict:
		status = fiber.StatusConflict
	case domainerrors.KindIntegrity:
		log.Printf("integrity fault: %s: %s", de.Code, de.Message)
		return c.Status(status).JSON(fiber.Map{
			"error": "internal error",
			"code":  "INTERNAL",
		})
	}

	return c.Status(status).JSON(fiber.Map{
		"error": de.Message,
		"code":  de.Code,
	})
}
