package serverutils

import (
	"errors"
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

func ErrorResponse(message string) fiber.Map {
	return fiber.Map{"error": message}
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorf("[PANIC RECOVERED] %v\n%s", r, debug.Stack())
				err = c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(ErrInternal.Error()))
			}
		}()

		err = c.Next()
		if err == nil {
			return nil
		}

		log.Warnf("[%s %s] %v", c.Method(), c.OriginalURL(), err)

		// not found carries no body
		if errors.Is(err, ErrNotFound) {
			c.Status(fiber.StatusNotFound)
			return nil
		}
		if errors.Is(err, ErrMalformattedId) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(ErrMalformattedId.Error()))
		}

		var missing *MissingFieldError
		if errors.As(err, &missing) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(missing.Error()))
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse(ve.Error()))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return c.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		log.Errorf("[ERROR] %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(ErrInternal.Error()))
	}
}

// UnknownEndpoint answers every request that no route claimed.
func UnknownEndpoint(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(ErrorResponse(ErrUnknownRoute.Error()))
}
