package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"vapor/internal/repositories"
	"vapor/internal/services"
)

// ok writes the success envelope with the payload under key.
func ok(c *fiber.Ctx, message, key string, payload interface{}) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"Success": true,
		"Message": message,
		key:       payload,
	})
}

// fail writes the failure envelope.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"Success": false,
		"Message": message,
	})
}

// failWith maps a service error onto a status. Unexpected errors are logged
// and answered with a generic message.
func failWith(c *fiber.Ctx, err error, action string) error {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		return fail(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		return fail(c, fiber.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, services.ErrValidation):
		return fail(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		return fail(c, fiber.StatusConflict, err.Error())
	}
	log.Printf("Error while trying to %s: %v", action, err)
	return fail(c, fiber.StatusInternalServerError, fmt.Sprintf("Could not %s", action))
}

// parseBody decodes the request body into out and, when validate is non-nil,
// checks its struct tags. It writes the 400 response itself and reports
// whether the handler may continue.
func parseBody(c *fiber.Ctx, validate *validator.Validate, out interface{}) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		log.Printf("Error parsing request body: %v", err)
		return false, fail(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if validate == nil {
		return true, nil
	}
	if err := validate.Struct(out); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, fail(c, fiber.StatusBadRequest, err.Error())
		}
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"Success": false,
			"Message": "Validation failed",
			"Errors":  errorMessages,
		})
	}
	return true, nil
}

// chain drops unset middleware so routes can be registered without it in tests.
func chain(handlers ...fiber.Handler) []fiber.Handler {
	out := make([]fiber.Handler, 0, len(handlers))
	for _, h := range handlers {
		if h != nil {
			out = append(out, h)
		}
	}
	return out
}
