package middlewares

import (
	"errors"
	"strings"

	"facturacion-admin/forms"
	"facturacion-admin/services"
	"facturacion-admin/views"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler centralizes error responses and keeps messages sanitized.
// Page requests get an HTML error page, everything else JSON.
func ErrorHandler(c *fiber.Ctx, err error) error {
	status, body := classify(c, err)
	if strings.HasPrefix(c.Path(), views.PagePrefix) {
		msg, _ := body["message"].(string)
		return renderError(c, status, msg)
	}
	return c.Status(status).JSON(body)
}

func classify(c *fiber.Ctx, err error) (int, fiber.Map) {
	// 1) Fiber errors (use their status code + message)
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, fiber.Map{"message": fe.Message}
	}

	// 2) Validation errors (422 + per-field info)
	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		out := make(map[string]string, len(ve))
		for _, fe := range ve {
			out[fe.Field()] = fe.Tag()
		}
		return fiber.StatusUnprocessableEntity, fiber.Map{
			"message": "validation failed",
			"errors":  out,
		}
	}

	// 3) Billing rule errors
	switch {
	case errors.Is(err, services.ErrNotFound):
		return fiber.StatusNotFound, fiber.Map{"message": err.Error()}
	case errors.Is(err, services.ErrInvalid):
		return fiber.StatusUnprocessableEntity, fiber.Map{"message": err.Error()}
	case errors.Is(err, services.ErrInvalidState):
		return fiber.StatusConflict, fiber.Map{"message": err.Error()}
	}

	// 4) Unknown errors (500)
	log.Error().Err(err).Str("path", c.Path()).Msg("internal error")
	return fiber.StatusInternalServerError, fiber.Map{"message": "internal server error"}
}

func renderError(c *fiber.Ctx, status int, msg string) error {
	page, err := views.RenderError(views.ErrorPage{
		Status:  status,
		Message: msg,
		BackURL: forms.ListingRoute,
	})
	if err != nil {
		log.Error().Err(err).Msg("rendering error page")
		return c.Status(status).SendString(msg)
	}
	c.Type("html", "utf-8")
	return c.Status(status).Send(page)
}
