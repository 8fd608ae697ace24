package api

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/furniture-configurator/domain/apperr"
)

var statusByCode = map[apperr.Code]int{
	apperr.CodeNotFound:          fiber.StatusNotFound,
	apperr.CodeInvalidSelection:  fiber.StatusUnprocessableEntity,
	apperr.CodeNoProductSelected: fiber.StatusConflict,
	apperr.CodeIncompatible:      fiber.StatusUnprocessableEntity,
	apperr.CodeInvalidQuantity:   fiber.StatusBadRequest,
	apperr.CodeInvalidSetting:    fiber.StatusBadRequest,
}

// writeError maps a domain error to its HTTP status.
func (m *Module) writeError(c *fiber.Ctx, err error) error {
	code := apperr.CodeOf(err)
	status, ok := statusByCode[code]
	if !ok {
		m.logger.Error("Request failed", "method", c.Method(), "path", c.Path(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error:   string(apperr.CodeInternal),
			Message: "Internal Server Error",
		})
	}
	return c.Status(status).JSON(ErrorResponse{
		Error:   string(code),
		Message: err.Error(),
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   "invalid_request",
		Message: message,
	})
}
