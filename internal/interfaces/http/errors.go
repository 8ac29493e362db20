package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/domain"
)

type errorMapping struct {
	status int
	code   string
}

// kindStatus única tabla Kind -> HTTP.
var kindStatus = map[domain.Kind]errorMapping{
	domain.KindUnauthenticated:         {fiber.StatusUnauthorized, "UNAUTHENTICATED"},
	domain.KindAccessDenied:            {fiber.StatusForbidden, "ACCESS_DENIED"},
	domain.KindInsufficientPermissions: {fiber.StatusForbidden, "INSUFFICIENT_PERMISSIONS"},
	domain.KindNotFound:                {fiber.StatusNotFound, "NOT_FOUND"},
	domain.KindConflict:                {fiber.StatusConflict, "CONFLICT"},
	domain.KindInvalidInput:            {fiber.StatusBadRequest, "INVALID_INPUT"},
	domain.KindInvalidTransition:       {fiber.StatusConflict, "INVALID_TRANSITION"},
}

// writeError traduce un error de caso de uso a respuesta JSON. Los errores sin Kind se
// registran y salen como 500 sin filtrar el detalle.
func writeError(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		if m, ok := kindStatus[de.Kind]; ok {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: de.Message})
		}
	}
	RequestLogger(c).Error().Err(err).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

// ErrorHandler para fiber.Config: rutas inexistentes, métodos no permitidos y errores no capturados.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_" + fiberCode(fe.Code), Message: fe.Message})
	}
	return writeError(c, err)
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "BODY_TOO_LARGE"
	case fiber.StatusBadRequest:
		return "BAD_REQUEST"
	}
	return "ERROR"
}
