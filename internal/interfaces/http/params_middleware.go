package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/vistorias-api/internal/application/dto"
)

// RequireUUIDParams rechaza con 400 las rutas cuyos parámetros de path no son UUID.
// Se monta por ruta (los params solo existen una vez resuelta la ruta).
//
// Comportamiento:
//   - 400 Bad Request → parámetro vacío o con formato inválido.
//   - Si todos son válidos, continúa con el handler.
func RequireUUIDParams(names ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		for _, name := range names {
			if _, err := uuid.Parse(c.Params(name)); err != nil {
				return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
					Code:    "INVALID_INPUT",
					Message: name + " debe ser un UUID válido",
				})
			}
		}
		return c.Next()
	}
}
