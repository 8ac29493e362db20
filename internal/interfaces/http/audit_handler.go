package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vistorias-api/internal/application/audit"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
)

// AuditHandler consultas sobre la bitácora de auditoría.
type AuditHandler struct {
	uc *audit.QueryUseCase
}

// NewAuditHandler construye el handler.
func NewAuditHandler(uc *audit.QueryUseCase) *AuditHandler {
	return &AuditHandler{uc: uc}
}

// List entradas de la empresa, más recientes primero.
// GET /api/companies/:companyId/audit-log?limit=&offset=
func (h *AuditHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_INPUT", Message: "paginación inválida"})
	}
	out, err := h.uc.ListByCompany(c.UserContext(), GetUserID(c), c.Params("companyId"), page)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// EntityHistory historial cronológico de una entidad.
// GET /api/companies/:companyId/audit-log/:entityType/:entityId
func (h *AuditHandler) EntityHistory(c *fiber.Ctx) error {
	out, err := h.uc.EntityHistory(c.UserContext(), GetUserID(c),
		c.Params("companyId"), c.Params("entityType"), c.Params("entityId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
