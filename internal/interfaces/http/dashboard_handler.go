package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/vistorias-api/internal/application/analytics"
)

// DashboardHandler maneja los indicadores de la empresa.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetStats devuelve los indicadores del mes en curso.
// GET /api/companies/:companyId/dashboard
//
// Respuesta: DashboardStatsDTO (órdenes totales, del mes, abiertas, atrasadas,
// por familia de servicio, clientes activos, cobros pendientes y vencidos).
// Las fechas se calculan en el servidor.
func (h *DashboardHandler) GetStats(c *fiber.Ctx) error {
	stats, err := h.uc.GetStats(c.UserContext(), GetUserID(c), c.Params("companyId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(stats)
}
