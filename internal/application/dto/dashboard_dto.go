package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// DashboardStatsDTO respuesta de GET /api/companies/:companyId/dashboard.
type DashboardStatsDTO struct {
	TotalOrders     int                        `json:"totalOrders"`
	TotalClients    int                        `json:"totalClients"` // solo activos
	OrdersThisMonth int                        `json:"ordersThisMonth"`
	OverdueOrders   int                        `json:"overdueOrders"`
	OrdersByStatus  map[entity.OrderStatus]int `json:"ordersByStatus"`

	// Suma de cobros por estado
	PendingBilling decimal.Decimal `json:"pendingBilling"`
	OverdueBilling decimal.Decimal `json:"overdueBilling"`

	// Por familia de servicio
	SOSOrders      int `json:"sosOrders"`
	VistoriaOrders int `json:"vistoriaOrders"`
	LaudoOrders    int `json:"laudoOrders"`

	MonthLabel string `json:"monthLabel"` // ej. "Março 2026"
}
