// Package analytics contiene la agregación del Dashboard operativo de una empresa.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/vistorias-api/internal/application/access"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/lifecycle"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

// dashboardRoles pueden ver el dashboard.
var dashboardRoles = []entity.Role{entity.RoleAdmin, entity.RoleGestor, entity.RoleAtendente}

// DashboardUseCase agrega órdenes, clientes y cobros de una empresa.
//
// Solo lectura: no abre transacción; cada repositorio se consulta en paralelo.
type DashboardUseCase struct {
	guard   *access.Guard
	orders  repository.ServiceOrderRepository
	clients repository.ClientRepository
	billing repository.BillingRepository
	now     func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	guard *access.Guard,
	orders repository.ServiceOrderRepository,
	clients repository.ClientRepository,
	billing repository.BillingRepository,
) *DashboardUseCase {
	return &DashboardUseCase{guard: guard, orders: orders, clients: clients, billing: billing, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *DashboardUseCase) WithClock(now func() time.Time) *DashboardUseCase {
	uc.now = now
	return uc
}

// GetStats construye el DashboardStatsDTO para la empresa indicada.
//
// Tres consultas en paralelo:
//  1. órdenes de la empresa
//  2. clientes activos
//  3. cobros
func (uc *DashboardUseCase) GetStats(ctx context.Context, actorID, companyID string) (*dto.DashboardStatsDTO, error) {
	if _, err := uc.guard.Resolve(ctx, actorID, companyID, dashboardRoles...); err != nil {
		return nil, err
	}

	var (
		orders  []*entity.ServiceOrder
		clients []*entity.Client
		bills   []*entity.Billing
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if orders, err = uc.orders.ListByCompany(gctx, companyID); err != nil {
			return fmt.Errorf("dashboard: órdenes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if clients, err = uc.clients.ListActiveByCompany(gctx, companyID); err != nil {
			return fmt.Errorf("dashboard: clientes: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if bills, err = uc.billing.ListByCompany(gctx, companyID); err != nil {
			return fmt.Errorf("dashboard: cobros: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := Summarize(orders, clients, bills, uc.now())
	return &stats, nil
}

// Summarize agregación pura; now define el mes en curso y el vencimiento de SLA.
func Summarize(orders []*entity.ServiceOrder, clients []*entity.Client, bills []*entity.Billing, now time.Time) dto.DashboardStatsDTO {
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := dto.DashboardStatsDTO{
		TotalOrders:    len(orders),
		TotalClients:   len(clients),
		OrdersByStatus: make(map[entity.OrderStatus]int, len(entity.AllStatuses)),
		PendingBilling: decimal.Zero,
		OverdueBilling: decimal.Zero,
		MonthLabel:     monthLabel(now),
	}
	for _, s := range entity.AllStatuses {
		stats.OrdersByStatus[s] = 0
	}

	// ── Órdenes ────────────────────────────────────────────────────────────────
	for _, o := range orders {
		stats.OrdersByStatus[o.Status]++
		if !o.CreatedAt.Before(monthStart) {
			stats.OrdersThisMonth++
		}
		if lifecycle.IsOverdue(o, now) {
			stats.OverdueOrders++
		}
		switch {
		case o.ServiceType.IsRoadside():
			stats.SOSOrders++
		case o.ServiceType == entity.ServiceVistoria:
			stats.VistoriaOrders++
		case o.ServiceType == entity.ServiceLaudo:
			stats.LaudoOrders++
		}
	}

	// ── Cobros ─────────────────────────────────────────────────────────────────
	for _, b := range bills {
		switch b.Status {
		case entity.BillingPending:
			stats.PendingBilling = stats.PendingBilling.Add(b.Amount)
		case entity.BillingOverdue:
			stats.OverdueBilling = stats.OverdueBilling.Add(b.Amount)
		}
	}
	stats.PendingBilling = stats.PendingBilling.Round(2)
	stats.OverdueBilling = stats.OverdueBilling.Round(2)
	return stats
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Março 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Janeiro", "Fevereiro", "Março", "Abril", "Maio", "Junho",
		"Julho", "Agosto", "Setembro", "Outubro", "Novembro", "Dezembro",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
