package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vistorias-api/internal/application/access"
	"github.com/jhoicas/vistorias-api/internal/application/analytics"
	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/infrastructure/memory"
)

var now = time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

func order(st entity.ServiceType, status entity.OrderStatus, created time.Time, sla time.Duration) *entity.ServiceOrder {
	return &entity.ServiceOrder{
		ServiceType: st,
		Status:      status,
		CreatedAt:   created,
		SLADeadline: created.Add(sla),
	}
}

func TestSummarize(t *testing.T) {
	orders := []*entity.ServiceOrder{
		order(entity.ServiceSOSPneu, entity.StatusAberta, now.Add(-3*time.Hour), 2*time.Hour),              // vencida
		order(entity.ServiceSOSBateria, entity.StatusFinalizada, now.Add(-5*time.Hour), 2*time.Hour),       // terminal, no vence
		order(entity.ServiceVistoria, entity.StatusEmExecucao, now.Add(-time.Hour), 24*time.Hour),          // en plazo
		order(entity.ServiceLaudo, entity.StatusCancelada, now.AddDate(0, -1, 0), 24*time.Hour),            // mes anterior
		order(entity.ServiceVistoria, entity.StatusAberta, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 0), // borde del mes
	}
	clients := []*entity.Client{{ID: "a"}, {ID: "b"}}
	bills := []*entity.Billing{
		{Amount: decimal.RequireFromString("100.10"), Status: entity.BillingPending},
		{Amount: decimal.RequireFromString("50.205"), Status: entity.BillingPending},
		{Amount: decimal.RequireFromString("80"), Status: entity.BillingOverdue},
		{Amount: decimal.RequireFromString("999"), Status: entity.BillingPaid},
	}

	s := analytics.Summarize(orders, clients, bills, now)

	assert.Equal(t, 5, s.TotalOrders)
	assert.Equal(t, 2, s.TotalClients)
	assert.Equal(t, 4, s.OrdersThisMonth)
	assert.Equal(t, 2, s.OverdueOrders)
	assert.Equal(t, 2, s.SOSOrders)
	assert.Equal(t, 2, s.VistoriaOrders)
	assert.Equal(t, 1, s.LaudoOrders)
	assert.Equal(t, 2, s.OrdersByStatus[entity.StatusAberta])
	assert.Equal(t, 0, s.OrdersByStatus[entity.StatusAprovada])
	assert.Len(t, s.OrdersByStatus, len(entity.AllStatuses))
	assert.True(t, s.PendingBilling.Equal(decimal.RequireFromString("150.31")), s.PendingBilling.String())
	assert.True(t, s.OverdueBilling.Equal(decimal.RequireFromString("80")))
	assert.Equal(t, "Março 2026", s.MonthLabel)
}

func TestSummarize_Vacio(t *testing.T) {
	s := analytics.Summarize(nil, nil, nil, now)
	assert.Zero(t, s.TotalOrders)
	assert.True(t, s.PendingBilling.IsZero())
	for _, st := range entity.AllStatuses {
		assert.Contains(t, s.OrdersByStatus, st)
	}
}

func TestSummarize_MesEnZonaHoraria(t *testing.T) {
	sp := time.FixedZone("BRT", -3*60*60)
	local := time.Date(2026, 4, 1, 1, 0, 0, 0, sp)
	// 31/03 23:30 en São Paulo ya es 01/04 en UTC; no cuenta como del mes.
	prev := order(entity.ServiceVistoria, entity.StatusAberta, time.Date(2026, 4, 1, 2, 30, 0, 0, time.UTC), 24*time.Hour)

	s := analytics.Summarize([]*entity.ServiceOrder{prev}, nil, nil, local)
	assert.Equal(t, 0, s.OrdersThisMonth)
	assert.Equal(t, "Abril 2026", s.MonthLabel)
}

func TestGetStats_Permisos(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	repos := store.Repos()
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c1", Name: "Eagle", IsActive: true}))
	for _, m := range []entity.Membership{
		{ID: "m1", UserID: "atendente", CompanyID: "c1", Role: entity.RoleAtendente, IsActive: true},
		{ID: "m2", UserID: "parceiro", CompanyID: "c1", Role: entity.RoleParceiro, IsActive: true},
	} {
		require.NoError(t, repos.Memberships.Create(ctx, &m))
	}
	store.AddBilling(entity.Billing{ID: "b1", CompanyID: "c1", Amount: decimal.NewFromInt(10), Status: entity.BillingPending})
	store.AddBilling(entity.Billing{ID: "b2", CompanyID: "c2", Amount: decimal.NewFromInt(99), Status: entity.BillingPending})

	uc := analytics.NewDashboardUseCase(access.NewGuard(repos.Memberships, repos.Companies), repos.Orders, repos.Clients, store.Billing()).
		WithClock(func() time.Time { return now })

	stats, err := uc.GetStats(ctx, "atendente", "c1")
	require.NoError(t, err)
	assert.True(t, stats.PendingBilling.Equal(decimal.NewFromInt(10)))

	_, err = uc.GetStats(ctx, "parceiro", "c1")
	assert.Equal(t, domain.KindInsufficientPermissions, domain.KindOf(err))

	_, err = uc.GetStats(ctx, "atendente", "c2")
	assert.Equal(t, domain.KindAccessDenied, domain.KindOf(err))
}
