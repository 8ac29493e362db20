package audit_test

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vistorias-api/internal/application/access"
	"github.com/jhoicas/vistorias-api/internal/application/audit"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/infrastructure/memory"
)

func newRecorder(t *testing.T) *audit.Recorder {
	t.Helper()
	node, err := snowflake.NewNode(7)
	require.NoError(t, err)
	return audit.NewRecorder(node)
}

func TestRecord_SerializaPayloads(t *testing.T) {
	store := memory.NewStore()
	rec := newRecorder(t)
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	err := rec.Record(context.Background(), store.Repos().AuditLog, audit.Entry{
		CompanyID:  "c1",
		ActorID:    "u1",
		Action:     entity.ActionUpdateOrderStatus,
		EntityType: entity.EntityServiceOrders,
		EntityID:   "o1",
		Old:        audit.StatusValues{Status: entity.StatusAberta},
		New:        audit.StatusValues{Status: entity.StatusDespachada, Notes: "ok"},
	}, at)
	require.NoError(t, err)

	entries := store.AuditEntries()
	require.Len(t, entries, 1)
	e := entries[0]
	assert.NotZero(t, e.ID)
	assert.Equal(t, "u1", e.UserID)
	assert.True(t, e.CreatedAt.Equal(at))
	assert.JSONEq(t, `{"status":"aberta"}`, string(e.OldValues))
	assert.Contains(t, string(e.NewValues), `"despachada"`)
}

func TestRecord_SinOldEsNulo(t *testing.T) {
	store := memory.NewStore()
	err := newRecorder(t).Record(context.Background(), store.Repos().AuditLog, audit.Entry{
		CompanyID: "c1", ActorID: "u1", Action: entity.ActionCreateCompany,
		EntityType: entity.EntityCompanies, EntityID: "c1",
		New: audit.CompanyValues{Name: "Eagle"},
	}, time.Now())
	require.NoError(t, err)

	e := store.AuditEntries()[0]
	assert.Nil(t, e.OldValues)
	assert.JSONEq(t, `{"name":"Eagle"}`, string(e.NewValues))
}

func TestRecord_PropagaErrorDelRepositorio(t *testing.T) {
	store := memory.NewStore()
	store.FailNextAuditAppend(errors.New("sin espacio"))

	err := newRecorder(t).Record(context.Background(), store.Repos().AuditLog, audit.Entry{
		Action: entity.ActionCreateClient,
	}, time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), entity.ActionCreateClient)
	assert.Empty(t, store.AuditEntries())
}

func TestRecord_IDsCrecientes(t *testing.T) {
	store := memory.NewStore()
	rec := newRecorder(t)
	for i := 0; i < 5; i++ {
		require.NoError(t, rec.Record(context.Background(), store.Repos().AuditLog, audit.Entry{
			CompanyID: "c1", Action: entity.ActionCreateClient, EntityType: entity.EntityClients, EntityID: strconv.Itoa(i),
		}, time.Now()))
	}
	entries := store.AuditEntries()
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].ID, entries[i-1].ID)
	}
}

func seedQuery(t *testing.T) (*audit.QueryUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()
	now := time.Now()
	repos := store.Repos()
	require.NoError(t, repos.Companies.Create(ctx, &entity.Company{ID: "c1", Name: "Eagle", IsActive: true, CreatedAt: now, UpdatedAt: now}))
	for _, m := range []entity.Membership{
		{ID: "m1", UserID: "admin", CompanyID: "c1", Role: entity.RoleAdmin, IsActive: true},
		{ID: "m2", UserID: "atendente", CompanyID: "c1", Role: entity.RoleAtendente, IsActive: true},
	} {
		m.CreatedAt, m.UpdatedAt = now, now
		require.NoError(t, repos.Memberships.Create(ctx, &m))
	}

	rec := newRecorder(t)
	record := func(company, entityID, action string) {
		require.NoError(t, rec.Record(ctx, repos.AuditLog, audit.Entry{
			CompanyID: company, ActorID: "admin", Action: action,
			EntityType: entity.EntityServiceOrders, EntityID: entityID,
		}, now))
	}
	record("c1", "o1", entity.ActionCreateServiceOrder)
	record("c1", "o1", entity.ActionUpdateOrderStatus)
	record("c2", "o1", entity.ActionAssignPartner)
	record("c1", "o2", entity.ActionCreateServiceOrder)

	return audit.NewQueryUseCase(access.NewGuard(repos.Memberships, repos.Companies), repos.AuditLog), store
}

func TestListByCompany_RecientesPrimeroYPaginado(t *testing.T) {
	uc, _ := seedQuery(t)
	ctx := context.Background()

	res, err := uc.ListByCompany(ctx, "admin", "c1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 3)
	assert.Equal(t, 20, res.Page.Limit)
	assert.Equal(t, "o2", res.Items[0].EntityID)
	assert.Equal(t, entity.ActionCreateServiceOrder, res.Items[2].Action)
	for _, it := range res.Items {
		assert.Equal(t, "c1", it.CompanyID)
		_, err := strconv.ParseInt(it.ID, 10, 64)
		assert.NoError(t, err, "el ID snowflake viaja como string decimal")
	}

	page, err := uc.ListByCompany(ctx, "admin", "c1", dto.PageRequest{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, entity.ActionUpdateOrderStatus, page.Items[0].Action)

	_, err = uc.ListByCompany(ctx, "atendente", "c1", dto.PageRequest{})
	assert.Equal(t, domain.KindInsufficientPermissions, domain.KindOf(err))
}

func TestEntityHistory_FiltraPorEmpresa(t *testing.T) {
	uc, _ := seedQuery(t)

	list, err := uc.EntityHistory(context.Background(), "admin", "c1", entity.EntityServiceOrders, "o1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, entity.ActionCreateServiceOrder, list[0].Action)
	assert.Equal(t, entity.ActionUpdateOrderStatus, list[1].Action)

	_, err = uc.EntityHistory(context.Background(), "admin", "c2", entity.EntityServiceOrders, "o1")
	assert.Equal(t, domain.KindAccessDenied, domain.KindOf(err))
}
