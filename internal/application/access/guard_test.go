package access_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vistorias-api/internal/application/access"
	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/infrastructure/memory"
)

func seedMembership(t *testing.T, store *memory.Store, id, userID, companyID string, role entity.Role, active bool) {
	t.Helper()
	now := time.Now()
	err := store.Repos().Memberships.Create(context.Background(), &entity.Membership{
		ID: id, UserID: userID, CompanyID: companyID, Role: role, IsActive: active,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
}

func seedCompany(t *testing.T, store *memory.Store, id string, active bool) {
	t.Helper()
	now := time.Now()
	err := store.Repos().Companies.Create(context.Background(), &entity.Company{
		ID: id, Name: "Empresa " + id, IsActive: active, CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
}

func newGuard(store *memory.Store) *access.Guard {
	return access.NewGuard(store.Repos().Memberships, store.Repos().Companies)
}

func TestResolve(t *testing.T) {
	store := memory.NewStore()
	seedCompany(t, store, "c1", true)
	seedCompany(t, store, "c2", true)
	seedMembership(t, store, "m1", "u-admin", "c1", entity.RoleAdmin, true)
	seedMembership(t, store, "m2", "u-parceiro", "c1", entity.RoleParceiro, true)
	seedMembership(t, store, "m3", "u-inactivo", "c1", entity.RoleGestor, false)
	guard := newGuard(store)
	ctx := context.Background()

	tests := []struct {
		name     string
		actor    string
		company  string
		required []entity.Role
		wantKind domain.Kind
		wantRole entity.Role
	}{
		{name: "admin sin restricción", actor: "u-admin", company: "c1", wantRole: entity.RoleAdmin},
		{name: "admin con AdminRoles", actor: "u-admin", company: "c1", required: entity.AdminRoles, wantRole: entity.RoleAdmin},
		{name: "parceiro sin AdminRoles", actor: "u-parceiro", company: "c1", required: entity.AdminRoles, wantKind: domain.KindInsufficientPermissions},
		{name: "parceiro como staff", actor: "u-parceiro", company: "c1", required: entity.StaffRoles, wantRole: entity.RoleParceiro},
		{name: "membresía inactiva", actor: "u-inactivo", company: "c1", wantKind: domain.KindAccessDenied},
		{name: "otra empresa", actor: "u-admin", company: "c2", wantKind: domain.KindAccessDenied},
		{name: "sin actor", actor: "", company: "c1", wantKind: domain.KindUnauthenticated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			acc, err := guard.Resolve(ctx, tt.actor, tt.company, tt.required...)
			if tt.wantKind != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantKind, domain.KindOf(err))
				assert.Nil(t, acc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, acc.Role)
			assert.Equal(t, tt.company, acc.CompanyID)
			assert.Equal(t, tt.actor, acc.ActorID)
		})
	}
}

func TestResolve_EmpresaDesactivada(t *testing.T) {
	store := memory.NewStore()
	seedCompany(t, store, "c1", false)
	seedMembership(t, store, "m1", "u-admin", "c1", entity.RoleAdmin, true)
	seedMembership(t, store, "m2", "u-parceiro", "c1", entity.RoleParceiro, true)
	guard := newGuard(store)
	ctx := context.Background()

	_, err := guard.Resolve(ctx, "u-admin", "c1")
	assert.ErrorIs(t, err, domain.ErrCompanyInactive)
	assert.Equal(t, domain.KindAccessDenied, domain.KindOf(err))

	acc, err := guard.ResolveIncludingInactive(ctx, "u-admin", "c1", entity.AdminRoles...)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, acc.Role)

	// Los roles se siguen exigiendo.
	_, err = guard.ResolveIncludingInactive(ctx, "u-parceiro", "c1", entity.AdminRoles...)
	assert.Equal(t, domain.KindInsufficientPermissions, domain.KindOf(err))
}

func TestResolve_EmpresaInexistente(t *testing.T) {
	store := memory.NewStore()
	seedMembership(t, store, "m1", "u-admin", "fantasma", entity.RoleAdmin, true)

	_, err := newGuard(store).Resolve(context.Background(), "u-admin", "fantasma")
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestAccess_IsAdmin(t *testing.T) {
	assert.True(t, (&access.Access{Role: entity.RoleAdmin}).IsAdmin())
	assert.True(t, (&access.Access{Role: entity.RoleGestor}).IsAdmin())
	assert.False(t, (&access.Access{Role: entity.RoleAtendente}).IsAdmin())
	assert.False(t, (&access.Access{Role: entity.RoleClient}).IsAdmin())
}
