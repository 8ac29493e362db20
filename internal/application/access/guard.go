// Package access implementa la guarda de acceso: resuelve el rol de un actor en una empresa
// a partir de su membresía activa. Nunca confía en un rol enviado por el cliente.
package access

import (
	"context"
	"fmt"

	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

// Access resultado de una resolución exitosa.
type Access struct {
	ActorID   string
	CompanyID string
	Role      entity.Role
}

// IsAdmin admin o gestor.
func (a *Access) IsAdmin() bool { return a.Role.In(entity.AdminRoles) }

// Guard resuelve accesos contra membresías y empresas. Solo lectura.
type Guard struct {
	memberships repository.MembershipRepository
	companies   repository.CompanyRepository
}

// NewGuard construye la guarda.
func NewGuard(memberships repository.MembershipRepository, companies repository.CompanyRepository) *Guard {
	return &Guard{memberships: memberships, companies: companies}
}

// Resolve devuelve el rol del actor en la empresa.
//   - ErrUnauthenticated si actorID está vacío.
//   - ErrAccessDenied si no hay membresía activa.
//   - ErrCompanyNotFound si la empresa no existe.
//   - ErrCompanyInactive si la empresa está desactivada.
//   - ErrInsufficientPermissions si se pasan roles y el del actor no está entre ellos.
func (g *Guard) Resolve(ctx context.Context, actorID, companyID string, required ...entity.Role) (*Access, error) {
	return g.resolve(ctx, actorID, companyID, false, required)
}

// ResolveIncludingInactive igual que Resolve pero admite empresas desactivadas.
// Solo para reactivarlas y consultar su historial.
func (g *Guard) ResolveIncludingInactive(ctx context.Context, actorID, companyID string, required ...entity.Role) (*Access, error) {
	return g.resolve(ctx, actorID, companyID, true, required)
}

func (g *Guard) resolve(ctx context.Context, actorID, companyID string, allowInactive bool, required []entity.Role) (*Access, error) {
	if actorID == "" {
		return nil, domain.ErrUnauthenticated
	}
	m, err := g.memberships.GetByUserAndCompany(ctx, actorID, companyID)
	if err != nil {
		return nil, fmt.Errorf("resolver acceso: %w", err)
	}
	if m == nil || !m.IsActive {
		return nil, domain.ErrAccessDenied
	}
	c, err := g.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("resolver empresa: %w", err)
	}
	if c == nil {
		return nil, domain.ErrCompanyNotFound
	}
	if !c.IsActive && !allowInactive {
		return nil, domain.ErrCompanyInactive
	}
	if len(required) > 0 && !m.Role.In(required) {
		return nil, domain.ErrInsufficientPermissions
	}
	return &Access{ActorID: actorID, CompanyID: companyID, Role: m.Role}, nil
}
