package repository

import (
	"context"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// MembershipRepository persistencia de membresías usuario-empresa.
type MembershipRepository interface {
	Create(ctx context.Context, m *entity.Membership) error
	Update(ctx context.Context, m *entity.Membership) error
	// GetByUserAndCompany devuelve la membresía (activa o no) o nil.
	GetByUserAndCompany(ctx context.Context, userID, companyID string) (*entity.Membership, error)
	// ListActiveByUser membresías activas de un usuario en todas sus empresas.
	ListActiveByUser(ctx context.Context, userID string) ([]*entity.Membership, error)
}
