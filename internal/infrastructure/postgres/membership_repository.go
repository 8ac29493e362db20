package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

var _ repository.MembershipRepository = (*MembershipRepo)(nil)

// MembershipRepo membresías usuario-empresa (usable con pool o tx).
type MembershipRepo struct {
	q Querier
}

// NewMembershipRepository construye el adaptador.
func NewMembershipRepository(q Querier) *MembershipRepo {
	return &MembershipRepo{q: q}
}

const membershipColumns = `id, user_id, company_id, role, is_active, created_at, updated_at`

// Create persiste una membresía. (user_id, company_id) es único.
func (r *MembershipRepo) Create(ctx context.Context, m *entity.Membership) error {
	query := `INSERT INTO memberships (` + membershipColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.UserID, m.CompanyID, m.Role, m.IsActive, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "memberships_user_company_key") {
			return domain.New(domain.KindConflict, "membresía duplicada para usuario y empresa")
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// Update cambia rol y estado.
func (r *MembershipRepo) Update(ctx context.Context, m *entity.Membership) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE memberships SET role = $2, is_active = $3, updated_at = $4 WHERE id = $1`,
		m.ID, m.Role, m.IsActive, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update membership: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.New(domain.KindNotFound, "membresía no encontrada")
	}
	return nil
}

// GetByUserAndCompany devuelve la membresía o nil.
func (r *MembershipRepo) GetByUserAndCompany(ctx context.Context, userID, companyID string) (*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships WHERE user_id = $1 AND company_id = $2`
	var m entity.Membership
	err := r.q.QueryRow(ctx, query, userID, companyID).Scan(
		&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// ListActiveByUser membresías activas del usuario, más antiguas primero.
func (r *MembershipRepo) ListActiveByUser(ctx context.Context, userID string) ([]*entity.Membership, error) {
	query := `SELECT ` + membershipColumns + ` FROM memberships
		WHERE user_id = $1 AND is_active ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()

	var list []*entity.Membership
	for rows.Next() {
		var m entity.Membership
		if err := rows.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.IsActive, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
