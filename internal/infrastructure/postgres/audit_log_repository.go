package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

var _ repository.AuditLogRepository = (*AuditLogRepo)(nil)

// AuditLogRepo bitácora append-only: solo INSERT y SELECT.
type AuditLogRepo struct {
	q Querier
}

// NewAuditLogRepository construye el adaptador.
func NewAuditLogRepository(q Querier) *AuditLogRepo {
	return &AuditLogRepo{q: q}
}

const auditColumns = `id, company_id, user_id, action, entity_type, entity_id, old_values, new_values, created_at`

// Append inserta la entrada.
func (r *AuditLogRepo) Append(ctx context.Context, e *entity.AuditLogEntry) error {
	query := `INSERT INTO audit_logs (` + auditColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.CompanyID, e.UserID, e.Action, e.EntityType, e.EntityID,
		nullJSON(e.OldValues), nullJSON(e.NewValues), e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByCompany entradas de la empresa, más recientes primero (el ID snowflake ordena por tiempo).
func (r *AuditLogRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_logs WHERE company_id = $1 ORDER BY id DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, companyID, limit, offset)
}

// ListByEntity historial cronológico de una entidad.
func (r *AuditLogRepo) ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.AuditLogEntry, error) {
	query := `SELECT ` + auditColumns + ` FROM audit_logs WHERE entity_type = $1 AND entity_id = $2 ORDER BY id`
	return r.list(ctx, query, entityType, entityID)
}

func (r *AuditLogRepo) list(ctx context.Context, query string, args ...any) ([]*entity.AuditLogEntry, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*entity.AuditLogEntry, error) {
		var e entity.AuditLogEntry
		err := row.Scan(&e.ID, &e.CompanyID, &e.UserID, &e.Action, &e.EntityType, &e.EntityID,
			&e.OldValues, &e.NewValues, &e.CreatedAt)
		return &e, err
	})
}
