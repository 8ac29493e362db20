package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

var _ repository.BillingRepository = (*BillingRepo)(nil)

// BillingRepo lectura de cobros. Montos NUMERIC -> decimal.Decimal vía pgx-shopspring-decimal.
type BillingRepo struct {
	q Querier
}

// NewBillingRepository construye el adaptador.
func NewBillingRepository(q Querier) *BillingRepo {
	return &BillingRepo{q: q}
}

const billingColumns = `id, company_id, client_id, COALESCE(service_order_id::text, ''), amount, status,
	due_date, paid_at, payment_method, notes, created_at`

// ListByCompany cobros de la empresa.
func (r *BillingRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Billing, error) {
	return r.list(ctx, `SELECT `+billingColumns+` FROM billing WHERE company_id = $1 ORDER BY due_date DESC`, companyID)
}

// ListByClient cobros de un cliente.
func (r *BillingRepo) ListByClient(ctx context.Context, clientID string) ([]*entity.Billing, error) {
	return r.list(ctx, `SELECT `+billingColumns+` FROM billing WHERE client_id = $1 ORDER BY due_date DESC`, clientID)
}

func (r *BillingRepo) list(ctx context.Context, query, arg string) ([]*entity.Billing, error) {
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list billing: %w", err)
	}
	defer rows.Close()

	var list []*entity.Billing
	for rows.Next() {
		var b entity.Billing
		if err := rows.Scan(
			&b.ID, &b.CompanyID, &b.ClientID, &b.ServiceOrderID, &b.Amount, &b.Status,
			&b.DueDate, &b.PaidAt, &b.PaymentMethod, &b.Notes, &b.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan billing: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
