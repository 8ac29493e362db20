package repository

import (
	"context"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// BillingRepository lectura de cobros (creación y liquidación quedan fuera de este servicio).
type BillingRepository interface {
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Billing, error)
	ListByClient(ctx context.Context, clientID string) ([]*entity.Billing, error)
}
