package repository

import (
	"context"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// ClientRepository persistencia de clientes por empresa.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	// GetActiveByCompanyAndUser cliente activo de la cuenta userID en la empresa, o nil.
	GetActiveByCompanyAndUser(ctx context.Context, companyID, userID string) (*entity.Client, error)
	ListActiveByCompany(ctx context.Context, companyID string) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
}
