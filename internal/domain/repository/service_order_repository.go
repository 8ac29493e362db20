package repository

import (
	"context"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// OrderFilter filtro para listar órdenes de un cliente.
type OrderFilter struct {
	Status *entity.OrderStatus
	Limit  int
}

// ServiceOrderRepository persistencia de órdenes de servicio.
// Create devuelve domain.ErrDuplicateOrderNumber si (company_id, order_number) ya existe.
type ServiceOrderRepository interface {
	Create(ctx context.Context, order *entity.ServiceOrder) error
	GetByID(ctx context.Context, id string) (*entity.ServiceOrder, error)
	// LockByID como GetByID pero bloquea la fila hasta el fin de la transacción.
	LockByID(ctx context.Context, id string) (*entity.ServiceOrder, error)
	// Update persiste status, asignación de parceiro, valores y updated_at.
	Update(ctx context.Context, order *entity.ServiceOrder) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.ServiceOrder, error)
	// ListByClient más recientes primero.
	ListByClient(ctx context.Context, clientID string, f OrderFilter) ([]*entity.ServiceOrder, error)
}

// OrderCounterRepository secuencia atómica por empresa para numerar órdenes.
type OrderCounterRepository interface {
	// Next incrementa y devuelve el siguiente valor (1, 2, 3...) para la empresa.
	Next(ctx context.Context, companyID string) (int64, error)
}
