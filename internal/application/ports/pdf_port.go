package ports

import (
	"context"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// OrderSheet datos ya resueltos para imprimir una orden.
type OrderSheet struct {
	Order       *entity.ServiceOrder
	Company     *entity.Company
	Client      *entity.Client
	PartnerName string
	IsOverdue   bool
}

// OrderSheetGenerator genera la ficha PDF de una orden de servicio.
type OrderSheetGenerator interface {
	GenerateOrderSheet(ctx context.Context, sheet OrderSheet) ([]byte, error)
}
