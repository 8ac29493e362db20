package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// BillingResponse salida de un cobro.
type BillingResponse struct {
	ID             string               `json:"id"`
	ClientID       string               `json:"clientId"`
	ServiceOrderID string               `json:"serviceOrderId"`
	Amount         decimal.Decimal      `json:"amount"`
	Status         entity.BillingStatus `json:"status"`
	DueDate        time.Time            `json:"dueDate"`
	PaidAt         *time.Time           `json:"paidAt,omitempty"`
	PaymentMethod  string               `json:"paymentMethod,omitempty"`
	Notes          string               `json:"notes,omitempty"`
}

// BillingFromEntity mapea la entidad a su respuesta.
func BillingFromEntity(b *entity.Billing) BillingResponse {
	return BillingResponse{
		ID:             b.ID,
		ClientID:       b.ClientID,
		ServiceOrderID: b.ServiceOrderID,
		Amount:         b.Amount,
		Status:         b.Status,
		DueDate:        b.DueDate,
		PaidAt:         b.PaidAt,
		PaymentMethod:  b.PaymentMethod,
		Notes:          b.Notes,
	}
}
