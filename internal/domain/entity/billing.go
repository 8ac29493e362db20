package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BillingStatus estado de un cobro.
type BillingStatus string

const (
	BillingPending   BillingStatus = "pending"
	BillingPaid      BillingStatus = "paid"
	BillingOverdue   BillingStatus = "overdue"
	BillingCancelled BillingStatus = "cancelled"
)

// Billing obligación monetaria asociada a una orden. Solo lectura en este servicio.
type Billing struct {
	ID             string
	CompanyID      string
	ClientID       string
	ServiceOrderID string
	Amount         decimal.Decimal
	Status         BillingStatus
	DueDate        time.Time
	PaidAt         *time.Time
	PaymentMethod  string
	Notes          string
	CreatedAt      time.Time
}
