package entity

import "time"

// Client registro comercial de un cliente dentro de una empresa, ligado 1:1 a una cuenta (UserID).
type Client struct {
	ID        string
	CompanyID string
	UserID    string
	Name      string
	Email     string
	Phone     string
	CPFCNPJ   string
	Address   string
	IsActive  bool
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}
