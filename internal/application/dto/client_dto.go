package dto

import (
	"time"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// CreateClientRequest alta de cliente: crea (o reutiliza) la cuenta y el registro.
type CreateClientRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
	CPFCNPJ  string `json:"cpfCnpj"`
	Address  string `json:"address"`
}

// UpdateClientRequest campos modificables de un cliente (lista cerrada).
type UpdateClientRequest struct {
	Name     *string `json:"name"`
	Phone    *string `json:"phone"`
	CPFCNPJ  *string `json:"cpfCnpj"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	CompanyID string    `json:"companyId"`
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	CPFCNPJ   string    `json:"cpfCnpj,omitempty"`
	Address   string    `json:"address,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedBy string    `json:"createdBy"`
	CreatedAt time.Time `json:"createdAt"`
	// AccountReused true si el email ya tenía cuenta: la contraseña enviada no se aplicó.
	AccountReused bool `json:"accountReused,omitempty"`
}

// ClientDetailsResponse cliente con sus órdenes recientes y cobros.
type ClientDetailsResponse struct {
	ClientResponse
	RecentOrders []OrderResponse   `json:"recentOrders"`
	Billing      []BillingResponse `json:"billing"`
}

// ClientFromEntity mapea la entidad a su respuesta.
func ClientFromEntity(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		UserID:    c.UserID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		CPFCNPJ:   c.CPFCNPJ,
		Address:   c.Address,
		IsActive:  c.IsActive,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
	}
}
