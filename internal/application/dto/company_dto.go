package dto

import (
	"time"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name    string `json:"name"`
	CNPJ    string `json:"cnpj"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// CompanySettingsPatch configuración parcial; nil = sin cambio.
type CompanySettingsPatch struct {
	SLAHours      *int  `json:"slaHours"`
	AutoDispatch  *bool `json:"autoDispatch"`
	RequirePhotos *int  `json:"requirePhotos"`
	RequireVideos *int  `json:"requireVideos"`
}

// UpdateCompanyRequest campos modificables de una empresa (lista cerrada).
type UpdateCompanyRequest struct {
	Name     *string               `json:"name"`
	CNPJ     *string               `json:"cnpj"`
	Address  *string               `json:"address"`
	Phone    *string               `json:"phone"`
	Email    *string               `json:"email"`
	Settings *CompanySettingsPatch `json:"settings"`
	IsActive *bool                 `json:"isActive"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string                 `json:"id"`
	Name      string                 `json:"name"`
	CNPJ      string                 `json:"cnpj,omitempty"`
	Address   string                 `json:"address,omitempty"`
	Phone     string                 `json:"phone,omitempty"`
	Email     string                 `json:"email,omitempty"`
	Settings  entity.CompanySettings `json:"settings"`
	IsActive  bool                   `json:"isActive"`
	CreatedAt time.Time              `json:"createdAt"`
}

// CompanyWithRoleResponse empresa con el rol del usuario que consulta.
type CompanyWithRoleResponse struct {
	CompanyResponse
	Role entity.Role `json:"role"`
}

// SetActiveCompanyRequest entrada para cambiar de empresa activa.
type SetActiveCompanyRequest struct {
	CompanyID string `json:"companyId"`
}

// UpsertMembershipRequest otorga o cambia el rol de una cuenta existente.
type UpsertMembershipRequest struct {
	Email    string      `json:"email"`
	Role     entity.Role `json:"role"`
	IsActive *bool       `json:"isActive"` // nil = true
}

// MembershipResponse salida de una membresía.
type MembershipResponse struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	CompanyID string      `json:"companyId"`
	Role      entity.Role `json:"role"`
	IsActive  bool        `json:"isActive"`
}

// CompanyFromEntity mapea la entidad a su respuesta.
func CompanyFromEntity(c *entity.Company) CompanyResponse {
	return CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CNPJ:      c.CNPJ,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Settings:  c.Settings,
		IsActive:  c.IsActive,
		CreatedAt: c.CreatedAt,
	}
}
