package audit

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// Forma esperada de old/new por acción.
//
//	CREATE_COMPANY        new: CompanyValues
//	UPDATE_COMPANY        old/new: Patch (solo campos cambiados)
//	SET_ACTIVE_COMPANY    old/new: SessionValues
//	UPSERT_MEMBERSHIP     old/new: MembershipValues
//	CREATE_CLIENT         new: ClientValues
//	UPDATE_CLIENT         old/new: Patch
//	CREATE_SERVICE_ORDER  new: OrderCreatedValues
//	UPDATE_ORDER_STATUS   old/new: StatusValues
//	ASSIGN_PARTNER        old/new: PartnerValues

// Patch campos cambiados, por nombre de campo del contrato JSON.
type Patch map[string]any

// CompanyValues payload de CREATE_COMPANY.
type CompanyValues struct {
	Name    string `json:"name"`
	CNPJ    string `json:"cnpj,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Email   string `json:"email,omitempty"`
}

// SessionValues payload de SET_ACTIVE_COMPANY.
type SessionValues struct {
	ActiveCompanyID string `json:"activeCompanyId"`
}

// MembershipValues payload de UPSERT_MEMBERSHIP.
type MembershipValues struct {
	UserID   string      `json:"userId"`
	Role     entity.Role `json:"role"`
	IsActive bool        `json:"isActive"`
}

// ClientValues payload de CREATE_CLIENT.
type ClientValues struct {
	UserID  string `json:"userId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	CPFCNPJ string `json:"cpfCnpj,omitempty"`
	Address string `json:"address,omitempty"`
}

// OrderCreatedValues payload de CREATE_SERVICE_ORDER: la entrada completa más lo derivado.
type OrderCreatedValues struct {
	OrderNumber      string              `json:"orderNumber"`
	ServiceType      entity.ServiceType  `json:"serviceType"`
	Description      string              `json:"description"`
	Address          string              `json:"address"`
	Coordinates      *entity.Coordinates `json:"coordinates,omitempty"`
	RequestedPrio    entity.Priority     `json:"requestedPriority,omitempty"`
	Priority         entity.Priority     `json:"priority"`
	SLADeadline      time.Time           `json:"slaDeadline"`
	EstimatedValue   *decimal.Decimal    `json:"estimatedValue,omitempty"`
	VehicleInfo      *entity.VehicleInfo `json:"vehicleInfo,omitempty"`
	EmergencyContact string              `json:"emergencyContact,omitempty"`
}

// StatusValues payload de UPDATE_ORDER_STATUS.
type StatusValues struct {
	Status entity.OrderStatus `json:"status"`
	Notes  string             `json:"notes,omitempty"`
}

// PartnerValues payload de ASSIGN_PARTNER.
type PartnerValues struct {
	AssignedPartnerID string `json:"assignedPartnerId"`
}
