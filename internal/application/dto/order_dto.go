package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// CreateOrderRequest solicitud de servicio hecha por un cliente.
type CreateOrderRequest struct {
	ServiceType      entity.ServiceType  `json:"serviceType"`
	Description      string              `json:"description"`
	Address          string              `json:"address"`
	Coordinates      *entity.Coordinates `json:"coordinates"`
	Priority         entity.Priority     `json:"priority"`
	EstimatedValue   *decimal.Decimal    `json:"estimatedValue"`
	VehicleInfo      *entity.VehicleInfo `json:"vehicleInfo"`
	EmergencyContact string              `json:"emergencyContact"`
}

// UpdateOrderStatusRequest cambio de estado con notas opcionales.
type UpdateOrderStatusRequest struct {
	Status entity.OrderStatus `json:"status"`
	Notes  string             `json:"notes"`
}

// AssignPartnerRequest asignación de parceiro.
type AssignPartnerRequest struct {
	PartnerID string `json:"partnerId"`
}

// OrderResponse salida de una orden. IsOverdue se calcula en cada lectura.
type OrderResponse struct {
	ID                string              `json:"id"`
	CompanyID         string              `json:"companyId"`
	ClientID          string              `json:"clientId"`
	OrderNumber       string              `json:"orderNumber"`
	ServiceType       entity.ServiceType  `json:"serviceType"`
	Description       string              `json:"description"`
	Address           string              `json:"address"`
	Coordinates       *entity.Coordinates `json:"coordinates,omitempty"`
	GoogleMapsLink    string              `json:"googleMapsLink,omitempty"`
	Priority          entity.Priority     `json:"priority"`
	Status            entity.OrderStatus  `json:"status"`
	SLADeadline       time.Time           `json:"slaDeadline"`
	AssignedPartnerID string              `json:"assignedPartnerId,omitempty"`
	CreatedBy         string              `json:"createdBy"`
	EstimatedValue    *decimal.Decimal    `json:"estimatedValue,omitempty"`
	FinalValue        *decimal.Decimal    `json:"finalValue,omitempty"`
	VehicleInfo       *entity.VehicleInfo `json:"vehicleInfo,omitempty"`
	EmergencyContact  string              `json:"emergencyContact,omitempty"`
	IsOverdue         bool                `json:"isOverdue"`
	CreatedAt         time.Time           `json:"createdAt"`
}

// EnrichedOrderResponse orden con datos de cliente y parceiro.
type EnrichedOrderResponse struct {
	OrderResponse
	ClientName  string  `json:"clientName"`
	ClientPhone string  `json:"clientPhone,omitempty"`
	ClientEmail string  `json:"clientEmail,omitempty"`
	Partner     *string `json:"partner"`
}

// OrdersByStatusResponse tablero: una columna por estado (todas presentes).
type OrdersByStatusResponse map[entity.OrderStatus][]EnrichedOrderResponse

// OrderFromEntity mapea la entidad; overdue ya calculado por el caller.
func OrderFromEntity(o *entity.ServiceOrder, overdue bool) OrderResponse {
	return OrderResponse{
		ID:                o.ID,
		CompanyID:         o.CompanyID,
		ClientID:          o.ClientID,
		OrderNumber:       o.OrderNumber,
		ServiceType:       o.ServiceType,
		Description:       o.Description,
		Address:           o.Address,
		Coordinates:       o.Coordinates,
		GoogleMapsLink:    o.GoogleMapsLink,
		Priority:          o.Priority,
		Status:            o.Status,
		SLADeadline:       o.SLADeadline,
		AssignedPartnerID: o.AssignedPartnerID,
		CreatedBy:         o.CreatedBy,
		EstimatedValue:    o.EstimatedValue,
		FinalValue:        o.FinalValue,
		VehicleInfo:       o.VehicleInfo,
		EmergencyContact:  o.EmergencyContact,
		IsOverdue:         overdue,
		CreatedAt:         o.CreatedAt,
	}
}
