package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ServiceType tipo de servicio solicitado.
type ServiceType string

const (
	ServiceVistoria       ServiceType = "vistoria"
	ServiceLaudo          ServiceType = "laudo"
	ServiceSOSPneu        ServiceType = "sos_pneu"
	ServiceSOSCombustivel ServiceType = "sos_combustivel"
	ServiceSOSBateria     ServiceType = "sos_bateria"
	ServiceSOSReboque     ServiceType = "sos_reboque"
)

// Valid informa si t es un tipo de servicio conocido.
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceVistoria, ServiceLaudo, ServiceSOSPneu, ServiceSOSCombustivel, ServiceSOSBateria, ServiceSOSReboque:
		return true
	}
	return false
}

// IsRoadside informa si es asistencia en carretera (familia sos_*).
func (t ServiceType) IsRoadside() bool {
	return strings.HasPrefix(string(t), "sos_")
}

// OrderStatus estado de una orden de servicio.
type OrderStatus string

const (
	StatusAberta              OrderStatus = "aberta"
	StatusDespachada          OrderStatus = "despachada"
	StatusAceita              OrderStatus = "aceita"
	StatusEmExecucao          OrderStatus = "em_execucao"
	StatusAguardandoValidacao OrderStatus = "aguardando_validacao"
	StatusAprovada            OrderStatus = "aprovada"
	StatusReprovada           OrderStatus = "reprovada"
	StatusFinalizada          OrderStatus = "finalizada"
	StatusCancelada           OrderStatus = "cancelada"
)

// AllStatuses en el orden del tablero.
var AllStatuses = []OrderStatus{
	StatusAberta, StatusDespachada, StatusAceita, StatusEmExecucao, StatusAguardandoValidacao,
	StatusAprovada, StatusReprovada, StatusFinalizada, StatusCancelada,
}

// Valid informa si s es un estado conocido.
func (s OrderStatus) Valid() bool {
	for _, x := range AllStatuses {
		if x == s {
			return true
		}
	}
	return false
}

// IsTerminal finalizada y cancelada no admiten más cambios.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusFinalizada || s == StatusCancelada
}

// Priority prioridad de atención.
type Priority string

const (
	PriorityBaixa   Priority = "baixa"
	PriorityMedia   Priority = "media"
	PriorityAlta    Priority = "alta"
	PriorityUrgente Priority = "urgente"
)

// Valid informa si p es una prioridad conocida.
func (p Priority) Valid() bool {
	switch p {
	case PriorityBaixa, PriorityMedia, PriorityAlta, PriorityUrgente:
		return true
	}
	return false
}

// Coordinates posición geográfica del servicio.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// VehicleInfo datos del vehículo (servicios SOS y vistorias).
type VehicleInfo struct {
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  string `json:"year,omitempty"`
	Plate string `json:"plate,omitempty"`
	Color string `json:"color,omitempty"`
}

// ServiceOrder orden de servicio. Status solo cambia vía el motor de ciclo de vida;
// SLADeadline se fija al crear y no se recalcula.
type ServiceOrder struct {
	ID                string
	CompanyID         string
	ClientID          string
	OrderNumber       string // OS-NNNNNN, único por empresa
	ServiceType       ServiceType
	Description       string
	Address           string
	Coordinates       *Coordinates
	GoogleMapsLink    string
	Priority          Priority
	Status            OrderStatus
	SLADeadline       time.Time
	AssignedPartnerID string // vacío = sin asignar
	CreatedBy         string
	EstimatedValue    *decimal.Decimal
	FinalValue        *decimal.Decimal
	VehicleInfo       *VehicleInfo
	EmergencyContact  string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
