package entity

import (
	"encoding/json"
	"time"
)

// Acciones auditadas.
const (
	ActionCreateCompany      = "CREATE_COMPANY"
	ActionUpdateCompany      = "UPDATE_COMPANY"
	ActionSetActiveCompany   = "SET_ACTIVE_COMPANY"
	ActionUpsertMembership   = "UPSERT_MEMBERSHIP"
	ActionCreateClient       = "CREATE_CLIENT"
	ActionUpdateClient       = "UPDATE_CLIENT"
	ActionCreateServiceOrder = "CREATE_SERVICE_ORDER"
	ActionUpdateOrderStatus  = "UPDATE_ORDER_STATUS"
	ActionAssignPartner      = "ASSIGN_PARTNER"
)

// Tipos de entidad auditada.
const (
	EntityCompanies     = "companies"
	EntityUserSessions  = "user_sessions"
	EntityMemberships   = "memberships"
	EntityClients       = "clients"
	EntityServiceOrders = "serviceOrders"
)

// AuditLogEntry registro inmutable de una mutación.
type AuditLogEntry struct {
	ID         int64 // snowflake, ordenado por tiempo
	CompanyID  string
	UserID     string
	Action     string
	EntityType string
	EntityID   string
	OldValues  json.RawMessage // nil si no aplica
	NewValues  json.RawMessage
	CreatedAt  time.Time
}
