package dto

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// AuditLogResponse entrada de la bitácora.
type AuditLogResponse struct {
	ID         string          `json:"id"` // snowflake como string (evita pérdida de precisión en JS)
	CompanyID  string          `json:"companyId"`
	UserID     string          `json:"userId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	OldValues  json.RawMessage `json:"oldValues,omitempty"`
	NewValues  json.RawMessage `json:"newValues,omitempty"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// AuditLogListResponse lista paginada.
type AuditLogListResponse struct {
	Items []AuditLogResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// AuditFromEntity mapea la entidad a su respuesta.
func AuditFromEntity(e *entity.AuditLogEntry) AuditLogResponse {
	return AuditLogResponse{
		ID:         strconv.FormatInt(e.ID, 10),
		CompanyID:  e.CompanyID,
		UserID:     e.UserID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		OldValues:  e.OldValues,
		NewValues:  e.NewValues,
		CreatedAt:  e.CreatedAt,
	}
}
