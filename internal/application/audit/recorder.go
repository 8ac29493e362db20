// Package audit registra y consulta la bitácora append-only de mutaciones.
//
// Record se invoca como último paso de cada caso de uso mutante, con el repositorio
// atado a la misma transacción: si la escritura de auditoría falla, la mutación se revierte.
package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

// Entry datos de una entrada antes de serializar. Old/New son los payloads documentados
// en payloads.go (o nil).
type Entry struct {
	CompanyID  string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	Old        any
	New        any
}

// Recorder genera IDs snowflake y serializa los payloads.
type Recorder struct {
	node *snowflake.Node
}

// NewRecorder construye el recorder con el nodo snowflake de esta instancia.
func NewRecorder(node *snowflake.Node) *Recorder {
	return &Recorder{node: node}
}

// Record agrega la entrada usando repo (el de la transacción en curso).
func (r *Recorder) Record(ctx context.Context, repo repository.AuditLogRepository, e Entry, at time.Time) error {
	oldJSON, err := marshalOptional(e.Old)
	if err != nil {
		return fmt.Errorf("audit %s: old values: %w", e.Action, err)
	}
	newJSON, err := marshalOptional(e.New)
	if err != nil {
		return fmt.Errorf("audit %s: new values: %w", e.Action, err)
	}
	entry := &entity.AuditLogEntry{
		ID:         r.node.Generate().Int64(),
		CompanyID:  e.CompanyID,
		UserID:     e.ActorID,
		Action:     e.Action,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		OldValues:  oldJSON,
		NewValues:  newJSON,
		CreatedAt:  at,
	}
	if err := repo.Append(ctx, entry); err != nil {
		return fmt.Errorf("audit %s: %w", e.Action, err)
	}
	return nil
}

func marshalOptional(v any) (json.RawMessage, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return b, nil
}
