package repository

import (
	"context"

	"github.com/jhoicas/vistorias-api/internal/domain/entity"
)

// AuditLogRepository append-only: no existe Update ni Delete.
type AuditLogRepository interface {
	Append(ctx context.Context, entry *entity.AuditLogEntry) error
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.AuditLogEntry, error)
	ListByEntity(ctx context.Context, entityType, entityID string) ([]*entity.AuditLogEntry, error)
}
