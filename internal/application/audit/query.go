package audit

import (
	"context"

	"github.com/jhoicas/vistorias-api/internal/application/access"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

// QueryUseCase consultas de la bitácora (solo admin/gestor).
type QueryUseCase struct {
	guard *access.Guard
	repo  repository.AuditLogRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(guard *access.Guard, repo repository.AuditLogRepository) *QueryUseCase {
	return &QueryUseCase{guard: guard, repo: repo}
}

// ListByCompany entradas de la empresa, más recientes primero.
func (uc *QueryUseCase) ListByCompany(ctx context.Context, actorID, companyID string, page dto.PageRequest) (*dto.AuditLogListResponse, error) {
	if _, err := uc.guard.ResolveIncludingInactive(ctx, actorID, companyID, entity.AdminRoles...); err != nil {
		return nil, err
	}
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AuditLogResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.AuditFromEntity(e))
	}
	return &dto.AuditLogListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// EntityHistory historial de una entidad, restringido a la empresa consultada.
func (uc *QueryUseCase) EntityHistory(ctx context.Context, actorID, companyID, entityType, entityID string) ([]dto.AuditLogResponse, error) {
	if _, err := uc.guard.ResolveIncludingInactive(ctx, actorID, companyID, entity.AdminRoles...); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AuditLogResponse, 0, len(list))
	for _, e := range list {
		if e.CompanyID != companyID {
			continue
		}
		out = append(out, dto.AuditFromEntity(e))
	}
	return out, nil
}
