package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/lifecycle"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

const (
	defaultClientOrdersLimit = 50
	maxClientOrdersLimit     = 100
)

// GetOrdersByStatus tablero de la empresa: todas las columnas de estado, cada orden enriquecida.
func (uc *UseCase) GetOrdersByStatus(ctx context.Context, actorID, companyID string) (dto.OrdersByStatusResponse, error) {
	if _, err := uc.guard.Resolve(ctx, actorID, companyID, entity.StaffRoles...); err != nil {
		return nil, err
	}
	list, err := uc.orders.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make(dto.OrdersByStatusResponse, len(entity.AllStatuses))
	for _, s := range entity.AllStatuses {
		out[s] = []dto.EnrichedOrderResponse{}
	}
	e := uc.newEnricher()
	now := uc.now()
	for _, o := range list {
		item, err := e.enrich(ctx, o, now)
		if err != nil {
			return nil, err
		}
		out[o.Status] = append(out[o.Status], item)
	}
	return out, nil
}

// GetOrderDetails orden enriquecida. Un client solo puede ver órdenes de su propio registro.
func (uc *UseCase) GetOrderDetails(ctx context.Context, actorID, orderID string) (*dto.EnrichedOrderResponse, error) {
	o, err := uc.readableOrder(ctx, actorID, orderID)
	if err != nil {
		return nil, err
	}
	item, err := uc.newEnricher().enrich(ctx, o, uc.now())
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetClientOrders órdenes del registro de cliente del actor, más recientes primero.
// Sin registro de cliente devuelve lista vacía.
func (uc *UseCase) GetClientOrders(ctx context.Context, actorID, companyID string, status *entity.OrderStatus, limit int) ([]dto.OrderResponse, error) {
	if _, err := uc.guard.Resolve(ctx, actorID, companyID); err != nil {
		return nil, err
	}
	if status != nil && !status.Valid() {
		return nil, domain.New(domain.KindInvalidInput, fmt.Sprintf("estado inválido: %q", *status))
	}
	if limit <= 0 {
		limit = defaultClientOrdersLimit
	}
	if limit > maxClientOrdersLimit {
		limit = maxClientOrdersLimit
	}
	client, err := uc.clients.GetActiveByCompanyAndUser(ctx, companyID, actorID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return []dto.OrderResponse{}, nil
	}
	list, err := uc.orders.ListByClient(ctx, client.ID, repository.OrderFilter{Status: status, Limit: limit})
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, dto.OrderFromEntity(o, lifecycle.IsOverdue(o, now)))
	}
	return out, nil
}

// OrderSheetPDF ficha imprimible de la orden; mismas reglas de visibilidad que GetOrderDetails.
func (uc *UseCase) OrderSheetPDF(ctx context.Context, actorID, orderID string) ([]byte, *entity.ServiceOrder, error) {
	o, err := uc.readableOrder(ctx, actorID, orderID)
	if err != nil {
		return nil, nil, err
	}
	company, err := uc.companies.GetByID(ctx, o.CompanyID)
	if err != nil {
		return nil, nil, err
	}
	if company == nil {
		return nil, nil, domain.ErrCompanyNotFound
	}
	client, err := uc.clients.GetByID(ctx, o.ClientID)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		return nil, nil, domain.ErrClientNotFound
	}
	sheet := ports.OrderSheet{
		Order:     o,
		Company:   company,
		Client:    client,
		IsOverdue: lifecycle.IsOverdue(o, uc.now()),
	}
	if o.AssignedPartnerID != "" {
		if u, err := uc.users.GetByID(ctx, o.AssignedPartnerID); err != nil {
			return nil, nil, err
		} else if u != nil {
			sheet.PartnerName = u.Name
		}
	}
	pdf, err := uc.sheets.GenerateOrderSheet(ctx, sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("generar ficha %s: %w", o.OrderNumber, err)
	}
	return pdf, o, nil
}

func (uc *UseCase) readableOrder(ctx context.Context, actorID, orderID string) (*entity.ServiceOrder, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	acc, err := uc.guard.Resolve(ctx, actorID, o.CompanyID)
	if err != nil {
		return nil, err
	}
	if acc.Role == entity.RoleClient {
		own, err := uc.clients.GetActiveByCompanyAndUser(ctx, o.CompanyID, actorID)
		if err != nil {
			return nil, err
		}
		if own == nil || own.ID != o.ClientID {
			return nil, domain.ErrAccessDenied
		}
	}
	return o, nil
}

// enricher cachea clientes y parceiros durante una lectura.
type enricher struct {
	uc       *UseCase
	clients  map[string]*entity.Client
	partners map[string]*string
}

func (uc *UseCase) newEnricher() *enricher {
	return &enricher{uc: uc, clients: map[string]*entity.Client{}, partners: map[string]*string{}}
}

func (e *enricher) enrich(ctx context.Context, o *entity.ServiceOrder, now time.Time) (dto.EnrichedOrderResponse, error) {
	item := dto.EnrichedOrderResponse{OrderResponse: dto.OrderFromEntity(o, lifecycle.IsOverdue(o, now))}
	c, ok := e.clients[o.ClientID]
	if !ok {
		var err error
		c, err = e.uc.clients.GetByID(ctx, o.ClientID)
		if err != nil {
			return item, err
		}
		e.clients[o.ClientID] = c
	}
	if c != nil {
		item.ClientName, item.ClientPhone, item.ClientEmail = c.Name, c.Phone, c.Email
	}
	if o.AssignedPartnerID != "" {
		name, ok := e.partners[o.AssignedPartnerID]
		if !ok {
			u, err := e.uc.users.GetByID(ctx, o.AssignedPartnerID)
			if err != nil {
				return item, err
			}
			if u != nil {
				name = &u.Name
			}
			e.partners[o.AssignedPartnerID] = name
		}
		item.Partner = name
	}
	return item, nil
}
