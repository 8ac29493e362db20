package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/vistorias-api/internal/application/audit"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/lifecycle"
)

// CreateServiceOrder crea una orden a nombre del registro de cliente del actor en la empresa.
// Numeración, prioridad, SLA y enlace de mapa se derivan aquí; el estado inicial es aberta.
func (uc *UseCase) CreateServiceOrder(ctx context.Context, actorID, companyID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if _, err := uc.guard.Resolve(ctx, actorID, companyID); err != nil {
		return nil, err
	}
	client, err := uc.clients.GetActiveByCompanyAndUser(ctx, companyID, actorID)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrClientNotFound
	}
	if err := validateCreate(&in); err != nil {
		return nil, err
	}

	now := uc.now()
	order := &entity.ServiceOrder{
		ID:               uuid.New().String(),
		CompanyID:        companyID,
		ClientID:         client.ID,
		ServiceType:      in.ServiceType,
		Description:      in.Description,
		Address:          in.Address,
		Coordinates:      in.Coordinates,
		GoogleMapsLink:   lifecycle.MapsLink(in.Coordinates),
		Priority:         lifecycle.DerivePriority(in.ServiceType, in.Priority),
		Status:           entity.StatusAberta,
		SLADeadline:      lifecycle.SLADeadline(in.ServiceType, now),
		CreatedBy:        actorID,
		EstimatedValue:   in.EstimatedValue,
		VehicleInfo:      in.VehicleInfo,
		EmergencyContact: in.EmergencyContact,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		seq, err := r.Counters.Next(ctx, companyID)
		if err != nil {
			return fmt.Errorf("numerar orden: %w", err)
		}
		order.OrderNumber = lifecycle.FormatOrderNumber(seq)
		if err := r.Orders.Create(ctx, order); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.AuditLog, audit.Entry{
			CompanyID:  companyID,
			ActorID:    actorID,
			Action:     entity.ActionCreateServiceOrder,
			EntityType: entity.EntityServiceOrders,
			EntityID:   order.ID,
			New: audit.OrderCreatedValues{
				OrderNumber:      order.OrderNumber,
				ServiceType:      order.ServiceType,
				Description:      order.Description,
				Address:          order.Address,
				Coordinates:      order.Coordinates,
				RequestedPrio:    in.Priority,
				Priority:         order.Priority,
				SLADeadline:      order.SLADeadline,
				EstimatedValue:   order.EstimatedValue,
				VehicleInfo:      order.VehicleInfo,
				EmergencyContact: order.EmergencyContact,
			},
		}, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("order_id", order.ID).
		Str("order_number", order.OrderNumber).
		Str("service_type", string(order.ServiceType)).
		Msg("orden creada")
	out := dto.OrderFromEntity(order, lifecycle.IsOverdue(order, now))
	return &out, nil
}

func validateCreate(in *dto.CreateOrderRequest) error {
	in.Address = strings.TrimSpace(in.Address)
	in.Description = strings.TrimSpace(in.Description)
	if !in.ServiceType.Valid() {
		return domain.New(domain.KindInvalidInput, fmt.Sprintf("tipo de servicio inválido: %q", in.ServiceType))
	}
	if in.Priority != "" && !in.Priority.Valid() {
		return domain.New(domain.KindInvalidInput, fmt.Sprintf("prioridad inválida: %q", in.Priority))
	}
	if in.Address == "" {
		return domain.New(domain.KindInvalidInput, "la dirección es obligatoria")
	}
	if c := in.Coordinates; c != nil && (c.Lat < -90 || c.Lat > 90 || c.Lng < -180 || c.Lng > 180) {
		return domain.New(domain.KindInvalidInput, "coordenadas fuera de rango")
	}
	if in.EstimatedValue != nil && in.EstimatedValue.IsNegative() {
		return domain.New(domain.KindInvalidInput, "el valor estimado no puede ser negativo")
	}
	return nil
}

// UpdateOrderStatus mueve la orden a in.Status. El rol del actor debe poder iniciar cambios
// desde el estado actual y la arista debe existir en el grafo; ambas comprobaciones se hacen
// sobre la fila bloqueada.
func (uc *UseCase) UpdateOrderStatus(ctx context.Context, actorID, orderID string, in dto.UpdateOrderStatusRequest) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	acc, err := uc.guard.Resolve(ctx, actorID, o.CompanyID, entity.StaffRoles...)
	if err != nil {
		return nil, err
	}
	if !in.Status.Valid() {
		return nil, domain.New(domain.KindInvalidInput, fmt.Sprintf("estado inválido: %q", in.Status))
	}

	now := uc.now()
	var from entity.OrderStatus
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		locked, err := r.Orders.LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrOrderNotFound
		}
		from = locked.Status
		if !lifecycle.AllowedToInitiate(acc.Role, from) {
			return domain.New(domain.KindInsufficientPermissions,
				fmt.Sprintf("el rol %s no puede cambiar órdenes en estado %s", acc.Role, from))
		}
		if !lifecycle.CanTransition(from, in.Status) {
			return domain.New(domain.KindInvalidTransition,
				fmt.Sprintf("transición no permitida: %s -> %s", from, in.Status))
		}
		locked.Status = in.Status
		locked.UpdatedAt = now
		if err := r.Orders.Update(ctx, locked); err != nil {
			return err
		}
		o = locked
		return uc.recorder.Record(ctx, r.AuditLog, audit.Entry{
			CompanyID:  locked.CompanyID,
			ActorID:    actorID,
			Action:     entity.ActionUpdateOrderStatus,
			EntityType: entity.EntityServiceOrders,
			EntityID:   locked.ID,
			Old:        audit.StatusValues{Status: from},
			New:        audit.StatusValues{Status: in.Status, Notes: in.Notes},
		}, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", o.CompanyID).
		Str("order_id", o.ID).
		Str("from", string(from)).
		Str("to", string(o.Status)).
		Str("role", string(acc.Role)).
		Msg("estado de orden actualizado")
	out := dto.OrderFromEntity(o, lifecycle.IsOverdue(o, now))
	return &out, nil
}

// AssignPartner asigna la orden a un usuario con membresía parceiro activa en la misma empresa.
func (uc *UseCase) AssignPartner(ctx context.Context, actorID, orderID string, in dto.AssignPartnerRequest) (*dto.OrderResponse, error) {
	o, err := uc.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrOrderNotFound
	}
	if _, err := uc.guard.Resolve(ctx, actorID, o.CompanyID, assignerRoles...); err != nil {
		return nil, err
	}
	partnerID := strings.TrimSpace(in.PartnerID)
	if partnerID == "" {
		return nil, domain.New(domain.KindInvalidInput, "partnerId es obligatorio")
	}
	m, err := uc.memberships.GetByUserAndCompany(ctx, partnerID, o.CompanyID)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.IsActive || m.Role != entity.RoleParceiro {
		return nil, domain.New(domain.KindInvalidInput, "el usuario no es parceiro activo de la empresa")
	}

	now := uc.now()
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		locked, err := r.Orders.LockByID(ctx, orderID)
		if err != nil {
			return err
		}
		if locked == nil {
			return domain.ErrOrderNotFound
		}
		if locked.Status.IsTerminal() {
			return domain.New(domain.KindInvalidTransition, fmt.Sprintf("la orden está %s", locked.Status))
		}
		if locked.AssignedPartnerID == partnerID {
			return domain.New(domain.KindConflict, "la orden ya está asignada a ese parceiro")
		}
		var old any
		if locked.AssignedPartnerID != "" {
			old = audit.PartnerValues{AssignedPartnerID: locked.AssignedPartnerID}
		}
		locked.AssignedPartnerID = partnerID
		locked.UpdatedAt = now
		if err := r.Orders.Update(ctx, locked); err != nil {
			return err
		}
		o = locked
		return uc.recorder.Record(ctx, r.AuditLog, audit.Entry{
			CompanyID:  locked.CompanyID,
			ActorID:    actorID,
			Action:     entity.ActionAssignPartner,
			EntityType: entity.EntityServiceOrders,
			EntityID:   locked.ID,
			Old:        old,
			New:        audit.PartnerValues{AssignedPartnerID: partnerID},
		}, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", o.ID).Str("partner_id", partnerID).Msg("parceiro asignado")
	out := dto.OrderFromEntity(o, lifecycle.IsOverdue(o, now))
	return &out, nil
}
