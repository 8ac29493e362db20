package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

var (
	_ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)
	_ repository.OrderCounterRepository = (*OrderCounterRepo)(nil)
)

// ServiceOrderRepo órdenes de servicio (usable con pool o tx).
type ServiceOrderRepo struct {
	q Querier
}

// NewServiceOrderRepository construye el adaptador.
func NewServiceOrderRepository(q Querier) *ServiceOrderRepo {
	return &ServiceOrderRepo{q: q}
}

const orderColumns = `id, company_id, client_id, order_number, service_type, description, address,
	lat, lng, google_maps_link, priority, status, sla_deadline,
	COALESCE(assigned_partner_id::text, ''), created_by, estimated_value, final_value,
	vehicle_info, emergency_contact, created_at, updated_at`

func scanOrder(row pgx.Row) (*entity.ServiceOrder, error) {
	var (
		o        entity.ServiceOrder
		lat, lng *float64
	)
	err := row.Scan(
		&o.ID, &o.CompanyID, &o.ClientID, &o.OrderNumber, &o.ServiceType, &o.Description, &o.Address,
		&lat, &lng, &o.GoogleMapsLink, &o.Priority, &o.Status, &o.SLADeadline,
		&o.AssignedPartnerID, &o.CreatedBy, &o.EstimatedValue, &o.FinalValue,
		&o.VehicleInfo, &o.EmergencyContact, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if lat != nil && lng != nil {
		o.Coordinates = &entity.Coordinates{Lat: *lat, Lng: *lng}
	}
	return &o, nil
}

// Create persiste la orden. (company_id, order_number) es único.
func (r *ServiceOrderRepo) Create(ctx context.Context, o *entity.ServiceOrder) error {
	var lat, lng *float64
	if o.Coordinates != nil {
		lat, lng = &o.Coordinates.Lat, &o.Coordinates.Lng
	}
	query := `
		INSERT INTO service_orders (
			id, company_id, client_id, order_number, service_type, description, address,
			lat, lng, google_maps_link, priority, status, sla_deadline,
			assigned_partner_id, created_by, estimated_value, final_value,
			vehicle_info, emergency_contact, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.CompanyID, o.ClientID, o.OrderNumber, o.ServiceType, o.Description, o.Address,
		lat, lng, o.GoogleMapsLink, o.Priority, o.Status, o.SLADeadline,
		nullString(o.AssignedPartnerID), o.CreatedBy, o.EstimatedValue, o.FinalValue,
		o.VehicleInfo, o.EmergencyContact, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "service_orders_company_number_key") {
			return domain.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert service order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID.
func (r *ServiceOrderRepo) GetByID(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM service_orders WHERE id = $1`, id)
}

// LockByID obtiene la orden con SELECT ... FOR UPDATE (solo tiene efecto dentro de una tx).
func (r *ServiceOrderRepo) LockByID(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM service_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *ServiceOrderRepo) getOne(ctx context.Context, query, id string) (*entity.ServiceOrder, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get service order: %w", err)
	}
	return o, nil
}

// Update persiste status, parceiro, valores y updated_at. Número, SLA y cliente son inmutables.
func (r *ServiceOrderRepo) Update(ctx context.Context, o *entity.ServiceOrder) error {
	query := `
		UPDATE service_orders
		   SET status = $2, assigned_partner_id = $3, estimated_value = $4, final_value = $5, updated_at = $6
		 WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		o.ID, o.Status, nullString(o.AssignedPartnerID), o.EstimatedValue, o.FinalValue, o.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update service order: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

// ListByCompany todas las órdenes de la empresa, más recientes primero.
func (r *ServiceOrderRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.ServiceOrder, error) {
	query := `SELECT ` + orderColumns + ` FROM service_orders
		WHERE company_id = $1 ORDER BY created_at DESC, order_number DESC`
	return r.list(ctx, query, companyID)
}

// ListByClient órdenes del cliente, más recientes primero, con filtro opcional de estado.
func (r *ServiceOrderRepo) ListByClient(ctx context.Context, clientID string, f repository.OrderFilter) ([]*entity.ServiceOrder, error) {
	var status any
	if f.Status != nil {
		status = string(*f.Status)
	}
	var limit any
	if f.Limit > 0 {
		limit = f.Limit
	}
	query := `SELECT ` + orderColumns + ` FROM service_orders
		WHERE client_id = $1 AND ($2::text IS NULL OR status = $2)
		ORDER BY created_at DESC, order_number DESC
		LIMIT $3`
	return r.list(ctx, query, clientID, status, limit)
}

func (r *ServiceOrderRepo) list(ctx context.Context, query string, args ...any) ([]*entity.ServiceOrder, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list service orders: %w", err)
	}
	defer rows.Close()

	var list []*entity.ServiceOrder
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan service order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// OrderCounterRepo secuencia atómica por empresa.
type OrderCounterRepo struct {
	q Querier
}

// NewOrderCounterRepository construye el adaptador.
func NewOrderCounterRepository(q Querier) *OrderCounterRepo {
	return &OrderCounterRepo{q: q}
}

// Next incrementa el contador de la empresa en una sola sentencia; la fila queda bloqueada
// hasta el fin de la transacción, por lo que dos altas concurrentes nunca ven el mismo valor.
func (r *OrderCounterRepo) Next(ctx context.Context, companyID string) (int64, error) {
	query := `
		INSERT INTO order_counters (company_id, last_value) VALUES ($1, 1)
		ON CONFLICT (company_id) DO UPDATE SET last_value = order_counters.last_value + 1
		RETURNING last_value`
	var next int64
	if err := r.q.QueryRow(ctx, query, companyID).Scan(&next); err != nil {
		return 0, fmt.Errorf("next order number: %w", err)
	}
	return next, nil
}
