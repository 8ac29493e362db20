package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vistorias-api/internal/application/access"
	"github.com/jhoicas/vistorias-api/internal/application/audit"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/lifecycle"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

const (
	minPasswordLen    = 8
	recentOrdersLimit = 10
)

// ClientUseCase registro de clientes por empresa.
type ClientUseCase struct {
	clients  repository.ClientRepository
	orders   repository.ServiceOrderRepository
	billing  repository.BillingRepository
	accounts ports.AccountProvisioner
	tx       ports.TxRunner
	guard    *access.Guard
	recorder *audit.Recorder
	log      zerolog.Logger
	now      func() time.Time
}

// ClientDeps dependencias del registro de clientes.
type ClientDeps struct {
	Clients  repository.ClientRepository
	Orders   repository.ServiceOrderRepository
	Billing  repository.BillingRepository
	Accounts ports.AccountProvisioner
	Tx       ports.TxRunner
	Guard    *access.Guard
	Recorder *audit.Recorder
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(d ClientDeps, log zerolog.Logger) *ClientUseCase {
	return &ClientUseCase{
		clients:  d.Clients,
		orders:   d.Orders,
		billing:  d.Billing,
		accounts: d.Accounts,
		tx:       d.Tx,
		guard:    d.Guard,
		recorder: d.Recorder,
		log:      log.With().Str("component", "clients").Logger(),
		now:      time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *ClientUseCase) WithClock(now func() time.Time) *ClientUseCase {
	uc.now = now
	return uc
}

// CreateClient provisiona (o reutiliza) la cuenta y crea, en una sola transacción, el cliente,
// su membresía client y la entrada de auditoría.
func (uc *ClientUseCase) CreateClient(ctx context.Context, actorID, companyID string, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if _, err := uc.guard.Resolve(ctx, actorID, companyID, entity.AdminRoles...); err != nil {
		return nil, err
	}
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	switch {
	case in.Name == "":
		return nil, domain.New(domain.KindInvalidInput, "el nombre del cliente es obligatorio")
	case in.Email == "":
		return nil, domain.New(domain.KindInvalidInput, "el email del cliente es obligatorio")
	case len(in.Password) < minPasswordLen:
		return nil, domain.New(domain.KindInvalidInput, "la contraseña debe tener al menos 8 caracteres")
	}

	// Fuera de la transacción: si esta falla la cuenta queda sin cliente y se reutiliza al reintentar.
	account, err := uc.accounts.CreateAccount(ctx,
		ports.Credentials{Email: in.Email, Password: in.Password},
		ports.Profile{Email: in.Email, Name: in.Name})
	if err != nil {
		return nil, err
	}
	userID := account.UserID

	now := uc.now()
	client := &entity.Client{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		UserID:    userID,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		CPFCNPJ:   in.CPFCNPJ,
		Address:   in.Address,
		IsActive:  true,
		CreatedBy: actorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		existing, err := r.Clients.GetActiveByCompanyAndUser(ctx, companyID, userID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrClientAlreadyExists
		}
		if err := upsertClientMembership(ctx, r.Memberships, userID, companyID, now); err != nil {
			return err
		}
		if err := r.Clients.Create(ctx, client); err != nil {
			return err
		}
		return uc.recorder.Record(ctx, r.AuditLog, audit.Entry{
			CompanyID:  companyID,
			ActorID:    actorID,
			Action:     entity.ActionCreateClient,
			EntityType: entity.EntityClients,
			EntityID:   client.ID,
			New: audit.ClientValues{
				UserID: userID, Name: client.Name, Email: client.Email,
				Phone: client.Phone, CPFCNPJ: client.CPFCNPJ, Address: client.Address,
			},
		}, now)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("company_id", companyID).
		Str("client_id", client.ID).
		Bool("account_reused", !account.Created).
		Msg("cliente creado")
	out := dto.ClientFromEntity(client)
	out.AccountReused = !account.Created
	return &out, nil
}

// upsertClientMembership deja una membresía client activa para la cuenta. Una membresía
// activa con otro rol no se degrada.
func upsertClientMembership(ctx context.Context, repo repository.MembershipRepository, userID, companyID string, now time.Time) error {
	m, err := repo.GetByUserAndCompany(ctx, userID, companyID)
	if err != nil {
		return err
	}
	if m == nil {
		return repo.Create(ctx, &entity.Membership{
			ID:        uuid.New().String(),
			UserID:    userID,
			CompanyID: companyID,
			Role:      entity.RoleClient,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if m.IsActive && m.Role != entity.RoleClient {
		return domain.New(domain.KindConflict, "la cuenta ya es miembro del equipo de esta empresa")
	}
	m.Role = entity.RoleClient
	m.IsActive = true
	m.UpdatedAt = now
	return repo.Update(ctx, m)
}

// UpdateClient aplica los campos permitidos (admin/gestor de la empresa dueña).
// Un cambio de nombre se replica en la cuenta vinculada.
func (uc *ClientUseCase) UpdateClient(ctx context.Context, actorID, clientID string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	current, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.ErrClientNotFound
	}
	if _, err := uc.guard.Resolve(ctx, actorID, current.CompanyID, entity.AdminRoles...); err != nil {
		return nil, err
	}
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		if trimmed == "" {
			return nil, domain.New(domain.KindInvalidInput, "el nombre del cliente no puede quedar vacío")
		}
		in.Name = &trimmed
	}

	now := uc.now()
	var updated *entity.Client
	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		c, err := r.Clients.GetByID(ctx, clientID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.ErrClientNotFound
		}
		wasActive := c.IsActive
		oldVals, newVals := applyClientPatch(c, in)
		if len(newVals) == 0 {
			return domain.New(domain.KindInvalidInput, "no hay campos para actualizar")
		}
		if c.IsActive && !wasActive {
			other, err := r.Clients.GetActiveByCompanyAndUser(ctx, c.CompanyID, c.UserID)
			if err != nil {
				return err
			}
			if other != nil && other.ID != c.ID {
				return domain.ErrClientAlreadyExists
			}
		}
		c.UpdatedAt = now
		if err := r.Clients.Update(ctx, c); err != nil {
			return err
		}
		if _, ok := newVals["name"]; ok {
			if err := r.Users.UpdateName(ctx, c.UserID, c.Name); err != nil {
				return err
			}
		}
		updated = c
		return uc.recorder.Record(ctx, r.AuditLog, audit.Entry{
			CompanyID:  c.CompanyID,
			ActorID:    actorID,
			Action:     entity.ActionUpdateClient,
			EntityType: entity.EntityClients,
			EntityID:   c.ID,
			Old:        oldVals,
			New:        newVals,
		}, now)
	})
	if err != nil {
		return nil, err
	}
	out := dto.ClientFromEntity(updated)
	return &out, nil
}

func applyClientPatch(c *entity.Client, in dto.UpdateClientRequest) (audit.Patch, audit.Patch) {
	oldVals, newVals := audit.Patch{}, audit.Patch{}
	setString := func(key string, dst *string, v *string) {
		if v == nil || *v == *dst {
			return
		}
		oldVals[key], newVals[key] = *dst, *v
		*dst = *v
	}
	setString("name", &c.Name, in.Name)
	setString("phone", &c.Phone, in.Phone)
	setString("cpfCnpj", &c.CPFCNPJ, in.CPFCNPJ)
	setString("address", &c.Address, in.Address)
	if in.IsActive != nil && *in.IsActive != c.IsActive {
		oldVals["isActive"], newVals["isActive"] = c.IsActive, *in.IsActive
		c.IsActive = *in.IsActive
	}
	return oldVals, newVals
}

// ListClients clientes activos de la empresa (admin/gestor).
func (uc *ClientUseCase) ListClients(ctx context.Context, actorID, companyID string) ([]dto.ClientResponse, error) {
	if _, err := uc.guard.Resolve(ctx, actorID, companyID, entity.AdminRoles...); err != nil {
		return nil, err
	}
	list, err := uc.clients.ListActiveByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.ClientFromEntity(c))
	}
	return out, nil
}

// GetClientDetails cliente con sus órdenes recientes y cobros. Lo ven admin/gestor y el propio cliente.
func (uc *ClientUseCase) GetClientDetails(ctx context.Context, actorID, clientID string) (*dto.ClientDetailsResponse, error) {
	c, err := uc.clients.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrClientNotFound
	}
	acc, err := uc.guard.Resolve(ctx, actorID, c.CompanyID)
	if err != nil {
		return nil, err
	}
	switch {
	case acc.IsAdmin():
	case acc.Role == entity.RoleClient && c.UserID == actorID:
	case acc.Role == entity.RoleClient:
		return nil, domain.ErrAccessDenied
	default:
		return nil, domain.ErrInsufficientPermissions
	}
	orders, err := uc.orders.ListByClient(ctx, c.ID, repository.OrderFilter{Limit: recentOrdersLimit})
	if err != nil {
		return nil, err
	}
	bills, err := uc.billing.ListByClient(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := &dto.ClientDetailsResponse{
		ClientResponse: dto.ClientFromEntity(c),
		RecentOrders:   make([]dto.OrderResponse, 0, len(orders)),
		Billing:        make([]dto.BillingResponse, 0, len(bills)),
	}
	for _, o := range orders {
		out.RecentOrders = append(out.RecentOrders, dto.OrderFromEntity(o, lifecycle.IsOverdue(o, now)))
	}
	for _, b := range bills {
		out.Billing = append(out.Billing, dto.BillingFromEntity(b))
	}
	return out, nil
}
