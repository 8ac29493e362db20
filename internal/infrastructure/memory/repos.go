package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/vistorias-api/internal/domain"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

var (
	_ repository.CompanyRepository      = (*CompanyRepo)(nil)
	_ repository.MembershipRepository   = (*MembershipRepo)(nil)
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.SessionRepository      = (*SessionRepo)(nil)
	_ repository.ClientRepository       = (*ClientRepo)(nil)
	_ repository.ServiceOrderRepository = (*ServiceOrderRepo)(nil)
	_ repository.OrderCounterRepository = (*CounterRepo)(nil)
	_ repository.AuditLogRepository     = (*AuditLogRepo)(nil)
	_ repository.BillingRepository      = (*BillingRepo)(nil)
)

var errDuplicateMembership = domain.New(domain.KindConflict, "membresía duplicada para usuario y empresa")

// CompanyRepo empresas.
type CompanyRepo struct{ a accessor }

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.companies[c.ID]; ok {
			return domain.New(domain.KindConflict, "empresa duplicada")
		}
		st.companies[c.ID] = *c
		return nil
	})
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (out *entity.Company, _ error) {
	r.a.read(func(st *state) {
		if c, ok := st.companies[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.companies[c.ID]; !ok {
			return domain.ErrCompanyNotFound
		}
		st.companies[c.ID] = *c
		return nil
	})
}

// MembershipRepo membresías.
type MembershipRepo struct{ a accessor }

func (r *MembershipRepo) Create(_ context.Context, m *entity.Membership) error {
	return r.a.write(func(st *state) error {
		for _, x := range st.memberships {
			if x.UserID == m.UserID && x.CompanyID == m.CompanyID {
				return errDuplicateMembership
			}
		}
		st.memberships[m.ID] = *m
		return nil
	})
}

func (r *MembershipRepo) Update(_ context.Context, m *entity.Membership) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.memberships[m.ID]; !ok {
			return domain.New(domain.KindNotFound, "membresía no encontrada")
		}
		st.memberships[m.ID] = *m
		return nil
	})
}

func (r *MembershipRepo) GetByUserAndCompany(_ context.Context, userID, companyID string) (out *entity.Membership, _ error) {
	r.a.read(func(st *state) {
		for _, m := range st.memberships {
			if m.UserID == userID && m.CompanyID == companyID {
				out = &m
				return
			}
		}
	})
	return out, nil
}

func (r *MembershipRepo) ListActiveByUser(_ context.Context, userID string) ([]*entity.Membership, error) {
	var out []*entity.Membership
	r.a.read(func(st *state) {
		for _, m := range st.memberships {
			if m.UserID == userID && m.IsActive {
				out = append(out, &m)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// UserRepo cuentas.
type UserRepo struct{ a accessor }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.a.write(func(st *state) error {
		for _, x := range st.users {
			if x.Email == u.Email {
				return domain.ErrEmailAlreadyExists
			}
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (out *entity.User, _ error) {
	r.a.read(func(st *state) {
		if u, ok := st.users[id]; ok {
			out = &u
		}
	})
	return out, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (out *entity.User, _ error) {
	r.a.read(func(st *state) {
		for _, u := range st.users {
			if u.Email == email {
				out = &u
				return
			}
		}
	})
	return out, nil
}

func (r *UserRepo) UpdateName(_ context.Context, id, name string) error {
	return r.a.write(func(st *state) error {
		u, ok := st.users[id]
		if !ok {
			return domain.ErrUserNotFound
		}
		u.Name = name
		st.users[id] = u
		return nil
	})
}

// SessionRepo empresa activa por usuario.
type SessionRepo struct{ a accessor }

func (r *SessionRepo) Get(_ context.Context, userID string) (out *entity.UserSession, _ error) {
	r.a.read(func(st *state) {
		if s, ok := st.sessions[userID]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r *SessionRepo) Upsert(_ context.Context, s *entity.UserSession) error {
	return r.a.write(func(st *state) error {
		st.sessions[s.UserID] = *s
		return nil
	})
}

// ClientRepo clientes.
type ClientRepo struct{ a accessor }

func (r *ClientRepo) Create(_ context.Context, c *entity.Client) error {
	return r.a.write(func(st *state) error {
		if c.IsActive {
			for _, x := range st.clients {
				if x.IsActive && x.CompanyID == c.CompanyID && x.UserID == c.UserID {
					return domain.ErrClientAlreadyExists
				}
			}
		}
		st.clients[c.ID] = *c
		return nil
	})
}

func (r *ClientRepo) GetByID(_ context.Context, id string) (out *entity.Client, _ error) {
	r.a.read(func(st *state) {
		if c, ok := st.clients[id]; ok {
			out = &c
		}
	})
	return out, nil
}

func (r *ClientRepo) GetActiveByCompanyAndUser(_ context.Context, companyID, userID string) (out *entity.Client, _ error) {
	r.a.read(func(st *state) {
		for _, c := range st.clients {
			if c.IsActive && c.CompanyID == companyID && c.UserID == userID {
				out = &c
				return
			}
		}
	})
	return out, nil
}

func (r *ClientRepo) ListActiveByCompany(_ context.Context, companyID string) ([]*entity.Client, error) {
	var out []*entity.Client
	r.a.read(func(st *state) {
		for _, c := range st.clients {
			if c.IsActive && c.CompanyID == companyID {
				out = append(out, &c)
			}
		}
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *ClientRepo) Update(_ context.Context, c *entity.Client) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.clients[c.ID]; !ok {
			return domain.ErrClientNotFound
		}
		st.clients[c.ID] = *c
		return nil
	})
}

// ServiceOrderRepo órdenes de servicio.
type ServiceOrderRepo struct{ a accessor }

func (r *ServiceOrderRepo) Create(_ context.Context, o *entity.ServiceOrder) error {
	return r.a.write(func(st *state) error {
		for _, x := range st.orders {
			if x.CompanyID == o.CompanyID && x.OrderNumber == o.OrderNumber {
				return domain.ErrDuplicateOrderNumber
			}
		}
		st.orders[o.ID] = *o
		return nil
	})
}

func (r *ServiceOrderRepo) GetByID(_ context.Context, id string) (out *entity.ServiceOrder, _ error) {
	r.a.read(func(st *state) {
		if o, ok := st.orders[id]; ok {
			out = &o
		}
	})
	return out, nil
}

// LockByID las transacciones ya están serializadas; equivale a GetByID.
func (r *ServiceOrderRepo) LockByID(ctx context.Context, id string) (*entity.ServiceOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *ServiceOrderRepo) Update(_ context.Context, o *entity.ServiceOrder) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.orders[o.ID]; !ok {
			return domain.ErrOrderNotFound
		}
		st.orders[o.ID] = *o
		return nil
	})
}

func (r *ServiceOrderRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.ServiceOrder, error) {
	var out []*entity.ServiceOrder
	r.a.read(func(st *state) {
		for _, o := range st.orders {
			if o.CompanyID == companyID {
				out = append(out, &o)
			}
		}
	})
	sortOrdersRecentFirst(out)
	return out, nil
}

func (r *ServiceOrderRepo) ListByClient(_ context.Context, clientID string, f repository.OrderFilter) ([]*entity.ServiceOrder, error) {
	var out []*entity.ServiceOrder
	r.a.read(func(st *state) {
		for _, o := range st.orders {
			if o.ClientID != clientID {
				continue
			}
			if f.Status != nil && o.Status != *f.Status {
				continue
			}
			out = append(out, &o)
		}
	})
	sortOrdersRecentFirst(out)
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// CounterRepo secuencia por empresa.
type CounterRepo struct{ a accessor }

func (r *CounterRepo) Next(_ context.Context, companyID string) (next int64, _ error) {
	err := r.a.write(func(st *state) error {
		st.counters[companyID]++
		next = st.counters[companyID]
		return nil
	})
	return next, err
}

// AuditLogRepo bitácora append-only.
type AuditLogRepo struct {
	a accessor
	s *Store
}

func (r *AuditLogRepo) Append(_ context.Context, e *entity.AuditLogEntry) error {
	if err := r.s.takeAuditFault(); err != nil {
		return err
	}
	return r.a.write(func(st *state) error {
		st.audit = append(st.audit, *e)
		return nil
	})
}

func (r *AuditLogRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.AuditLogEntry, error) {
	var out []*entity.AuditLogEntry
	r.a.read(func(st *state) {
		for i := len(st.audit) - 1; i >= 0; i-- {
			if st.audit[i].CompanyID == companyID {
				e := st.audit[i]
				out = append(out, &e)
			}
		}
	})
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *AuditLogRepo) ListByEntity(_ context.Context, entityType, entityID string) ([]*entity.AuditLogEntry, error) {
	var out []*entity.AuditLogEntry
	r.a.read(func(st *state) {
		for _, e := range st.audit {
			if e.EntityType == entityType && e.EntityID == entityID {
				out = append(out, &e)
			}
		}
	})
	return out, nil
}

// BillingRepo cobros (solo lectura).
type BillingRepo struct{ a accessor }

func (r *BillingRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Billing, error) {
	return r.list(func(b entity.Billing) bool { return b.CompanyID == companyID }), nil
}

func (r *BillingRepo) ListByClient(_ context.Context, clientID string) ([]*entity.Billing, error) {
	return r.list(func(b entity.Billing) bool { return b.ClientID == clientID }), nil
}

func (r *BillingRepo) list(match func(entity.Billing) bool) []*entity.Billing {
	var out []*entity.Billing
	r.a.read(func(st *state) {
		for _, b := range st.billing {
			if match(b) {
				out = append(out, &b)
			}
		}
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].DueDate.After(out[j].DueDate) })
	return out
}
