// Package memory implementa los repositorios sobre un estado en memoria con transacciones
// serializadas: cada transacción trabaja sobre una copia y solo se publica si fn no falla.
// Se usa en tests y con STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

type state struct {
	companies   map[string]entity.Company
	memberships map[string]entity.Membership
	users       map[string]entity.User
	sessions    map[string]entity.UserSession
	clients     map[string]entity.Client
	orders      map[string]entity.ServiceOrder
	counters    map[string]int64
	audit       []entity.AuditLogEntry
	billing     []entity.Billing
}

func newState() *state {
	return &state{
		companies:   map[string]entity.Company{},
		memberships: map[string]entity.Membership{},
		users:       map[string]entity.User{},
		sessions:    map[string]entity.UserSession{},
		clients:     map[string]entity.Client{},
		orders:      map[string]entity.ServiceOrder{},
		counters:    map[string]int64{},
	}
}

func (s *state) clone() *state {
	c := &state{
		companies:   cloneMap(s.companies),
		memberships: cloneMap(s.memberships),
		users:       cloneMap(s.users),
		sessions:    cloneMap(s.sessions),
		clients:     cloneMap(s.clients),
		orders:      cloneMap(s.orders),
		counters:    cloneMap(s.counters),
		audit:       append([]entity.AuditLogEntry(nil), s.audit...),
		billing:     append([]entity.Billing(nil), s.billing...),
	}
	return c
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store estado compartido. Las escrituras (dentro o fuera de transacción) se serializan con txMu.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data *state

	faultMu    sync.Mutex
	auditFault error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// accessor abstrae si un repositorio opera sobre el estado publicado o sobre la copia de una transacción.
type accessor interface {
	read(fn func(st *state))
	write(fn func(st *state) error) error
}

type storeAccessor struct{ s *Store }

func (a storeAccessor) read(fn func(st *state)) {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	fn(a.s.data)
}

func (a storeAccessor) write(fn func(st *state) error) error {
	a.s.txMu.Lock()
	defer a.s.txMu.Unlock()
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	work := a.s.data.clone()
	if err := fn(work); err != nil {
		return err
	}
	a.s.data = work
	return nil
}

type txAccessor struct{ st *state }

func (a txAccessor) read(fn func(st *state))              { fn(a.st) }
func (a txAccessor) write(fn func(st *state) error) error { return fn(a.st) }

func (s *Store) repos(a accessor) ports.Repos {
	return ports.Repos{
		Companies:   &CompanyRepo{a: a},
		Memberships: &MembershipRepo{a: a},
		Sessions:    &SessionRepo{a: a},
		Users:       &UserRepo{a: a},
		Clients:     &ClientRepo{a: a},
		Orders:      &ServiceOrderRepo{a: a},
		Counters:    &CounterRepo{a: a},
		AuditLog:    &AuditLogRepo{a: a, s: s},
	}
}

// Repos repositorios fuera de transacción (cada operación es atómica por sí sola).
func (s *Store) Repos() ports.Repos {
	return s.repos(storeAccessor{s: s})
}

// Billing repositorio de cobros (solo lectura).
func (s *Store) Billing() repository.BillingRepository {
	return &BillingRepo{a: storeAccessor{s: s}}
}

// TxRunner implementa ports.TxRunner sobre el store.
func (s *Store) TxRunner() ports.TxRunner { return txRunner{s: s} }

type txRunner struct{ s *Store }

// Run serializa las transacciones: trabaja sobre una copia y la publica solo si fn no devuelve error.
func (r txRunner) Run(ctx context.Context, fn func(repos ports.Repos) error) error {
	r.s.txMu.Lock()
	defer r.s.txMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.RLock()
	work := r.s.data.clone()
	r.s.mu.RUnlock()

	if err := fn(r.s.repos(txAccessor{st: work})); err != nil {
		return err
	}
	r.s.mu.Lock()
	r.s.data = work
	r.s.mu.Unlock()
	return nil
}

// FailNextAuditAppend hace que el próximo Append de auditoría devuelva err.
func (s *Store) FailNextAuditAppend(err error) {
	s.faultMu.Lock()
	s.auditFault = err
	s.faultMu.Unlock()
}

func (s *Store) takeAuditFault() error {
	s.faultMu.Lock()
	defer s.faultMu.Unlock()
	err := s.auditFault
	s.auditFault = nil
	return err
}

// AuditEntries copia de la bitácora publicada, en orden de inserción.
func (s *Store) AuditEntries() []entity.AuditLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entity.AuditLogEntry(nil), s.data.audit...)
}

// AddBilling inserta un cobro (seed y tests; la creación de cobros no es parte del servicio).
func (s *Store) AddBilling(b entity.Billing) {
	_ = storeAccessor{s: s}.write(func(st *state) error {
		st.billing = append(st.billing, b)
		return nil
	})
}

// sortOrdersRecentFirst ordena por fecha de creación descendente y número descendente.
func sortOrdersRecentFirst(list []*entity.ServiceOrder) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].OrderNumber > list[j].OrderNumber
	})
}
