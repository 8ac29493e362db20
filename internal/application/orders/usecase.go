// Package orders es el motor de ciclo de vida de órdenes de servicio: creación numerada,
// cambios de estado validados por rol y por grafo, asignación de parceiro y lecturas enriquecidas.
package orders

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/vistorias-api/internal/application/access"
	"github.com/jhoicas/vistorias-api/internal/application/audit"
	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

// Deps dependencias del motor.
type Deps struct {
	Orders      repository.ServiceOrderRepository
	Clients     repository.ClientRepository
	Companies   repository.CompanyRepository
	Memberships repository.MembershipRepository
	Users       repository.UserRepository
	Tx          ports.TxRunner
	Guard       *access.Guard
	Recorder    *audit.Recorder
	Sheets      ports.OrderSheetGenerator
}

// UseCase casos de uso de órdenes de servicio.
type UseCase struct {
	orders      repository.ServiceOrderRepository
	clients     repository.ClientRepository
	companies   repository.CompanyRepository
	memberships repository.MembershipRepository
	users       repository.UserRepository
	tx          ports.TxRunner
	guard       *access.Guard
	recorder    *audit.Recorder
	sheets      ports.OrderSheetGenerator
	log         zerolog.Logger
	now         func() time.Time
}

// NewUseCase construye el motor.
func NewUseCase(d Deps, log zerolog.Logger) *UseCase {
	return &UseCase{
		orders:      d.Orders,
		clients:     d.Clients,
		companies:   d.Companies,
		memberships: d.Memberships,
		users:       d.Users,
		tx:          d.Tx,
		guard:       d.Guard,
		recorder:    d.Recorder,
		sheets:      d.Sheets,
		log:         log.With().Str("component", "orders").Logger(),
		now:         time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// assignerRoles pueden asignar parceiros.
var assignerRoles = []entity.Role{entity.RoleAdmin, entity.RoleGestor, entity.RoleAtendente}
