package ports

import (
	"context"

	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

// Repos repositorios atados a una misma transacción.
type Repos struct {
	Companies   repository.CompanyRepository
	Memberships repository.MembershipRepository
	Sessions    repository.SessionRepository
	Users       repository.UserRepository
	Clients     repository.ClientRepository
	Orders      repository.ServiceOrderRepository
	Counters    repository.OrderCounterRepository
	AuditLog    repository.AuditLogRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD. Si fn devuelve error se hace
// rollback completo: ninguna mutación queda aplicada sin su entrada de auditoría.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos Repos) error) error
}
