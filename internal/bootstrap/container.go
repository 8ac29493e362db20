// Package bootstrap arma los casos de uso sobre un backend de persistencia.
// Lo comparten cmd/api, cmd/seed_demo y los tests HTTP.
package bootstrap

import (
	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vistorias-api/internal/application/access"
	"github.com/jhoicas/vistorias-api/internal/application/analytics"
	"github.com/jhoicas/vistorias-api/internal/application/audit"
	"github.com/jhoicas/vistorias-api/internal/application/auth"
	"github.com/jhoicas/vistorias-api/internal/application/orders"
	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/application/usecase"
	"github.com/jhoicas/vistorias-api/internal/domain/repository"
)

// Backend repositorios de lectura, cobros y runner transaccional de un driver.
type Backend struct {
	Repos   ports.Repos
	Billing repository.BillingRepository
	Tx      ports.TxRunner
}

// Options colaboradores externos.
type Options struct {
	JWT    auth.JWTConfig
	Node   *snowflake.Node
	Sheets ports.OrderSheetGenerator
	Logger zerolog.Logger
	// BcryptCost 0 = costo por defecto.
	BcryptCost int
}

// Container casos de uso listos para el router.
type Container struct {
	Auth      *auth.AuthUseCase
	Users     *usecase.UserUseCase
	Companies *usecase.CompanyUseCase
	Clients   *usecase.ClientUseCase
	Orders    *orders.UseCase
	Dashboard *analytics.DashboardUseCase
	Audit     *audit.QueryUseCase
}

// Build construye el contenedor.
func Build(b Backend, opt Options) *Container {
	r := b.Repos
	guard := access.NewGuard(r.Memberships, r.Companies)
	recorder := audit.NewRecorder(opt.Node)

	authUC := auth.NewAuthUseCase(r.Users, opt.JWT)
	if opt.BcryptCost > 0 {
		authUC.WithBcryptCost(opt.BcryptCost)
	}

	return &Container{
		Auth:  authUC,
		Users: usecase.NewUserUseCase(r.Users),
		Companies: usecase.NewCompanyUseCase(usecase.CompanyDeps{
			Companies:   r.Companies,
			Memberships: r.Memberships,
			Sessions:    r.Sessions,
			Users:       r.Users,
			Tx:          b.Tx,
			Guard:       guard,
			Recorder:    recorder,
		}, opt.Logger),
		Clients: usecase.NewClientUseCase(usecase.ClientDeps{
			Clients:  r.Clients,
			Orders:   r.Orders,
			Billing:  b.Billing,
			Accounts: authUC,
			Tx:       b.Tx,
			Guard:    guard,
			Recorder: recorder,
		}, opt.Logger),
		Orders: orders.NewUseCase(orders.Deps{
			Orders:      r.Orders,
			Clients:     r.Clients,
			Companies:   r.Companies,
			Memberships: r.Memberships,
			Users:       r.Users,
			Tx:          b.Tx,
			Guard:       guard,
			Recorder:    recorder,
			Sheets:      opt.Sheets,
		}, opt.Logger),
		Dashboard: analytics.NewDashboardUseCase(guard, r.Orders, r.Clients, b.Billing),
		Audit:     audit.NewQueryUseCase(guard, r.AuditLog),
	}
}
