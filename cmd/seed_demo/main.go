// seed_demo crea la empresa de demostración con tres clientes y una vistoria abierta por cliente.
// Pasa por los mismos casos de uso que la API, así que todo queda auditado.
//
// Uso: go run ./cmd/seed_demo [email-admin] [password]
// Por defecto: admin@eagle.com / demo12345
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/bwmarrin/snowflake"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vistorias-api/internal/application/auth"
	"github.com/jhoicas/vistorias-api/internal/application/dto"
	"github.com/jhoicas/vistorias-api/internal/application/ports"
	"github.com/jhoicas/vistorias-api/internal/bootstrap"
	"github.com/jhoicas/vistorias-api/internal/domain/entity"
	"github.com/jhoicas/vistorias-api/internal/infrastructure/memory"
	"github.com/jhoicas/vistorias-api/internal/infrastructure/postgres"
	"github.com/jhoicas/vistorias-api/pkg/config"
	"github.com/jhoicas/vistorias-api/pkg/logger"
)

const demoPassword = "demo12345"

type demoClient struct {
	name, email, phone string
}

type demoOrder struct {
	address, description string
	priority             entity.Priority
}

var (
	demoCompany = dto.CreateCompanyRequest{
		Name:    "Eagle Vistorias Demo",
		CNPJ:    "12.345.678/0001-90",
		Address: "Rua das Vistorias, 123 - São Paulo, SP",
		Phone:   "(11) 99999-9999",
		Email:   "contato@eaglevistorias.com.br",
	}
	demoClients = []demoClient{
		{"João Silva", "joao@email.com", "(11) 98765-4321"},
		{"Maria Santos", "maria@email.com", "(11) 87654-3210"},
		{"Pedro Oliveira", "pedro@email.com", "(11) 76543-2109"},
	}
	demoOrders = []demoOrder{
		{"Rua das Flores, 456 - Vila Madalena, São Paulo, SP", "Vistoria residencial para seguro habitacional", entity.PriorityMedia},
		{"Av. Paulista, 1000 - Bela Vista, São Paulo, SP", "Vistoria comercial para renovação de apólice", entity.PriorityAlta},
		{"Rua Augusta, 789 - Consolação, São Paulo, SP", "Vistoria de apartamento para compra", entity.PriorityUrgente},
	}
)

// result resumen de lo creado.
type result struct {
	AdminID   string
	CompanyID string
	ClientIDs []string
	Orders    []string
}

func main() {
	adminEmail, password := "admin@eagle.com", demoPassword
	if len(os.Args) > 1 {
		adminEmail = os.Args[1]
	}
	if len(os.Args) > 2 {
		password = os.Args[2]
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "seed_demo"})

	node, err := snowflake.NewNode(cfg.App.NodeID)
	if err != nil {
		log.Fatal().Err(err).Msg("nodo snowflake")
	}

	ctx := context.Background()
	var backend bootstrap.Backend
	if cfg.Storage.Driver == config.StorageMemory {
		store := memory.NewStore()
		backend = bootstrap.Backend{Repos: store.Repos(), Billing: store.Billing(), Tx: store.TxRunner()}
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		backend = bootstrap.Backend{
			Repos:   postgres.NewRepos(pool),
			Billing: postgres.NewBillingRepository(pool),
			Tx:      postgres.NewTxRunner(pool),
		}
	}

	c := bootstrap.Build(backend, bootstrap.Options{
		JWT:    auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer},
		Node:   node,
		Logger: log.Zerolog(),
	})

	res, err := seed(ctx, c, adminEmail, password, log.Component("seed"))
	if err != nil {
		log.Fatal().Err(err).Msg("seed demo")
	}
	fmt.Printf("Empresa demo: %s\nAdmin: %s (%s)\nClientes: %d\nÓrdenes: %v\n",
		res.CompanyID, adminEmail, res.AdminID, len(res.ClientIDs), res.Orders)
}

// seed crea (o reutiliza) la cuenta admin, la empresa, los clientes y sus órdenes.
func seed(ctx context.Context, c *bootstrap.Container, adminEmail, password string, log zerolog.Logger) (*result, error) {
	admin, err := c.Auth.CreateAccount(ctx,
		ports.Credentials{Email: adminEmail, Password: password},
		ports.Profile{Email: adminEmail, Name: "Administrador Eagle"})
	if err != nil {
		return nil, fmt.Errorf("cuenta admin: %w", err)
	}
	adminID := admin.UserID

	company, err := c.Companies.CreateCompany(ctx, adminID, demoCompany)
	if err != nil {
		return nil, fmt.Errorf("empresa: %w", err)
	}
	log.Info().Str("company_id", company.ID).Msg("empresa demo creada")

	res := &result{AdminID: adminID, CompanyID: company.ID}
	for i, dc := range demoClients {
		cl, err := c.Clients.CreateClient(ctx, adminID, company.ID, dto.CreateClientRequest{
			Name: dc.name, Email: dc.email, Password: password, Phone: dc.phone,
		})
		if err != nil {
			return nil, fmt.Errorf("cliente %s: %w", dc.email, err)
		}
		res.ClientIDs = append(res.ClientIDs, cl.ID)

		o := demoOrders[i]
		order, err := c.Orders.CreateServiceOrder(ctx, cl.UserID, company.ID, dto.CreateOrderRequest{
			ServiceType: entity.ServiceVistoria,
			Address:     o.address,
			Description: o.description,
			Priority:    o.priority,
		})
		if err != nil {
			return nil, fmt.Errorf("orden de %s: %w", dc.email, err)
		}
		res.Orders = append(res.Orders, order.OrderNumber)
	}
	return res, nil
}
