package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/vistorias-api/docs"
	"github.com/jhoicas/vistorias-api/internal/application/auth"
	"github.com/jhoicas/vistorias-api/internal/bootstrap"
	"github.com/jhoicas/vistorias-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/vistorias-api/internal/infrastructure/pdf"
	"github.com/jhoicas/vistorias-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/vistorias-api/internal/interfaces/http"
	"github.com/jhoicas/vistorias-api/pkg/config"
	"github.com/jhoicas/vistorias-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("storage", cfg.Storage.Driver).
		Int64("node_id", cfg.App.NodeID).
		Msg("iniciando aplicación")

	node, err := snowflake.NewNode(cfg.App.NodeID)
	if err != nil {
		log.Fatal().Err(err).Msg("nodo snowflake")
	}

	ctx := context.Background()
	var backend bootstrap.Backend
	switch cfg.Storage.Driver {
	case config.StorageMemory:
		log.Warn().Msg("STORAGE_DRIVER=memory: los datos se pierden al reiniciar")
		store := memory.NewStore()
		backend = bootstrap.Backend{Repos: store.Repos(), Billing: store.Billing(), Tx: store.TxRunner()}
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Component("postgres"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.Migrate {
			if err := postgres.Migrate(ctx, pool, log.Component("migrate")); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
		}
		backend = bootstrap.Backend{
			Repos:   postgres.NewRepos(pool),
			Billing: postgres.NewBillingRepository(pool),
			Tx:      postgres.NewTxRunner(pool),
		}
	}

	container := bootstrap.Build(backend, bootstrap.Options{
		JWT: auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		Node:   node,
		Sheets: infrapdf.NewMarotoOrderSheetGenerator(nil),
		Logger: log.Zerolog(),
	})

	app := httpRouter.NewApp(cfg.App.Name)
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      container.Auth,
		UserUC:      container.Users,
		CompanyUC:   container.Companies,
		ClientUC:    container.Clients,
		OrdersUC:    container.Orders,
		DashboardUC: container.Dashboard,
		AuditUC:     container.Audit,
		JWTSecret:   cfg.JWT.Secret,
		Logger:      log.Component("http"),
		SwaggerJSON: []byte(docs.SwaggerInfo.ReadDoc()),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
