package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/vistorias-api/internal/application/analytics"
	"github.com/jhoicas/vistorias-api/internal/application/audit"
	"github.com/jhoicas/vistorias-api/internal/application/auth"
	"github.com/jhoicas/vistorias-api/internal/application/orders"
	"github.com/jhoicas/vistorias-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	UserUC      *usecase.UserUseCase
	CompanyUC   *usecase.CompanyUseCase
	ClientUC    *usecase.ClientUseCase
	OrdersUC    *orders.UseCase
	DashboardUC *analytics.DashboardUseCase
	AuditUC     *audit.QueryUseCase
	JWTSecret   string
	Logger      zerolog.Logger
	// SwaggerJSON documento OpenAPI servido en /docs; vacío = sin UI.
	SwaggerJSON []byte
}

// NewApp construye la app Fiber con el manejador de errores común.
func NewApp(appName string) *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      appName,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(LoggingMiddleware(deps.Logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if len(deps.SwaggerJSON) > 0 {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FileContent: deps.SwaggerJSON,
			Path:        "docs",
			Title:       "Vistorias API",
		}))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	companyHandler := NewCompanyHandler(deps.CompanyUC)
	clientHandler := NewClientHandler(deps.ClientUC)
	orderHandler := NewOrderHandler(deps.OrdersUC)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	auditHandler := NewAuditHandler(deps.AuditUC)

	// Sesión del actor
	me := protected.Group("/me")
	me.Get("/", NewUserHandler(deps.UserUC).Me)
	me.Get("/companies", companyHandler.ListMine)
	me.Get("/active-company", companyHandler.GetActive)
	me.Put("/active-company", companyHandler.SetActive)

	// Empresas y recursos por empresa
	company := RequireUUIDParams("companyId")
	companies := protected.Group("/companies")
	companies.Post("/", companyHandler.Create)
	companies.Patch("/:companyId", company, companyHandler.Update)
	companies.Put("/:companyId/members", company, companyHandler.UpsertMember)
	companies.Get("/:companyId/clients", company, clientHandler.List)
	companies.Post("/:companyId/clients", company, clientHandler.Create)
	companies.Get("/:companyId/orders", company, orderHandler.ListByStatus)
	companies.Post("/:companyId/orders", company, orderHandler.Create)
	companies.Get("/:companyId/my-orders", company, orderHandler.ListMine)
	companies.Get("/:companyId/dashboard", company, dashboardHandler.GetStats)
	companies.Get("/:companyId/audit-log", company, auditHandler.List)
	companies.Get("/:companyId/audit-log/:entityType/:entityId", company, auditHandler.EntityHistory)

	// Clientes
	client := RequireUUIDParams("clientId")
	clients := protected.Group("/clients")
	clients.Get("/:clientId", client, clientHandler.GetByID)
	clients.Patch("/:clientId", client, clientHandler.Update)

	// Órdenes
	order := RequireUUIDParams("orderId")
	ordersGroup := protected.Group("/orders")
	ordersGroup.Get("/:orderId", order, orderHandler.GetByID)
	ordersGroup.Patch("/:orderId/status", order, orderHandler.UpdateStatus)
	ordersGroup.Put("/:orderId/partner", order, orderHandler.AssignPartner)
	ordersGroup.Get("/:orderId/pdf", order, orderHandler.GetPDF)
}
