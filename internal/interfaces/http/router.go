package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/commodities-cms/internal/application/analytics"
	"github.com/jhoicas/commodities-cms/internal/application/auth"
	"github.com/jhoicas/commodities-cms/internal/application/usecase"
	"github.com/jhoicas/commodities-cms/internal/domain/entity"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/ws"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ctx         context.Context // vida del servidor, para el hub
	AuthUC      *auth.AuthUseCase
	ProductUC   *usecase.ProductUseCase
	DashboardUC *appanalytics.DashboardUseCase
	ReportUC    *usecase.ReportUseCase
	AuditUC     *usecase.AuditUseCase
	Hub         *ws.Hub // nil = sin /ws
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Ctx == nil {
		deps.Ctx = context.Background()
	}
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token con sesión abierta)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Catálogo: lectura para cualquier sesión, escritura para los roles que modifican
	productHandler := NewProductHandler(deps.ProductUC)
	canModify := RequireRole(entity.RoleManager, entity.RoleStoreKeeper)
	protected.Get("/catalog/options", productHandler.Options)
	products := protected.Group("/products")
	products.Get("/", productHandler.List)
	products.Get("/categories", productHandler.Categories)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", canModify, productHandler.Create)
	products.Put("/:id", canModify, productHandler.Update)
	products.Delete("/:id", canModify, productHandler.Delete)

	// Dashboard, reportes y auditoría (solo manager)
	managerOnly := RequireRole(entity.RoleManager)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard := protected.Group("/dashboard", managerOnly)
	dashboard.Get("/stats", dashboardHandler.GetStats)
	dashboard.Get("/summary", dashboardHandler.GetSummary)

	if deps.ReportUC != nil {
		reportHandler := NewReportHandler(deps.ReportUC)
		reports := protected.Group("/reports", managerOnly)
		reports.Get("/inventory.pdf", reportHandler.InventoryPDF)
		reports.Get("/inventory.xlsx", reportHandler.InventoryXLSX)
	}
	if deps.AuditUC != nil {
		protected.Get("/audit", managerOnly, NewAuditHandler(deps.AuditUC).List)
	}

	// Feed de eventos: el token viaja en ?token=
	if deps.Hub != nil {
		wsHandler := NewWSHandler(deps.Ctx, deps.Hub)
		app.Get("/ws", wsHandler.RequireUpgrade, QueryTokenMiddleware(deps.JWTSecret, deps.AuthUC), wsHandler.Stream())
	}
}
