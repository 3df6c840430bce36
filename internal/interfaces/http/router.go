package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/hamagardy/mandoubi-api/internal/application/auth"
	"github.com/hamagardy/mandoubi-api/internal/application/usecase"
	"github.com/hamagardy/mandoubi-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC    *auth.UseCase
	UserUC    *usecase.UserUseCase
	SaleUC    *usecase.SaleUseCase
	ItemUC    *usecase.ItemUseCase
	TargetUC  *usecase.TargetUseCase
	ReportUC  *usecase.ReportUseCase
	ExportUC  *usecase.ExportUseCase
	JWTSecret string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	app.Use(MetricsMiddleware())
	app.Get("/metrics", MetricsHandler())
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Auth (public)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Users
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", userHandler.Update)
	users.Put("/:id/permissions", userHandler.SetPermission)
	users.Delete("/:id", userHandler.Delete)

	// Sales
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Post("/", saleHandler.Create)
	sales.Get("/", saleHandler.List)
	sales.Put("/:id/status", saleHandler.UpdateStatus)
	sales.Put("/:id/items/:index", saleHandler.UpdateItem)
	sales.Delete("/:id", saleHandler.Delete)
	sales.Delete("/", RequireRole(entity.RoleAdmin), saleHandler.ResetAll)

	// Catalog
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC)
	items.Get("/", itemHandler.List)
	items.Get("/:id", itemHandler.GetByID)
	items.Post("/", itemHandler.Create)
	items.Put("/:id", itemHandler.Update)
	items.Delete("/:id", itemHandler.Delete)

	// Targets
	targets := protected.Group("/targets")
	targetHandler := NewTargetHandler(deps.TargetUC)
	targets.Get("/:month", targetHandler.Get)
	targets.Put("/:month", targetHandler.Set)

	// Reports and exports
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC, deps.ExportUC)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/summary/pdf", reportHandler.SummaryPDF)
	reports.Get("/summary/xlsx", reportHandler.SummaryXLSX)
	reports.Get("/monthly", reportHandler.Monthly)
	reports.Get("/follow-up", RequireRole(entity.RoleAdmin), reportHandler.FollowUp)
}
