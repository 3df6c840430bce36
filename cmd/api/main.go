package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/hamagardy/mandoubi-api/internal/application/auth"
	"github.com/hamagardy/mandoubi-api/internal/application/usecase"
	"github.com/hamagardy/mandoubi-api/internal/infrastructure/cache"
	"github.com/hamagardy/mandoubi-api/internal/infrastructure/excel"
	infrapdf "github.com/hamagardy/mandoubi-api/internal/infrastructure/pdf"
	"github.com/hamagardy/mandoubi-api/internal/infrastructure/postgres"
	httpRouter "github.com/hamagardy/mandoubi-api/internal/interfaces/http"
	"github.com/hamagardy/mandoubi-api/pkg/config"
	"github.com/hamagardy/mandoubi-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("schema bootstrap")
	}

	userRepo := postgres.NewUserRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	itemRepo := postgres.NewItemRepository(pool)

	// Summary cache is optional; a nil cache just recomputes every report.
	var summaryCache usecase.SummaryCache
	if c := cache.NewSummaryCache(ctx, cfg.Redis, log); c != nil {
		defer c.Close()
		summaryCache = c
	}

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Sales.BootstrapAdminEmail)
	userUC := usecase.NewUserUseCase(userRepo)
	saleUC := usecase.NewSaleUseCase(saleRepo, itemRepo, userRepo)
	itemUC := usecase.NewItemUseCase(itemRepo, userRepo)
	targetUC := usecase.NewTargetUseCase(userRepo, log)
	reportUC := usecase.NewReportUseCase(saleRepo, userRepo, summaryCache, log)
	exportUC := usecase.NewExportUseCase(reportUC, infrapdf.NewMarotoSummaryGenerator(), excel.NewExcelizeSummaryGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		UserUC:    userUC,
		SaleUC:    saleUC,
		ItemUC:    itemUC,
		TargetUC:  targetUC,
		ReportUC:  reportUC,
		ExportUC:  exportUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
