package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/estoque-api/internal/application/analytics"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/infrastructure/lookup"
	infrapdf "github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	if err := cfg.ValidateHTTP(); err != nil {
		panic(err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer backend.Close()
	if backend.Driver == config.StoreDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	}

	ledgerUC := inventory.NewLedgerUseCase(backend.Tx, backend.Movements, backend.Corrections, log)
	auditUC := inventory.NewAuditUseCase(
		backend.Products, backend.Movements, ledgerUC,
		infrapdf.NewMarotoAuditRenderer(cfg.App.Name), log,
	)
	stockAlertsUC := inventory.NewStockAlertsUseCase(backend.Products)
	dashboardUC := appanalytics.NewDashboardUseCase(backend.Products, backend.Movements)

	productUC := usecase.NewProductUseCase(backend.Products, backend.Warehouses, backend.Suppliers)
	warehouseUC := usecase.NewWarehouseUseCase(backend.Warehouses)
	supplierUC := usecase.NewSupplierUseCase(backend.Suppliers)

	// ViaCEP y BrasilAPI no requieren credenciales.
	lookupClient := lookup.NewClient(cfg.Lookup.CEPBaseURL, cfg.Lookup.CNPJBaseURL, cfg.Lookup.Timeout)
	lookupUC := usecase.NewLookupUseCase(lookupClient, lookupClient, cfg.Lookup.Timeout)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.HTTP.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.HTTP.SwaggerFile,
			Path:     "docs",
			Title:    "Estoque API",
		}))
	} else {
		log.Warn().Str("file", cfg.HTTP.SwaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ledger:      ledgerUC,
		Audit:       auditUC,
		StockAlerts: stockAlertsUC,
		Dashboard:   dashboardUC,
		ProductUC:   productUC,
		WarehouseUC: warehouseUC,
		SupplierUC:  supplierUC,
		LookupUC:    lookupUC,
		JWTSecret:   cfg.JWT.Secret,
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
