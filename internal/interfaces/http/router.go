package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/estoque-api/internal/application/analytics"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
)

// RouterDeps dependencias para el router. LookupUC puede ser nil (rutas /api/lookup no se registran).
type RouterDeps struct {
	Ledger      *inventory.LedgerUseCase
	Audit       *inventory.AuditUseCase
	StockAlerts *inventory.StockAlertsUseCase
	Dashboard   *appanalytics.DashboardUseCase
	ProductUC   *usecase.ProductUseCase
	WarehouseUC *usecase.WarehouseUseCase
	SupplierUC  *usecase.SupplierUseCase
	LookupUC    *usecase.LookupUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Rutas protegidas (requieren Bearer Token)
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	adminOnly := RequireRole(RoleAdmin)

	// Libro de movimientos y correcciones
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.StockAlerts)
	inv.Post("/movements", inventoryHandler.RecordMovement)
	inv.Get("/movements", inventoryHandler.ListMovements)
	inv.Delete("/movements/:id", adminOnly, inventoryHandler.DeleteMovement)
	inv.Post("/products/:id/correction", adminOnly, inventoryHandler.CorrectStock)
	inv.Get("/products/:id/corrections", inventoryHandler.ListCorrections)
	inv.Get("/low-stock", inventoryHandler.LowStock)

	// Auditoría. report.pdf se registra antes de :productId.
	auditHandler := NewAuditHandler(deps.Audit)
	inv.Get("/audit", auditHandler.AuditAll)
	inv.Get("/audit/report.pdf", auditHandler.ReportPDF)
	inv.Get("/audit/:productId", auditHandler.AuditProduct)
	inv.Post("/audit/:productId/reconcile", adminOnly, auditHandler.Reconcile)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.Dashboard)
	api.Get("/dashboard/summary", dashboardHandler.GetSummary)

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Warehouses (depósitos)
	warehouses := api.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", adminOnly, warehouseHandler.Delete)

	// Suppliers (fornecedores)
	suppliers := api.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Delete("/:id", adminOnly, supplierHandler.Delete)

	if deps.LookupUC != nil {
		lookup := api.Group("/lookup")
		lookupHandler := NewLookupHandler(deps.LookupUC)
		lookup.Get("/cep/:cep", lookupHandler.CEP)
		lookup.Get("/cnpj/:cnpj", lookupHandler.CNPJ)
	}
}
