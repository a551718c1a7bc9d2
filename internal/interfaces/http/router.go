package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/punto-venta-api/internal/application/cashier"
	"github.com/jhoicas/punto-venta-api/internal/application/catalog"
	"github.com/jhoicas/punto-venta-api/internal/application/checkout"
	"github.com/jhoicas/punto-venta-api/internal/application/consolidation"
	"github.com/jhoicas/punto-venta-api/internal/application/dashboard"
	"github.com/jhoicas/punto-venta-api/internal/application/production"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	SettleOrder *checkout.SettleOrderUseCase
	Consolidate *consolidation.ConsolidateUseCase
	Report      *dashboard.ReportUseCase
	AdjustStock *production.AdjustCompositeUseCase
	Reversal    *production.ReversalUseCase
	CashierUC   *cashier.UseCase
	MenuUC      *catalog.MenuUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Ventas (protegido; consolidar y dashboard solo admin)
	sale := protected.Group("/sale")
	saleHandler := NewSaleHandler(deps.SettleOrder, deps.Consolidate, deps.Report)
	sale.Post("/order", saleHandler.CreateOrder)
	sale.Post("/consolidate", RequireRole("admin"), saleHandler.Consolidate)
	sale.Get("/dashboard/:type", RequireRole("admin"), saleHandler.Dashboard)

	// Caja (solo admin)
	cashierGroup := protected.Group("/cashier", RequireRole("admin"))
	cashierHandler := NewCashierHandler(deps.CashierUC)
	cashierGroup.Post("/open", cashierHandler.Open)
	cashierGroup.Delete("/:id", cashierHandler.Close)

	// Catálogo: menú del terminal y producción/reversión de compuestos
	catalogGroup := protected.Group("/catalog")
	catalogHandler := NewCatalogHandler(deps.MenuUC)
	catalogGroup.Get("/products", catalogHandler.ListProducts)
	catalogGroup.Get("/combos", catalogHandler.ListCombos)

	stockHandler := NewStockHandler(deps.AdjustStock, deps.Reversal)
	catalogGroup.Patch("/products/:id/stock", RequireRole("admin"), stockHandler.AdjustProductStock)
	catalogGroup.Patch("/combos/:id/stock", RequireRole("admin"), stockHandler.AdjustComboStock)
	catalogGroup.Delete("/products/:id", RequireRole("admin"), stockHandler.DeleteProduct)
	catalogGroup.Delete("/combos/:id", RequireRole("admin"), stockHandler.DeleteCombo)
}
