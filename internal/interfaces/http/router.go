package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	StockUC      *usecase.StockUseCase
	SuggestionUC *usecase.OrderSuggestionUseCase
	ReportUC     *usecase.ReportUseCase
	Movements    *inventory.MovementService
	SalesImport  *inventory.SalesImportService
	Count        *inventory.CountService
	Log          *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Catálogo
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Post("/:id/deactivate", productHandler.Deactivate)

	// Movimientos directos y consulta del libro
	movements := api.Group("/movements")
	movementHandler := NewMovementHandler(deps.Movements, deps.ReportUC)
	movements.Post("/receipt", movementHandler.Receipt)
	movements.Post("/issue", movementHandler.Issue)
	movements.Post("/transfer", movementHandler.Transfer)
	movements.Get("/", movementHandler.List)

	// Vistas de stock y sugerencias de pedido
	stockHandler := NewStockHandler(deps.StockUC, deps.SuggestionUC)
	stocks := api.Group("/stocks")
	stocks.Get("/", stockHandler.List)
	stocks.Get("/low", stockHandler.ListLow)
	suggestions := api.Group("/order-suggestions")
	suggestions.Get("/", stockHandler.Suggestions)
	suggestions.Get("/export", stockHandler.ExportSuggestions)

	// Importación de ventas y conteos físicos
	importHandler := NewSalesImportHandler(deps.SalesImport, deps.Count, deps.Log)
	api.Post("/sales-imports", importHandler.Import)
	api.Post("/inventory/count", importHandler.Count)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	api.Get("/reports/top-sales", reportHandler.TopSales)
}
