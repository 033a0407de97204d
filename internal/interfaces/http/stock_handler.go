package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
)

// StockHandler vistas de stock y sugerencias de pedido (solo lectura).
type StockHandler struct {
	stockUC      *usecase.StockUseCase
	suggestionUC *usecase.OrderSuggestionUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(stockUC *usecase.StockUseCase, suggestionUC *usecase.OrderSuggestionUseCase) *StockHandler {
	return &StockHandler{stockUC: stockUC, suggestionUC: suggestionUC}
}

// List vista de stock por producto, con filtro opcional ?query=.
func (h *StockHandler) List(c *fiber.Ctx) error {
	views, err := h.stockUC.GetStocksView(c.Query("query"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// ListLow solo las filas con stock por debajo del mínimo.
func (h *StockHandler) ListLow(c *fiber.Ctx) error {
	views, err := h.stockUC.GetLowStocksView(c.Query("query"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(views)
}

// Suggestions sugerencias de pedido para todos los productos.
func (h *StockHandler) Suggestions(c *fiber.Ctx) error {
	rows, err := h.suggestionUC.Suggest(c.Query("query"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// ExportSuggestions descarga en CSV las filas de stock bajo con su sugerido.
func (h *StockHandler) ExportSuggestions(c *fiber.Ctx) error {
	data, err := h.suggestionUC.ExportLowCSV(c.Query("query"))
	if err != nil {
		return respondError(c, err)
	}
	filename := fmt.Sprintf("sugerencia-pedido-%s.csv", time.Now().Format("2006-01-02"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
