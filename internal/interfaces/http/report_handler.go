package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
)

// ReportHandler reportes de solo lectura sobre el libro de movimientos.
type ReportHandler struct {
	uc *usecase.ReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *usecase.ReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// TopSales productos más vendidos según movimientos SALE_IMPORT (?limit=).
func (h *ReportHandler) TopSales(c *fiber.Ctx) error {
	rows, err := h.uc.TopSales(c.QueryInt("limit"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}
