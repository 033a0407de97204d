package http

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/pkg/logger"
)

// maxImportFileBytes límite superior del archivo de demanda (8 MiB).
const maxImportFileBytes = 8 << 20

// SalesImportHandler importación masiva de ventas y conteos físicos.
type SalesImportHandler struct {
	imports *inventory.SalesImportService
	counts  *inventory.CountService
	log     *logger.Logger
}

// NewSalesImportHandler construye el handler.
func NewSalesImportHandler(imports *inventory.SalesImportService, counts *inventory.CountService, log *logger.Logger) *SalesImportHandler {
	return &SalesImportHandler{imports: imports, counts: counts, log: log}
}

// Import recibe el archivo de demanda como multipart (campo "file") y lo procesa.
func (h *SalesImportHandler) Import(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_FILE", Message: "se requiere el campo multipart 'file'"})
	}
	if fileHeader.Size > maxImportFileBytes {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "FILE_TOO_LARGE", Message: "el archivo excede el tamaño máximo permitido"})
	}

	f, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	raw, err := io.ReadAll(f)
	if err != nil {
		return respondError(c, err)
	}

	result, err := h.imports.Import(c.Context(), raw, fileHeader.Filename)
	if err != nil {
		h.log.Error().Err(err).Str("file", fileHeader.Filename).Msg("importación de ventas fallida")
		return respondError(c, err)
	}

	h.log.Info().
		Str("status", result.Status).
		Str("sha256", result.SHA256).
		Int("rows_read", result.RowsRead).
		Int("movements_created", result.MovementsCreated).
		Int64("quantity_applied", result.TotalQuantityApplied).
		Msg("importación de ventas procesada")

	status := fiber.StatusCreated
	if result.Status == entity.ImportStatusSkippedDuplicate {
		status = fiber.StatusOK
	}
	return c.Status(status).JSON(dto.SalesImportResultResponse{
		Status:                 result.Status,
		RowsRead:               result.RowsRead,
		RowsValid:              result.RowsValid,
		UnknownSKUCount:        result.UnknownSKUCount,
		MovementsCreated:       result.MovementsCreated,
		TotalQuantityRequested: result.TotalQuantityRequested,
		TotalQuantityApplied:   result.TotalQuantityApplied,
		SHA256:                 result.SHA256,
	})
}

// Count aplica un conteo físico de inventario.
func (h *SalesImportHandler) Count(c *fiber.Ctx) error {
	var in dto.CountRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	lines := make([]inventory.CountLine, 0, len(in.Lines))
	for _, l := range in.Lines {
		loc, err := entity.ParseLocation(l.Location)
		if err != nil {
			return respondError(c, domain.ErrInvalidInput)
		}
		lines = append(lines, inventory.CountLine{SKU: l.SKU, Location: loc, Counted: l.Counted})
	}

	result, err := h.counts.Apply(c.Context(), lines)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.CountResultResponse{
		TotalPositions:          result.TotalPositions,
		PositionsWithDifference: result.PositionsWithDifference,
		TotalPositiveDifference: result.TotalPositiveDifference,
		TotalNegativeDifference: result.TotalNegativeDifference,
	})
}
