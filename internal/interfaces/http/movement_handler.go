package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

// MovementHandler maneja los movimientos directos de stock y la consulta del libro.
type MovementHandler struct {
	movements *inventory.MovementService
	reports   *usecase.ReportUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(movements *inventory.MovementService, reports *usecase.ReportUseCase) *MovementHandler {
	return &MovementHandler{movements: movements, reports: reports}
}

// Receipt registra una entrada de mercancía.
func (h *MovementHandler) Receipt(c *fiber.Ctx) error {
	var in dto.ReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	to, err := optionalLocation(in.ToLocation)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.movements.Receipt(c.Context(), in.ProductID, in.Quantity, to, in.Note); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Issue registra una salida manual.
func (h *MovementHandler) Issue(c *fiber.Ctx) error {
	var in dto.IssueRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	from, err := optionalLocation(in.FromLocation)
	if err != nil {
		return respondError(c, err)
	}
	if err := h.movements.Issue(c.Context(), in.ProductID, in.Quantity, from, in.Note); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Transfer traslada stock entre ubicaciones.
func (h *MovementHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	from, err := entity.ParseLocation(in.FromLocation)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	to, err := entity.ParseLocation(in.ToLocation)
	if err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	if err := h.movements.Transfer(c.Context(), in.ProductID, in.Quantity, from, to, in.Note); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List proyección del libro por producto (?product_id=&limit=&offset=).
func (h *MovementHandler) List(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return respondError(c, domain.ErrInvalidInput)
	}
	rows, err := h.reports.ListMovements(productID, c.QueryInt("limit"), c.QueryInt("offset"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(rows)
}

// optionalLocation parsea una ubicación opcional; vacío delega el default al servicio.
func optionalLocation(s string) (entity.Location, error) {
	if s == "" {
		return "", nil
	}
	loc, err := entity.ParseLocation(s)
	if err != nil {
		return "", domain.ErrInvalidInput
	}
	return loc, nil
}
