package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP del catálogo.
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create crea un producto (con sus niveles de stock en 0).
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	created, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	c.Set("Location", "/api/products/"+created.ID)
	return c.Status(fiber.StatusCreated).JSON(created)
}

// GetByID devuelve un producto.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(product)
}

// Update actualiza parcialmente un producto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	updated, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// Deactivate marca el producto como inactivo.
func (h *ProductHandler) Deactivate(c *fiber.Ctx) error {
	updated, err := h.uc.Deactivate(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(updated)
}

// List lista productos activos, con filtro opcional ?query=.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.Query("query"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(items)
}
