package dto

import "time"

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	SKU      string `json:"sku"`
	Name     string `json:"name"`
	Unit     string `json:"unit"`
	MinTotal int64  `json:"min_total"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil no cambian.
type UpdateProductRequest struct {
	SKU      *string `json:"sku,omitempty"`
	Name     *string `json:"name,omitempty"`
	Unit     *string `json:"unit,omitempty"`
	MinTotal *int64  `json:"min_total,omitempty"`
	Active   *bool   `json:"active,omitempty"`
}

// ProductResponse representación HTTP de un producto.
type ProductResponse struct {
	ID        string    `json:"id"`
	SKU       string    `json:"sku"`
	Name      string    `json:"name"`
	Unit      string    `json:"unit"`
	MinTotal  int64     `json:"min_total"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
