package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia del catálogo (DIP).
// El motor de stock solo lo consume en lectura (GetByID, GetBySKU).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	// GetBySKU busca por SKU exacto (sensible a mayúsculas).
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	ListActive() ([]*entity.Product, error)
}
