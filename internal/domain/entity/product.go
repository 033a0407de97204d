package entity

import "time"

// Product representa un producto del catálogo identificado por SKU.
// MinTotal es el umbral mínimo de stock total (bodega + piso) para marcarlo
// como bajo; el stock en sí vive en StockLevel y solo se muta vía movimientos.
type Product struct {
	ID        string
	SKU       string // código único, sensible a mayúsculas
	Name      string
	Unit      string
	MinTotal  int64
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
