package entity

import "time"

// StockLevel representa la cantidad actual de un producto en una ubicación.
// Clave: (ProductID, Location). Invariante: Quantity >= 0 en todo momento;
// solo se muta a través de los primitivos atómicos del Stock Store
// (incremento y decremento condicional).
type StockLevel struct {
	ProductID string
	Location  Location
	Quantity  int64
	UpdatedAt time.Time
}
