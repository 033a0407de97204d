package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// StockRepository define el puerto del Stock Store: cantidad actual por
// (producto, ubicación) con mutación exclusivamente a través de los dos
// primitivos atómicos. Ningún otro camino escribe cantidades.
type StockRepository interface {
	// Get devuelve el nivel actual; si la fila no existe devuelve cantidad 0.
	// Lectura puntual: puede quedar obsoleta de inmediato bajo concurrencia.
	Get(productID string, location entity.Location) (*entity.StockLevel, error)

	// ListByProductIDs devuelve los niveles de un conjunto de productos (ambas ubicaciones).
	ListByProductIDs(productIDs []string) ([]*entity.StockLevel, error)

	// EnsureLevels crea las filas en 0 para ambas ubicaciones si no existen (idempotente).
	EnsureLevels(productID string) error

	// IncreaseQuantity suma qty (> 0) a la cantidad actual; crea la fila si no existe.
	IncreaseQuantity(productID string, location entity.Location, qty int64) error

	// DecreaseQuantityIfEnough verifica y resta en una sola operación atómica:
	// si la cantidad actual >= qty resta y devuelve qty; si no, no muta y
	// devuelve 0. Nunca un monto parcial. Es el único mecanismo que evita
	// cantidades negativas bajo concurrencia.
	DecreaseQuantityIfEnough(productID string, location entity.Location, qty int64) (int64, error)
}
