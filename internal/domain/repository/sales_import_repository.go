package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// SalesImportRepository define el puerto de persistencia para registros de
// importación de ventas, uno por contenido distinto (SHA256 único).
type SalesImportRepository interface {
	// Create persiste el registro; devuelve domain.ErrDuplicate si ya existe
	// un registro con el mismo SHA256.
	Create(record *entity.SalesImport) error
	// GetBySHA256 devuelve el registro con ese hash o nil si no existe.
	GetBySHA256(sha256 string) (*entity.SalesImport, error)
	// Update actualiza estado y contadores del registro (cierre del ciclo de vida).
	Update(record *entity.SalesImport) error
}
