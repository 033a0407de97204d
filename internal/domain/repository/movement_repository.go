package repository

import "github.com/jhoicas/stock-ledger-api/internal/domain/entity"

// SalesTotal total vendido (SALE_IMPORT) por producto, para reportes.
type SalesTotal struct {
	ProductID string
	Quantity  int64
}

// MovementRepository define el puerto del libro de movimientos. Append-only:
// no existe operación de actualización ni de borrado. Las consultas son
// proyecciones de solo lectura para colaboradores de reporte/auditoría.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error)
	ListBySalesImport(salesImportID string) ([]*entity.Movement, error)
	// SalesTotalsByProduct suma cantidades SALE_IMPORT por producto, descendente.
	SalesTotalsByProduct(limit int) ([]*SalesTotal, error)
}
