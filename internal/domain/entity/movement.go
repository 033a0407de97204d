package entity

import (
	"time"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
)

// Tipos de movimiento de stock.
const (
	MovementTypeRECEIPT    = "RECEIPT"     // entrada de mercancía
	MovementTypeISSUE      = "ISSUE"       // salida manual
	MovementTypeTRANSFER   = "TRANSFER"    // traslado entre ubicaciones
	MovementTypeSALEIMPORT = "SALE_IMPORT" // salida por importación de ventas
)

// Movement es una entrada del libro de movimientos: registra un cambio de
// cantidad ya aceptado. Inmutable una vez creado; el libro es append-only.
//
// Forma según tipo: RECEIPT solo ToLocation; ISSUE y SALE_IMPORT solo
// FromLocation; TRANSFER ambas y distintas. SalesImportID referencia (no
// propietaria) a la importación que originó un SALE_IMPORT.
type Movement struct {
	ID            string
	ProductID     string
	Type          string
	Quantity      int64 // siempre > 0; el signo lo da el tipo y la ubicación
	FromLocation  Location
	ToLocation    Location
	OccurredAt    time.Time
	Note          string
	SalesImportID string
	CreatedAt     time.Time
}

// Validate verifica la forma del movimiento según su tipo antes de anexarlo
// al libro.
func (m *Movement) Validate() error {
	if m.ProductID == "" || m.Quantity <= 0 {
		return domain.ErrInvalidInput
	}
	switch m.Type {
	case MovementTypeRECEIPT:
		if !m.ToLocation.IsValid() || m.FromLocation != "" {
			return domain.ErrInvalidInput
		}
	case MovementTypeISSUE, MovementTypeSALEIMPORT:
		if !m.FromLocation.IsValid() || m.ToLocation != "" {
			return domain.ErrInvalidInput
		}
	case MovementTypeTRANSFER:
		if !m.FromLocation.IsValid() || !m.ToLocation.IsValid() || m.FromLocation == m.ToLocation {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	return nil
}
