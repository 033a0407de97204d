package entity

import "time"

// Estados de una importación de ventas.
const (
	ImportStatusProcessing       = "PROCESSING"
	ImportStatusSuccess          = "SUCCESS"
	ImportStatusFailed           = "FAILED"
	ImportStatusSkippedDuplicate = "SKIPPED_DUPLICATE"
)

// SalesImport registra una importación masiva de ventas, una por contenido
// distinto (SHA256 único sobre los bytes crudos del archivo). Ciclo de vida:
// PROCESSING -> SUCCESS | FAILED; reenvíos del mismo contenido se responden
// como SKIPPED_DUPLICATE sin volver a ejecutar la asignación.
type SalesImport struct {
	ID                     string
	SHA256                 string
	Status                 string
	RowsRead               int
	RowsValid              int
	UnknownSKUCount        int
	MovementsCreated       int
	TotalQuantityRequested int64
	TotalQuantityApplied   int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
