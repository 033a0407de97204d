package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.SalesImportRepository = (*SalesImportRepo)(nil)

// SalesImportRepo implementación sobre PostgreSQL (usable con pool o tx).
// El índice único por sha256 es el candado de idempotencia por contenido.
type SalesImportRepo struct {
	q Querier
}

// NewSalesImportRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesImportRepository(q Querier) *SalesImportRepo {
	return &SalesImportRepo{q: q}
}

const salesImportColumns = "id, sha256, status, rows_read, rows_valid, unknown_sku_count, movements_created, total_quantity_requested, total_quantity_applied, created_at, updated_at"

// Create persiste el registro; sha256 repetido devuelve ErrDuplicate.
func (r *SalesImportRepo) Create(record *entity.SalesImport) error {
	query := `
		INSERT INTO sales_imports (id, sha256, status, rows_read, rows_valid, unknown_sku_count, movements_created, total_quantity_requested, total_quantity_applied, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.SHA256, record.Status, record.RowsRead, record.RowsValid,
		record.UnknownSKUCount, record.MovementsCreated,
		record.TotalQuantityRequested, record.TotalQuantityApplied,
		record.CreatedAt, record.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales import: %w", err)
	}
	return nil
}

// GetBySHA256 devuelve el registro con ese hash; nil si no existe.
func (r *SalesImportRepo) GetBySHA256(sha256 string) (*entity.SalesImport, error) {
	query := `SELECT ` + salesImportColumns + ` FROM sales_imports WHERE sha256 = $1`
	var rec entity.SalesImport
	err := r.q.QueryRow(context.Background(), query, sha256).Scan(
		&rec.ID, &rec.SHA256, &rec.Status, &rec.RowsRead, &rec.RowsValid,
		&rec.UnknownSKUCount, &rec.MovementsCreated,
		&rec.TotalQuantityRequested, &rec.TotalQuantityApplied,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales import: %w", err)
	}
	return &rec, nil
}

// Update actualiza estado y contadores del registro.
func (r *SalesImportRepo) Update(record *entity.SalesImport) error {
	query := `
		UPDATE sales_imports
		SET status = $2, rows_read = $3, rows_valid = $4, unknown_sku_count = $5,
		    movements_created = $6, total_quantity_requested = $7, total_quantity_applied = $8,
		    updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		record.ID, record.Status, record.RowsRead, record.RowsValid,
		record.UnknownSKUCount, record.MovementsCreated,
		record.TotalQuantityRequested, record.TotalQuantityApplied, record.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update sales import: %w", err)
	}
	return nil
}
