package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). Solo inserta y consulta: el libro es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create anexa un movimiento al libro.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, type, quantity, from_location, to_location, occurred_at, note, sales_import_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		nullableLocation(movement.FromLocation), nullableLocation(movement.ToLocation),
		movement.OccurredAt, movement.Note, nullableString(movement.SalesImportID), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// ListByProduct lista movimientos de un producto, más recientes primero.
func (r *MovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	query := `
		SELECT id, product_id, type, quantity, from_location, to_location, occurred_at, note, sales_import_id, created_at
		FROM movements WHERE product_id = $1
		ORDER BY occurred_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements by product: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListBySalesImport lista los movimientos generados por una importación.
func (r *MovementRepo) ListBySalesImport(salesImportID string) ([]*entity.Movement, error) {
	query := `
		SELECT id, product_id, type, quantity, from_location, to_location, occurred_at, note, sales_import_id, created_at
		FROM movements WHERE sales_import_id = $1
		ORDER BY occurred_at`
	rows, err := r.q.Query(context.Background(), query, salesImportID)
	if err != nil {
		return nil, fmt.Errorf("list movements by import: %w", err)
	}
	defer rows.Close()
	return scanMovements(rows)
}

// SalesTotalsByProduct suma cantidades SALE_IMPORT por producto, descendente.
func (r *MovementRepo) SalesTotalsByProduct(limit int) ([]*repository.SalesTotal, error) {
	query := `
		SELECT product_id, SUM(quantity) AS total
		FROM movements WHERE type = $1
		GROUP BY product_id
		ORDER BY total DESC
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, entity.MovementTypeSALEIMPORT, limit)
	if err != nil {
		return nil, fmt.Errorf("sales totals: %w", err)
	}
	defer rows.Close()
	var list []*repository.SalesTotal
	for rows.Next() {
		var t repository.SalesTotal
		if err := rows.Scan(&t.ProductID, &t.Quantity); err != nil {
			return nil, fmt.Errorf("scan sales total: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func scanMovements(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var from, to, importID *string
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity,
			&from, &to, &m.OccurredAt, &m.Note, &importID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if from != nil {
			m.FromLocation = entity.Location(*from)
		}
		if to != nil {
			m.ToLocation = entity.Location(*to)
		}
		if importID != nil {
			m.SalesImportID = *importID
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func nullableLocation(l entity.Location) *string {
	if l == "" {
		return nil
	}
	s := string(l)
	return &s
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
