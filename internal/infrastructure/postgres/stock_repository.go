package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del Stock Store sobre PostgreSQL (usable con pool o tx).
// Los dos primitivos de mutación son sentencias únicas: la atomicidad la da la
// propia sentencia, no un bloqueo externo.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el nivel actual; si la fila no existe devuelve cantidad 0.
func (r *StockRepo) Get(productID string, location entity.Location) (*entity.StockLevel, error) {
	query := `
		SELECT product_id, location, quantity, updated_at
		FROM stock_levels WHERE product_id = $1 AND location = $2`
	var s entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productID, string(location)).Scan(
		&s.ProductID, &s.Location, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockLevel{ProductID: productID, Location: location}, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &s, nil
}

// ListByProductIDs devuelve los niveles de un conjunto de productos.
func (r *StockRepo) ListByProductIDs(productIDs []string) ([]*entity.StockLevel, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	query := `
		SELECT product_id, location, quantity, updated_at
		FROM stock_levels WHERE product_id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("list stock levels: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevel
	for rows.Next() {
		var s entity.StockLevel
		if err := rows.Scan(&s.ProductID, &s.Location, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// EnsureLevels crea las filas en 0 para ambas ubicaciones si no existen.
func (r *StockRepo) EnsureLevels(productID string) error {
	query := `
		INSERT INTO stock_levels (product_id, location, quantity, updated_at)
		VALUES ($1, $2, 0, now()), ($1, $3, 0, now())
		ON CONFLICT (product_id, location) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query,
		productID, string(entity.LocationBackroom), string(entity.LocationShopfloor))
	if err != nil {
		return fmt.Errorf("ensure stock levels: %w", err)
	}
	return nil
}

// IncreaseQuantity suma qty a la cantidad actual; crea la fila si no existe.
func (r *StockRepo) IncreaseQuantity(productID string, location entity.Location, qty int64) error {
	if qty <= 0 {
		return fmt.Errorf("increase quantity: qty debe ser > 0")
	}
	query := `
		INSERT INTO stock_levels (product_id, location, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location)
		DO UPDATE SET quantity = stock_levels.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, productID, string(location), qty)
	if err != nil {
		return fmt.Errorf("increase stock: %w", err)
	}
	return nil
}

// DecreaseQuantityIfEnough verifica y resta en una sola sentencia: el WHERE
// quantity >= qty hace que dos decrementos concurrentes nunca dejen la fila
// en negativo. Devuelve qty si aplicó, 0 si no había suficiente.
func (r *StockRepo) DecreaseQuantityIfEnough(productID string, location entity.Location, qty int64) (int64, error) {
	if qty <= 0 {
		return 0, fmt.Errorf("decrease quantity: qty debe ser > 0")
	}
	query := `
		UPDATE stock_levels
		SET quantity = quantity - $3, updated_at = now()
		WHERE product_id = $1 AND location = $2 AND quantity >= $3`
	cmd, err := r.q.Exec(context.Background(), query, productID, string(location), qty)
	if err != nil {
		return 0, fmt.Errorf("decrease stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return 0, nil
	}
	return qty, nil
}
