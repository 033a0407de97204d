package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es el alcance transaccional explícito del
// motor: adquirir, mutar, Commit si fn devuelve nil, Rollback si devuelve
// error. Un lector de estado final nunca observa una mutación de stock sin su
// entrada correspondiente en el libro, ni al revés.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error) error
}
