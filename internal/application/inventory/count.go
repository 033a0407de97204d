package inventory

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

const countNote = "ajuste por conteo de inventario"

// CountLine una posición contada físicamente: SKU, ubicación y cantidad contada.
type CountLine struct {
	SKU      string
	Location entity.Location
	Counted  int64
}

// CountResult resumen de un conteo aplicado.
type CountResult struct {
	TotalPositions          int
	PositionsWithDifference int
	TotalPositiveDifference int64
	TotalNegativeDifference int64
}

// CountService aplica conteos físicos de inventario: la diferencia entre lo
// contado y lo registrado se corrige con los mismos primitivos transaccionales
// del motor (RECEIPT para sobrantes, ISSUE para faltantes), de modo que todo
// ajuste queda en el libro con un tipo del conjunto cerrado.
type CountService struct {
	movements   *MovementService
	stockRepo   repository.StockRepository
	productRepo repository.ProductRepository
}

// NewCountService construye el servicio de conteo.
func NewCountService(movements *MovementService, stockRepo repository.StockRepository, productRepo repository.ProductRepository) *CountService {
	return &CountService{movements: movements, stockRepo: stockRepo, productRepo: productRepo}
}

// Apply procesa las líneas del conteo en orden. Un SKU desconocido o una
// ubicación inválida abortan el conteo con ErrInvalidInput antes de seguir.
func (s *CountService) Apply(ctx context.Context, lines []CountLine) (*CountResult, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	var result CountResult
	for _, line := range lines {
		if line.Counted < 0 || !line.Location.IsValid() {
			return nil, domain.ErrInvalidInput
		}
		product, err := s.productRepo.GetBySKU(line.SKU)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrInvalidInput
		}
		result.TotalPositions++

		level, err := s.stockRepo.Get(product.ID, line.Location)
		if err != nil {
			return nil, err
		}
		diff := line.Counted - level.Quantity
		if diff == 0 {
			continue
		}
		result.PositionsWithDifference++

		if diff > 0 {
			result.TotalPositiveDifference += diff
			if err := s.movements.Receipt(ctx, product.ID, diff, line.Location, countNote); err != nil {
				return nil, err
			}
		} else {
			result.TotalNegativeDifference += -diff
			if err := s.movements.Issue(ctx, product.ID, -diff, line.Location, countNote); err != nil {
				return nil, err
			}
		}
	}
	return &result, nil
}
