package usecase

import (
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// StockUseCase arma la vista de stock por producto: cantidades por ubicación,
// total y bandera de stock bajo (total < mínimo configurado). Solo lectura.
type StockUseCase struct {
	productUC *ProductUseCase
	stockRepo repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(productUC *ProductUseCase, stockRepo repository.StockRepository) *StockUseCase {
	return &StockUseCase{productUC: productUC, stockRepo: stockRepo}
}

// GetStocksView devuelve la vista de stock de los productos activos,
// opcionalmente filtrados por query.
func (uc *StockUseCase) GetStocksView(query string) ([]dto.StockViewResponse, error) {
	products, err := uc.productUC.searchProducts(query)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return []dto.StockViewResponse{}, nil
	}

	ids := make([]string, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	levels, err := uc.stockRepo.ListByProductIDs(ids)
	if err != nil {
		return nil, err
	}

	qtyByProduct := make(map[string]map[entity.Location]int64, len(products))
	for _, l := range levels {
		byLoc, ok := qtyByProduct[l.ProductID]
		if !ok {
			byLoc = make(map[entity.Location]int64, 2)
			qtyByProduct[l.ProductID] = byLoc
		}
		byLoc[l.Location] = l.Quantity
	}

	views := make([]dto.StockViewResponse, 0, len(products))
	for _, p := range products {
		backroom := qtyByProduct[p.ID][entity.LocationBackroom]
		shopfloor := qtyByProduct[p.ID][entity.LocationShopfloor]
		total := backroom + shopfloor
		views = append(views, dto.StockViewResponse{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			Unit:         p.Unit,
			MinTotal:     p.MinTotal,
			BackroomQty:  backroom,
			ShopfloorQty: shopfloor,
			TotalQty:     total,
			Low:          total < p.MinTotal,
		})
	}
	return views, nil
}

// GetLowStocksView devuelve solo las filas con stock bajo.
func (uc *StockUseCase) GetLowStocksView(query string) ([]dto.StockViewResponse, error) {
	views, err := uc.GetStocksView(query)
	if err != nil {
		return nil, err
	}
	low := make([]dto.StockViewResponse, 0, len(views))
	for _, v := range views {
		if v.Low {
			low = append(low, v)
		}
	}
	return low, nil
}
