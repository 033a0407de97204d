package usecase

import (
	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

const defaultTopSalesLimit = 10

// ReportUseCase reportes de solo lectura sobre el libro de movimientos.
type ReportUseCase struct {
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(movementRepo repository.MovementRepository, productRepo repository.ProductRepository) *ReportUseCase {
	return &ReportUseCase{movementRepo: movementRepo, productRepo: productRepo}
}

// TopSales devuelve los productos más vendidos según los movimientos
// SALE_IMPORT, en orden descendente por cantidad.
func (uc *ReportUseCase) TopSales(limit int) ([]dto.TopSalesRowResponse, error) {
	if limit <= 0 {
		limit = defaultTopSalesLimit
	}
	totals, err := uc.movementRepo.SalesTotalsByProduct(limit)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.TopSalesRowResponse, 0, len(totals))
	for _, t := range totals {
		row := dto.TopSalesRowResponse{ProductID: t.ProductID, QuantitySold: t.Quantity}
		// El producto puede haberse desactivado; la fila se reporta igual.
		if p, err := uc.productRepo.GetByID(t.ProductID); err == nil && p != nil {
			row.SKU = p.SKU
			row.Name = p.Name
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// ListMovements proyección del libro por producto, paginada.
func (uc *ReportUseCase) ListMovements(productID string, limit, offset int) ([]dto.MovementResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	movements, err := uc.movementRepo.ListByProduct(productID, limit, offset)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		rows = append(rows, dto.MovementResponse{
			ID:            m.ID,
			ProductID:     m.ProductID,
			Type:          m.Type,
			Quantity:      m.Quantity,
			FromLocation:  string(m.FromLocation),
			ToLocation:    string(m.ToLocation),
			OccurredAt:    m.OccurredAt,
			Note:          m.Note,
			SalesImportID: m.SalesImportID,
		})
	}
	return rows, nil
}
