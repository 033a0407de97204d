package usecase

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
)

// OrderSuggestionUseCase calcula sugerencias de pedido a partir de la vista de
// stock: sugerido = max(0, mínimo - total). Exporta a CSV las filas bajas.
type OrderSuggestionUseCase struct {
	stockUC *StockUseCase
}

// NewOrderSuggestionUseCase construye el caso de uso.
func NewOrderSuggestionUseCase(stockUC *StockUseCase) *OrderSuggestionUseCase {
	return &OrderSuggestionUseCase{stockUC: stockUC}
}

// Suggest devuelve la sugerencia de pedido para todos los productos (filtrables).
func (uc *OrderSuggestionUseCase) Suggest(query string) ([]dto.OrderSuggestionResponse, error) {
	views, err := uc.stockUC.GetStocksView(query)
	if err != nil {
		return nil, err
	}
	rows := make([]dto.OrderSuggestionResponse, 0, len(views))
	for _, v := range views {
		rows = append(rows, dto.OrderSuggestionResponse{
			ProductID:    v.ProductID,
			SKU:          v.SKU,
			Name:         v.Name,
			MinTotal:     v.MinTotal,
			BackroomQty:  v.BackroomQty,
			ShopfloorQty: v.ShopfloorQty,
			TotalQty:     v.TotalQty,
			SuggestedQty: suggestedQty(v),
		})
	}
	return rows, nil
}

// ExportLowCSV genera un CSV (con cabecera) solo con las filas de stock bajo.
func (uc *OrderSuggestionUseCase) ExportLowCSV(query string) ([]byte, error) {
	views, err := uc.stockUC.GetStocksView(query)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"sku", "name", "min_total", "backroom_qty", "shopfloor_qty", "total_qty", "suggested_qty"}); err != nil {
		return nil, err
	}
	for _, v := range views {
		if !v.Low {
			continue
		}
		record := []string{
			v.SKU,
			v.Name,
			strconv.FormatInt(v.MinTotal, 10),
			strconv.FormatInt(v.BackroomQty, 10),
			strconv.FormatInt(v.ShopfloorQty, 10),
			strconv.FormatInt(v.TotalQty, 10),
			strconv.FormatInt(suggestedQty(v), 10),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func suggestedQty(v dto.StockViewResponse) int64 {
	if suggested := v.MinTotal - v.TotalQty; suggested > 0 {
		return suggested
	}
	return 0
}
