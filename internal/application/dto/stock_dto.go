package dto

// StockViewResponse vista de stock por producto con cantidades por ubicación.
type StockViewResponse struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	Unit         string `json:"unit"`
	MinTotal     int64  `json:"min_total"`
	BackroomQty  int64  `json:"backroom_qty"`
	ShopfloorQty int64  `json:"shopfloor_qty"`
	TotalQty     int64  `json:"total_qty"`
	Low          bool   `json:"low"`
}

// OrderSuggestionResponse fila de la sugerencia de pedido.
type OrderSuggestionResponse struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	MinTotal     int64  `json:"min_total"`
	BackroomQty  int64  `json:"backroom_qty"`
	ShopfloorQty int64  `json:"shopfloor_qty"`
	TotalQty     int64  `json:"total_qty"`
	SuggestedQty int64  `json:"suggested_qty"`
}

// TopSalesRowResponse fila del reporte de más vendidos (SALE_IMPORT).
type TopSalesRowResponse struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku,omitempty"`
	Name         string `json:"name,omitempty"`
	QuantitySold int64  `json:"quantity_sold"`
}
