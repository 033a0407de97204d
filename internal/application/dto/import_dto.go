package dto

// SalesImportResultResponse contadores de una importación de ventas.
type SalesImportResultResponse struct {
	Status                 string `json:"status"`
	RowsRead               int    `json:"rows_read"`
	RowsValid              int    `json:"rows_valid"`
	UnknownSKUCount        int    `json:"unknown_sku_count"`
	MovementsCreated       int    `json:"movements_created"`
	TotalQuantityRequested int64  `json:"total_quantity_requested"`
	TotalQuantityApplied   int64  `json:"total_quantity_applied"`
	SHA256                 string `json:"sha256"`
}

// CountLineRequest posición contada en un conteo físico.
type CountLineRequest struct {
	SKU      string `json:"sku"`
	Location string `json:"location"`
	Counted  int64  `json:"counted"`
}

// CountRequest body para POST /api/inventory/count.
type CountRequest struct {
	Lines []CountLineRequest `json:"lines"`
}

// CountResultResponse resumen del conteo aplicado.
type CountResultResponse struct {
	TotalPositions          int   `json:"total_positions"`
	PositionsWithDifference int   `json:"positions_with_difference"`
	TotalPositiveDifference int64 `json:"total_positive_difference"`
	TotalNegativeDifference int64 `json:"total_negative_difference"`
}
