package dto

import "time"

// ReceiptRequest body para POST /api/movements/receipt.
// ToLocation vacío aplica la ubicación por defecto (BACKROOM).
type ReceiptRequest struct {
	ProductID  string `json:"product_id"`
	Quantity   int64  `json:"quantity"`
	ToLocation string `json:"to_location,omitempty"`
	Note       string `json:"note,omitempty"`
}

// IssueRequest body para POST /api/movements/issue.
// FromLocation vacío aplica la ubicación por defecto (SHOPFLOOR).
type IssueRequest struct {
	ProductID    string `json:"product_id"`
	Quantity     int64  `json:"quantity"`
	FromLocation string `json:"from_location,omitempty"`
	Note         string `json:"note,omitempty"`
}

// TransferRequest body para POST /api/movements/transfer. Ambas ubicaciones obligatorias.
type TransferRequest struct {
	ProductID    string `json:"product_id"`
	Quantity     int64  `json:"quantity"`
	FromLocation string `json:"from_location"`
	ToLocation   string `json:"to_location"`
	Note         string `json:"note,omitempty"`
}

// MovementResponse entrada del libro en respuestas de consulta.
type MovementResponse struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	FromLocation  string    `json:"from_location,omitempty"`
	ToLocation    string    `json:"to_location,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
	Note          string    `json:"note,omitempty"`
	SalesImportID string    `json:"sales_import_id,omitempty"`
}
