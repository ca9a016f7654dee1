package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// HistoryEntryResponse salida de una entrada del historial de movimientos.
type HistoryEntryResponse struct {
	ID              string          `json:"id"`
	OperationType   string          `json:"operation_type"`
	ReferenceNumber string          `json:"reference_number"`
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name"`
	SKU             string          `json:"sku"`
	Quantity        decimal.Decimal `json:"quantity"`
	Unit            string          `json:"unit"`
	FromLocation    string          `json:"from_location"`
	ToLocation      string          `json:"to_location"`
	OperationDate   time.Time       `json:"operation_date"`
	PerformedBy     string          `json:"performed_by"`
}
