package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemDTO línea de producto de un documento de movimiento. quantity aplica
// a receipt/delivery/transfer; recorded_quantity/counted_quantity a adjustment.
type LineItemDTO struct {
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name,omitempty"`
	SKU              string          `json:"sku,omitempty"`
	Unit             string          `json:"unit,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	RecordedQuantity decimal.Decimal `json:"recorded_quantity"`
	CountedQuantity  decimal.Decimal `json:"counted_quantity"`
	Difference       decimal.Decimal `json:"difference,omitempty"` // derivado, solo salida
}

// CreateDocumentRequest entrada para crear un documento de movimiento.
// date en formato YYYY-MM-DD; status vacío se crea como draft.
type CreateDocumentRequest struct {
	DocumentNumber string        `json:"document_number"`
	Type           string        `json:"type"`
	Date           string        `json:"date"`
	Status         string        `json:"status"`
	Counterparty   string        `json:"counterparty"`
	WarehouseID    string        `json:"warehouse_id"`
	FromLocationID string        `json:"from_location_id"`
	ToLocationID   string        `json:"to_location_id"`
	AdjustmentType string        `json:"adjustment_type"`
	Items          []LineItemDTO `json:"items"`
	Notes          string        `json:"notes"`
}

// UpdateDocumentRequest entrada para editar un documento en draft. Las líneas
// solo son mutables mientras el documento no salga de draft.
type UpdateDocumentRequest struct {
	Date    string        `json:"date"`
	Items   []LineItemDTO `json:"items"`
	Notes   *string       `json:"notes"`
	Version int           `json:"version"`
}

// DocumentResponse salida de un documento de movimiento.
type DocumentResponse struct {
	ID             string        `json:"id"`
	DocumentNumber string        `json:"document_number"`
	Type           string        `json:"type"`
	Date           string        `json:"date"`
	Status         string        `json:"status"`
	Counterparty   string        `json:"counterparty,omitempty"`
	WarehouseID    string        `json:"warehouse_id,omitempty"`
	FromLocationID string        `json:"from_location_id,omitempty"`
	ToLocationID   string        `json:"to_location_id,omitempty"`
	AdjustmentType string        `json:"adjustment_type,omitempty"`
	Items          []LineItemDTO `json:"items"`
	Notes          string        `json:"notes,omitempty"`
	Version        int           `json:"version"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
