package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de documento de movimiento.
const (
	DocumentTypeReceipt    = "receipt"    // recepción de proveedor
	DocumentTypeDelivery   = "delivery"   // entrega a cliente
	DocumentTypeTransfer   = "transfer"   // traslado entre ubicaciones
	DocumentTypeAdjustment = "adjustment" // ajuste por conteo físico
)

// Estados del ciclo de vida de un documento. draft/waiting/ready están abiertos;
// done y cancelled son terminales.
const (
	StatusDraft     = "draft"
	StatusWaiting   = "waiting"
	StatusReady     = "ready"
	StatusDone      = "done"
	StatusCancelled = "cancelled"
)

// Tipos de ajuste.
const (
	AdjustmentTypePhysicalCount = "physical_count"
	AdjustmentTypeDamage        = "damage"
	AdjustmentTypeCorrection    = "correction"
)

// LineItem es una línea de producto dentro de un documento de movimiento.
// Para receipt/delivery/transfer aplica Quantity; para adjustment aplican
// RecordedQuantity y CountedQuantity, y la diferencia se deriva, nunca se almacena.
// ProductName/SKU/Unit son un snapshot para visualización: el commit re-resuelve
// el producto desde el catálogo.
type LineItem struct {
	ProductID        string          `json:"product_id"`
	ProductName      string          `json:"product_name,omitempty"`
	SKU              string          `json:"sku,omitempty"`
	Unit             string          `json:"unit,omitempty"`
	Quantity         decimal.Decimal `json:"quantity"`
	RecordedQuantity decimal.Decimal `json:"recorded_quantity"`
	CountedQuantity  decimal.Decimal `json:"counted_quantity"`
}

// Difference devuelve counted - recorded para líneas de ajuste.
func (li LineItem) Difference() decimal.Decimal {
	return li.CountedQuantity.Sub(li.RecordedQuantity)
}

// MovementDocument es el documento polimórfico de movimiento: receipt, delivery,
// transfer o adjustment, distinguidos por Type. Los campos de variante que no
// aplican quedan vacíos. El documento es dueño exclusivo de sus líneas.
type MovementDocument struct {
	ID             string
	DocumentNumber string // único, lo aporta el caller (RCPT-001, DLV-002, ...)
	Type           string
	Date           time.Time
	Status         string
	Counterparty   string // proveedor (receipt) o cliente (delivery)
	WarehouseID    string // receipt/delivery/adjustment
	FromLocationID string // transfer
	ToLocationID   string // transfer
	AdjustmentType string // adjustment
	LineItems      []LineItem
	Notes          string
	Version        int // control optimista: las líneas son inmutables fuera de draft
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsOpen indica si el documento admite commit (draft, waiting o ready).
func (d *MovementDocument) IsOpen() bool {
	switch d.Status {
	case StatusDraft, StatusWaiting, StatusReady:
		return true
	}
	return false
}

// ValidDocumentType indica si el tipo es uno de los cuatro soportados.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentTypeReceipt, DocumentTypeDelivery, DocumentTypeTransfer, DocumentTypeAdjustment:
		return true
	}
	return false
}
