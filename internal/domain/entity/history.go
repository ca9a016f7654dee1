package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementHistoryEntry es el registro inmutable de un cambio de stock ya
// confirmado. Se crea solo como efecto de un commit exitoso, dentro de la misma
// transacción, y nunca se actualiza ni se borra. Es una proyección derivada:
// el saldo vigente vive en el libro de stock, no aquí.
type MovementHistoryEntry struct {
	ID              string
	OperationType   string // receipt, delivery, transfer, adjustment
	ReferenceNumber string // número del documento que originó el cambio
	ProductID       string
	ProductName     string
	SKU             string
	Quantity        decimal.Decimal // cantidad movida; para ajustes, |counted - recorded|
	Unit            string
	FromLocation    string
	ToLocation      string
	OperationDate   time.Time // fecha del documento, no del reloj del servidor
	PerformedBy     string
	CreatedAt       time.Time
}
