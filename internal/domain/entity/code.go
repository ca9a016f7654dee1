package entity

import "fmt"

// Prefijos de códigos legibles.
const (
	CodePrefixWarehouse = "WH"
	CodePrefixLocation  = "LOC"
	CodePrefixStock     = "ST"
)

// FormatCode construye un código legible a partir de un valor de secuencia,
// con relleno a 3 dígitos: WH001, LOC014, ST102. Valores mayores a 999 no se
// truncan (WH1000).
func FormatCode(prefix string, n int64) string {
	return fmt.Sprintf("%s%03d", prefix, n)
}
