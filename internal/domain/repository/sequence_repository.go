package repository

// Tipos de secuencia conocidos.
const (
	SequenceWarehouse = "warehouse"
	SequenceLocation  = "location"
	SequenceStock     = "stock"
)

// SequenceRepository entrega enteros monotónicos por tipo para generar códigos
// legibles (WH001, LOC001, ST001). Next debe ser atómico: dos llamadas
// concurrentes nunca devuelven el mismo valor.
type SequenceRepository interface {
	Next(kind string) (int64, error)
}
