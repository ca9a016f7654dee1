package entity

import "time"

// Tipos de bodega.
const (
	WarehouseTypeMain       = "main_warehouse"
	WarehouseTypeProduction = "production_floor"
	WarehouseTypeRetail     = "retail_store"
	WarehouseTypeStorage    = "storage_rack"
	WarehouseTypeOther      = "other"
)

// Warehouse representa una bodega donde se almacena inventario.
// Code es legible y secuencial (WH001, WH002, ...). Las bodegas nunca se
// eliminan físicamente: se desactivan con IsActive=false.
type Warehouse struct {
	ID        string
	Code      string // WH### único, generado por secuencia
	Name      string
	Address   string
	Type      string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
