package entity

import "time"

// Tipos de ubicación dentro de una bodega.
const (
	LocationTypeRack  = "rack"
	LocationTypeShelf = "shelf"
	LocationTypeBin   = "bin"
	LocationTypeFloor = "floor"
)

// Location representa una ubicación física dentro de una bodega (rack, estante,
// contenedor o piso). Pertenece a exactamente una bodega.
type Location struct {
	ID          string
	Code        string // LOC### único, generado por secuencia
	WarehouseID string
	Name        string
	Type        string
	CreatedAt   time.Time
}

// ValidLocationType indica si el tipo de ubicación es uno de los permitidos.
func ValidLocationType(t string) bool {
	switch t {
	case LocationTypeRack, LocationTypeShelf, LocationTypeBin, LocationTypeFloor:
		return true
	}
	return false
}
