package repository

import "github.com/jhoicas/Almacen-api/internal/domain/entity"

// DocumentFilter filtros opcionales para listar documentos de movimiento.
// Campos vacíos no filtran.
type DocumentFilter struct {
	Status string
	Type   string
	Limit  int
	Offset int
}

// DocumentRepository define el puerto de persistencia para documentos de
// movimiento (colección polimórfica etiquetada por tipo). GetForUpdate bloquea
// la fila del documento y se usa dentro de la transacción de commit para
// serializar commits concurrentes del mismo documento.
type DocumentRepository interface {
	Create(doc *entity.MovementDocument) error
	GetByID(id string) (*entity.MovementDocument, error)
	GetForUpdate(id string) (*entity.MovementDocument, error)
	GetByNumber(number string) (*entity.MovementDocument, error)
	List(filter DocumentFilter) ([]*entity.MovementDocument, error)
	ListRecent(limit int) ([]*entity.MovementDocument, error)
	// Update persiste cabecera y líneas con control optimista: falla con
	// ErrConflict si doc.Version no coincide con el almacenado.
	Update(doc *entity.MovementDocument) error
	SetStatus(id, status string) error
}
