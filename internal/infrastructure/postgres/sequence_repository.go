package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.SequenceRepository = (*SequenceRepo)(nil)

// SequenceRepo entrega enteros monotónicos por tipo usando una tabla de
// contadores. El UPDATE del upsert es atómico: dos llamadas concurrentes nunca
// reciben el mismo valor. Si la transacción que pidió el número termina en
// rollback el número se pierde; los códigos generados admiten huecos.
type SequenceRepo struct {
	q Querier
}

// NewSequenceRepository construye el adaptador de secuencias. Pasar pool o tx (Querier).
func NewSequenceRepository(q Querier) *SequenceRepo {
	return &SequenceRepo{q: q}
}

// Next devuelve el siguiente valor de la secuencia kind, creándola en 1 si no existe.
func (r *SequenceRepo) Next(kind string) (int64, error) {
	query := `
		INSERT INTO counters (kind, value) VALUES ($1, 1)
		ON CONFLICT (kind) DO UPDATE SET value = counters.value + 1
		RETURNING value`
	var value int64
	if err := r.q.QueryRow(context.Background(), query, kind).Scan(&value); err != nil {
		return 0, fmt.Errorf("next sequence %s: %w", kind, err)
	}
	return value, nil
}
