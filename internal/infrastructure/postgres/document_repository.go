package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, document_number, type, date, status, counterparty,
	warehouse_id, from_location_id, to_location_id, adjustment_type,
	line_items, notes, version, created_at, updated_at`

// DocumentRepo implementación de DocumentRepository sobre PostgreSQL (usable
// con pool o tx). Las líneas viven como JSONB dentro de la fila del documento:
// el documento es dueño exclusivo de sus líneas y se persisten juntas.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador de documentos. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

func scanDocument(row pgx.Row) (*entity.MovementDocument, error) {
	var d entity.MovementDocument
	var items []byte
	err := row.Scan(&d.ID, &d.DocumentNumber, &d.Type, &d.Date, &d.Status, &d.Counterparty,
		&d.WarehouseID, &d.FromLocationID, &d.ToLocationID, &d.AdjustmentType,
		&items, &d.Notes, &d.Version, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &d.LineItems); err != nil {
			return nil, fmt.Errorf("unmarshal line items: %w", err)
		}
	}
	return &d, nil
}

// Create persiste un documento nuevo con sus líneas.
func (r *DocumentRepo) Create(doc *entity.MovementDocument) error {
	items, err := json.Marshal(doc.LineItems)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}
	query := `
		INSERT INTO movement_documents (id, document_number, type, date, status, counterparty,
			warehouse_id, from_location_id, to_location_id, adjustment_type,
			line_items, notes, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err = r.q.Exec(context.Background(), query,
		doc.ID, doc.DocumentNumber, doc.Type, doc.Date, doc.Status, doc.Counterparty,
		doc.WarehouseID, doc.FromLocationID, doc.ToLocationID, doc.AdjustmentType,
		items, doc.Notes, doc.Version, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// GetByID obtiene un documento por ID.
func (r *DocumentRepo) GetByID(id string) (*entity.MovementDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM movement_documents WHERE id = $1`
	d, err := scanDocument(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return d, nil
}

// GetForUpdate obtiene un documento por ID y bloquea su fila (SELECT FOR UPDATE).
// Serializa commits concurrentes del mismo documento.
func (r *DocumentRepo) GetForUpdate(id string) (*entity.MovementDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM movement_documents WHERE id = $1 FOR UPDATE`
	d, err := scanDocument(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document for update: %w", err)
	}
	return d, nil
}

// GetByNumber obtiene un documento por su número legible.
func (r *DocumentRepo) GetByNumber(number string) (*entity.MovementDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM movement_documents WHERE document_number = $1`
	d, err := scanDocument(r.q.QueryRow(context.Background(), query, number))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document by number: %w", err)
	}
	return d, nil
}

// List lista documentos aplicando los filtros opcionales (status, tipo) con paginación.
func (r *DocumentRepo) List(filter repository.DocumentFilter) ([]*entity.MovementDocument, error) {
	query := `SELECT ` + documentColumns + ` FROM movement_documents WHERE 1=1`
	args := []any{}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if filter.Type != "" {
		args = append(args, filter.Type)
		query += fmt.Sprintf(" AND type = $%d", len(args))
	}
	args = append(args, filter.Limit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))
	args = append(args, filter.Offset)
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementDocument
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// ListRecent lista los documentos más recientes.
func (r *DocumentRepo) ListRecent(limit int) ([]*entity.MovementDocument, error) {
	return r.List(repository.DocumentFilter{Limit: limit})
}

// Update persiste cabecera y líneas con control optimista de versión: si la
// versión almacenada no coincide con doc.Version devuelve ErrConflict. En caso
// de éxito incrementa doc.Version.
func (r *DocumentRepo) Update(doc *entity.MovementDocument) error {
	items, err := json.Marshal(doc.LineItems)
	if err != nil {
		return fmt.Errorf("marshal line items: %w", err)
	}
	query := `
		UPDATE movement_documents
		SET date = $2, counterparty = $3, warehouse_id = $4, from_location_id = $5,
		    to_location_id = $6, adjustment_type = $7, line_items = $8, notes = $9,
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $10`
	cmd, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.Date, doc.Counterparty, doc.WarehouseID, doc.FromLocationID,
		doc.ToLocationID, doc.AdjustmentType, items, doc.Notes, doc.Version,
	)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	doc.Version++
	return nil
}

// SetStatus cambia solo el estado del documento.
func (r *DocumentRepo) SetStatus(id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE movement_documents SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("set document status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
