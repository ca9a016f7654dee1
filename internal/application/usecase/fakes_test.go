package usecase_test

import (
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// Fakes en memoria para los casos de uso CRUD. A diferencia del motor de
// commit, aquí no hay transacciones: mapas simples alcanzan.

type memDocRepo struct {
	docs map[string]*entity.MovementDocument
}

var _ repository.DocumentRepository = (*memDocRepo)(nil)

func newMemDocRepo() *memDocRepo {
	return &memDocRepo{docs: make(map[string]*entity.MovementDocument)}
}

func (r *memDocRepo) Create(doc *entity.MovementDocument) error {
	if _, ok := r.docs[doc.ID]; ok {
		return domain.ErrDuplicate
	}
	dc := *doc
	r.docs[doc.ID] = &dc
	return nil
}

func (r *memDocRepo) GetByID(id string) (*entity.MovementDocument, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	dc := *d
	dc.LineItems = append([]entity.LineItem(nil), d.LineItems...)
	return &dc, nil
}

func (r *memDocRepo) GetForUpdate(id string) (*entity.MovementDocument, error) {
	return r.GetByID(id)
}

func (r *memDocRepo) GetByNumber(number string) (*entity.MovementDocument, error) {
	for _, d := range r.docs {
		if d.DocumentNumber == number {
			return r.GetByID(d.ID)
		}
	}
	return nil, nil
}

func (r *memDocRepo) List(filter repository.DocumentFilter) ([]*entity.MovementDocument, error) {
	var out []*entity.MovementDocument
	for _, d := range r.docs {
		if filter.Status != "" && d.Status != filter.Status {
			continue
		}
		if filter.Type != "" && d.Type != filter.Type {
			continue
		}
		out = append(out, d)
	}
	return out, nil
}

func (r *memDocRepo) ListRecent(limit int) ([]*entity.MovementDocument, error) {
	return r.List(repository.DocumentFilter{Limit: limit})
}

func (r *memDocRepo) Update(doc *entity.MovementDocument) error {
	cur, ok := r.docs[doc.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != doc.Version {
		return domain.ErrConflict
	}
	dc := *doc
	dc.Version++
	r.docs[doc.ID] = &dc
	doc.Version++
	return nil
}

func (r *memDocRepo) SetStatus(id, status string) error {
	d, ok := r.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	return nil
}

type memProductRepo map[string]*entity.Product

var _ repository.ProductRepository = (memProductRepo)(nil)

func (r memProductRepo) Create(p *entity.Product) error {
	for _, existing := range r {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	r[p.ID] = p
	return nil
}

func (r memProductRepo) GetByID(id string) (*entity.Product, error) { return r[id], nil }

func (r memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r memProductRepo) Update(p *entity.Product) error {
	r[p.ID] = p
	return nil
}

func (r memProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r {
		out = append(out, p)
	}
	return out, nil
}

func (r memProductRepo) ListBelowReorderPoint() ([]repository.LowStockResult, error) {
	return nil, nil
}

// lowStockProductRepo combina catálogo y libro para la consulta de bajo stock,
// reproduciendo el JOIN agregado de la implementación real.
type lowStockProductRepo struct {
	memProductRepo
	stock memStockRepo
}

func (r lowStockProductRepo) ListBelowReorderPoint() ([]repository.LowStockResult, error) {
	var out []repository.LowStockResult
	for _, p := range r.memProductRepo {
		if !p.ReorderPoint.IsPositive() {
			continue
		}
		total, _ := r.stock.TotalByProduct(p.ID)
		if total.GreaterThan(p.ReorderPoint) {
			continue
		}
		out = append(out, repository.LowStockResult{
			ProductID:     p.ID,
			SKU:           p.SKU,
			Name:          p.Name,
			UnitOfMeasure: p.UnitOfMeasure,
			ReorderPoint:  p.ReorderPoint,
			TotalQuantity: total,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		di := out[i].ReorderPoint.Sub(out[i].TotalQuantity)
		dj := out[j].ReorderPoint.Sub(out[j].TotalQuantity)
		if !di.Equal(dj) {
			return di.GreaterThan(dj)
		}
		return out[i].SKU < out[j].SKU
	})
	return out, nil
}

type memWarehouseRepo map[string]*entity.Warehouse

var _ repository.WarehouseRepository = (memWarehouseRepo)(nil)

func (r memWarehouseRepo) Create(w *entity.Warehouse) error {
	r[w.ID] = w
	return nil
}

func (r memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) { return r[id], nil }

func (r memWarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	for _, w := range r {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, nil
}

func (r memWarehouseRepo) Update(w *entity.Warehouse) error {
	r[w.ID] = w
	return nil
}

func (r memWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r {
		out = append(out, w)
	}
	return out, nil
}

type memLocationRepo map[string]*entity.Location

var _ repository.LocationRepository = (memLocationRepo)(nil)

func (r memLocationRepo) Create(l *entity.Location) error {
	r[l.ID] = l
	return nil
}

func (r memLocationRepo) GetByID(id string) (*entity.Location, error) { return r[id], nil }

func (r memLocationRepo) ListAll() ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r {
		out = append(out, l)
	}
	return out, nil
}

func (r memLocationRepo) ListByWarehouse(warehouseID string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r {
		if l.WarehouseID == warehouseID {
			out = append(out, l)
		}
	}
	return out, nil
}

// memStockRepo solo implementa lo que ProductUseCase.StockTotal necesita; el
// resto del puerto no se ejercita desde este paquete.
type memStockRepo map[string]*entity.StockEntry

var _ repository.StockRepository = (memStockRepo)(nil)

func (r memStockRepo) Create(s *entity.StockEntry) error {
	r[s.Code] = s
	return nil
}

func (r memStockRepo) GetByCode(code string) (*entity.StockEntry, error) { return r[code], nil }

func (r memStockRepo) GetByCodeForUpdate(code string) (*entity.StockEntry, error) {
	return r[code], nil
}

func (r memStockRepo) Find(productID, warehouseID, locationID string) (*entity.StockEntry, error) {
	for _, s := range r {
		if s.ProductID == productID && s.WarehouseID == warehouseID && s.LocationID == locationID {
			return s, nil
		}
	}
	return &entity.StockEntry{ProductID: productID, WarehouseID: warehouseID, LocationID: locationID, Quantity: decimal.Zero}, nil
}

func (r memStockRepo) FindForUpdate(productID, warehouseID, locationID string) (*entity.StockEntry, error) {
	return r.Find(productID, warehouseID, locationID)
}

func (r memStockRepo) Upsert(s *entity.StockEntry) error {
	r[s.Code] = s
	return nil
}

func (r memStockRepo) AddDelta(s *entity.StockEntry, delta decimal.Decimal) (decimal.Decimal, error) {
	for _, cur := range r {
		if cur.ProductID == s.ProductID && cur.WarehouseID == s.WarehouseID && cur.LocationID == s.LocationID {
			newQty := cur.Quantity.Add(delta)
			if newQty.IsNegative() {
				return decimal.Zero, domain.ErrInsufficientStock
			}
			cur.Quantity = newQty
			return newQty, nil
		}
	}
	if delta.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	sc := *s
	sc.Quantity = delta
	r[sc.Code] = &sc
	return delta, nil
}

func (r memStockRepo) List(limit, offset int) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for _, s := range r {
		out = append(out, s)
	}
	return out, nil
}

func (r memStockRepo) Delete(code string) error {
	delete(r, code)
	return nil
}

func (r memStockRepo) TotalByProduct(productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r {
		if s.ProductID == productID {
			total = total.Add(s.Quantity)
		}
	}
	return total, nil
}

type memSeqRepo struct {
	mu       sync.Mutex
	counters map[string]int64
}

var _ repository.SequenceRepository = (*memSeqRepo)(nil)

func newMemSeqRepo() *memSeqRepo {
	return &memSeqRepo{counters: make(map[string]int64)}
}

func (r *memSeqRepo) Next(kind string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[kind]++
	return r.counters[kind], nil
}
