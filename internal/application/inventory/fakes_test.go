package inventory_test

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore simula la base de datos. El TxRunner falso toma un snapshot antes de
// ejecutar el callback y lo restaura si este falla, reproduciendo la semántica
// de rollback. El mutex del runner serializa transacciones concurrentes igual
// que lo hacen los bloqueos de fila en PostgreSQL.
// ──────────────────────────────────────────────────────────────────────────────

type memStore struct {
	docs    map[string]*entity.MovementDocument
	stock   map[string]*entity.StockEntry // clave: product|warehouse|location
	history []*entity.MovementHistoryEntry
}

func newMemStore() *memStore {
	return &memStore{
		docs:  make(map[string]*entity.MovementDocument),
		stock: make(map[string]*entity.StockEntry),
	}
}

func stockKey(productID, warehouseID, locationID string) string {
	return productID + "|" + warehouseID + "|" + locationID
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	for k, d := range s.docs {
		dc := *d
		dc.LineItems = append([]entity.LineItem(nil), d.LineItems...)
		cp.docs[k] = &dc
	}
	for k, st := range s.stock {
		sc := *st
		cp.stock[k] = &sc
	}
	cp.history = append([]*entity.MovementHistoryEntry(nil), s.history...)
	return cp
}

func (s *memStore) restore(snap *memStore) {
	s.docs = snap.docs
	s.stock = snap.stock
	s.history = snap.history
}

// putStock registra una fila del libro directamente (setup de tests).
func (s *memStore) putStock(productID, warehouseID, locationID string, qty decimal.Decimal) {
	key := stockKey(productID, warehouseID, locationID)
	s.stock[key] = &entity.StockEntry{
		ID:          "stk-" + key,
		Code:        "ST-" + key,
		ProductID:   productID,
		WarehouseID: warehouseID,
		LocationID:  locationID,
		Quantity:    qty,
	}
}

func (s *memStore) stockQty(productID, warehouseID, locationID string) decimal.Decimal {
	if st, ok := s.stock[stockKey(productID, warehouseID, locationID)]; ok {
		return st.Quantity
	}
	return decimal.Zero
}

// ── Tx runner ────────────────────────────────────────────────────────────────

type fakeTxRunner struct {
	mu    sync.Mutex
	store *memStore
}

var _ inventory.TxRunner = (*fakeTxRunner)(nil)

func (r *fakeTxRunner) Run(_ context.Context, fn func(
	docRepo repository.DocumentRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	historyRepo repository.HistoryRepository,
) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := r.store.snapshot()
	err := fn(
		&fakeDocRepo{store: r.store},
		&fakeStockRepo{store: r.store},
		testProducts,
		&fakeHistoryRepo{store: r.store},
	)
	if err != nil {
		r.store.restore(snap)
	}
	return err
}

// ── Documentos ───────────────────────────────────────────────────────────────

type fakeDocRepo struct {
	store *memStore
}

var _ repository.DocumentRepository = (*fakeDocRepo)(nil)

func (r *fakeDocRepo) Create(doc *entity.MovementDocument) error {
	if _, ok := r.store.docs[doc.ID]; ok {
		return domain.ErrDuplicate
	}
	dc := *doc
	r.store.docs[doc.ID] = &dc
	return nil
}

func (r *fakeDocRepo) GetByID(id string) (*entity.MovementDocument, error) {
	d, ok := r.store.docs[id]
	if !ok {
		return nil, nil
	}
	dc := *d
	dc.LineItems = append([]entity.LineItem(nil), d.LineItems...)
	return &dc, nil
}

func (r *fakeDocRepo) GetForUpdate(id string) (*entity.MovementDocument, error) {
	return r.GetByID(id)
}

func (r *fakeDocRepo) GetByNumber(number string) (*entity.MovementDocument, error) {
	for _, d := range r.store.docs {
		if d.DocumentNumber == number {
			return r.GetByID(d.ID)
		}
	}
	return nil, nil
}

func (r *fakeDocRepo) List(filter repository.DocumentFilter) ([]*entity.MovementDocument, error) {
	var out []*entity.MovementDocument
	for _, d := range r.store.docs {
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

func (r *fakeDocRepo) ListRecent(limit int) ([]*entity.MovementDocument, error) {
	return r.List(repository.DocumentFilter{Limit: limit})
}

func (r *fakeDocRepo) Update(doc *entity.MovementDocument) error {
	cur, ok := r.store.docs[doc.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != doc.Version {
		return domain.ErrConflict
	}
	dc := *doc
	dc.Version++
	r.store.docs[doc.ID] = &dc
	doc.Version++
	return nil
}

func (r *fakeDocRepo) SetStatus(id, status string) error {
	d, ok := r.store.docs[id]
	if !ok {
		return domain.ErrNotFound
	}
	d.Status = status
	return nil
}

// ── Stock ────────────────────────────────────────────────────────────────────

type fakeStockRepo struct {
	store *memStore
}

var _ repository.StockRepository = (*fakeStockRepo)(nil)

func (r *fakeStockRepo) Create(stock *entity.StockEntry) error {
	key := stockKey(stock.ProductID, stock.WarehouseID, stock.LocationID)
	if _, ok := r.store.stock[key]; ok {
		return domain.ErrDuplicate
	}
	sc := *stock
	r.store.stock[key] = &sc
	return nil
}

func (r *fakeStockRepo) GetByCode(code string) (*entity.StockEntry, error) {
	for _, s := range r.store.stock {
		if s.Code == code {
			sc := *s
			return &sc, nil
		}
	}
	return nil, nil
}

func (r *fakeStockRepo) GetByCodeForUpdate(code string) (*entity.StockEntry, error) {
	return r.GetByCode(code)
}

func (r *fakeStockRepo) Find(productID, warehouseID, locationID string) (*entity.StockEntry, error) {
	if s, ok := r.store.stock[stockKey(productID, warehouseID, locationID)]; ok {
		sc := *s
		return &sc, nil
	}
	return &entity.StockEntry{
		ProductID:   productID,
		WarehouseID: warehouseID,
		LocationID:  locationID,
		Quantity:    decimal.Zero,
	}, nil
}

func (r *fakeStockRepo) FindForUpdate(productID, warehouseID, locationID string) (*entity.StockEntry, error) {
	return r.Find(productID, warehouseID, locationID)
}

func (r *fakeStockRepo) Upsert(stock *entity.StockEntry) error {
	sc := *stock
	r.store.stock[stockKey(stock.ProductID, stock.WarehouseID, stock.LocationID)] = &sc
	return nil
}

// AddDelta suma sobre el valor almacenado en el momento de la escritura, igual
// que la rama de conflicto del INSERT ... ON CONFLICT real: nunca sobrescribe
// con un absoluto calculado a partir de una lectura anterior.
func (r *fakeStockRepo) AddDelta(stock *entity.StockEntry, delta decimal.Decimal) (decimal.Decimal, error) {
	key := stockKey(stock.ProductID, stock.WarehouseID, stock.LocationID)
	if cur, ok := r.store.stock[key]; ok {
		newQty := cur.Quantity.Add(delta)
		if newQty.IsNegative() {
			return decimal.Zero, domain.ErrInsufficientStock
		}
		cur.Quantity = newQty
		return newQty, nil
	}
	if delta.IsNegative() {
		return decimal.Zero, domain.ErrInsufficientStock
	}
	sc := *stock
	sc.Quantity = delta
	r.store.stock[key] = &sc
	return delta, nil
}

func (r *fakeStockRepo) List(limit, offset int) ([]*entity.StockEntry, error) {
	var out []*entity.StockEntry
	for _, s := range r.store.stock {
		out = append(out, s)
	}
	return out, nil
}

func (r *fakeStockRepo) Delete(code string) error {
	for k, s := range r.store.stock {
		if s.Code == code {
			delete(r.store.stock, k)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeStockRepo) TotalByProduct(productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.store.stock {
		if s.ProductID == productID {
			total = total.Add(s.Quantity)
		}
	}
	return total, nil
}

// ── Historial ────────────────────────────────────────────────────────────────

type fakeHistoryRepo struct {
	store *memStore
}

var _ repository.HistoryRepository = (*fakeHistoryRepo)(nil)

func (r *fakeHistoryRepo) Create(entry *entity.MovementHistoryEntry) error {
	ec := *entry
	r.store.history = append(r.store.history, &ec)
	return nil
}

func (r *fakeHistoryRepo) ListRecent(limit int) ([]*entity.MovementHistoryEntry, error) {
	return r.store.history, nil
}

func (r *fakeHistoryRepo) List(filter repository.HistoryFilter) ([]*entity.MovementHistoryEntry, error) {
	var out []*entity.MovementHistoryEntry
	for _, e := range r.store.history {
		if filter.OperationType != "" && e.OperationType != filter.OperationType {
			continue
		}
		if filter.ProductID != "" && e.ProductID != filter.ProductID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

// ── Catálogo (solo lectura durante los tests) ────────────────────────────────

type fakeProductRepo map[string]*entity.Product

var _ repository.ProductRepository = (fakeProductRepo)(nil)

func (r fakeProductRepo) Create(p *entity.Product) error {
	r[p.ID] = p
	return nil
}

func (r fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return r[id], nil
}

func (r fakeProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r {
		if p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}

func (r fakeProductRepo) Update(p *entity.Product) error {
	r[p.ID] = p
	return nil
}

func (r fakeProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r {
		out = append(out, p)
	}
	return out, nil
}

func (r fakeProductRepo) ListBelowReorderPoint() ([]repository.LowStockResult, error) {
	return nil, nil
}

type fakeWarehouseRepo map[string]*entity.Warehouse

var _ repository.WarehouseRepository = (fakeWarehouseRepo)(nil)

func (r fakeWarehouseRepo) Create(w *entity.Warehouse) error {
	r[w.ID] = w
	return nil
}

func (r fakeWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	return r[id], nil
}

func (r fakeWarehouseRepo) GetByCode(code string) (*entity.Warehouse, error) {
	for _, w := range r {
		if w.Code == code {
			return w, nil
		}
	}
	return nil, nil
}

func (r fakeWarehouseRepo) Update(w *entity.Warehouse) error {
	r[w.ID] = w
	return nil
}

func (r fakeWarehouseRepo) List(limit, offset int) ([]*entity.Warehouse, error) {
	var out []*entity.Warehouse
	for _, w := range r {
		out = append(out, w)
	}
	return out, nil
}

type fakeLocationRepo map[string]*entity.Location

var _ repository.LocationRepository = (fakeLocationRepo)(nil)

func (r fakeLocationRepo) Create(l *entity.Location) error {
	r[l.ID] = l
	return nil
}

func (r fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	return r[id], nil
}

func (r fakeLocationRepo) ListAll() ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r {
		out = append(out, l)
	}
	return out, nil
}

func (r fakeLocationRepo) ListByWarehouse(warehouseID string) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r {
		if l.WarehouseID == warehouseID {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeSeqRepo contador atómico en memoria. Mutex propio: se invoca dentro del
// callback transaccional sin pasar por el mutex del runner.
type fakeSeqRepo struct {
	mu       sync.Mutex
	counters map[string]int64
}

var _ repository.SequenceRepository = (*fakeSeqRepo)(nil)

func newFakeSeqRepo() *fakeSeqRepo {
	return &fakeSeqRepo{counters: make(map[string]int64)}
}

func (r *fakeSeqRepo) Next(kind string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counters[kind]++
	return r.counters[kind], nil
}

// ── Datos de referencia compartidos ──────────────────────────────────────────

var testProducts = fakeProductRepo{
	"p1": {ID: "p1", SKU: "SKU-001", Name: "Tornillo 3/8", UnitOfMeasure: "unidad"},
	"p2": {ID: "p2", SKU: "SKU-002", Name: "Pintura blanca", UnitOfMeasure: "galón"},
}

var testWarehouses = fakeWarehouseRepo{
	"w1": {ID: "w1", Code: "WH001", Name: "Bodega principal", Type: entity.WarehouseTypeMain, IsActive: true},
	"w2": {ID: "w2", Code: "WH002", Name: "Punto de venta", Type: entity.WarehouseTypeRetail, IsActive: true},
}

var testLocations = fakeLocationRepo{
	"l1": {ID: "l1", Code: "LOC001", WarehouseID: "w1", Name: "Rack A", Type: entity.LocationTypeRack},
	"l2": {ID: "l2", Code: "LOC002", WarehouseID: "w1", Name: "Rack B", Type: entity.LocationTypeRack},
	"l3": {ID: "l3", Code: "LOC003", WarehouseID: "w2", Name: "Piso ventas", Type: entity.LocationTypeFloor},
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

var docSeq int

// newDoc registra un documento abierto en el store y lo devuelve.
func newDoc(store *memStore, docType, status string, mutate func(*entity.MovementDocument)) *entity.MovementDocument {
	docSeq++
	d := &entity.MovementDocument{
		ID:             fmt.Sprintf("doc-%d", docSeq),
		DocumentNumber: fmt.Sprintf("DOC-%03d", docSeq),
		Type:           docType,
		Status:         status,
		WarehouseID:    "w1",
	}
	if mutate != nil {
		mutate(d)
	}
	store.docs[d.ID] = d
	return d
}
