package inventory

import (
	"context"
	"sync"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Dobles en memoria de los puertos de persistencia
// ──────────────────────────────────────────────────────────────────────────────

type memKey struct {
	productID string
	location  entity.Location
}

// memStore estado compartido de los dobles. Protegido por mutex para que los
// tests de concurrencia ejerzan las mismas garantías que da la base de datos.
type memStore struct {
	mu        sync.Mutex
	levels    map[memKey]int64
	movements []*entity.Movement
	products  []*entity.Product
	imports   map[string]*entity.SalesImport // por SHA256

	// Inyección de fallos
	failDecrease      error // DecreaseQuantityIfEnough devuelve este error
	failDecreaseAfter int   // decrementos permitidos antes de que failDecrease dispare
	denyDecrease      int   // veces que el decremento "pierde la carrera" (0 sin mutar) aunque haya stock
}

func newMemStore() *memStore {
	return &memStore{
		levels:  make(map[memKey]int64),
		imports: make(map[string]*entity.SalesImport),
	}
}

func (s *memStore) seedProduct(id, sku string) *entity.Product {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := &entity.Product{ID: id, SKU: sku, Name: "Producto " + sku, Unit: "unidad", Active: true}
	s.products = append(s.products, p)
	return p
}

func (s *memStore) setLevel(productID string, loc entity.Location, qty int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.levels[memKey{productID, loc}] = qty
}

func (s *memStore) level(productID string, loc entity.Location) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.levels[memKey{productID, loc}]
}

func (s *memStore) movementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// ── StockRepository ──

type memStockRepo struct{ s *memStore }

var _ repository.StockRepository = (*memStockRepo)(nil)

func (r *memStockRepo) Get(productID string, location entity.Location) (*entity.StockLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return &entity.StockLevel{ProductID: productID, Location: location, Quantity: r.s.levels[memKey{productID, location}]}, nil
}

func (r *memStockRepo) ListByProductIDs(productIDs []string) ([]*entity.StockLevel, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockLevel
	for _, id := range productIDs {
		for _, loc := range []entity.Location{entity.LocationBackroom, entity.LocationShopfloor} {
			out = append(out, &entity.StockLevel{ProductID: id, Location: loc, Quantity: r.s.levels[memKey{id, loc}]})
		}
	}
	return out, nil
}

func (r *memStockRepo) EnsureLevels(productID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, loc := range []entity.Location{entity.LocationBackroom, entity.LocationShopfloor} {
		k := memKey{productID, loc}
		if _, ok := r.s.levels[k]; !ok {
			r.s.levels[k] = 0
		}
	}
	return nil
}

func (r *memStockRepo) IncreaseQuantity(productID string, location entity.Location, qty int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.levels[memKey{productID, location}] += qty
	return nil
}

func (r *memStockRepo) DecreaseQuantityIfEnough(productID string, location entity.Location, qty int64) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failDecrease != nil {
		if r.s.failDecreaseAfter <= 0 {
			return 0, r.s.failDecrease
		}
		r.s.failDecreaseAfter--
	}
	if r.s.denyDecrease > 0 {
		r.s.denyDecrease--
		return 0, nil
	}
	k := memKey{productID, location}
	if r.s.levels[k] < qty {
		return 0, nil
	}
	r.s.levels[k] -= qty
	return qty, nil
}

// ── MovementRepository ──

type memMovementRepo struct{ s *memStore }

var _ repository.MovementRepository = (*memMovementRepo)(nil)

func (r *memMovementRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *memMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var filtered []*entity.Movement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			filtered = append(filtered, m)
		}
	}
	if offset >= len(filtered) {
		return nil, nil
	}
	filtered = filtered[offset:]
	if limit > 0 && limit < len(filtered) {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

func (r *memMovementRepo) ListBySalesImport(salesImportID string) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.SalesImportID == salesImportID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMovementRepo) SalesTotalsByProduct(limit int) ([]*repository.SalesTotal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	totals := make(map[string]int64)
	var order []string
	for _, m := range r.s.movements {
		if m.Type != entity.MovementTypeSALEIMPORT {
			continue
		}
		if _, ok := totals[m.ProductID]; !ok {
			order = append(order, m.ProductID)
		}
		totals[m.ProductID] += m.Quantity
	}
	var out []*repository.SalesTotal
	for _, id := range order {
		out = append(out, &repository.SalesTotal{ProductID: id, Quantity: totals[id]})
	}
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

// ── ProductRepository ──

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.s.products = append(r.s.products, &cp)
	return nil
}

func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) Update(p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for i, existing := range r.s.products {
		if existing.ID == p.ID {
			cp := *p
			r.s.products[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *memProductRepo) ListActive() ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── SalesImportRepository ──

type memImportRepo struct{ s *memStore }

var _ repository.SalesImportRepository = (*memImportRepo)(nil)

func (r *memImportRepo) Create(record *entity.SalesImport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.imports[record.SHA256]; ok {
		return domain.ErrDuplicate
	}
	cp := *record
	r.s.imports[record.SHA256] = &cp
	return nil
}

func (r *memImportRepo) GetBySHA256(sha256 string) (*entity.SalesImport, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.imports[sha256]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *memImportRepo) Update(record *entity.SalesImport) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cp := *record
	r.s.imports[record.SHA256] = &cp
	return nil
}

// ── TxRunner ──

// memTx ejecuta fn directamente contra los dobles; el mutex del memStore hace
// de serialización mínima.
type memTx struct{ s *memStore }

var _ TxRunner = (*memTx)(nil)

func (t *memTx) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&memMovementRepo{t.s}, &memStockRepo{t.s}, &memProductRepo{t.s})
}
