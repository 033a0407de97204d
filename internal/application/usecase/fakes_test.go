package usecase

import (
	"context"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// Dobles mínimos para los casos de uso de lectura y catálogo. No hay
// concurrencia en estos tests; no llevan mutex.

type ucStore struct {
	products  []*entity.Product
	levels    map[string]map[entity.Location]int64
	movements []*entity.Movement
}

func newUCStore() *ucStore {
	return &ucStore{levels: make(map[string]map[entity.Location]int64)}
}

func (s *ucStore) seedProduct(id, sku, name string, minTotal int64) *entity.Product {
	p := &entity.Product{ID: id, SKU: sku, Name: name, Unit: "unidad", MinTotal: minTotal, Active: true}
	s.products = append(s.products, p)
	return p
}

func (s *ucStore) setLevel(productID string, loc entity.Location, qty int64) {
	if s.levels[productID] == nil {
		s.levels[productID] = make(map[entity.Location]int64)
	}
	s.levels[productID][loc] = qty
}

// ── ProductRepository ──

type ucProductRepo struct{ s *ucStore }

var _ repository.ProductRepository = (*ucProductRepo)(nil)

func (r *ucProductRepo) Create(p *entity.Product) error {
	for _, existing := range r.s.products {
		if existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	cp := *p
	r.s.products = append(r.s.products, &cp)
	return nil
}

func (r *ucProductRepo) GetByID(id string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ucProductRepo) GetBySKU(sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *ucProductRepo) Update(p *entity.Product) error {
	for i, existing := range r.s.products {
		if existing.ID == p.ID {
			cp := *p
			r.s.products[i] = &cp
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *ucProductRepo) ListActive() ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

// ── StockRepository ──

type ucStockRepo struct{ s *ucStore }

var _ repository.StockRepository = (*ucStockRepo)(nil)

func (r *ucStockRepo) Get(productID string, location entity.Location) (*entity.StockLevel, error) {
	return &entity.StockLevel{ProductID: productID, Location: location, Quantity: r.s.levels[productID][location]}, nil
}

func (r *ucStockRepo) ListByProductIDs(productIDs []string) ([]*entity.StockLevel, error) {
	var out []*entity.StockLevel
	for _, id := range productIDs {
		for loc, qty := range r.s.levels[id] {
			out = append(out, &entity.StockLevel{ProductID: id, Location: loc, Quantity: qty})
		}
	}
	return out, nil
}

func (r *ucStockRepo) EnsureLevels(productID string) error {
	if r.s.levels[productID] == nil {
		r.s.levels[productID] = map[entity.Location]int64{
			entity.LocationBackroom:  0,
			entity.LocationShopfloor: 0,
		}
	}
	return nil
}

func (r *ucStockRepo) IncreaseQuantity(productID string, location entity.Location, qty int64) error {
	r.s.setLevel(productID, location, r.s.levels[productID][location]+qty)
	return nil
}

func (r *ucStockRepo) DecreaseQuantityIfEnough(productID string, location entity.Location, qty int64) (int64, error) {
	if r.s.levels[productID][location] < qty {
		return 0, nil
	}
	r.s.setLevel(productID, location, r.s.levels[productID][location]-qty)
	return qty, nil
}

// ── MovementRepository ──

type ucMovementRepo struct{ s *ucStore }

var _ repository.MovementRepository = (*ucMovementRepo)(nil)

func (r *ucMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	r.s.movements = append(r.s.movements, &cp)
	return nil
}

func (r *ucMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *ucMovementRepo) ListBySalesImport(salesImportID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.s.movements {
		if m.SalesImportID == salesImportID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *ucMovementRepo) SalesTotalsByProduct(limit int) ([]*repository.SalesTotal, error) {
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

// ── TxRunner ──

type ucTx struct{ s *ucStore }

func (t *ucTx) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(&ucMovementRepo{t.s}, &ucStockRepo{t.s}, &ucProductRepo{t.s})
}
