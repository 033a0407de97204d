package usecase

import (
	"context"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/application/inventory"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo. El stock no se toca aquí:
// solo se siembran las filas en 0 al crear; todo cambio posterior va por movimientos.
type ProductUseCase struct {
	txRunner inventory.TxRunner
	repo     repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(txRunner inventory.TxRunner, repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{txRunner: txRunner, repo: repo}
}

// Create crea un producto y sus niveles de stock en 0 para ambas ubicaciones
// en la misma transacción. SKU duplicado devuelve ErrDuplicate.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku := strings.TrimSpace(in.SKU)
	name := strings.TrimSpace(in.Name)
	unit := strings.TrimSpace(in.Unit)
	if sku == "" || name == "" || unit == "" || in.MinTotal < 0 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.repo.GetBySKU(sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	now := time.Now()
	product := &entity.Product{
		ID:        uuid.New().String(),
		SKU:       sku,
		Name:      name,
		Unit:      unit,
		MinTotal:  in.MinTotal,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = uc.txRunner.Run(ctx, func(
		_ repository.MovementRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
	) error {
		if err := productRepo.Create(product); err != nil {
			return err
		}
		return stockRepo.EnsureLevels(product.ID)
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza parcialmente un producto. Cambiar el SKU re-verifica unicidad.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil {
		newSKU := strings.TrimSpace(*in.SKU)
		if newSKU != "" && newSKU != product.SKU {
			other, err := uc.repo.GetBySKU(newSKU)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
			product.SKU = newSKU
		}
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) != "" {
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Unit != nil && strings.TrimSpace(*in.Unit) != "" {
		product.Unit = strings.TrimSpace(*in.Unit)
	}
	if in.MinTotal != nil {
		if *in.MinTotal < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.MinTotal = *in.MinTotal
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Deactivate marca el producto como inactivo (idempotente).
func (uc *ProductUseCase) Deactivate(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if product.Active {
		product.Active = false
		product.UpdatedAt = time.Now()
		if err := uc.repo.Update(product); err != nil {
			return nil, err
		}
	}
	return toProductResponse(product), nil
}

// List devuelve los productos activos; con query filtra por SKU o nombre
// (insensible a mayúsculas y acentos).
func (uc *ProductUseCase) List(query string) ([]dto.ProductResponse, error) {
	products, err := uc.searchProducts(query)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// searchProducts lista activos y filtra en memoria con folding de acentos.
// El catálogo es pequeño (la vista de stock ya lo carga completo) y así la
// búsqueda "miel" encuentra "Miél de abeja" sin depender de extensiones SQL.
func (uc *ProductUseCase) searchProducts(query string) ([]*entity.Product, error) {
	products, err := uc.repo.ListActive()
	if err != nil {
		return nil, err
	}
	q := strings.TrimSpace(query)
	if q == "" {
		return products, nil
	}
	folded := foldText(q)
	var filtered []*entity.Product
	for _, p := range products {
		if strings.Contains(foldText(p.SKU), folded) || strings.Contains(foldText(p.Name), folded) {
			filtered = append(filtered, p)
		}
	}
	return filtered, nil
}

// foldText normaliza para búsqueda: minúsculas y sin marcas diacríticas (NFD,
// remover Mn, NFC).
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:        p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Unit:      p.Unit,
		MinTotal:  p.MinTotal,
		Active:    p.Active,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
