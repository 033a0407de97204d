package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// MovementService orquesta los movimientos directos de stock (entrada, salida
// y traslado). Cada operación compone sus mutaciones del Stock Store con un
// único append al libro dentro de una transacción: o todo, o nada.
type MovementService struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
}

// NewMovementService construye el servicio.
func NewMovementService(txRunner TxRunner, productRepo repository.ProductRepository) *MovementService {
	return &MovementService{txRunner: txRunner, productRepo: productRepo}
}

// Receipt registra una entrada de mercancía: suma qty en la ubicación destino
// (BACKROOM si no se indica) y anexa un movimiento RECEIPT.
func (s *MovementService) Receipt(ctx context.Context, productID string, qty int64, toLocation entity.Location, note string) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	if toLocation == "" {
		toLocation = entity.LocationBackroom
	}
	if !toLocation.IsValid() {
		return domain.ErrInvalidInput
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	return s.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		if err := stockRepo.IncreaseQuantity(product.ID, toLocation, qty); err != nil {
			return err
		}
		return appendMovement(movRepo, &entity.Movement{
			ProductID:  product.ID,
			Type:       entity.MovementTypeRECEIPT,
			Quantity:   qty,
			ToLocation: toLocation,
			OccurredAt: now,
			Note:       note,
		})
	})
}

// Issue registra una salida manual: resta qty de la ubicación origen
// (SHOPFLOOR si no se indica) solo si hay suficiente; si no,
// ErrInsufficientStock y no se registra nada.
func (s *MovementService) Issue(ctx context.Context, productID string, qty int64, fromLocation entity.Location, note string) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	if fromLocation == "" {
		fromLocation = entity.LocationShopfloor
	}
	if !fromLocation.IsValid() {
		return domain.ErrInvalidInput
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	return s.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		applied, err := stockRepo.DecreaseQuantityIfEnough(product.ID, fromLocation, qty)
		if err != nil {
			return err
		}
		if applied == 0 {
			return domain.ErrInsufficientStock
		}
		return appendMovement(movRepo, &entity.Movement{
			ProductID:    product.ID,
			Type:         entity.MovementTypeISSUE,
			Quantity:     qty,
			FromLocation: fromLocation,
			OccurredAt:   now,
			Note:         note,
		})
	})
}

// Transfer traslada qty entre las dos ubicaciones. Resta en origen (condicional),
// suma en destino y anexa un único movimiento TRANSFER, todo en la misma
// transacción: nunca se observa stock "desaparecido" de ambas ubicaciones.
func (s *MovementService) Transfer(ctx context.Context, productID string, qty int64, from, to entity.Location, note string) error {
	if qty <= 0 {
		return domain.ErrInvalidInput
	}
	if !from.IsValid() || !to.IsValid() || from == to {
		return domain.ErrInvalidInput
	}

	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}

	now := time.Now()
	return s.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		applied, err := stockRepo.DecreaseQuantityIfEnough(product.ID, from, qty)
		if err != nil {
			return err
		}
		if applied == 0 {
			return domain.ErrInsufficientStock
		}
		if err := stockRepo.IncreaseQuantity(product.ID, to, qty); err != nil {
			return err
		}
		return appendMovement(movRepo, &entity.Movement{
			ProductID:    product.ID,
			Type:         entity.MovementTypeTRANSFER,
			Quantity:     qty,
			FromLocation: from,
			ToLocation:   to,
			OccurredAt:   now,
			Note:         note,
		})
	})
}

// appendMovement valida la forma del movimiento, asigna ID y lo anexa al libro.
func appendMovement(movRepo repository.MovementRepository, m *entity.Movement) error {
	if err := m.Validate(); err != nil {
		return err
	}
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = m.OccurredAt
	}
	return movRepo.Create(m)
}
