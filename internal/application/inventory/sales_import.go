package inventory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
)

// takeAttempts intentos del bucle leer-recalcular-decrementar antes de rendirse.
const takeAttempts = 3

// ImportResult contadores finales de una importación de ventas.
type ImportResult struct {
	Status                 string
	RowsRead               int
	RowsValid              int
	UnknownSKUCount        int
	MovementsCreated       int
	TotalQuantityRequested int64
	TotalQuantityApplied   int64
	SHA256                 string
}

// SalesImportService procesa archivos masivos de demanda: agrega cantidades
// por SKU, las asigna entre ubicaciones (primero SHOPFLOOR, resto BACKROOM)
// vía decremento condicional con reintentos acotados, y persiste un registro
// idempotente por contenido. Cada paso por (SKU, ubicación) compone su
// decremento con el append SALE_IMPORT en una transacción propia; el progreso
// ya confirmado sobrevive a un fallo posterior del archivo.
type SalesImportService struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	importRepo  repository.SalesImportRepository
}

// NewSalesImportService construye el motor de importación.
func NewSalesImportService(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	importRepo repository.SalesImportRepository,
) *SalesImportService {
	return &SalesImportService{txRunner: txRunner, productRepo: productRepo, importRepo: importRepo}
}

// Import procesa los bytes crudos de un archivo de demanda. sourceLabel es una
// etiqueta libre (normalmente el nombre del archivo) para la nota del libro.
func (s *SalesImportService) Import(ctx context.Context, raw []byte, sourceLabel string) (*ImportResult, error) {
	if len(raw) == 0 {
		return nil, domain.ErrInvalidInput
	}

	sum := sha256.Sum256(raw)
	sha := hex.EncodeToString(sum[:])

	// Reenvío del mismo contenido: responder los contadores ya registrados,
	// sin parsear ni mover stock, sin importar el estado actual del inventario.
	existing, err := s.importRepo.GetBySHA256(sha)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return duplicateResult(existing), nil
	}

	text, err := decodeDemandFile(raw)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	parsed := parseDemand(text)

	// Registro PROCESSING antes de mutar stock: identificador estable para las
	// referencias del libro y candado de unicidad por hash frente a
	// importaciones concurrentes del mismo contenido.
	now := time.Now()
	record := &entity.SalesImport{
		ID:                     uuid.New().String(),
		SHA256:                 sha,
		Status:                 entity.ImportStatusProcessing,
		RowsRead:               parsed.RowsRead,
		RowsValid:              parsed.RowsValid,
		TotalQuantityRequested: parsed.TotalQuantityRequested,
		CreatedAt:              now,
		UpdatedAt:              now,
	}
	if err := s.importRepo.Create(record); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			if prior, lookupErr := s.importRepo.GetBySHA256(sha); lookupErr == nil && prior != nil {
				return duplicateResult(prior), nil
			}
		}
		return nil, err
	}

	allocErr := s.allocate(ctx, record, parsed.Rows, sourceLabel)

	if allocErr != nil {
		record.Status = entity.ImportStatusFailed
	} else {
		record.Status = entity.ImportStatusSuccess
	}
	record.UpdatedAt = time.Now()
	if err := s.importRepo.Update(record); err != nil {
		if allocErr != nil {
			return nil, allocErr
		}
		return nil, err
	}
	if allocErr != nil {
		return nil, allocErr
	}

	return &ImportResult{
		Status:                 record.Status,
		RowsRead:               record.RowsRead,
		RowsValid:              record.RowsValid,
		UnknownSKUCount:        record.UnknownSKUCount,
		MovementsCreated:       record.MovementsCreated,
		TotalQuantityRequested: record.TotalQuantityRequested,
		TotalQuantityApplied:   record.TotalQuantityApplied,
		SHA256:                 record.SHA256,
	}, nil
}

// allocate recorre la demanda agregada en orden y acumula los contadores en el
// registro. La insuficiencia por SKU no es error: se toma lo que haya y el
// resto queda sin aplicar. Solo un fallo de almacenamiento aborta el archivo.
func (s *SalesImportService) allocate(ctx context.Context, record *entity.SalesImport, rows []demandRow, sourceLabel string) error {
	note := "importación de ventas: " + safeSourceLabel(sourceLabel)

	for _, row := range rows {
		product, err := s.productRepo.GetBySKU(row.SKU)
		if err != nil {
			return err
		}
		if product == nil {
			record.UnknownSKUCount++
			continue
		}

		remaining := row.Quantity

		taken, err := s.takeStep(ctx, product.ID, entity.LocationShopfloor, remaining, record.ID, note)
		if err != nil {
			return err
		}
		if taken > 0 {
			remaining -= taken
			record.TotalQuantityApplied += taken
			record.MovementsCreated++
		}

		if remaining > 0 {
			taken, err = s.takeStep(ctx, product.ID, entity.LocationBackroom, remaining, record.ID, note)
			if err != nil {
				return err
			}
			if taken > 0 {
				remaining -= taken
				record.TotalQuantityApplied += taken
				record.MovementsCreated++
			}
		}
	}
	return nil
}

// takeStep ejecuta un paso de asignación (SKU, ubicación) como unidad
// atómica: toma hasta desired con reintentos y, si tomó algo, anexa el
// movimiento SALE_IMPORT en la misma transacción.
func (s *SalesImportService) takeStep(ctx context.Context, productID string, location entity.Location, desired int64, importID, note string) (int64, error) {
	var taken int64
	err := s.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
	) error {
		var err error
		taken, err = takeWithRetry(stockRepo, productID, location, desired)
		if err != nil || taken == 0 {
			return err
		}
		return appendMovement(movRepo, &entity.Movement{
			ProductID:     productID,
			Type:          entity.MovementTypeSALEIMPORT,
			Quantity:      taken,
			FromLocation:  location,
			OccurredAt:    time.Now(),
			Note:          note,
			SalesImportID: importID,
		})
	})
	if err != nil {
		return 0, err
	}
	return taken, nil
}

// takeWithRetry toma hasta desired de una ubicación: lee la cantidad actual,
// calcula min(actual, desired) e intenta el decremento condicional. Si pierde
// la carrera contra otro mutador, relee y reintenta; exactamente takeAttempts
// intentos y luego se rinde devolviendo 0 ("nada disponible ahora", no error).
func takeWithRetry(stockRepo repository.StockRepository, productID string, location entity.Location, desired int64) (int64, error) {
	if desired <= 0 {
		return 0, nil
	}
	for i := 0; i < takeAttempts; i++ {
		level, err := stockRepo.Get(productID, location)
		if err != nil {
			return 0, err
		}
		if level.Quantity <= 0 {
			return 0, nil
		}
		toTake := min(level.Quantity, desired)
		applied, err := stockRepo.DecreaseQuantityIfEnough(productID, location, toTake)
		if err != nil {
			return 0, err
		}
		if applied > 0 {
			return toTake, nil
		}
	}
	// Agotados los intentos: tratar como sin disponibilidad en este momento.
	return 0, nil
}

func duplicateResult(rec *entity.SalesImport) *ImportResult {
	return &ImportResult{
		Status:                 entity.ImportStatusSkippedDuplicate,
		RowsRead:               rec.RowsRead,
		RowsValid:              rec.RowsValid,
		UnknownSKUCount:        rec.UnknownSKUCount,
		MovementsCreated:       rec.MovementsCreated,
		TotalQuantityRequested: rec.TotalQuantityRequested,
		TotalQuantityApplied:   rec.TotalQuantityApplied,
		SHA256:                 rec.SHA256,
	}
}

func safeSourceLabel(label string) string {
	if strings.TrimSpace(label) == "" {
		return "archivo desconocido"
	}
	replacer := strings.NewReplacer("\r", " ", "\n", " ", "\t", " ")
	return strings.TrimSpace(replacer.Replace(label))
}
