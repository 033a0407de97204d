package inventory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
)

func newImportService(s *memStore) *SalesImportService {
	return NewSalesImportService(&memTx{s}, &memProductRepo{s}, &memImportRepo{s})
}

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo de vida de la importación
// ──────────────────────────────────────────────────────────────────────────────

func TestImport_ArchivoVacio(t *testing.T) {
	svc := newImportService(newMemStore())

	_, err := svc.Import(context.Background(), nil, "ventas.csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Import(context.Background(), []byte{}, "ventas.csv")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// La demanda se cubre primero desde SHOPFLOOR y el resto desde BACKROOM, con un
// movimiento SALE_IMPORT por cada ubicación tocada.
func TestImport_AsignaShopfloorPrimeroLuegoBackroom(t *testing.T) {
	s := newMemStore()
	s.seedProduct("p1", "ABC")
	s.setLevel("p1", entity.LocationShopfloor, 10)
	s.setLevel("p1", entity.LocationBackroom, 20)
	svc := newImportService(s)

	result, err := svc.Import(context.Background(), []byte("ABC,15\n"), "ventas-lunes.csv")
	require.NoError(t, err)

	assert.Equal(t, entity.ImportStatusSuccess, result.Status)
	assert.Equal(t, 1, result.RowsRead)
	assert.Equal(t, 1, result.RowsValid)
	assert.Equal(t, int64(15), result.TotalQuantityRequested)
	assert.Equal(t, int64(15), result.TotalQuantityApplied)
	assert.Equal(t, 2, result.MovementsCreated, "un movimiento por ubicación tocada")

	assert.Equal(t, int64(0), s.level("p1", entity.LocationShopfloor))
	assert.Equal(t, int64(15), s.level("p1", entity.LocationBackroom))

	require.Len(t, s.movements, 2)
	assert.Equal(t, entity.LocationShopfloor, s.movements[0].FromLocation)
	assert.Equal(t, int64(10), s.movements[0].Quantity)
	assert.Equal(t, entity.LocationBackroom, s.movements[1].FromLocation)
	assert.Equal(t, int64(5), s.movements[1].Quantity)
	for _, m := range s.movements {
		assert.Equal(t, entity.MovementTypeSALEIMPORT, m.Type)
		assert.NotEmpty(t, m.SalesImportID, "cada movimiento referencia su importación")
	}
}

// La insuficiencia no es error: se toma lo que haya y el archivo cierra SUCCESS.
func TestImport_ParcialPorInsuficiencia(t *testing.T) {
	s := newMemStore()
	s.seedProduct("p1", "ABC")
	s.setLevel("p1", entity.LocationShopfloor, 4)
	s.setLevel("p1", entity.LocationBackroom, 3)
	svc := newImportService(s)

	result, err := svc.Import(context.Background(), []byte("ABC,10\n"), "ventas.csv")
	require.NoError(t, err)

	assert.Equal(t, entity.ImportStatusSuccess, result.Status)
	assert.Equal(t, int64(10), result.TotalQuantityRequested)
	assert.Equal(t, int64(7), result.TotalQuantityApplied, "se aplica solo lo disponible")
	assert.Equal(t, int64(0), s.level("p1", entity.LocationShopfloor))
	assert.Equal(t, int64(0), s.level("p1", entity.LocationBackroom))
}

// Un SKU sin producto en catálogo cuenta y se salta; no aborta el archivo.
func TestImport_SKUDesconocido(t *testing.T) {
	s := newMemStore()
	s.seedProduct("p1", "ABC")
	s.setLevel("p1", entity.LocationShopfloor, 5)
	svc := newImportService(s)

	result, err := svc.Import(context.Background(), []byte("NADIE,3\nABC,2\n"), "ventas.csv")
	require.NoError(t, err)

	assert.Equal(t, entity.ImportStatusSuccess, result.Status)
	assert.Equal(t, 1, result.UnknownSKUCount)
	assert.Equal(t, int64(2), result.TotalQuantityApplied)
	assert.Equal(t, 1, result.MovementsCreated)
}

// Reenviar el mismo contenido no vuelve a mover stock: responde los contadores
// de la primera ejecución aunque el inventario haya cambiado entre medias.
func TestImport_DuplicadoDevuelveContadoresOriginales(t *testing.T) {
	s := newMemStore()
	s.seedProduct("p1", "ABC")
	s.setLevel("p1", entity.LocationShopfloor, 10)
	svc := newImportService(s)

	raw := []byte("ABC,6\n")
	first, err := svc.Import(context.Background(), raw, "ventas.csv")
	require.NoError(t, err)
	require.Equal(t, entity.ImportStatusSuccess, first.Status)
	require.Equal(t, int64(6), first.TotalQuantityApplied)

	// El inventario cambia entre envíos
	s.setLevel("p1", entity.LocationShopfloor, 100)
	movementsBefore := s.movementCount()

	second, err := svc.Import(context.Background(), raw, "ventas-otra-vez.csv")
	require.NoError(t, err)

	assert.Equal(t, entity.ImportStatusSkippedDuplicate, second.Status)
	assert.Equal(t, first.SHA256, second.SHA256)
	assert.Equal(t, first.TotalQuantityApplied, second.TotalQuantityApplied, "contadores de la ejecución original")
	assert.Equal(t, first.MovementsCreated, second.MovementsCreated)
	assert.Equal(t, int64(100), s.level("p1", entity.LocationShopfloor), "el stock no debe tocarse")
	assert.Equal(t, movementsBefore, s.movementCount(), "sin nuevos movimientos en el libro")
}

// Un fallo de almacenamiento a mitad del archivo cierra el registro como FAILED
// y conserva el progreso ya confirmado: los pasos previos no se revierten.
func TestImport_FalloParcialMarcaFailedYConservaProgreso(t *testing.T) {
	s := newMemStore()
	s.seedProduct("p1", "AAA")
	s.seedProduct("p2", "BBB")
	s.setLevel("p1", entity.LocationShopfloor, 5)
	s.setLevel("p2", entity.LocationShopfloor, 5)
	s.failDecrease = errors.New("conexión perdida")
	s.failDecreaseAfter = 1 // el primer SKU pasa, el segundo revienta
	svc := newImportService(s)

	_, err := svc.Import(context.Background(), []byte("AAA,5\nBBB,5\n"), "ventas.csv")
	require.Error(t, err)

	require.Len(t, s.imports, 1)
	for _, rec := range s.imports {
		assert.Equal(t, entity.ImportStatusFailed, rec.Status)
		assert.Equal(t, int64(5), rec.TotalQuantityApplied, "el progreso del primer SKU queda registrado")
		assert.Equal(t, 1, rec.MovementsCreated)
	}
	assert.Equal(t, int64(0), s.level("p1", entity.LocationShopfloor), "el paso confirmado no se revierte")
	assert.Equal(t, int64(5), s.level("p2", entity.LocationShopfloor))
}

// ──────────────────────────────────────────────────────────────────────────────
// takeWithRetry
// ──────────────────────────────────────────────────────────────────────────────

// Si el decremento pierde la carrera dos veces, el tercer intento lo logra.
func TestTakeWithRetry_GanaAlTercerIntento(t *testing.T) {
	s := newMemStore()
	s.setLevel("p1", entity.LocationShopfloor, 10)
	s.denyDecrease = 2

	taken, err := takeWithRetry(&memStockRepo{s}, "p1", entity.LocationShopfloor, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(4), taken)
	assert.Equal(t, int64(6), s.level("p1", entity.LocationShopfloor))
}

// Agotados los tres intentos, se rinde con 0 sin error: "nada disponible ahora".
func TestTakeWithRetry_SeRindeTrasTresIntentos(t *testing.T) {
	s := newMemStore()
	s.setLevel("p1", entity.LocationShopfloor, 10)
	s.denyDecrease = 3

	taken, err := takeWithRetry(&memStockRepo{s}, "p1", entity.LocationShopfloor, 4)
	require.NoError(t, err)
	assert.Zero(t, taken)
	assert.Equal(t, int64(10), s.level("p1", entity.LocationShopfloor), "sin mutación tras rendirse")
}

// Con menos stock que demanda, toma el mínimo disponible.
func TestTakeWithRetry_TomaElMinimo(t *testing.T) {
	s := newMemStore()
	s.setLevel("p1", entity.LocationBackroom, 3)

	taken, err := takeWithRetry(&memStockRepo{s}, "p1", entity.LocationBackroom, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(3), taken)
	assert.Equal(t, int64(0), s.level("p1", entity.LocationBackroom))
}

func TestTakeWithRetry_SinStock(t *testing.T) {
	s := newMemStore()

	taken, err := takeWithRetry(&memStockRepo{s}, "p1", entity.LocationShopfloor, 5)
	require.NoError(t, err)
	assert.Zero(t, taken)
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia
// ──────────────────────────────────────────────────────────────────────────────

// Decrementos concurrentes sobre la misma posición: la suma de lo aplicado
// nunca excede el stock inicial y la cantidad nunca queda negativa.
func TestDecrementoConcurrente_NuncaNegativo(t *testing.T) {
	s := newMemStore()
	s.setLevel("p1", entity.LocationShopfloor, 50)
	repo := &memStockRepo{s}

	const workers = 20
	var wg sync.WaitGroup
	var mu sync.Mutex
	var applied int64

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := repo.DecreaseQuantityIfEnough("p1", entity.LocationShopfloor, 4)
			assert.NoError(t, err)
			mu.Lock()
			applied += got
			mu.Unlock()
		}()
	}
	wg.Wait()

	final := s.level("p1", entity.LocationShopfloor)
	assert.GreaterOrEqual(t, final, int64(0), "la cantidad nunca puede ser negativa")
	assert.Equal(t, int64(50), applied+final, "lo aplicado más lo restante debe sumar el inicial")
}

// Dos importaciones concurrentes del mismo contenido: solo una asigna stock; el
// registro por hash es único y el stock no se descuenta dos veces.
func TestImport_ConcurrenciaMismoContenido(t *testing.T) {
	s := newMemStore()
	s.seedProduct("p1", "ABC")
	s.setLevel("p1", entity.LocationShopfloor, 100)
	svc := newImportService(s)
	raw := []byte("ABC,10\n")

	var wg sync.WaitGroup
	results := make([]*ImportResult, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := svc.Import(context.Background(), raw, "ventas.csv")
			assert.NoError(t, err)
			results[i] = result
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.imports, 1, "un único registro por contenido")
	assert.GreaterOrEqual(t, s.level("p1", entity.LocationShopfloor), int64(90), "el stock no puede descontarse dos veces")
	duplicates := 0
	for _, r := range results {
		if r != nil && r.Status == entity.ImportStatusSkippedDuplicate {
			duplicates++
		}
	}
	assert.LessOrEqual(t, duplicates, 1)
}
