package ledger_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/ledger"
	"github.com/jhoicas/punto-venta-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests de Adjust: las tres reglas del libro de stock.
// ──────────────────────────────────────────────────────────────────────────────

func seedSupply(store *memory.Store, id string, stock int64, tracks bool) {
	store.PutSupply(&entity.Supply{
		ID:          id,
		Name:        "Insumo " + id,
		Stock:       stock,
		TracksStock: tracks,
	})
}

// Caso 1: descuento normal → el stock baja exactamente el delta.
func TestAdjust_DescuentaStock(t *testing.T) {
	store := memory.NewStore()
	seedSupply(store, "harina", 10, true)
	ref := entity.Ref{ID: "harina", Kind: entity.KindSupply}

	err := ledger.Adjust(context.Background(), store, ref, -3)
	require.NoError(t, err)

	rec, err := store.GetForUpdate(context.Background(), ref)
	require.NoError(t, err)
	assert.Equal(t, int64(7), rec.Stock, "10 - 3 debe dejar 7")
}

// Caso 2: el resultado sería negativo → ErrInsufficientStock y nada cambia.
func TestAdjust_StockInsuficiente_NoMuta(t *testing.T) {
	store := memory.NewStore()
	seedSupply(store, "queso", 2, true)
	ref := entity.Ref{ID: "queso", Kind: entity.KindSupply}

	err := ledger.Adjust(context.Background(), store, ref, -5)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "Insumo queso", "el error debe nombrar al insumo")

	rec, _ := store.GetForUpdate(context.Background(), ref)
	assert.Equal(t, int64(2), rec.Stock, "un ajuste rechazado no debe mutar el stock")
}

// Caso 3: la entidad no lleva stock → éxito sin efecto, incluso con delta enorme.
func TestAdjust_SinSeguimiento_EsNoOp(t *testing.T) {
	store := memory.NewStore()
	seedSupply(store, "servilletas", 0, false)
	ref := entity.Ref{ID: "servilletas", Kind: entity.KindSupply}

	err := ledger.Adjust(context.Background(), store, ref, -1_000)
	require.NoError(t, err, "una entidad sin seguimiento nunca bloquea la operación")

	rec, _ := store.GetForUpdate(context.Background(), ref)
	assert.Equal(t, int64(0), rec.Stock)
}

// Caso 4: referencia inexistente → ErrReferenceNotFound.
func TestAdjust_ReferenciaInexistente(t *testing.T) {
	store := memory.NewStore()
	ref := entity.Ref{ID: "fantasma", Kind: entity.KindSupply}

	err := ledger.Adjust(context.Background(), store, ref, -1)
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
}

// Delta cero es válido y persiste el mismo stock.
func TestAdjust_DeltaCero(t *testing.T) {
	store := memory.NewStore()
	seedSupply(store, "sal", 5, true)
	ref := entity.Ref{ID: "sal", Kind: entity.KindSupply}

	require.NoError(t, ledger.Adjust(context.Background(), store, ref, 0))
	rec, _ := store.GetForUpdate(context.Background(), ref)
	assert.Equal(t, int64(5), rec.Stock)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de Keyring: exclusión por entidad y orden total de adquisición.
// ──────────────────────────────────────────────────────────────────────────────

// Dos cascadas que comparten ids en orden opuesto no deben interbloquearse:
// LockAll ordena los ids, así que ambas adquieren en el mismo orden.
func TestKeyring_OrdenTotalSinDeadlock(t *testing.T) {
	k := ledger.NewKeyring()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			release := k.LockAll("a", "b", "c")
			release()
		}()
		go func() {
			defer wg.Done()
			release := k.LockAll("c", "b", "a")
			release()
		}()
	}
	wg.Wait() // si hay deadlock el test se cuelga y falla por timeout
}

// Ids duplicados y vacíos se ignoran: el release no entra en doble unlock.
func TestKeyring_IdsDuplicadosYVacios(t *testing.T) {
	k := ledger.NewKeyring()
	release := k.LockAll("x", "x", "", "y", "x")
	release()

	// Tras liberar, los mismos ids deben poder adquirirse de nuevo.
	release = k.LockAll("x", "y")
	release()
}

// El mutex de una entidad serializa secciones críticas concurrentes.
func TestKeyring_SerializaPorEntidad(t *testing.T) {
	k := ledger.NewKeyring()
	counter := 0

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release := k.LockAll("contador")
			counter++
			release()
		}()
	}
	wg.Wait()
	assert.Equal(t, 100, counter)
}
