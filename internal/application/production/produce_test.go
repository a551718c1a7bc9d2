package production_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/punto-venta-api/internal/application/production"
	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/ledger"
	"github.com/jhoicas/punto-venta-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newProduceFixture() (*production.AdjustCompositeUseCase, *memory.Store) {
	store := memory.NewStore()
	uc := production.NewAdjustCompositeUseCase(store, store, ledger.NewKeyring())
	return uc, store
}

func stockOf(t *testing.T, store *memory.Store, ref entity.Ref) int64 {
	t.Helper()
	rec, err := store.GetForUpdate(context.Background(), ref)
	require.NoError(t, err)
	require.NotNil(t, rec)
	return rec.Stock
}

// Receta estándar de los tests: 1 producto consume 2 de harina y 1 de queso.
func seedRecipe(store *memory.Store, productStock, harinaStock, quesoStock int64) {
	store.PutSupply(&entity.Supply{ID: "harina", Name: "Harina", Stock: harinaStock, TracksStock: true})
	store.PutSupply(&entity.Supply{ID: "queso", Name: "Queso", Stock: quesoStock, TracksStock: true})
	store.PutProduct(&entity.Product{
		ID: "arepa", Name: "Arepa", Stock: productStock, TracksStock: true,
		Supplies: []entity.Component{
			{RefID: "harina", Name: "Harina", Required: 2},
			{RefID: "queso", Name: "Queso", Required: 1},
		},
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Producción y devolución
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustCompositeStock_ProduceConsumiendoReceta(t *testing.T) {
	uc, store := newProduceFixture()
	seedRecipe(store, 0, 10, 5)

	rec, err := uc.AdjustCompositeStock(context.Background(), entity.Ref{ID: "arepa", Kind: entity.KindProduct}, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), rec.Stock)

	assert.Equal(t, int64(4), stockOf(t, store, entity.Ref{ID: "harina", Kind: entity.KindSupply}), "10 - 2×3")
	assert.Equal(t, int64(2), stockOf(t, store, entity.Ref{ID: "queso", Kind: entity.KindSupply}), "5 - 1×3")
}

// Producir n y devolver n deja todos los niveles exactamente como al inicio.
func TestAdjustCompositeStock_IdaYVueltaRestauraTodo(t *testing.T) {
	uc, store := newProduceFixture()
	seedRecipe(store, 0, 10, 5)
	ref := entity.Ref{ID: "arepa", Kind: entity.KindProduct}

	_, err := uc.AdjustCompositeStock(context.Background(), ref, 3)
	require.NoError(t, err)
	_, err = uc.AdjustCompositeStock(context.Background(), ref, -3)
	require.NoError(t, err)

	assert.Equal(t, int64(0), stockOf(t, store, ref))
	assert.Equal(t, int64(10), stockOf(t, store, entity.Ref{ID: "harina", Kind: entity.KindSupply}))
	assert.Equal(t, int64(5), stockOf(t, store, entity.Ref{ID: "queso", Kind: entity.KindSupply}))
}

// Un combo consume productos, no insumos.
func TestAdjustCompositeStock_ComboConsumeProductos(t *testing.T) {
	uc, store := newProduceFixture()
	store.PutProduct(&entity.Product{ID: "arepa", Name: "Arepa", Stock: 6, TracksStock: true})
	store.PutProduct(&entity.Product{ID: "jugo", Name: "Jugo", Stock: 4, TracksStock: true})
	store.PutCombo(&entity.Combo{
		ID: "desayuno", Name: "Desayuno", Stock: 0, TracksStock: true,
		Products: []entity.Component{
			{RefID: "arepa", Name: "Arepa", Required: 1},
			{RefID: "jugo", Name: "Jugo", Required: 1},
		},
	})

	rec, err := uc.AdjustCompositeStock(context.Background(), entity.Ref{ID: "desayuno", Kind: entity.KindCombo}, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), rec.Stock)
	assert.Equal(t, int64(4), stockOf(t, store, entity.Ref{ID: "arepa", Kind: entity.KindProduct}))
	assert.Equal(t, int64(2), stockOf(t, store, entity.Ref{ID: "jugo", Kind: entity.KindProduct}))
}

// Componentes sin seguimiento de stock se saltan sin validar ni mutar.
func TestAdjustCompositeStock_ComponenteSinSeguimiento(t *testing.T) {
	uc, store := newProduceFixture()
	store.PutSupply(&entity.Supply{ID: "agua", Name: "Agua", Stock: 0, TracksStock: false})
	store.PutSupply(&entity.Supply{ID: "cafe", Name: "Café", Stock: 10, TracksStock: true})
	store.PutProduct(&entity.Product{
		ID: "tinto", Name: "Tinto", Stock: 0, TracksStock: true,
		Supplies: []entity.Component{
			{RefID: "agua", Name: "Agua", Required: 100},
			{RefID: "cafe", Name: "Café", Required: 1},
		},
	})

	rec, err := uc.AdjustCompositeStock(context.Background(), entity.Ref{ID: "tinto", Kind: entity.KindProduct}, 5)
	require.NoError(t, err, "un componente sin seguimiento jamás bloquea la producción")
	assert.Equal(t, int64(5), rec.Stock)
	assert.Equal(t, int64(0), stockOf(t, store, entity.Ref{ID: "agua", Kind: entity.KindSupply}))
	assert.Equal(t, int64(5), stockOf(t, store, entity.Ref{ID: "cafe", Kind: entity.KindSupply}))
}

// Un compuesto sin seguimiento queda fijo en 0: producirlo es un no-op y la
// receta no se consume.
func TestAdjustCompositeStock_CompuestoSinSeguimiento(t *testing.T) {
	uc, store := newProduceFixture()
	store.PutSupply(&entity.Supply{ID: "harina", Name: "Harina", Stock: 10, TracksStock: true})
	store.PutProduct(&entity.Product{
		ID: "arepa-al-momento", Name: "Arepa al momento", Stock: 0, TracksStock: false,
		Supplies: []entity.Component{
			{RefID: "harina", Name: "Harina", Required: 2},
		},
	})

	rec, err := uc.AdjustCompositeStock(context.Background(), entity.Ref{ID: "arepa-al-momento", Kind: entity.KindProduct}, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rec.Stock, "el compuesto sin seguimiento no gana stock")
	assert.Equal(t, int64(10), stockOf(t, store, entity.Ref{ID: "harina", Kind: entity.KindSupply}),
		"la receta no debe consumirse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Faltantes: se acumulan todos y nada se muta.
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustCompositeStock_FaltantesAcumulados_NadaMuta(t *testing.T) {
	uc, store := newProduceFixture()
	// Ambos insumos insuficientes para producir 5: harina necesita 10, queso 5.
	seedRecipe(store, 0, 6, 3)

	_, err := uc.AdjustCompositeStock(context.Background(), entity.Ref{ID: "arepa", Kind: entity.KindProduct}, 5)
	require.Error(t, err)

	var shortages production.ShortageError
	require.ErrorAs(t, err, &shortages)
	require.Len(t, shortages, 2, "deben reportarse TODOS los faltantes, no solo el primero")

	msgs := shortages.Messages()
	assert.Contains(t, msgs[0], "Harina")
	assert.Contains(t, msgs[0], "6 en inventario y se requieren 10")
	assert.Contains(t, msgs[1], "Queso")
	assert.Contains(t, msgs[1], "3 en inventario y se requieren 5")

	// Ningún nivel quedó tocado, ni siquiera los que sí alcanzaban.
	assert.Equal(t, int64(0), stockOf(t, store, entity.Ref{ID: "arepa", Kind: entity.KindProduct}))
	assert.Equal(t, int64(6), stockOf(t, store, entity.Ref{ID: "harina", Kind: entity.KindSupply}))
	assert.Equal(t, int64(3), stockOf(t, store, entity.Ref{ID: "queso", Kind: entity.KindSupply}))
}

// Con un solo insumo corto, el otro (suficiente) tampoco se descuenta.
func TestAdjustCompositeStock_UnFaltanteBloqueaTodo(t *testing.T) {
	uc, store := newProduceFixture()
	seedRecipe(store, 0, 100, 1)

	_, err := uc.AdjustCompositeStock(context.Background(), entity.Ref{ID: "arepa", Kind: entity.KindProduct}, 2)
	var shortages production.ShortageError
	require.ErrorAs(t, err, &shortages)
	require.Len(t, shortages, 1)
	assert.Contains(t, shortages[0].Message(), "Queso")

	assert.Equal(t, int64(100), stockOf(t, store, entity.Ref{ID: "harina", Kind: entity.KindSupply}),
		"el insumo suficiente no debe descontarse si la producción se rechaza")
}

// Devolver más unidades de las producidas dejaría el compuesto negativo:
// se rechaza completo y los insumos no reciben la devolución.
func TestAdjustCompositeStock_DevolucionExcesiva(t *testing.T) {
	uc, store := newProduceFixture()
	seedRecipe(store, 2, 10, 5)

	_, err := uc.AdjustCompositeStock(context.Background(), entity.Ref{ID: "arepa", Kind: entity.KindProduct}, -3)
	var shortages production.ShortageError
	require.ErrorAs(t, err, &shortages)
	require.Len(t, shortages, 1)
	assert.Equal(t, "No puede quedar stock negativo para Arepa.", shortages[0].Message())

	assert.Equal(t, int64(2), stockOf(t, store, entity.Ref{ID: "arepa", Kind: entity.KindProduct}))
	assert.Equal(t, int64(10), stockOf(t, store, entity.Ref{ID: "harina", Kind: entity.KindSupply}))
	assert.Equal(t, int64(5), stockOf(t, store, entity.Ref{ID: "queso", Kind: entity.KindSupply}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Errores de referencia
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustCompositeStock_CompuestoInexistente(t *testing.T) {
	uc, _ := newProduceFixture()
	_, err := uc.AdjustCompositeStock(context.Background(), entity.Ref{ID: "nada", Kind: entity.KindProduct}, 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustCompositeStock_ComponenteInexistente(t *testing.T) {
	uc, store := newProduceFixture()
	store.PutProduct(&entity.Product{
		ID: "arepa", Name: "Arepa", Stock: 0, TracksStock: true,
		Supplies: []entity.Component{{RefID: "fantasma", Name: "Fantasma", Required: 1}},
	})

	_, err := uc.AdjustCompositeStock(context.Background(), entity.Ref{ID: "arepa", Kind: entity.KindProduct}, 1)
	assert.ErrorIs(t, err, domain.ErrReferenceNotFound)
}

// Un insumo no es compuesto: producir sobre él es entrada inválida.
func TestAdjustCompositeStock_InsumoNoEsCompuesto(t *testing.T) {
	uc, _ := newProduceFixture()
	_, err := uc.AdjustCompositeStock(context.Background(), entity.Ref{ID: "harina", Kind: entity.KindSupply}, 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
