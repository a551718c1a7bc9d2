package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/punto-venta-api/internal/application/catalog"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/infrastructure/memory"
)

func newMenuFixture() (*catalog.MenuUseCase, *memory.Store) {
	store := memory.NewStore()
	uc := catalog.NewMenuUseCase(store.Products(), store.Combos(), store.Supplies(), store.Extras())
	return uc, store
}

func TestListProductsWithExtras(t *testing.T) {
	uc, store := newMenuFixture()
	store.PutSupply(&entity.Supply{ID: "queso", Name: "Queso", Price: decimal.NewFromInt(2), Stock: 5, TracksStock: true})
	store.PutProduct(&entity.Product{
		ID: "arepa", Name: "Arepa", Price: decimal.NewFromInt(7), Stock: 3, TracksStock: true,
		Supplies: []entity.Component{{RefID: "queso", Name: "Queso", Required: 1}},
	})
	store.PutProduct(&entity.Product{ID: "jugo", Name: "Jugo", Price: decimal.NewFromInt(4), Stock: 0, TracksStock: true})
	store.PutExtra(&entity.Extra{ID: "x-queso", Name: "Queso extra", Price: decimal.NewFromInt(1), Products: []string{"arepa"}})

	menu, err := uc.ListProductsWithExtras(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 2)

	// Orden alfabético del repositorio: Arepa, Jugo.
	arepa := menu[0]
	assert.Equal(t, "Arepa", arepa.Name)
	assert.True(t, arepa.IsAvailable)
	require.Len(t, arepa.Extras, 1)
	assert.Equal(t, "Queso extra", arepa.Extras[0].Name)
	require.Len(t, arepa.Supplies, 1)
	require.NotNil(t, arepa.Supplies[0].Price, "el precio del insumo debe resolverse del catálogo")
	assert.True(t, arepa.Supplies[0].Price.Equal(decimal.NewFromInt(2)))

	jugo := menu[1]
	assert.False(t, jugo.IsAvailable, "stock 0 debe marcar no disponible")
	assert.Empty(t, jugo.Extras)
}

func TestListCombos(t *testing.T) {
	uc, store := newMenuFixture()
	store.PutCombo(&entity.Combo{
		ID: "desayuno", Name: "Desayuno", Price: decimal.NewFromInt(12), Stock: 2, TracksStock: true,
		Products: []entity.Component{{RefID: "arepa", Name: "Arepa", Required: 1}},
	})
	store.PutCombo(&entity.Combo{ID: "agotado", Name: "Agotado", Price: decimal.NewFromInt(9), Stock: 0, TracksStock: true})

	menu, err := uc.ListCombos(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 2)

	assert.Equal(t, "Agotado", menu[0].Name)
	assert.False(t, menu[0].IsAvailable)
	assert.Equal(t, "Desayuno", menu[1].Name)
	assert.True(t, menu[1].IsAvailable)
	require.Len(t, menu[1].Products, 1)
	assert.Equal(t, "arepa", menu[1].Products[0].RefID)
}
