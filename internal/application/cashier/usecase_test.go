package cashier_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/punto-venta-api/internal/application/cashier"
	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/infrastructure/memory"
	"github.com/jhoicas/punto-venta-api/pkg/logger"
)

func newCashierFixture() (*cashier.UseCase, *memory.Store, *memory.Notifier) {
	store := memory.NewStore()
	notifier := memory.NewNotifier()
	uc := cashier.NewUseCase(store.Cashiers(), notifier, logger.Nop())
	return uc, store, notifier
}

func TestOpen_CreaSesionYNotifica(t *testing.T) {
	uc, store, notifier := newCashierFixture()

	opened, err := uc.Open(context.Background(), decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.Equal(t, entity.CashierStatusOpen, opened.Status)
	assert.True(t, opened.Amount.Equal(decimal.NewFromInt(50)))

	found, err := store.Cashiers().FindOpen(context.Background())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, opened.ID, found.ID)

	opens := notifier.Opens()
	require.Len(t, opens, 1, "la apertura debe avisarse a los terminales")
	assert.True(t, opens[0].Equal(decimal.NewFromInt(50)))
}

// Una sola caja por sesión: abrir con otra abierta falla con conflicto.
func TestOpen_ConCajaAbierta_Conflicto(t *testing.T) {
	uc, _, _ := newCashierFixture()
	_, err := uc.Open(context.Background(), decimal.NewFromInt(50))
	require.NoError(t, err)

	_, err = uc.Open(context.Background(), decimal.NewFromInt(10))
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestClose_EliminaYNotificaCierres(t *testing.T) {
	uc, store, notifier := newCashierFixture()
	opened, err := uc.Open(context.Background(), decimal.NewFromInt(50))
	require.NoError(t, err)

	closed, err := uc.Close(context.Background(), opened.ID)
	require.NoError(t, err)
	assert.Equal(t, opened.ID, closed.ID)

	found, err := store.Cashiers().FindOpen(context.Background())
	require.NoError(t, err)
	assert.Nil(t, found, "tras cerrar no debe quedar caja abierta")

	assert.Equal(t, 1, notifier.Closes(), "debe avisarse el cierre de caja")
	assert.Equal(t, 1, notifier.Sessions(), "debe pedirse el cierre de sesión de los terminales")
}

func TestClose_CajaInexistente(t *testing.T) {
	uc, _, _ := newCashierFixture()
	_, err := uc.Close(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// Tras cerrar, puede abrirse una caja nueva.
func TestOpen_DespuesDeCerrar(t *testing.T) {
	uc, _, _ := newCashierFixture()
	opened, err := uc.Open(context.Background(), decimal.NewFromInt(50))
	require.NoError(t, err)
	_, err = uc.Close(context.Background(), opened.ID)
	require.NoError(t, err)

	_, err = uc.Open(context.Background(), decimal.NewFromInt(25))
	assert.NoError(t, err)
}
