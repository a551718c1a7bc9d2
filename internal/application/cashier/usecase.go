// Package cashier contiene las operaciones de sesión de caja: abrir con un
// monto inicial y cerrar eliminando la sesión, avisando a los terminales en
// ambos casos.
package cashier

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/punto-venta-api/internal/application/ports"
	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
	"github.com/jhoicas/punto-venta-api/pkg/logger"
)

// UseCase operaciones de sesión de caja.
type UseCase struct {
	cashierRepo repository.CashierRepository
	notifier    ports.Notifier
	log         *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(cashierRepo repository.CashierRepository, notifier ports.Notifier, log *logger.Logger) *UseCase {
	return &UseCase{cashierRepo: cashierRepo, notifier: notifier, log: log}
}

// Open abre una sesión de caja con el monto inicial dado y avisa a todos los
// terminales (una caja por sesión, sin importar qué admin la abre). Abrir con
// otra sesión ya abierta falla con domain.ErrConflict.
func (uc *UseCase) Open(ctx context.Context, initialAmount decimal.Decimal) (*entity.Cashier, error) {
	open, err := uc.cashierRepo.FindOpen(ctx)
	if err != nil {
		return nil, err
	}
	if open != nil {
		return nil, fmt.Errorf("%w: ya hay una caja abierta", domain.ErrConflict)
	}

	now := time.Now().UTC()
	cashier := &entity.Cashier{
		ID:        uuid.New().String(),
		Status:    entity.CashierStatusOpen,
		Amount:    initialAmount,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.cashierRepo.Create(ctx, cashier); err != nil {
		return nil, err
	}

	if err := uc.notifier.OpenCashiers(ctx, initialAmount); err != nil {
		uc.log.Warn().Err(err).Msg("aviso de apertura de caja no entregado")
	}
	return cashier, nil
}

// Close elimina la sesión de caja y pide a los terminales cerrar la caja y la
// sesión de usuario. Los avisos son best-effort.
func (uc *UseCase) Close(ctx context.Context, id string) (*entity.Cashier, error) {
	cashier, err := uc.cashierRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}
	if cashier == nil {
		return nil, fmt.Errorf("%w: caja %s", domain.ErrNotFound, id)
	}

	if err := uc.notifier.CloseCashiers(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("aviso de cierre de caja no entregado")
	}
	if err := uc.notifier.CloseSessions(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("aviso de cierre de sesión no entregado")
	}
	return cashier, nil
}
