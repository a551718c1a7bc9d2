package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
)

// CashierRepository estado de la sesión de caja.
type CashierRepository interface {
	Create(ctx context.Context, cashier *entity.Cashier) error

	// FindOpen devuelve la sesión abierta, o (nil, nil) si no hay ninguna.
	FindOpen(ctx context.Context) (*entity.Cashier, error)

	// IncrementAmount suma el total de una venta al acumulado de la sesión.
	IncrementAmount(ctx context.Context, id string, delta decimal.Decimal) error

	Delete(ctx context.Context, id string) (*entity.Cashier, error)
}
