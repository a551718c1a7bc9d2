package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

var _ repository.CashierRepository = (*CashierRepo)(nil)

// CashierRepo implementación de CashierRepository (usable con pool o tx).
type CashierRepo struct {
	q Querier
}

// NewCashierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashierRepository(q Querier) *CashierRepo {
	return &CashierRepo{q: q}
}

// Create persiste la sesión de caja.
func (r *CashierRepo) Create(ctx context.Context, cashier *entity.Cashier) error {
	query := `
		INSERT INTO cashiers (id, status, amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		cashier.ID, cashier.Status, cashier.Amount, cashier.CreatedAt, cashier.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cashier: %w", err)
	}
	return nil
}

// FindOpen devuelve la sesión abierta; (nil, nil) si no hay ninguna.
func (r *CashierRepo) FindOpen(ctx context.Context) (*entity.Cashier, error) {
	query := `
		SELECT id, status, amount, created_at, updated_at
		FROM cashiers WHERE status = 'open'
		ORDER BY created_at DESC LIMIT 1`
	var c entity.Cashier
	err := r.q.QueryRow(ctx, query).Scan(&c.ID, &c.Status, &c.Amount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find open cashier: %w", err)
	}
	return &c, nil
}

// IncrementAmount suma el total de una venta al acumulado de la sesión en una
// sola sentencia (sin read-modify-write en el cliente).
func (r *CashierRepo) IncrementAmount(ctx context.Context, id string, delta decimal.Decimal) error {
	query := `UPDATE cashiers SET amount = amount + $2, updated_at = now() WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, id, delta)
	if err != nil {
		return fmt.Errorf("increment cashier amount: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("increment cashier amount: caja %s no existe", id)
	}
	return nil
}

// Delete elimina la sesión y la devuelve; (nil, nil) si no existe.
func (r *CashierRepo) Delete(ctx context.Context, id string) (*entity.Cashier, error) {
	query := `
		DELETE FROM cashiers WHERE id = $1
		RETURNING id, status, amount, created_at, updated_at`
	var c entity.Cashier
	err := r.q.QueryRow(ctx, query, id).Scan(&c.ID, &c.Status, &c.Amount, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete cashier: %w", err)
	}
	return &c, nil
}
