package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). Resuelve la tabla según el nivel de la entidad.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

func tableFor(kind entity.Kind) (string, error) {
	switch kind {
	case entity.KindSupply:
		return "supplies", nil
	case entity.KindProduct:
		return "products", nil
	case entity.KindCombo:
		return "combos", nil
	default:
		return "", fmt.Errorf("kind desconocido: %q", kind)
	}
}

// GetForUpdate obtiene el registro de stock y bloquea la fila (SELECT FOR UPDATE)
// para evitar condiciones de carrera dentro de la transacción.
func (r *StockRepo) GetForUpdate(ctx context.Context, ref entity.Ref) (*entity.StockRecord, error) {
	table, err := tableFor(ref.Kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, name, stock, tracks_stock
		FROM %s WHERE id = $1
		FOR UPDATE`, table)

	rec := entity.StockRecord{Ref: ref}
	err = r.q.QueryRow(ctx, query, ref.ID).Scan(&rec.Ref.ID, &rec.Name, &rec.Stock, &rec.TracksStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &rec, nil
}

// UpdateStock persiste el nuevo stock de exactamente una entidad.
func (r *StockRepo) UpdateStock(ctx context.Context, ref entity.Ref, stock int64) error {
	table, err := tableFor(ref.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`UPDATE %s SET stock = $2, updated_at = now() WHERE id = $1`, table)
	cmd, err := r.q.Exec(ctx, query, ref.ID, stock)
	if err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return fmt.Errorf("update stock: %s %s no existe", ref.Kind, ref.ID)
	}
	return nil
}

// Composition devuelve la receta ordenada del compuesto (vacía para insumos).
func (r *StockRepo) Composition(ctx context.Context, ref entity.Ref) ([]entity.Component, error) {
	var query string
	switch ref.Kind {
	case entity.KindSupply:
		return nil, nil
	case entity.KindProduct:
		query = `SELECT supplies FROM products WHERE id = $1`
	case entity.KindCombo:
		query = `SELECT products FROM combos WHERE id = $1`
	default:
		return nil, fmt.Errorf("kind desconocido: %q", ref.Kind)
	}

	var raw []byte
	if err := r.q.QueryRow(ctx, query, ref.ID).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get composition: %w", err)
	}
	if len(raw) == 0 {
		return nil, nil
	}
	var recipe []entity.Component
	if err := json.Unmarshal(raw, &recipe); err != nil {
		return nil, fmt.Errorf("decode composition: %w", err)
	}
	return recipe, nil
}

// Delete elimina la entidad.
func (r *StockRepo) Delete(ctx context.Context, ref entity.Ref) error {
	table, err := tableFor(ref.Kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table)
	if _, err := r.q.Exec(ctx, query, ref.ID); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}
