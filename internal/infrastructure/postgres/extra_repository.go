package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

var _ repository.ExtraRepository = (*ExtraRepo)(nil)

// ExtraRepo implementación de ExtraRepository (usable con pool o tx).
// Los productos relacionados viven en la columna jsonb products (array de ids).
type ExtraRepo struct {
	q Querier
}

// NewExtraRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExtraRepository(q Querier) *ExtraRepo {
	return &ExtraRepo{q: q}
}

const extraColumns = `id, name, price, products, created_at, updated_at`

func scanExtra(row pgx.Row) (*entity.Extra, error) {
	var e entity.Extra
	var products []byte
	err := row.Scan(&e.ID, &e.Name, &e.Price, &products, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(products) > 0 {
		if err := json.Unmarshal(products, &e.Products); err != nil {
			return nil, fmt.Errorf("decode related products: %w", err)
		}
	}
	return &e, nil
}

// FindByProductID devuelve los extras que referencian el producto dado.
func (r *ExtraRepo) FindByProductID(ctx context.Context, productID string) ([]*entity.Extra, error) {
	query := `SELECT ` + extraColumns + ` FROM extras WHERE products @> to_jsonb(ARRAY[$1::text]) ORDER BY name`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("find extras by product: %w", err)
	}
	defer rows.Close()
	return collectExtras(rows)
}

// List devuelve todos los extras ordenados por nombre.
func (r *ExtraRepo) List(ctx context.Context) ([]*entity.Extra, error) {
	query := `SELECT ` + extraColumns + ` FROM extras ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list extras: %w", err)
	}
	defer rows.Close()
	return collectExtras(rows)
}

func collectExtras(rows pgx.Rows) ([]*entity.Extra, error) {
	var extras []*entity.Extra
	for rows.Next() {
		e, err := scanExtra(rows)
		if err != nil {
			return nil, fmt.Errorf("scan extra: %w", err)
		}
		extras = append(extras, e)
	}
	return extras, rows.Err()
}
