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

var _ repository.ComboRepository = (*ComboRepo)(nil)

// ComboRepo implementación de ComboRepository (usable con pool o tx).
// La receta vive en la columna jsonb products.
type ComboRepo struct {
	q Querier
}

// NewComboRepository construye el adaptador. Pasar pool o tx (Querier).
func NewComboRepository(q Querier) *ComboRepo {
	return &ComboRepo{q: q}
}

const comboColumns = `id, name, price, stock, tracks_stock, products, image_url, created_at, updated_at`

func scanCombo(row pgx.Row) (*entity.Combo, error) {
	var c entity.Combo
	var recipe []byte
	err := row.Scan(&c.ID, &c.Name, &c.Price, &c.Stock, &c.TracksStock, &recipe, &c.ImageURL, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(recipe) > 0 {
		if err := json.Unmarshal(recipe, &c.Products); err != nil {
			return nil, fmt.Errorf("decode products: %w", err)
		}
	}
	return &c, nil
}

// GetByID obtiene un combo por id; (nil, nil) si no existe.
func (r *ComboRepo) GetByID(ctx context.Context, id string) (*entity.Combo, error) {
	query := `SELECT ` + comboColumns + ` FROM combos WHERE id = $1`
	c, err := scanCombo(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get combo: %w", err)
	}
	return c, nil
}

// GetByName obtiene un combo por nombre; (nil, nil) si no existe.
func (r *ComboRepo) GetByName(ctx context.Context, name string) (*entity.Combo, error) {
	query := `SELECT ` + comboColumns + ` FROM combos WHERE name = $1`
	c, err := scanCombo(r.q.QueryRow(ctx, query, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get combo by name: %w", err)
	}
	return c, nil
}

// List devuelve todos los combos ordenados por nombre.
func (r *ComboRepo) List(ctx context.Context) ([]*entity.Combo, error) {
	query := `SELECT ` + comboColumns + ` FROM combos ORDER BY name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list combos: %w", err)
	}
	defer rows.Close()

	var combos []*entity.Combo
	for rows.Next() {
		c, err := scanCombo(rows)
		if err != nil {
			return nil, fmt.Errorf("scan combo: %w", err)
		}
		combos = append(combos, c)
	}
	return combos, rows.Err()
}
