package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste el registro consolidado del día. La constraint única sobre
// day respalda la invariante de un registro por día calendario.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	best, err := json.Marshal(sale.BestSeller)
	if err != nil {
		return fmt.Errorf("encode best seller: %w", err)
	}
	query := `
		INSERT INTO sales (id, day, total, best_seller, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err = r.q.Exec(ctx, query, sale.ID, sale.Day, sale.Total, best, sale.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: el día %s ya está consolidado", domain.ErrConflict, sale.Day)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// FindByCreatedRange devuelve las ventas consolidadas creadas en [start, end],
// ordenadas por fecha de creación ascendente.
func (r *SaleRepo) FindByCreatedRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT id, day, total, best_seller, created_at
		FROM sales
		WHERE created_at >= $1 AND created_at <= $2
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("find sales by range: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var best []byte
		if err := rows.Scan(&s.ID, &s.Day, &s.Total, &best, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if len(best) > 0 {
			if err := json.Unmarshal(best, &s.BestSeller); err != nil {
				return nil, fmt.Errorf("decode best seller: %w", err)
			}
		}
		sales = append(sales, &s)
	}
	return sales, rows.Err()
}
