package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación de OrderRepository (usable con pool o tx).
// Las líneas y el pago viven en columnas jsonb.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la orden liquidada.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	items, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}
	payment, err := json.Marshal(order.PaymentInfo)
	if err != nil {
		return fmt.Errorf("encode payment info: %w", err)
	}
	query := `
		INSERT INTO orders (id, items, payment_info, seller, is_consolidated, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.q.Exec(ctx, query,
		order.ID, items, payment, order.Seller, order.IsConsolidated, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// GroupUnconsolidatedByDay agrupa las órdenes sin consolidar por día calendario
// (YYYY-MM-DD en UTC), preservando el orden de creación dentro de cada grupo.
func (r *OrderRepo) GroupUnconsolidatedByDay(ctx context.Context) ([]entity.DayGroup, error) {
	query := `
		SELECT id, items, payment_info, seller, is_consolidated, created_at, updated_at,
		       to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD') AS day
		FROM orders
		WHERE is_consolidated = false
		ORDER BY created_at`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("group unconsolidated orders: %w", err)
	}
	defer rows.Close()

	var groups []entity.DayGroup
	index := make(map[string]int)
	for rows.Next() {
		var o entity.Order
		var items, payment []byte
		var day string
		if err := rows.Scan(&o.ID, &items, &payment, &o.Seller, &o.IsConsolidated, &o.CreatedAt, &o.UpdatedAt, &day); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		if len(items) > 0 {
			if err := json.Unmarshal(items, &o.Items); err != nil {
				return nil, fmt.Errorf("decode items: %w", err)
			}
		}
		if len(payment) > 0 {
			if err := json.Unmarshal(payment, &o.PaymentInfo); err != nil {
				return nil, fmt.Errorf("decode payment info: %w", err)
			}
		}

		i, ok := index[day]
		if !ok {
			i = len(groups)
			index[day] = i
			groups = append(groups, entity.DayGroup{Day: day})
		}
		groups[i].Orders = append(groups[i].Orders, &o)
	}
	return groups, rows.Err()
}

// MarkConsolidated marca las órdenes indicadas para excluirlas de pasadas futuras.
func (r *OrderRepo) MarkConsolidated(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	query := `UPDATE orders SET is_consolidated = true, updated_at = now() WHERE id = ANY($1)`
	if _, err := r.q.Exec(ctx, query, ids); err != nil {
		return fmt.Errorf("mark orders consolidated: %w", err)
	}
	return nil
}
