package repository

import (
	"context"

	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
)

// OrderRepository persistencia de órdenes liquidadas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error

	// GroupUnconsolidatedByDay agrupa las órdenes con is_consolidated = false
	// por día calendario (YYYY-MM-DD en UTC), ordenadas por fecha de creación
	// dentro de cada grupo.
	GroupUnconsolidatedByDay(ctx context.Context) ([]entity.DayGroup, error)

	// MarkConsolidated marca las órdenes indicadas para excluirlas de pasadas futuras.
	MarkConsolidated(ctx context.Context, ids []string) error
}
