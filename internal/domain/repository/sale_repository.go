package repository

import (
	"context"
	"time"

	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
)

// SaleRepository persistencia de los registros consolidados por día.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error

	// FindByCreatedRange devuelve las ventas consolidadas creadas dentro del
	// rango [start, end], ordenadas por fecha de creación ascendente.
	FindByCreatedRange(ctx context.Context, start, end time.Time) ([]*entity.Sale, error)
}
