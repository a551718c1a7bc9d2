package production

import (
	"context"

	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

// TxRunner ejecuta una cascada de producción o reversión dentro de una
// transacción de BD, pasando el repositorio de stock atado a esa tx.
// El rollback convierte la validación por etapas en una garantía real de
// no-mutación-parcial.
type TxRunner interface {
	RunStock(ctx context.Context, fn func(stockRepo repository.StockRepository) error) error
}
