package checkout

import (
	"context"

	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

// TxRunner ejecuta la liquidación completa de una orden dentro de una
// transacción de BD, pasando repositorios atados a esa tx. Garantiza que la
// cascada de descuentos y el insert de la orden son todo-o-nada.
type TxRunner interface {
	RunOrder(ctx context.Context, fn func(
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error) error
}
