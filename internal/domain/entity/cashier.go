package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la sesión de caja.
const CashierStatusOpen = "open"

// Cashier sesión de caja: monto inicial más el acumulado de las ventas
// liquidadas mientras estuvo abierta. Cerrar la caja elimina la sesión.
type Cashier struct {
	ID        string
	Status    string
	Amount    decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}
