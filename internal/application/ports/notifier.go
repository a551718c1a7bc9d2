package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentNotice datos del pago que se empujan a los terminales conectados
// después de liquidar una orden.
type PaymentNotice struct {
	OrderNumber    string          `json:"order_number"`
	PaymentMethod  string          `json:"payment_method"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	Change         decimal.Decimal `json:"change"`
	Total          decimal.Decimal `json:"total"`
	Seller         string          `json:"seller"`
	Date           time.Time       `json:"date"`
	CurrentAmount  decimal.Decimal `json:"current_cashier_amount"`
}

// Notifier canal de notificaciones one-way hacia los terminales: best-effort,
// sin orden garantizado ni acuse. Sus fallos jamás fallan la operación que
// los origina; el caller los registra y los absorbe.
//
// Reemplaza el singleton socket global por un handle inyectado explícito.
type Notifier interface {
	PublishPayment(ctx context.Context, notice PaymentNotice) error

	// OpenCashiers avisa a todos los terminales que una caja se abrió con el
	// monto inicial dado (una sola caja por sesión, sin importar qué admin).
	OpenCashiers(ctx context.Context, initialAmount decimal.Decimal) error

	// CloseCashiers avisa a todos los terminales que la caja se cerró.
	CloseCashiers(ctx context.Context) error

	// CloseSessions pide a los terminales cerrar la sesión de usuario.
	CloseSessions(ctx context.Context) error
}
