package memory

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/punto-venta-api/internal/application/consolidation"
	"github.com/jhoicas/punto-venta-api/internal/application/ports"
	"github.com/jhoicas/punto-venta-api/internal/domain"
)

// Notifier captura los eventos publicados en vez de enviarlos a Redis. Sirve
// para desarrollo sin broker y para verificar notificaciones en los tests.
type Notifier struct {
	mu       sync.Mutex
	payments []ports.PaymentNotice
	opens    []decimal.Decimal
	closes   int
	sessions int
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier construye el notificador de captura.
func NewNotifier() *Notifier { return &Notifier{} }

// PublishPayment registra el aviso de pago.
func (n *Notifier) PublishPayment(ctx context.Context, notice ports.PaymentNotice) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payments = append(n.payments, notice)
	return nil
}

// OpenCashiers registra la apertura de caja.
func (n *Notifier) OpenCashiers(ctx context.Context, initialAmount decimal.Decimal) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.opens = append(n.opens, initialAmount)
	return nil
}

// CloseCashiers registra el cierre de caja.
func (n *Notifier) CloseCashiers(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.closes++
	return nil
}

// CloseSessions registra el cierre de sesiones de terminal.
func (n *Notifier) CloseSessions(ctx context.Context) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sessions++
	return nil
}

// Payments devuelve los avisos de pago capturados.
func (n *Notifier) Payments() []ports.PaymentNotice {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]ports.PaymentNotice(nil), n.payments...)
}

// Opens devuelve los montos iniciales de las aperturas capturadas.
func (n *Notifier) Opens() []decimal.Decimal {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]decimal.Decimal(nil), n.opens...)
}

// Closes devuelve cuántos cierres de caja se capturaron.
func (n *Notifier) Closes() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.closes
}

// Sessions devuelve cuántos cierres de sesión se capturaron.
func (n *Notifier) Sessions() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sessions
}

// RunLock candado de consolidación local al proceso, equivalente en memoria
// al lock distribuido de Redis.
type RunLock struct {
	mu sync.Mutex
}

var _ consolidation.RunLock = (*RunLock)(nil)

// NewRunLock construye el candado local.
func NewRunLock() *RunLock { return &RunLock{} }

// Obtain toma el candado o falla con ErrConflict si otra pasada está activa.
func (l *RunLock) Obtain(ctx context.Context) (func(), error) {
	if !l.mu.TryLock() {
		return nil, domain.ErrConflict
	}
	return l.mu.Unlock, nil
}
