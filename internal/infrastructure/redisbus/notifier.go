// Package redisbus implementa sobre Redis el canal de notificaciones hacia
// los terminales (pub/sub) y el run-lock de la consolidación (redislock).
package redisbus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/punto-venta-api/internal/application/ports"
)

// Canales pub/sub; espejo de los eventos del frontend de los terminales.
const (
	channelPaymentInfo  = "pos:paymentInfo"
	channelOpenCashier  = "pos:openCashier"
	channelCloseCashier = "pos:closeCashier"
	channelCloseSession = "pos:closeSession"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier publica los eventos por Redis pub/sub: one-way, sin orden
// garantizado ni acuse. Los suscriptores son los gateways de los terminales.
type Notifier struct {
	client *redis.Client
}

// NewNotifier construye el notifier sobre el cliente dado.
func NewNotifier(client *redis.Client) *Notifier {
	return &Notifier{client: client}
}

// NewClient crea el cliente Redis compartido por notifier y run-lock.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// PublishPayment empuja los datos del pago a todos los terminales conectados.
func (n *Notifier) PublishPayment(ctx context.Context, notice ports.PaymentNotice) error {
	payload, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("encode payment notice: %w", err)
	}
	return n.client.Publish(ctx, channelPaymentInfo, payload).Err()
}

// OpenCashiers avisa que la caja se abrió con el monto inicial dado.
func (n *Notifier) OpenCashiers(ctx context.Context, initialAmount decimal.Decimal) error {
	payload, err := json.Marshal(map[string]decimal.Decimal{"initial_amount": initialAmount})
	if err != nil {
		return fmt.Errorf("encode open cashier notice: %w", err)
	}
	return n.client.Publish(ctx, channelOpenCashier, payload).Err()
}

// CloseCashiers avisa que la caja se cerró.
func (n *Notifier) CloseCashiers(ctx context.Context) error {
	return n.client.Publish(ctx, channelCloseCashier, "true").Err()
}

// CloseSessions pide a los terminales cerrar la sesión de usuario.
func (n *Notifier) CloseSessions(ctx context.Context) error {
	return n.client.Publish(ctx, channelCloseSession, "true").Err()
}
