// Package checkout contiene el caso de uso de liquidación de órdenes: el
// descuento de stock de cada unidad vendida a través de los tres niveles
// (insumos, productos, combos).
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/punto-venta-api/internal/application/dto"
	"github.com/jhoicas/punto-venta-api/internal/application/ports"
	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/ledger"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
	"github.com/jhoicas/punto-venta-api/pkg/logger"
)

// SettleOrderUseCase liquida órdenes de venta: descuenta el stock de cada
// línea, persiste la orden y después, en modo best-effort, suma el total a la caja
// abierta y publica la notificación de pago.
type SettleOrderUseCase struct {
	txRunner    TxRunner
	cashierRepo repository.CashierRepository
	notifier    ports.Notifier
	keyring     *ledger.Keyring
	log         *logger.Logger
}

// NewSettleOrderUseCase construye el caso de uso.
func NewSettleOrderUseCase(
	txRunner TxRunner,
	cashierRepo repository.CashierRepository,
	notifier ports.Notifier,
	keyring *ledger.Keyring,
	log *logger.Logger,
) *SettleOrderUseCase {
	return &SettleOrderUseCase{
		txRunner:    txRunner,
		cashierRepo: cashierRepo,
		notifier:    notifier,
		keyring:     keyring,
		log:         log,
	}
}

// SettleOrder liquida la orden completa de forma atómica: cualquier ajuste que
// dejaría negativa una entidad con seguimiento de stock falla la orden entera
// antes de persistirla (la tx hace rollback de los descuentos previos).
//
// Solo cuando todas las líneas liquidaron se persiste la orden; después se
// incrementa el acumulado de la caja abierta (si hay) y se despacha la
// notificación de pago. Esos dos pasos son fire-and-forget: sus fallos se
// registran y jamás fallan la orden.
func (uc *SettleOrderUseCase) SettleOrder(ctx context.Context, input dto.GenerateOrderRequest) (*entity.Order, error) {
	order, err := buildOrder(input)
	if err != nil {
		return nil, err
	}

	// Serializar en el proceso las escrituras sobre las entidades involucradas
	unlock := uc.keyring.LockAll(lockIDs(order.Items)...)
	defer unlock()

	err = uc.txRunner.RunOrder(ctx, func(
		stockRepo repository.StockRepository,
		orderRepo repository.OrderRepository,
	) error {
		for _, item := range order.Items {
			if err := settleLine(ctx, stockRepo, item); err != nil {
				return err
			}
		}
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrReferenceNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrOrderProcessing, err)
	}

	uc.afterSettlement(ctx, order)
	return order, nil
}

// settleLine descuenta una unidad de la entidad vendida y, para productos
// armados al momento, una unidad de cada insumo declarado en la línea.
func settleLine(ctx context.Context, stockRepo repository.StockRepository, item entity.LineItem) error {
	ref := entity.Ref{ID: item.RefID, Kind: item.Kind}
	if err := ledger.Adjust(ctx, stockRepo, ref, -1); err != nil {
		return err
	}
	if item.Kind != entity.KindProduct {
		return nil
	}
	for _, supplyID := range item.OnDemandSupplies {
		supplyRef := entity.Ref{ID: supplyID, Kind: entity.KindSupply}
		if err := ledger.Adjust(ctx, stockRepo, supplyRef, -1); err != nil {
			return err
		}
	}
	return nil
}

// afterSettlement suma el total a la caja abierta y publica la notificación de
// pago. Best-effort: los errores se registran y se absorben.
func (uc *SettleOrderUseCase) afterSettlement(ctx context.Context, order *entity.Order) {
	currentAmount := order.PaymentInfo.Total

	cashier, err := uc.cashierRepo.FindOpen(ctx)
	switch {
	case err != nil:
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("consultar caja abierta")
	case cashier != nil:
		if err := uc.cashierRepo.IncrementAmount(ctx, cashier.ID, order.PaymentInfo.Total); err != nil {
			uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("actualizar monto de la caja")
		} else {
			currentAmount = cashier.Amount.Add(order.PaymentInfo.Total)
		}
	}

	notice := ports.PaymentNotice{
		OrderNumber:    order.ID,
		PaymentMethod:  order.PaymentInfo.Type,
		AmountReceived: order.PaymentInfo.AmountReceived,
		Change:         order.PaymentInfo.Change,
		Total:          order.PaymentInfo.Total,
		Seller:         order.Seller,
		Date:           order.CreatedAt,
		CurrentAmount:  currentAmount,
	}
	if err := uc.notifier.PublishPayment(ctx, notice); err != nil {
		uc.log.Warn().Err(err).Str("order_id", order.ID).Msg("notificación de pago no entregada")
	}
}

// buildOrder valida la entrada y arma la orden a liquidar. Errores de
// validación salen antes de cualquier mutación.
func buildOrder(input dto.GenerateOrderRequest) (*entity.Order, error) {
	if len(input.Orders) == 0 || input.Seller.Name == "" || input.PaymentInfo.Type == "" {
		return nil, fmt.Errorf("%w: faltan órdenes, pago o vendedor", domain.ErrInvalidInput)
	}

	items := make([]entity.LineItem, 0, len(input.Orders))
	for _, line := range input.Orders {
		kind := entity.Kind(line.Kind)
		switch kind {
		case entity.KindSupply, entity.KindProduct, entity.KindCombo:
		default:
			return nil, fmt.Errorf("%w: kind desconocido %q", domain.ErrInvalidInput, line.Kind)
		}
		if line.ID == "" {
			return nil, fmt.Errorf("%w: línea sin id", domain.ErrInvalidInput)
		}
		items = append(items, entity.LineItem{
			RefID:            line.ID,
			Kind:             kind,
			Name:             line.Name,
			Price:            line.Price,
			OnDemandSupplies: line.OnDemandSupplies,
		})
	}

	now := time.Now().UTC()
	return &entity.Order{
		ID:    uuid.New().String(),
		Items: items,
		PaymentInfo: entity.PaymentInfo{
			Type:           input.PaymentInfo.Type,
			AmountReceived: input.PaymentInfo.AmountReceived,
			Change:         input.PaymentInfo.Change,
			Total:          input.PaymentInfo.Total,
		},
		Seller:    input.Seller.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// lockIDs ids de todas las entidades que la orden muta.
func lockIDs(items []entity.LineItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.RefID)
		ids = append(ids, item.OnDemandSupplies...)
	}
	return ids
}
