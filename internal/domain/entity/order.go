package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItem una línea de la orden: exactamente una unidad vendida.
// Para productos armados al momento (sin stock pre-producido), OnDemandSupplies
// lista los insumos que se consumen directamente al liquidar la línea.
type LineItem struct {
	RefID            string          `json:"ref_id"`
	Kind             Kind            `json:"kind"`
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	OnDemandSupplies []string        `json:"on_demand_supplies,omitempty"`
}

// PaymentInfo datos del pago de la orden.
type PaymentInfo struct {
	Type           string          `json:"type"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	Change         decimal.Decimal `json:"change"`
	Total          decimal.Decimal `json:"total"`
}

// Order orden liquidada. Inmutable tras la liquidación salvo IsConsolidated,
// que la consolidación diaria marca para excluirla de pasadas futuras.
type Order struct {
	ID             string
	Items          []LineItem
	PaymentInfo    PaymentInfo
	Seller         string
	IsConsolidated bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// DayGroup órdenes sin consolidar de un mismo día calendario (clave YYYY-MM-DD en UTC).
type DayGroup struct {
	Day    string
	Orders []*Order
}
