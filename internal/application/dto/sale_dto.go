package dto

import (
	"github.com/shopspring/decimal"
)

// OrderLineRequest una línea de la orden enviada por el terminal: una unidad vendida.
type OrderLineRequest struct {
	ID               string          `json:"id"`
	Kind             string          `json:"kind"` // supply | product | combo
	Name             string          `json:"name"`
	Price            decimal.Decimal `json:"price"`
	OnDemandSupplies []string        `json:"on_demand_supplies,omitempty"`
}

// PaymentInfoRequest datos del pago de la orden.
type PaymentInfoRequest struct {
	Type           string          `json:"type"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	Change         decimal.Decimal `json:"change"`
	Total          decimal.Decimal `json:"total"`
}

// GenerateOrderRequest cuerpo de POST /api/sale/order.
type GenerateOrderRequest struct {
	Orders      []OrderLineRequest `json:"orders"`
	PaymentInfo PaymentInfoRequest `json:"payment_info"`
	Seller      SellerRequest      `json:"seller"`
}

// SellerRequest vendedor que genera la orden.
type SellerRequest struct {
	Name string `json:"name"`
}

// SaleDTO registro consolidado de un día para la respuesta de la API.
type SaleDTO struct {
	ID         string          `json:"id"`
	Day        string          `json:"day"`
	Total      decimal.Decimal `json:"total"`
	BestSeller BestSellerDTO   `json:"most_sold_item"`
}

// BestSellerDTO instantánea del artículo más vendido.
type BestSellerDTO struct {
	RefID    string `json:"ref_id"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}
