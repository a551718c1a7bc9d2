package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// BestSeller instantánea del artículo más vendido de un día consolidado.
type BestSeller struct {
	RefID    string `json:"ref_id"`
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	ImageURL string `json:"image_url,omitempty"`
}

// Sale registro agregado de un día de ventas. Se crea una sola vez por día
// calendario y no se muta después.
type Sale struct {
	ID         string
	Day        string // YYYY-MM-DD (UTC)
	Total      decimal.Decimal
	BestSeller BestSeller
	CreatedAt  time.Time
}
