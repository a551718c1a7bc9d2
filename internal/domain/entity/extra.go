package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Extra acompañamiento asociativo (salsas, adiciones): referencia productos
// pero no tiene semántica de stock, queda fuera del libro de inventario.
type Extra struct {
	ID        string
	Name      string
	Price     decimal.Decimal
	Products  []string // ids de productos relacionados
	CreatedAt time.Time
	UpdatedAt time.Time
}
