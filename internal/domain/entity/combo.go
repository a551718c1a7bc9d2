package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Combo entidad compuesta de segundo nivel: misma forma que Product pero su
// receta referencia productos en lugar de insumos.
type Combo struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Stock       int64
	TracksStock bool
	Products    []Component // receta: productos requeridos por unidad
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Record devuelve la vista uniforme para el libro de stock.
func (c *Combo) Record() *StockRecord {
	return &StockRecord{
		Ref:         Ref{ID: c.ID, Kind: KindCombo},
		Name:        c.Name,
		Stock:       c.Stock,
		TracksStock: c.TracksStock,
	}
}
