package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product entidad compuesta de primer nivel: mantiene stock propio más una
// receta ordenada de insumos. El stock se produce consumiendo insumos
// (ver producción) y se vende por unidades.
type Product struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Stock       int64
	TracksStock bool
	Supplies    []Component // receta: insumos requeridos por unidad
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Record devuelve la vista uniforme para el libro de stock.
func (p *Product) Record() *StockRecord {
	return &StockRecord{
		Ref:         Ref{ID: p.ID, Kind: KindProduct},
		Name:        p.Name,
		Stock:       p.Stock,
		TracksStock: p.TracksStock,
	}
}
