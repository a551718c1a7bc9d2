package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Supply insumo crudo (hoja del inventario): su stock se muta directamente,
// nunca se deriva de otra entidad.
type Supply struct {
	ID          string
	Name        string
	Price       decimal.Decimal
	Stock       int64
	TracksStock bool
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Record devuelve la vista uniforme para el libro de stock.
func (s *Supply) Record() *StockRecord {
	return &StockRecord{
		Ref:         Ref{ID: s.ID, Kind: KindSupply},
		Name:        s.Name,
		Stock:       s.Stock,
		TracksStock: s.TracksStock,
	}
}
