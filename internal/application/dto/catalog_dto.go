package dto

import "github.com/shopspring/decimal"

// AdjustStockRequest cuerpo de los endpoints de producción/restock: cuántas
// unidades del compuesto producir (delta > 0) o devolver (delta < 0).
type AdjustStockRequest struct {
	Delta int64 `json:"delta"`
}

// ComponentDTO entrada de la receta con el precio del componente resuelto.
type ComponentDTO struct {
	RefID    string           `json:"ref_id"`
	Name     string           `json:"name"`
	Required int64            `json:"required_quantity"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

// RelatedExtraDTO extra relacionado con un producto del menú.
type RelatedExtraDTO struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// ProductMenuDTO producto del menú del terminal: extras relacionados,
// insumos con precio y bandera de disponibilidad.
type ProductMenuDTO struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Price       decimal.Decimal   `json:"price"`
	ImageURL    string            `json:"image_url"`
	Stock       int64             `json:"stock"`
	IsAvailable bool              `json:"is_available"`
	Extras      []RelatedExtraDTO `json:"related_extras"`
	Supplies    []ComponentDTO    `json:"supplies"`
}

// ComboMenuDTO combo del menú del terminal con bandera de disponibilidad.
type ComboMenuDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Stock       int64           `json:"stock"`
	IsAvailable bool            `json:"is_available"`
	Products    []ComponentDTO  `json:"products"`
}

// OpenCashierRequest cuerpo de POST /api/cashier/open.
type OpenCashierRequest struct {
	InitialAmount decimal.Decimal `json:"initial_amount"`
}
