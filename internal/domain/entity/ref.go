package entity

// Kind distingue los tres niveles de inventario: insumo, producto y combo.
type Kind string

const (
	KindSupply  Kind = "supply"
	KindProduct Kind = "product"
	KindCombo   Kind = "combo"
)

// Ref identifica una entidad con stock propio en cualquiera de los tres niveles.
type Ref struct {
	ID   string
	Kind Kind
}

// Component una entrada de la receta de un producto o combo: cuántas unidades
// del componente consume cada unidad del compuesto.
type Component struct {
	RefID    string `json:"ref_id"`
	Name     string `json:"name"`
	Required int64  `json:"required"`
}

// StockRecord vista uniforme del stock de cualquier entidad (insumo, producto o combo).
// Las entidades sin seguimiento de stock quedan fijadas en stock = 0.
type StockRecord struct {
	Ref         Ref
	Name        string
	Stock       int64
	TracksStock bool
}
