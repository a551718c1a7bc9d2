package repository

import (
	"context"

	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
)

// StockRepository acceso uniforme al stock de insumos, productos y combos.
// Usado dentro de transacciones para garantizar consistencia: las
// implementaciones SQL bloquean la fila en GetForUpdate (SELECT FOR UPDATE).
type StockRepository interface {
	// GetForUpdate devuelve el registro de stock de la entidad, bloqueando la
	// fila si el backend lo soporta. (nil, nil) si la entidad no existe.
	GetForUpdate(ctx context.Context, ref entity.Ref) (*entity.StockRecord, error)

	// UpdateStock persiste el nuevo stock de exactamente una entidad.
	UpdateStock(ctx context.Context, ref entity.Ref, stock int64) error

	// Composition devuelve la receta ordenada de la entidad (vacía para insumos).
	Composition(ctx context.Context, ref entity.Ref) ([]entity.Component, error)

	// Delete elimina la entidad (usado por la reversión de stock al borrar compuestos).
	Delete(ctx context.Context, ref entity.Ref) error
}
