// Package ledger implementa el libro de stock: lectura/escritura autoritativa
// del stock en mano de cualquier entidad (insumo, producto o combo), honrando
// la exención de seguimiento por entidad.
//
// Cada Adjust exitoso persiste el nuevo stock de exactamente una entidad; las
// cascadas entre niveles las orquestan siempre los casos de uso, nunca el
// libro, para que cada escritura sea testeable de forma aislada.
package ledger

import (
	"context"
	"fmt"

	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

// Adjust aplica delta al stock en mano de la entidad referenciada.
//
// Reglas:
//   - La entidad no existe        → domain.ErrReferenceNotFound.
//   - La entidad no lleva stock   → éxito sin efecto (stock fijado en 0).
//   - El resultado sería negativo → domain.ErrInsufficientStock, sin mutación.
func Adjust(ctx context.Context, repo repository.StockRepository, ref entity.Ref, delta int64) error {
	rec, err := repo.GetForUpdate(ctx, ref)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("%w: %s %s", domain.ErrReferenceNotFound, ref.Kind, ref.ID)
	}
	if !rec.TracksStock {
		return nil
	}
	next := rec.Stock + delta
	if next < 0 {
		return fmt.Errorf("%w: %s (disponible %d, requerido %d)",
			domain.ErrInsufficientStock, rec.Name, rec.Stock, -delta)
	}
	return repo.UpdateStock(ctx, ref, next)
}

// Composition devuelve la receta ordenada de la entidad (vacía para insumos).
func Composition(ctx context.Context, repo repository.StockRepository, ref entity.Ref) ([]entity.Component, error) {
	if ref.Kind == entity.KindSupply {
		return nil, nil
	}
	return repo.Composition(ctx, ref)
}
