// Package production contiene los casos de uso que mueven stock entre un
// compuesto (producto o combo) y sus componentes: producción/restock según la
// receta y reversión de stock al borrar el compuesto.
package production

import (
	"context"
	"fmt"

	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/ledger"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

// AdjustCompositeUseCase produce o devuelve stock de un compuesto consumiendo
// o retornando stock de sus componentes según la receta.
type AdjustCompositeUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository // atado al pool: lecturas previas a la tx
	keyring   *ledger.Keyring
}

// NewAdjustCompositeUseCase construye el caso de uso.
func NewAdjustCompositeUseCase(txRunner TxRunner, stockRepo repository.StockRepository, keyring *ledger.Keyring) *AdjustCompositeUseCase {
	return &AdjustCompositeUseCase{txRunner: txRunner, stockRepo: stockRepo, keyring: keyring}
}

type stagedUpdate struct {
	ref  entity.Ref
	next int64
}

// AdjustCompositeStock cambia el stock propio del compuesto en delta unidades,
// consumiendo (delta > 0) o devolviendo (delta < 0) stock de cada componente:
// requerido = cantidadPorUnidad × delta.
//
// La cascada es por etapas: se valida cada componente acumulando todos los
// faltantes; con cualquier faltante la llamada completa se rechaza con
// ShortageError y ningún stock se muta. Sin faltantes se aplican todos los
// deltas y el compuesto queda en stock += delta, en una sola transacción.
func (uc *AdjustCompositeUseCase) AdjustCompositeStock(ctx context.Context, ref entity.Ref, delta int64) (*entity.StockRecord, error) {
	componentKind, err := componentKindFor(ref.Kind)
	if err != nil {
		return nil, err
	}

	ids, err := uc.cascadeIDs(ctx, ref)
	if err != nil {
		return nil, err
	}
	unlock := uc.keyring.LockAll(ids...)
	defer unlock()

	var updated *entity.StockRecord
	err = uc.txRunner.RunStock(ctx, func(stockRepo repository.StockRepository) error {
		composite, err := stockRepo.GetForUpdate(ctx, ref)
		if err != nil {
			return err
		}
		if composite == nil {
			return fmt.Errorf("%w: %s %s", domain.ErrNotFound, ref.Kind, ref.ID)
		}
		if !composite.TracksStock {
			// Entidad sin seguimiento: su stock queda fijo en 0 y la receta
			// no se consume, igual que el ajuste unitario en el ledger.
			updated = composite
			return nil
		}
		recipe, err := stockRepo.Composition(ctx, ref)
		if err != nil {
			return err
		}

		var shortages ShortageError
		if composite.Stock+delta < 0 {
			// Devolver más unidades de las que hay dejaría el compuesto negativo.
			shortages = append(shortages, Shortage{
				Component: composite.Name,
				Available: composite.Stock,
				Required:  delta,
			})
		}
		staged := make([]stagedUpdate, 0, len(recipe))
		for _, c := range recipe {
			compRef := entity.Ref{ID: c.RefID, Kind: componentKind}
			rec, err := stockRepo.GetForUpdate(ctx, compRef)
			if err != nil {
				return err
			}
			if rec == nil {
				return fmt.Errorf("%w: componente %s", domain.ErrReferenceNotFound, c.RefID)
			}
			if !rec.TracksStock {
				continue
			}
			required := c.Required * delta
			next := rec.Stock - required
			if next < 0 {
				shortages = append(shortages, Shortage{
					Component: rec.Name,
					Available: rec.Stock,
					Required:  required,
				})
				continue
			}
			staged = append(staged, stagedUpdate{ref: compRef, next: next})
		}

		if len(shortages) > 0 {
			// Rechazo total: el rollback descarta cualquier bloqueo tomado y
			// ningún componente ni el compuesto quedan modificados.
			return shortages
		}

		for _, s := range staged {
			if err := stockRepo.UpdateStock(ctx, s.ref, s.next); err != nil {
				return err
			}
		}
		composite.Stock += delta
		if err := stockRepo.UpdateStock(ctx, ref, composite.Stock); err != nil {
			return err
		}
		updated = composite
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// cascadeIDs ids del compuesto y de todos sus componentes, para la arena de locks.
func (uc *AdjustCompositeUseCase) cascadeIDs(ctx context.Context, ref entity.Ref) ([]string, error) {
	recipe, err := uc.stockRepo.Composition(ctx, ref)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(recipe)+1)
	ids = append(ids, ref.ID)
	for _, c := range recipe {
		ids = append(ids, c.RefID)
	}
	return ids, nil
}

// componentKindFor nivel de los componentes de un compuesto: los productos se
// arman de insumos, los combos de productos.
func componentKindFor(kind entity.Kind) (entity.Kind, error) {
	switch kind {
	case entity.KindProduct:
		return entity.KindSupply, nil
	case entity.KindCombo:
		return entity.KindProduct, nil
	default:
		return "", fmt.Errorf("%w: %q no es una entidad compuesta", domain.ErrInvalidInput, kind)
	}
}
