package production

import (
	"context"
	"fmt"

	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/ledger"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

// ReversalUseCase al borrar definitivamente un producto o combo, devuelve a
// cada componente el stock que quedó amarrado en el compuesto.
type ReversalUseCase struct {
	txRunner  TxRunner
	stockRepo repository.StockRepository // atado al pool: lecturas previas a la tx
	keyring   *ledger.Keyring
}

// NewReversalUseCase construye el caso de uso.
func NewReversalUseCase(txRunner TxRunner, stockRepo repository.StockRepository, keyring *ledger.Keyring) *ReversalUseCase {
	return &ReversalUseCase{txRunner: txRunner, stockRepo: stockRepo, keyring: keyring}
}

// ReverseOnDelete devuelve a cada componente con seguimiento de stock
// cantidadPorUnidad × stockDelCompuesto unidades y elimina el compuesto, todo
// en una transacción: o el borrado limpia completo, o no pasa nada.
//
// Una referencia de componente inexistente es fatal para el borrado entero
// (domain.ErrReferenceNotFound): la receta se asume internamente consistente.
func (uc *ReversalUseCase) ReverseOnDelete(ctx context.Context, ref entity.Ref) (*entity.StockRecord, error) {
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

	var deleted *entity.StockRecord
	err = uc.txRunner.RunStock(ctx, func(stockRepo repository.StockRepository) error {
		composite, err := stockRepo.GetForUpdate(ctx, ref)
		if err != nil {
			return err
		}
		if composite == nil {
			return fmt.Errorf("%w: %s %s", domain.ErrNotFound, ref.Kind, ref.ID)
		}
		recipe, err := stockRepo.Composition(ctx, ref)
		if err != nil {
			return err
		}

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
			returned := c.Required * composite.Stock
			if err := stockRepo.UpdateStock(ctx, compRef, rec.Stock+returned); err != nil {
				return err
			}
		}

		if err := stockRepo.Delete(ctx, ref); err != nil {
			return err
		}
		deleted = composite
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (uc *ReversalUseCase) cascadeIDs(ctx context.Context, ref entity.Ref) ([]string, error) {
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
