package repository

import (
	"context"

	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
)

// SupplyRepository lecturas de insumos para el catálogo y la consolidación.
type SupplyRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Supply, error)
	List(ctx context.Context) ([]*entity.Supply, error)
}

// ProductRepository lecturas de productos. Las escrituras CRUD viven fuera del
// motor; el stock se muta únicamente vía StockRepository.
type ProductRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
}

// ComboRepository lecturas de combos.
type ComboRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Combo, error)
	GetByName(ctx context.Context, name string) (*entity.Combo, error)
	List(ctx context.Context) ([]*entity.Combo, error)
}

// ExtraRepository lecturas de extras (asociativos, sin stock).
type ExtraRepository interface {
	FindByProductID(ctx context.Context, productID string) ([]*entity.Extra, error)
	List(ctx context.Context) ([]*entity.Extra, error)
}
