// Package catalog contiene las lecturas del menú para los terminales de
// venta: productos con sus extras relacionados y precios de insumos, y combos
// con su bandera de disponibilidad.
package catalog

import (
	"context"

	"github.com/jhoicas/punto-venta-api/internal/application/dto"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

// MenuUseCase arma las vistas de menú del terminal. Solo lecturas.
type MenuUseCase struct {
	productRepo repository.ProductRepository
	comboRepo   repository.ComboRepository
	supplyRepo  repository.SupplyRepository
	extraRepo   repository.ExtraRepository
}

// NewMenuUseCase construye el caso de uso.
func NewMenuUseCase(
	productRepo repository.ProductRepository,
	comboRepo repository.ComboRepository,
	supplyRepo repository.SupplyRepository,
	extraRepo repository.ExtraRepository,
) *MenuUseCase {
	return &MenuUseCase{
		productRepo: productRepo,
		comboRepo:   comboRepo,
		supplyRepo:  supplyRepo,
		extraRepo:   extraRepo,
	}
}

// ListProductsWithExtras productos del menú con extras relacionados, insumos
// con precio resuelto y disponibilidad (stock > 0).
func (uc *MenuUseCase) ListProductsWithExtras(ctx context.Context) ([]dto.ProductMenuDTO, error) {
	products, err := uc.productRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ProductMenuDTO, 0, len(products))
	for _, product := range products {
		extras, err := uc.extraRepo.FindByProductID(ctx, product.ID)
		if err != nil {
			return nil, err
		}
		relatedExtras := make([]dto.RelatedExtraDTO, 0, len(extras))
		for _, extra := range extras {
			relatedExtras = append(relatedExtras, dto.RelatedExtraDTO{
				ID:    extra.ID,
				Name:  extra.Name,
				Price: extra.Price,
			})
		}

		supplies := make([]dto.ComponentDTO, 0, len(product.Supplies))
		for _, c := range product.Supplies {
			item := dto.ComponentDTO{RefID: c.RefID, Name: c.Name, Required: c.Required}
			if supply, err := uc.supplyRepo.GetByID(ctx, c.RefID); err == nil && supply != nil {
				price := supply.Price
				item.Price = &price
			}
			supplies = append(supplies, item)
		}

		result = append(result, dto.ProductMenuDTO{
			ID:          product.ID,
			Name:        product.Name,
			Price:       product.Price,
			ImageURL:    product.ImageURL,
			Stock:       product.Stock,
			IsAvailable: product.Stock > 0,
			Extras:      relatedExtras,
			Supplies:    supplies,
		})
	}
	return result, nil
}

// ListCombos combos del menú con disponibilidad (stock > 0).
func (uc *MenuUseCase) ListCombos(ctx context.Context) ([]dto.ComboMenuDTO, error) {
	combos, err := uc.comboRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.ComboMenuDTO, 0, len(combos))
	for _, combo := range combos {
		products := make([]dto.ComponentDTO, 0, len(combo.Products))
		for _, c := range combo.Products {
			products = append(products, dto.ComponentDTO{RefID: c.RefID, Name: c.Name, Required: c.Required})
		}
		result = append(result, dto.ComboMenuDTO{
			ID:          combo.ID,
			Name:        combo.Name,
			Price:       combo.Price,
			ImageURL:    combo.ImageURL,
			Stock:       combo.Stock,
			IsAvailable: combo.Stock > 0,
			Products:    products,
		})
	}
	return result, nil
}
