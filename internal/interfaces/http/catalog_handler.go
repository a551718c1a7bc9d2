package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/punto-venta-api/internal/application/catalog"
	"github.com/jhoicas/punto-venta-api/internal/application/dto"
)

// CatalogHandler sirve el menú del terminal: productos con sus extras e
// insumos resueltos, y combos con su composición.
type CatalogHandler struct {
	menu *catalog.MenuUseCase
}

// NewCatalogHandler construye el handler.
func NewCatalogHandler(menu *catalog.MenuUseCase) *CatalogHandler {
	return &CatalogHandler{menu: menu}
}

// ListProducts godoc
// @Summary      Menú de productos con extras y disponibilidad
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ProductMenuDTO
// @Router       /api/catalog/products [get]
func (h *CatalogHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.menu.ListProductsWithExtras(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(products)
}

// ListCombos godoc
// @Summary      Menú de combos con disponibilidad
// @Tags         catalog
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ComboMenuDTO
// @Router       /api/catalog/combos [get]
func (h *CatalogHandler) ListCombos(c *fiber.Ctx) error {
	combos, err := h.menu.ListCombos(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(combos)
}
