package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/punto-venta-api/internal/application/dto"
	"github.com/jhoicas/punto-venta-api/internal/application/production"
	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
)

// StockHandler maneja producción/restock de compuestos y la reversión de
// stock al eliminarlos (protegido, solo admin).
type StockHandler struct {
	adjust   *production.AdjustCompositeUseCase
	reversal *production.ReversalUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(adjust *production.AdjustCompositeUseCase, reversal *production.ReversalUseCase) *StockHandler {
	return &StockHandler{adjust: adjust, reversal: reversal}
}

// AdjustProductStock godoc
// @Summary      Producir o devolver unidades de un producto
// @Description  Delta positivo consume insumos de la receta; delta negativo los devuelve.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del producto"
// @Param        body  body  dto.AdjustStockRequest  true  "unidades a producir (+) o devolver (-)"
// @Success      200   {object}  entity.StockRecord
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/products/{id}/stock [patch]
func (h *StockHandler) AdjustProductStock(c *fiber.Ctx) error {
	return h.adjustStock(c, entity.KindProduct)
}

// AdjustComboStock godoc
// @Summary      Armar o desarmar unidades de un combo
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del combo"
// @Param        body  body  dto.AdjustStockRequest  true  "unidades a armar (+) o desarmar (-)"
// @Success      200   {object}  entity.StockRecord
// @Failure      400   {object}  map[string]interface{}
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/catalog/combos/{id}/stock [patch]
func (h *StockHandler) AdjustComboStock(c *fiber.Ctx) error {
	return h.adjustStock(c, entity.KindCombo)
}

func (h *StockHandler) adjustStock(c *fiber.Ctx, kind entity.Kind) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ref := entity.Ref{ID: c.Params("id"), Kind: kind}
	record, err := h.adjust.AdjustCompositeStock(c.Context(), ref, in.Delta)
	if err != nil {
		var shortages production.ShortageError
		if errors.As(err, &shortages) {
			// Todos los faltantes juntos; nada se descontó.
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"code":     "INSUFFICIENT_COMPONENTS",
				"messages": shortages.Messages(),
			})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrReferenceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(record)
}

// DeleteProduct godoc
// @Summary      Eliminar un producto devolviendo su stock a los insumos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  entity.StockRecord
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/products/{id} [delete]
func (h *StockHandler) DeleteProduct(c *fiber.Ctx) error {
	return h.deleteComposite(c, entity.KindProduct)
}

// DeleteCombo godoc
// @Summary      Eliminar un combo devolviendo su stock a los productos
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del combo"
// @Success      200  {object}  entity.StockRecord
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/catalog/combos/{id} [delete]
func (h *StockHandler) DeleteCombo(c *fiber.Ctx) error {
	return h.deleteComposite(c, entity.KindCombo)
}

func (h *StockHandler) deleteComposite(c *fiber.Ctx, kind entity.Kind) error {
	ref := entity.Ref{ID: c.Params("id"), Kind: kind}
	record, err := h.reversal.ReverseOnDelete(c.Context(), ref)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrReferenceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{"message": "eliminado con stock revertido", "record": record})
}
