package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/punto-venta-api/internal/application/cashier"
	"github.com/jhoicas/punto-venta-api/internal/application/dto"
	"github.com/jhoicas/punto-venta-api/internal/domain"
)

// CashierHandler maneja la apertura y el cierre de la sesión de caja (solo admin).
type CashierHandler struct {
	uc *cashier.UseCase
}

// NewCashierHandler construye el handler.
func NewCashierHandler(uc *cashier.UseCase) *CashierHandler {
	return &CashierHandler{uc: uc}
}

// Open godoc
// @Summary      Abrir la sesión de caja
// @Tags         cashier
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenCashierRequest  true  "monto inicial"
// @Success      201   {object}  entity.Cashier
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cashier/open [post]
func (h *CashierHandler) Open(c *fiber.Ctx) error {
	var in dto.OpenCashierRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	opened, err := h.uc.Open(c.Context(), in.InitialAmount)
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CASHIER_OPEN", Message: "ya hay una caja abierta"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(opened)
}

// Close godoc
// @Summary      Cerrar la sesión de caja
// @Description  Elimina la sesión y avisa a los terminales cerrar caja y sesión.
// @Tags         cashier
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la caja"
// @Success      200  {object}  entity.Cashier
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cashier/{id} [delete]
func (h *CashierHandler) Close(c *fiber.Ctx) error {
	closed, err := h.uc.Close(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "caja no encontrada"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(closed)
}
