package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/punto-venta-api/internal/application/checkout"
	"github.com/jhoicas/punto-venta-api/internal/application/consolidation"
	"github.com/jhoicas/punto-venta-api/internal/application/dashboard"
	"github.com/jhoicas/punto-venta-api/internal/application/dto"
	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
)

// SaleHandler maneja las peticiones HTTP del flujo de ventas: liquidar
// órdenes, consolidar días y servir el dashboard.
type SaleHandler struct {
	settle      *checkout.SettleOrderUseCase
	consolidate *consolidation.ConsolidateUseCase
	report      *dashboard.ReportUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(
	settle *checkout.SettleOrderUseCase,
	consolidate *consolidation.ConsolidateUseCase,
	report *dashboard.ReportUseCase,
) *SaleHandler {
	return &SaleHandler{settle: settle, consolidate: consolidate, report: report}
}

// CreateOrder godoc
// @Summary      Generar y liquidar una orden
// @Tags         sale
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.GenerateOrderRequest  true  "líneas vendidas, pago y vendedor"
// @Success      201   {object}  entity.Order
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sale/order [post]
func (h *SaleHandler) CreateOrder(c *fiber.Ctx) error {
	var in dto.GenerateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Seller.Name == "" {
		in.Seller.Name = GetName(c)
	}
	order, err := h.settle.SettleOrder(c.Context(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrReferenceNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
		}
		if errors.Is(err, domain.ErrInsufficientStock) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// Consolidate godoc
// @Summary      Consolidar las órdenes pendientes por día
// @Tags         sale
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sale/consolidate [post]
func (h *SaleHandler) Consolidate(c *fiber.Ctx) error {
	sales, err := h.consolidate.Run(c.Context())
	if err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONSOLIDATION_ACTIVE", Message: "ya hay una consolidación en curso"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"consolidated_days": len(sales),
		"sales":             toSaleDTOs(sales),
	})
}

// Dashboard godoc
// @Summary      Serie de revenue y artículo más frecuente de la ventana
// @Tags         sale
// @Security     Bearer
// @Produce      json
// @Param        type  path  string  true  "day | week | month"
// @Success      200  {object}  dto.DashboardReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/sale/dashboard/{type} [get]
func (h *SaleHandler) Dashboard(c *fiber.Ctx) error {
	report, err := h.report.GetWindowedReport(c.Context(), c.Params("type"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidWindow) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_WINDOW", Message: "tipo de ventana inválido: use day, week o month"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(report)
}

func toSaleDTOs(sales []*entity.Sale) []dto.SaleDTO {
	out := make([]dto.SaleDTO, 0, len(sales))
	for _, s := range sales {
		out = append(out, dto.SaleDTO{
			ID:    s.ID,
			Day:   s.Day,
			Total: s.Total,
			BestSeller: dto.BestSellerDTO{
				RefID:    s.BestSeller.RefID,
				Kind:     string(s.BestSeller.Kind),
				Name:     s.BestSeller.Name,
				ImageURL: s.BestSeller.ImageURL,
			},
		})
	}
	return out
}
