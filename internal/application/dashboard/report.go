// Package dashboard contiene el agregador read-only sobre los registros
// consolidados, para las gráficas del panel de administración.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/punto-venta-api/internal/application/dto"
	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/domain/repository"
)

// Tipos de ventana soportados.
const (
	WindowDay   = "day"
	WindowWeek  = "week"
	WindowMonth = "month"
)

// ReportUseCase genera la serie de la gráfica y el artículo más frecuente
// para la ventana pedida. Solo lecturas; no muta nada.
type ReportUseCase struct {
	saleRepo repository.SaleRepository
	now      func() time.Time
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(saleRepo repository.SaleRepository) *ReportUseCase {
	return &ReportUseCase{saleRepo: saleRepo, now: time.Now}
}

// NewReportUseCaseAt como NewReportUseCase con reloj inyectable (tests).
func NewReportUseCaseAt(saleRepo repository.SaleRepository, now func() time.Time) *ReportUseCase {
	return &ReportUseCase{saleRepo: saleRepo, now: now}
}

// GetWindowedReport filtra las ventas consolidadas de la ventana, las agrupa
// en buckets según el tipo (día de la semana, semana del mes u ordinal de mes)
// sumando el total por bucket, y aparte encuentra el nombre más frecuente de
// bestSellingItem por número de filas (no por revenue).
//
// Ventanas: day = 7 días atrás; week = 5 semanas atrás; month = 12 meses atrás.
// Un tipo desconocido falla con domain.ErrInvalidWindow sin tocar el repositorio.
func (uc *ReportUseCase) GetWindowedReport(ctx context.Context, windowKind string) (*dto.DashboardReportDTO, error) {
	now := uc.now().UTC()
	var start time.Time
	switch windowKind {
	case WindowDay:
		start = now.AddDate(0, 0, -7)
	case WindowWeek:
		start = now.AddDate(0, 0, -35) // 5 semanas
	case WindowMonth:
		start = now.AddDate(-1, 0, 0) // 12 meses
	default:
		return nil, fmt.Errorf("%w: %q (use day, week o month)", domain.ErrInvalidWindow, windowKind)
	}

	sales, err := uc.saleRepo.FindByCreatedRange(ctx, start, now)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardReportDTO{
		ChartData:    bucketize(windowKind, sales),
		MostSoldItem: mostFrequentItem(sales),
	}, nil
}

// bucketize agrupa las ventas en puntos de gráfica según el tipo de ventana,
// preservando el orden de primera aparición.
func bucketize(windowKind string, sales []*entity.Sale) []dto.ChartPointDTO {
	points := make([]dto.ChartPointDTO, 0, len(sales))
	index := make(map[string]int)

	for _, sale := range sales {
		label := bucketLabel(windowKind, sale.CreatedAt)
		if i, ok := index[label]; ok {
			points[i].Y = points[i].Y.Add(sale.Total)
			continue
		}
		index[label] = len(points)
		points = append(points, dto.ChartPointDTO{X: label, Y: sale.Total})
	}
	return points
}

func bucketLabel(windowKind string, t time.Time) string {
	switch windowKind {
	case WindowDay:
		return t.UTC().Weekday().String()
	case WindowWeek:
		week := (t.UTC().Day() + 6) / 7 // semana del mes, 1-5
		return fmt.Sprintf("Week %d", week)
	default:
		return t.UTC().Month().String()
	}
}

// mostFrequentItem encuentra el bestSellingItem más frecuente por número de
// filas consolidadas; el empate lo conserva la primera fila encontrada.
func mostFrequentItem(sales []*entity.Sale) *dto.BestSellerDTO {
	counts := make(map[string]int)
	var winner *entity.Sale
	var max int

	for _, sale := range sales {
		name := sale.BestSeller.Name
		if name == "" {
			continue
		}
		counts[name]++
		if counts[name] > max {
			max = counts[name]
			winner = sale
		}
	}
	if winner == nil {
		return nil
	}
	return &dto.BestSellerDTO{
		RefID:    winner.BestSeller.RefID,
		Kind:     string(winner.BestSeller.Kind),
		Name:     winner.BestSeller.Name,
		ImageURL: winner.BestSeller.ImageURL,
	}
}
