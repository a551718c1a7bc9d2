package dashboard_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/punto-venta-api/internal/application/dashboard"
	"github.com/jhoicas/punto-venta-api/internal/domain"
	"github.com/jhoicas/punto-venta-api/internal/domain/entity"
	"github.com/jhoicas/punto-venta-api/internal/infrastructure/memory"
)

// Reloj fijo de los tests: miércoles 2026-03-18 12:00 UTC.
var testNow = time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC)

func newReportFixture() (*dashboard.ReportUseCase, *memory.Store) {
	store := memory.NewStore()
	uc := dashboard.NewReportUseCaseAt(store.Sales(), func() time.Time { return testNow })
	return uc, store
}

func seedSale(store *memory.Store, createdAt time.Time, total int64, bestName string) {
	store.PutSale(&entity.Sale{
		ID:    uuid.New().String(),
		Day:   createdAt.UTC().Format("2006-01-02"),
		Total: decimal.NewFromInt(total),
		BestSeller: entity.BestSeller{
			RefID: "id-" + bestName,
			Kind:  entity.KindProduct,
			Name:  bestName,
		},
		CreatedAt: createdAt,
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana diaria: buckets por día de la semana, últimos 7 días.
// ──────────────────────────────────────────────────────────────────────────────

func TestGetWindowedReport_Dia(t *testing.T) {
	uc, store := newReportFixture()
	seedSale(store, testNow.AddDate(0, 0, -1), 30, "Arepa") // martes 17
	seedSale(store, testNow.AddDate(0, 0, -2), 20, "Jugo")  // lunes 16
	seedSale(store, testNow.AddDate(0, 0, -20), 99, "Vieja") // fuera de ventana

	report, err := uc.GetWindowedReport(context.Background(), dashboard.WindowDay)
	require.NoError(t, err)
	require.Len(t, report.ChartData, 2, "la venta fuera de la ventana no debe aparecer")

	assert.Equal(t, "Monday", report.ChartData[0].X)
	assert.True(t, report.ChartData[0].Y.Equal(decimal.NewFromInt(20)))
	assert.Equal(t, "Tuesday", report.ChartData[1].X)
	assert.True(t, report.ChartData[1].Y.Equal(decimal.NewFromInt(30)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana semanal: buckets por semana del mes, últimas 5 semanas.
// ──────────────────────────────────────────────────────────────────────────────

func TestGetWindowedReport_Semana(t *testing.T) {
	uc, store := newReportFixture()
	seedSale(store, time.Date(2026, 3, 3, 10, 0, 0, 0, time.UTC), 10, "Arepa")  // día 3 → Week 1
	seedSale(store, time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC), 15, "Arepa")  // día 5 → Week 1
	seedSale(store, time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC), 20, "Jugo")  // día 10 → Week 2
	seedSale(store, time.Date(2026, 3, 17, 10, 0, 0, 0, time.UTC), 40, "Arepa") // día 17 → Week 3

	report, err := uc.GetWindowedReport(context.Background(), dashboard.WindowWeek)
	require.NoError(t, err)
	require.Len(t, report.ChartData, 3)

	assert.Equal(t, "Week 1", report.ChartData[0].X)
	assert.True(t, report.ChartData[0].Y.Equal(decimal.NewFromInt(25)), "10+15 en la semana 1")
	assert.Equal(t, "Week 2", report.ChartData[1].X)
	assert.Equal(t, "Week 3", report.ChartData[2].X)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ventana mensual: buckets por nombre de mes, últimos 12 meses.
// ──────────────────────────────────────────────────────────────────────────────

func TestGetWindowedReport_Mes(t *testing.T) {
	uc, store := newReportFixture()
	seedSale(store, time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC), 100, "Arepa")
	seedSale(store, time.Date(2026, 1, 20, 10, 0, 0, 0, time.UTC), 50, "Jugo")
	seedSale(store, time.Date(2026, 2, 10, 10, 0, 0, 0, time.UTC), 70, "Arepa")

	report, err := uc.GetWindowedReport(context.Background(), dashboard.WindowMonth)
	require.NoError(t, err)
	require.Len(t, report.ChartData, 2)

	assert.Equal(t, "January", report.ChartData[0].X)
	assert.True(t, report.ChartData[0].Y.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, "February", report.ChartData[1].X)
	assert.True(t, report.ChartData[1].Y.Equal(decimal.NewFromInt(70)))
}

// ──────────────────────────────────────────────────────────────────────────────
// Artículo más frecuente y casos borde
// ──────────────────────────────────────────────────────────────────────────────

// El más frecuente se cuenta por filas consolidadas, no por revenue.
func TestGetWindowedReport_MasFrecuentePorFilas(t *testing.T) {
	uc, store := newReportFixture()
	seedSale(store, testNow.AddDate(0, 0, -1), 1, "Arepa")
	seedSale(store, testNow.AddDate(0, 0, -2), 1, "Arepa")
	seedSale(store, testNow.AddDate(0, 0, -3), 1000, "Jugo")

	report, err := uc.GetWindowedReport(context.Background(), dashboard.WindowDay)
	require.NoError(t, err)
	require.NotNil(t, report.MostSoldItem)
	assert.Equal(t, "Arepa", report.MostSoldItem.Name)
	assert.Equal(t, "id-Arepa", report.MostSoldItem.RefID)
}

// Filas con bestSellingItem vacío no cuentan para el ganador.
func TestGetWindowedReport_NombresVaciosNoCuentan(t *testing.T) {
	uc, store := newReportFixture()
	seedSale(store, testNow.AddDate(0, 0, -1), 10, "")
	seedSale(store, testNow.AddDate(0, 0, -2), 10, "")
	seedSale(store, testNow.AddDate(0, 0, -3), 10, "Jugo")

	report, err := uc.GetWindowedReport(context.Background(), dashboard.WindowDay)
	require.NoError(t, err)
	require.NotNil(t, report.MostSoldItem)
	assert.Equal(t, "Jugo", report.MostSoldItem.Name)
}

// Ventana sin ventas: serie vacía y sin artículo ganador.
func TestGetWindowedReport_SinVentas(t *testing.T) {
	uc, _ := newReportFixture()

	report, err := uc.GetWindowedReport(context.Background(), dashboard.WindowMonth)
	require.NoError(t, err)
	assert.Empty(t, report.ChartData)
	assert.Nil(t, report.MostSoldItem)
}

// Tipo de ventana desconocido: falla antes de tocar el repositorio.
func TestGetWindowedReport_VentanaInvalida(t *testing.T) {
	uc, _ := newReportFixture()

	_, err := uc.GetWindowedReport(context.Background(), "year")
	assert.ErrorIs(t, err, domain.ErrInvalidWindow)
}
