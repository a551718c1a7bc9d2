package dto

import "github.com/shopspring/decimal"

// ChartPointDTO un punto de la serie del dashboard: etiqueta del bucket y
// revenue acumulado en él.
type ChartPointDTO struct {
	X string          `json:"x"`
	Y decimal.Decimal `json:"y"`
}

// DashboardReportDTO serie de gráfica más el artículo más frecuente del
// período (por número de filas consolidadas, no por revenue).
type DashboardReportDTO struct {
	ChartData    []ChartPointDTO `json:"chart_data"`
	MostSoldItem *BestSellerDTO  `json:"most_sold_item"`
}
