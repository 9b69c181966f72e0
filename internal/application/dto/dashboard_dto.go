package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	TodaySales     decimal.Decimal `json:"ventas_hoy"`
	TodaySaleCount int             `json:"cantidad_ventas_hoy"`
	MonthlySales   decimal.Decimal `json:"ventas_mes"`
	MonthPurchases decimal.Decimal `json:"compras_mes"`

	Receivable        decimal.Decimal `json:"por_cobrar"`
	Payable           decimal.Decimal `json:"por_pagar"`
	OverdueReceivable int             `json:"cobrar_vencidas"`
	OverduePayable    int             `json:"pagar_vencidas"`

	LowStockCount int          `json:"productos_stock_bajo"`
	TopProducts   []TopProduct `json:"top_productos"`
	DateLabel     string       `json:"periodo"` // ej: "Febrero 2026"
}

// TopProduct producto más vendido del mes.
type TopProduct struct {
	ProductID   int64           `json:"id_producto"`
	Code        string          `json:"codigo"`
	Description string          `json:"descripcion"`
	UnitsSold   int             `json:"unidades"`
	Revenue     decimal.Decimal `json:"ingreso"`
}
