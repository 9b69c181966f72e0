package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// TopProductResult producto más vendido en un período.
type TopProductResult struct {
	ProductID   int64
	Code        string
	Description string
	UnitsSold   int
	Revenue     decimal.Decimal
}

// DashboardRepository consultas de lectura para el resumen del panel.
// Las implementaciones son read-only (no modifican datos).
type DashboardRepository interface {
	// SalesTotal suma y cantidad de ventas no anuladas en [from, to).
	SalesTotal(ctx context.Context, from, to time.Time) (total decimal.Decimal, count int, err error)
	// PurchasesTotal suma de compras no anuladas en [from, to).
	PurchasesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error)
	// OutstandingTotal saldo pendiente total por tipo de cuenta.
	OutstandingTotal(ctx context.Context, kind string) (decimal.Decimal, error)
	// OverdueCount cuentas con saldo y vencimiento anterior a today.
	OverdueCount(ctx context.Context, kind string, today time.Time) (int, error)
	// LowStockCount productos activos con stock en o bajo el mínimo.
	LowStockCount(ctx context.Context) (int, error)
	// TopProducts los `limit` productos con mayor ingreso en el período.
	TopProducts(ctx context.Context, from, to time.Time, limit int) ([]TopProductResult, error)
}
