package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas de solo lectura para el resumen del panel.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// SalesTotal suma y cantidad de ventas no anuladas en [from, to).
// Usa COALESCE para devolver cero si no hay ventas en el período.
func (r *DashboardRepo) SalesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	const query = `
	SELECT COALESCE(SUM(total), 0), count(*)
	FROM ventas
	WHERE estado AND fecha >= $1 AND fecha < $2`
	var (
		total decimal.Decimal
		count int
	)
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&total, &count); err != nil {
		return decimal.Zero, 0, fmt.Errorf("dashboard.SalesTotal: %w", err)
	}
	return total, count, nil
}

// PurchasesTotal suma de compras no anuladas en [from, to).
func (r *DashboardRepo) PurchasesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(total), 0) FROM compras WHERE estado AND fecha >= $1 AND fecha < $2`, from, to).
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("dashboard.PurchasesTotal: %w", err)
	}
	return total, nil
}

// OutstandingTotal saldo pendiente de las cuentas activas de un tipo.
func (r *DashboardRepo) OutstandingTotal(ctx context.Context, kind string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(saldo_pendiente), 0) FROM cuentas WHERE estado AND tipo = $1`, kind).
		Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("dashboard.OutstandingTotal: %w", err)
	}
	return total, nil
}

// OverdueCount cuentas activas con saldo y vencidas antes de today.
func (r *DashboardRepo) OverdueCount(ctx context.Context, kind string, today time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT count(*) FROM cuentas
		WHERE estado AND tipo = $1 AND saldo_pendiente > 0 AND fecha_vencimiento < $2`, kind, today).
		Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dashboard.OverdueCount: %w", err)
	}
	return n, nil
}

// LowStockCount productos activos en o bajo el stock mínimo.
func (r *DashboardRepo) LowStockCount(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT count(*) FROM productos p JOIN inventarios i ON i.producto_id = p.id
		WHERE p.estado AND i.stock_actual <= i.stock_minimo`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("dashboard.LowStockCount: %w", err)
	}
	return n, nil
}

// TopProducts los `limit` productos con mayor ingreso en el período.
func (r *DashboardRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	const query = `
	SELECT
	    p.id,
	    p.codigo,
	    p.descripcion,
	    SUM(d.cantidad)  AS unidades,
	    SUM(d.subtotal)  AS ingreso
	FROM detalle_ventas d
	JOIN ventas v    ON v.id = d.venta_id
	JOIN productos p ON p.id = d.producto_id
	WHERE v.estado AND v.fecha >= $1 AND v.fecha < $2
	GROUP BY p.id, p.codigo, p.descripcion
	ORDER BY ingreso DESC
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("dashboard.TopProducts: %w", err)
	}
	defer rows.Close()

	results := make([]repository.TopProductResult, 0, limit)
	for rows.Next() {
		var item repository.TopProductResult
		if err := rows.Scan(&item.ProductID, &item.Code, &item.Description, &item.UnitsSold, &item.Revenue); err != nil {
			return nil, fmt.Errorf("dashboard.TopProducts scan: %w", err)
		}
		results = append(results, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("dashboard.TopProducts rows: %w", err)
	}
	return results, nil
}
