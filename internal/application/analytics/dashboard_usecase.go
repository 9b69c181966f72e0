// Package analytics contiene el resumen de indicadores del panel de inicio.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

const dashboardTopProducts = 5

// DashboardUseCase genera el resumen del día y del mes en curso.
// Solo lectura: todo se delega en DashboardRepository.
type DashboardUseCase struct {
	repo repository.DashboardRepository
	now  func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(repo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{repo: repo, now: time.Now}
}

// GetSummary ejecuta las consultas en paralelo y arma el DTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	tomorrow := todayStart.AddDate(0, 0, 1)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	var out dto.DashboardSummaryDTO
	var top []repository.TopProductResult

	// cada consulta escribe en su propio campo; errs recoge el primer fallo de cada una
	queries := []struct {
		name string
		run  func() error
	}{
		{"ventas de hoy", func() (err error) {
			out.TodaySales, out.TodaySaleCount, err = uc.repo.SalesTotal(ctx, todayStart, tomorrow)
			return
		}},
		{"ventas del mes", func() (err error) {
			out.MonthlySales, _, err = uc.repo.SalesTotal(ctx, monthStart, tomorrow)
			return
		}},
		{"compras del mes", func() (err error) {
			out.MonthPurchases, err = uc.repo.PurchasesTotal(ctx, monthStart, tomorrow)
			return
		}},
		{"saldo por cobrar", func() (err error) {
			out.Receivable, err = uc.repo.OutstandingTotal(ctx, entity.AccountReceivable)
			return
		}},
		{"saldo por pagar", func() (err error) {
			out.Payable, err = uc.repo.OutstandingTotal(ctx, entity.AccountPayable)
			return
		}},
		{"cobros vencidos", func() (err error) {
			out.OverdueReceivable, err = uc.repo.OverdueCount(ctx, entity.AccountReceivable, todayStart)
			return
		}},
		{"pagos vencidos", func() (err error) {
			out.OverduePayable, err = uc.repo.OverdueCount(ctx, entity.AccountPayable, todayStart)
			return
		}},
		{"stock bajo", func() (err error) {
			out.LowStockCount, err = uc.repo.LowStockCount(ctx)
			return
		}},
		{"top productos", func() (err error) {
			top, err = uc.repo.TopProducts(ctx, monthStart, tomorrow, dashboardTopProducts)
			return
		}},
	}

	errs := make(chan error, len(queries))
	for _, q := range queries {
		go func(name string, run func() error) {
			if err := run(); err != nil {
				errs <- fmt.Errorf("dashboard: %s: %w", name, err)
				return
			}
			errs <- nil
		}(q.name, q.run)
	}
	var firstErr error
	for range queries {
		if err := <-errs; err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}

	out.TodaySales = out.TodaySales.Round(2)
	out.MonthlySales = out.MonthlySales.Round(2)
	out.MonthPurchases = out.MonthPurchases.Round(2)
	out.Receivable = out.Receivable.Round(2)
	out.Payable = out.Payable.Round(2)
	out.TopProducts = make([]dto.TopProduct, 0, len(top))
	for _, t := range top {
		out.TopProducts = append(out.TopProducts, dto.TopProduct{
			ProductID:   t.ProductID,
			Code:        t.Code,
			Description: t.Description,
			UnitsSold:   t.UnitsSold,
			Revenue:     t.Revenue.Round(2),
		})
	}
	out.DateLabel = monthLabel(now)
	return &out, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
