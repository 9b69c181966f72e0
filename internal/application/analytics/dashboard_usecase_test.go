package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

type fakeDashboardRepo struct {
	topErr error
	from   []time.Time
}

func (f *fakeDashboardRepo) SalesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, int, error) {
	if to.Sub(from) == 24*time.Hour {
		return decimal.RequireFromString("150.555"), 3, nil
	}
	return decimal.NewFromInt(4200), 40, nil
}

func (f *fakeDashboardRepo) PurchasesTotal(ctx context.Context, from, to time.Time) (decimal.Decimal, error) {
	return decimal.NewFromInt(1800), nil
}

func (f *fakeDashboardRepo) OutstandingTotal(ctx context.Context, kind string) (decimal.Decimal, error) {
	if kind == entity.AccountReceivable {
		return decimal.NewFromInt(300), nil
	}
	return decimal.NewFromInt(120), nil
}

func (f *fakeDashboardRepo) OverdueCount(ctx context.Context, kind string, today time.Time) (int, error) {
	if kind == entity.AccountReceivable {
		return 2, nil
	}
	return 1, nil
}

func (f *fakeDashboardRepo) LowStockCount(ctx context.Context) (int, error) { return 4, nil }

func (f *fakeDashboardRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	if f.topErr != nil {
		return nil, f.topErr
	}
	return []repository.TopProductResult{
		{ProductID: 7, Code: "FLT-001", Description: "Filtro de aceite", UnitsSold: 12, Revenue: decimal.RequireFromString("360.004")},
	}, nil
}

func TestDashboard_GetSummary(t *testing.T) {
	uc := NewDashboardUseCase(&fakeDashboardRepo{})
	uc.now = func() time.Time { return time.Date(2026, time.February, 14, 10, 30, 0, 0, time.UTC) }

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "150.56", out.TodaySales.String())
	assert.Equal(t, 3, out.TodaySaleCount)
	assert.Equal(t, "4200", out.MonthlySales.String())
	assert.Equal(t, "1800", out.MonthPurchases.String())
	assert.Equal(t, "300", out.Receivable.String())
	assert.Equal(t, "120", out.Payable.String())
	assert.Equal(t, 2, out.OverdueReceivable)
	assert.Equal(t, 1, out.OverduePayable)
	assert.Equal(t, 4, out.LowStockCount)
	require.Len(t, out.TopProducts, 1)
	assert.Equal(t, "360", out.TopProducts[0].Revenue.String())
	assert.Equal(t, "Febrero 2026", out.DateLabel)
}

func TestDashboard_GetSummaryPropagaError(t *testing.T) {
	uc := NewDashboardUseCase(&fakeDashboardRepo{topErr: errors.New("db caída")})
	_, err := uc.GetSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "top productos")
}
