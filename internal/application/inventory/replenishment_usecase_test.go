package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

type historyRepo struct {
	repository.DashboardRepository
	top []repository.TopProductResult
}

func (h historyRepo) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]repository.TopProductResult, error) {
	return h.top, nil
}

func TestReplenishment_PriorizaPorMargenYVolumen(t *testing.T) {
	ok := product(3, 20, 5)
	sinVentas := product(2, 1, 5)
	vendido := product(1, 2, 4)
	s := newMemStore(ok, sinVentas, vendido)

	uc := NewReplenishmentUseCase(memProducts{s: s}, historyRepo{top: []repository.TopProductResult{
		// 10 unidades a 70 con costo 40: margen 42.86%
		{ProductID: 1, UnitsSold: 10, Revenue: decimal.NewFromInt(700)},
	}})

	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	first := list[0]
	assert.Equal(t, int64(1), first.ProductID)
	assert.Equal(t, 1, first.Priority)
	assert.Equal(t, 6, first.IdealStock)
	assert.Equal(t, 4, first.SuggestedOrderQty)
	assert.Equal(t, "160", first.EstimatedOrderCost.String())
	assert.Equal(t, "42.86", first.GrossMarginPct.String())
	assert.Equal(t, 10, first.UnitsSoldLast90)

	second := list[1]
	assert.Equal(t, int64(2), second.ProductID)
	assert.Equal(t, 8, second.IdealStock)
	assert.Equal(t, 7, second.SuggestedOrderQty)
	// sin historial: margen por precios de lista (60-40)/60
	assert.Equal(t, "33.33", second.GrossMarginPct.String())
}

func TestReplenishment_SinProductosBajos(t *testing.T) {
	uc := NewReplenishmentUseCase(memProducts{s: newMemStore(product(1, 50, 5))}, historyRepo{})
	list, err := uc.GenerateReplenishmentList(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.NotNil(t, list)
}
