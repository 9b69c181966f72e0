package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

const (
	historyDays  = 90
	historyLimit = 500
)

// ReplenishmentUseCase genera la lista de reposición.
// Combina el stock bajo con el historial de ventas para priorizar los productos críticos.
type ReplenishmentUseCase struct {
	productRepo   repository.ProductRepository
	dashboardRepo repository.DashboardRepository
	now           func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	dashboardRepo repository.DashboardRepository,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{
		productRepo:   productRepo,
		dashboardRepo: dashboardRepo,
		now:           time.Now,
	}
}

// GenerateReplenishmentList devuelve los productos en o bajo su stock mínimo con la cantidad
// sugerida de pedido y un ranking de prioridad por margen y volumen de ventas.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	low, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// sin historial la sugerencia sigue siendo útil: el error se ignora
	end := uc.now()
	history, _ := uc.dashboardRepo.TopProducts(ctx, end.AddDate(0, 0, -historyDays), end, historyLimit)
	soldByID := make(map[int64]repository.TopProductResult, len(history))
	for _, h := range history {
		soldByID[h.ProductID] = h
	}

	hundred := decimal.NewFromInt(100)
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		inv := p.Inventory
		ideal := (inv.MinStock*3 + 1) / 2
		qty := ideal - inv.CurrentStock
		if qty < 0 {
			qty = 0
		}

		var margin decimal.Decimal
		var units int
		if h, ok := soldByID[p.ID]; ok && h.UnitsSold > 0 && h.Revenue.IsPositive() {
			units = h.UnitsSold
			cogs := p.CostPrice.Mul(decimal.NewFromInt(int64(h.UnitsSold)))
			margin = h.Revenue.Sub(cogs).Div(h.Revenue).Mul(hundred).Round(2)
		} else if p.MinSalePrice.IsPositive() {
			margin = p.MinSalePrice.Sub(p.CostPrice).Div(p.MinSalePrice).Mul(hundred).Round(2)
		}

		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			Code:               p.Code,
			Description:        p.Description,
			CurrentStock:       inv.CurrentStock,
			MinStock:           inv.MinStock,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           p.CostPrice,
			EstimatedOrderCost: p.CostPrice.Mul(decimal.NewFromInt(int64(qty))),
			GrossMarginPct:     margin,
			UnitsSoldLast90:    units,
		})
	}

	// mayor margen, luego mayor volumen, luego mayor déficit bajo el mínimo
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if !a.GrossMarginPct.Equal(b.GrossMarginPct) {
			return a.GrossMarginPct.GreaterThan(b.GrossMarginPct)
		}
		if a.UnitsSoldLast90 != b.UnitsSoldLast90 {
			return a.UnitsSoldLast90 > b.UnitsSoldLast90
		}
		return a.MinStock-a.CurrentStock > b.MinStock-b.CurrentStock
	})
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
