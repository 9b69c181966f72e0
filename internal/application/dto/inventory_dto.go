package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/inventario/movimientos (ajuste manual).
type RegisterMovementRequest struct {
	ProductID int64  `json:"id_producto" validate:"required,min=1"`
	Type      string `json:"tipo" validate:"required,oneof=IN OUT"`
	Quantity  int    `json:"cantidad" validate:"required,min=1"`
	Reason    string `json:"motivo" validate:"required,max=255"`
}

// MovementResponse salida de un movimiento de inventario.
type MovementResponse struct {
	ID          int64     `json:"id"`
	ProductID   int64     `json:"id_producto"`
	Type        string    `json:"tipo"`
	Quantity    int       `json:"cantidad"`
	StockBefore int       `json:"stock_anterior"`
	StockAfter  int       `json:"stock_posterior"`
	Reason      string    `json:"motivo"`
	Source      string    `json:"origen"`
	ReferenceID *int64    `json:"id_referencia,omitempty"`
	UserID      *int64    `json:"id_usuario,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ReplenishmentSuggestionDTO sugerencia de reposición para un producto en o bajo su stock mínimo.
// IdealStock = ceil(mínimo * 1.5); SuggestedOrderQty = ideal - actual; Priority 1 = más urgente.
type ReplenishmentSuggestionDTO struct {
	ProductID          int64           `json:"id_producto"`
	Code               string          `json:"codigo"`
	Description        string          `json:"descripcion"`
	CurrentStock       int             `json:"stock_actual"`
	MinStock           int             `json:"stock_minimo"`
	IdealStock         int             `json:"stock_ideal"`
	SuggestedOrderQty  int             `json:"cantidad_sugerida"`
	UnitCost           decimal.Decimal `json:"precio_costo"`
	EstimatedOrderCost decimal.Decimal `json:"costo_estimado"`
	GrossMarginPct     decimal.Decimal `json:"margen_pct"`
	UnitsSoldLast90    int             `json:"unidades_90_dias"`
	Priority           int             `json:"prioridad"`
}
