package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductRequest alta de producto con su inventario inicial.
type ProductRequest struct {
	Code           string          `json:"codigo" validate:"required,min=1,max=50"`
	Description    string          `json:"descripcion" validate:"required,min=1,max=255"`
	Unit           string          `json:"unidad_medida" validate:"required,max=20"`
	CostPrice      decimal.Decimal `json:"precio_costo"`
	MinSalePrice   decimal.Decimal `json:"precio_venta_min"`
	MaxSalePrice   decimal.Decimal `json:"precio_venta_max"`
	WholesalePrice decimal.Decimal `json:"precio_por_mayor"`
	CategoryID     int64           `json:"id_categoria" validate:"required,min=1"`
	SubcategoryID  *int64          `json:"id_subcategoria" validate:"omitempty,min=1"`
	BrandID        int64           `json:"id_marca" validate:"required,min=1"`
	MinStock       int             `json:"stock_minimo" validate:"min=0"`
	InitialStock   int             `json:"stock_inicial" validate:"min=0"`
	Estado         *bool           `json:"estado"`
}

// UpdateProductRequest actualización con versión. El stock solo cambia por movimientos.
type UpdateProductRequest struct {
	ProductRequest
	VersionRequest
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID             int64           `json:"id"`
	Code           string          `json:"codigo"`
	Description    string          `json:"descripcion"`
	Unit           string          `json:"unidad_medida"`
	CostPrice      decimal.Decimal `json:"precio_costo"`
	MinSalePrice   decimal.Decimal `json:"precio_venta_min"`
	MaxSalePrice   decimal.Decimal `json:"precio_venta_max"`
	WholesalePrice decimal.Decimal `json:"precio_por_mayor"`
	CategoryID     int64           `json:"id_categoria"`
	CategoryName   string          `json:"categoria"`
	SubcategoryID  *int64          `json:"id_subcategoria"`
	BrandID        int64           `json:"id_marca"`
	BrandName      string          `json:"marca"`
	MinStock       int             `json:"stock_minimo"`
	CurrentStock   int             `json:"stock_actual"`
	LowStock       bool            `json:"stock_bajo"`
	Estado         bool            `json:"estado"`
	Version        int64           `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
