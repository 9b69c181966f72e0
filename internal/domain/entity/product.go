package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autopartes-api/internal/domain"
)

// Product repuesto del catálogo. El stock vive en Inventory y solo cambia vía movimientos.
type Product struct {
	ID             int64
	Code           string // código único
	Description    string
	Unit           string // UND, JGO, LT...
	CostPrice      decimal.Decimal
	MinSalePrice   decimal.Decimal
	MaxSalePrice   decimal.Decimal
	WholesalePrice decimal.Decimal
	CategoryID     int64
	SubcategoryID  *int64
	BrandID        int64
	CategoryName   string // solo lectura (join)
	BrandName      string // solo lectura (join)
	Inventory      Inventory
	Estado         bool
	Version        int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Inventory registro 1:1 con el producto.
type Inventory struct {
	ProductID    int64
	MinStock     int
	CurrentStock int
	UpdatedAt    time.Time
}

// LowStock el stock actual está en o por debajo del mínimo.
func (i Inventory) LowStock() bool { return i.CurrentStock <= i.MinStock }

// ValidatePrices exige costo <= venta mínima <= venta máxima y mayorista dentro de [costo, venta máxima].
func (p *Product) ValidatePrices() error {
	for field, v := range map[string]decimal.Decimal{
		"precio_costo":     p.CostPrice,
		"precio_venta_min": p.MinSalePrice,
		"precio_venta_max": p.MaxSalePrice,
		"precio_por_mayor": p.WholesalePrice,
	} {
		if v.IsNegative() {
			return domain.NewFieldError(field, "el precio no puede ser negativo")
		}
	}
	if p.MinSalePrice.LessThan(p.CostPrice) {
		return domain.NewFieldError("precio_venta_min", "el precio de venta mínimo no puede ser menor al costo")
	}
	if p.MaxSalePrice.LessThan(p.MinSalePrice) {
		return domain.NewFieldError("precio_venta_max", "el precio de venta máximo no puede ser menor al mínimo")
	}
	if p.WholesalePrice.LessThan(p.CostPrice) || p.WholesalePrice.GreaterThan(p.MaxSalePrice) {
		return domain.NewFieldError("precio_por_mayor", "el precio por mayor debe estar entre el costo y el precio de venta máximo")
	}
	return nil
}
