package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Formas de pago de compras y ventas.
const (
	PaymentTypeCash   = "CONTADO"
	PaymentTypeCredit = "CREDITO"
)

// DetailLine línea de compra o venta. UnitPrice se copia al momento de la operación.
type DetailLine struct {
	ID          int64
	ProductID   int64
	ProductCode string // solo lectura (join)
	Description string // solo lectura (join)
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}

// Purchase compra a proveedor. Estado=false significa anulada.
type Purchase struct {
	ID           int64
	Date         time.Time
	SupplierID   int64
	SupplierName string // solo lectura (join)
	WorkerID     *int64
	DocumentNo   string
	PaymentType  string
	DueDate      *time.Time
	Total        decimal.Decimal
	Lines        []DetailLine
	Estado       bool
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Sale venta a cliente. Estado=false significa anulada.
type Sale struct {
	ID          int64
	Date        time.Time
	ClientID    int64
	ClientName  string // solo lectura (join)
	WorkerID    *int64
	WorkerName  string // solo lectura (join)
	PaymentType string
	DueDate     *time.Time
	Total       decimal.Decimal
	Lines       []DetailLine
	Estado      bool
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LinesTotal suma de subtotales (recalcula cada subtotal = cantidad * precio).
func LinesTotal(lines []DetailLine) decimal.Decimal {
	total := decimal.Zero
	for i := range lines {
		lines[i].Subtotal = lines[i].UnitPrice.Mul(decimal.NewFromInt(int64(lines[i].Quantity)))
		total = total.Add(lines[i].Subtotal)
	}
	return total
}
