package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// Orígenes de un movimiento.
const (
	MovementSourceManual   = "MANUAL"
	MovementSourcePurchase = "COMPRA"
	MovementSourceSale     = "VENTA"
)

// InventoryMovement registro inmutable de un cambio de stock.
type InventoryMovement struct {
	ID          int64
	ProductID   int64
	Type        string
	Quantity    int // siempre positivo; Type indica el sentido
	StockBefore int
	StockAfter  int
	Reason      string
	Source      string
	ReferenceID *int64 // compra o venta que lo originó
	UserID      *int64
	CreatedAt   time.Time
}

// Delta cantidad con signo.
func (m *InventoryMovement) Delta() int {
	if m.Type == MovementTypeOUT {
		return -m.Quantity
	}
	return m.Quantity
}
