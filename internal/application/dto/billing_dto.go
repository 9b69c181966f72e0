package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DetailLineRequest línea de compra o venta.
type DetailLineRequest struct {
	ProductID int64           `json:"id_producto" validate:"required,min=1"`
	Quantity  int             `json:"cantidad" validate:"required,min=1"`
	UnitPrice decimal.Decimal `json:"precio_unitario"`
}

// DetailLineResponse línea con subtotal calculado.
type DetailLineResponse struct {
	ID          int64           `json:"id"`
	ProductID   int64           `json:"id_producto"`
	ProductCode string          `json:"codigo"`
	Description string          `json:"descripcion"`
	Quantity    int             `json:"cantidad"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// CreatePurchaseRequest registro de compra.
type CreatePurchaseRequest struct {
	Date        *time.Time          `json:"fecha"`
	SupplierID  int64               `json:"id_proveedor" validate:"required,min=1"`
	WorkerID    *int64              `json:"id_trabajador" validate:"omitempty,min=1"`
	DocumentNo  string              `json:"nro_documento" validate:"max=50"`
	PaymentType string              `json:"tipo_pago" validate:"required,oneof=CONTADO CREDITO"`
	DueDate     *time.Time          `json:"fecha_vencimiento" validate:"required_if=PaymentType CREDITO"`
	Lines       []DetailLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// PurchaseResponse salida de una compra.
type PurchaseResponse struct {
	ID           int64                `json:"id"`
	Date         time.Time            `json:"fecha"`
	SupplierID   int64                `json:"id_proveedor"`
	SupplierName string               `json:"proveedor"`
	WorkerID     *int64               `json:"id_trabajador"`
	DocumentNo   string               `json:"nro_documento"`
	PaymentType  string               `json:"tipo_pago"`
	DueDate      *time.Time           `json:"fecha_vencimiento,omitempty"`
	Total        decimal.Decimal      `json:"total"`
	Estado       bool                 `json:"estado"`
	Version      int64                `json:"version"`
	Lines        []DetailLineResponse `json:"detalles,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}

// CreateSaleRequest registro de venta.
type CreateSaleRequest struct {
	Date        *time.Time          `json:"fecha"`
	ClientID    int64               `json:"id_cliente" validate:"required,min=1"`
	WorkerID    *int64              `json:"id_trabajador" validate:"omitempty,min=1"`
	PaymentType string              `json:"tipo_pago" validate:"required,oneof=CONTADO CREDITO"`
	DueDate     *time.Time          `json:"fecha_vencimiento" validate:"required_if=PaymentType CREDITO"`
	Lines       []DetailLineRequest `json:"detalles" validate:"required,min=1,dive"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID          int64                `json:"id"`
	Date        time.Time            `json:"fecha"`
	ClientID    int64                `json:"id_cliente"`
	ClientName  string               `json:"cliente"`
	WorkerID    *int64               `json:"id_trabajador"`
	WorkerName  string               `json:"trabajador"`
	PaymentType string               `json:"tipo_pago"`
	DueDate     *time.Time           `json:"fecha_vencimiento,omitempty"`
	Total       decimal.Decimal      `json:"total"`
	Estado      bool                 `json:"estado"`
	Version     int64                `json:"version"`
	Lines       []DetailLineResponse `json:"detalles,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
}

// PaymentRequest abono a una cuenta.
type PaymentRequest struct {
	Amount  decimal.Decimal `json:"monto"`
	Method  string          `json:"metodo" validate:"required,max=30"`
	Note    string          `json:"nota" validate:"max=255"`
	PaidAt  *time.Time      `json:"fecha_pago"`
	Version *int64          `json:"version" validate:"omitempty,min=1"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID     int64           `json:"id"`
	Amount decimal.Decimal `json:"monto"`
	Method string          `json:"metodo"`
	Note   string          `json:"nota"`
	PaidAt time.Time       `json:"fecha_pago"`
	UserID *int64          `json:"id_usuario,omitempty"`
}

// AccountResponse salida de una cuenta por cobrar o pagar.
type AccountResponse struct {
	ID          int64             `json:"id"`
	Kind        string            `json:"tipo"`
	PartyID     int64             `json:"id_tercero"`
	PartyName   string            `json:"tercero"`
	SourceID    int64             `json:"id_origen"`
	Total       decimal.Decimal   `json:"monto_total"`
	Outstanding decimal.Decimal   `json:"saldo_pendiente"`
	DueDate     time.Time         `json:"fecha_vencimiento"`
	Status      string            `json:"situacion"`
	Estado      bool              `json:"estado"`
	Version     int64             `json:"version"`
	Payments    []PaymentResponse `json:"pagos,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}
