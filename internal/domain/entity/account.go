package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de cuenta.
const (
	AccountReceivable = "COBRAR" // origen: venta a crédito
	AccountPayable    = "PAGAR"  // origen: compra a crédito
)

// Estados derivados de una cuenta (filtros de listado).
const (
	AccountStatusPending = "pendiente"
	AccountStatusOverdue = "vencida"
	AccountStatusPaid    = "pagada"
)

// Account cuenta por cobrar o por pagar. Outstanding == 0 es el único indicador de cancelada.
type Account struct {
	ID          int64
	Kind        string
	PartyID     int64  // cliente o proveedor
	PartyName   string // solo lectura (join)
	SourceID    int64  // venta o compra
	Total       decimal.Decimal
	Outstanding decimal.Decimal
	DueDate     time.Time
	Payments    []Payment
	Estado      bool
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Settled la cuenta no tiene saldo.
func (a *Account) Settled() bool { return a.Outstanding.IsZero() }

// Status pendiente, vencida o pagada respecto a now.
func (a *Account) Status(now time.Time) string {
	switch {
	case a.Settled():
		return AccountStatusPaid
	case a.DueDate.Before(truncateDay(now)):
		return AccountStatusOverdue
	default:
		return AccountStatusPending
	}
}

// Payment abono a una cuenta.
type Payment struct {
	ID        int64
	AccountID int64
	Amount    decimal.Decimal
	Method    string // EFECTIVO, TRANSFERENCIA, YAPE...
	Note      string
	PaidAt    time.Time
	UserID    *int64
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
