package entity

import "time"

// Supplier proveedor, identificado por RUC.
type Supplier struct {
	ID           int64
	RUC          string
	BusinessName string
	Phone        string
	Email        string
	Address      string
	Estado       bool
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
