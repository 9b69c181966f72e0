package entity

import "time"

// Category categoría de repuestos.
type Category struct {
	ID          int64
	Name        string
	Description string
	Estado      bool
	Version     int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Subcategory subcategoría dentro de una categoría.
type Subcategory struct {
	ID           int64
	CategoryID   int64
	CategoryName string // solo lectura (join)
	Name         string
	Estado       bool
	Version      int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Brand marca de repuestos.
type Brand struct {
	ID        int64
	Name      string
	Estado    bool
	Version   int64
	CreatedAt time.Time
	UpdatedAt time.Time
}
