package dto

import "time"

// CategoryRequest alta de categoría.
type CategoryRequest struct {
	Name        string `json:"nombre" validate:"required,min=2,max=100"`
	Description string `json:"descripcion" validate:"max=255"`
	Estado      *bool  `json:"estado"`
}

// UpdateCategoryRequest actualización con versión.
type UpdateCategoryRequest struct {
	CategoryRequest
	VersionRequest
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"nombre"`
	Description string    `json:"descripcion"`
	Estado      bool      `json:"estado"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// SubcategoryRequest alta de subcategoría.
type SubcategoryRequest struct {
	CategoryID int64  `json:"id_categoria" validate:"required,min=1"`
	Name       string `json:"nombre" validate:"required,min=2,max=100"`
	Estado     *bool  `json:"estado"`
}

// UpdateSubcategoryRequest actualización con versión.
type UpdateSubcategoryRequest struct {
	SubcategoryRequest
	VersionRequest
}

// SubcategoryResponse salida de una subcategoría.
type SubcategoryResponse struct {
	ID           int64     `json:"id"`
	CategoryID   int64     `json:"id_categoria"`
	CategoryName string    `json:"categoria"`
	Name         string    `json:"nombre"`
	Estado       bool      `json:"estado"`
	Version      int64     `json:"version"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BrandRequest alta de marca.
type BrandRequest struct {
	Name   string `json:"nombre" validate:"required,min=1,max=100"`
	Estado *bool  `json:"estado"`
}

// UpdateBrandRequest actualización con versión.
type UpdateBrandRequest struct {
	BrandRequest
	VersionRequest
}

// BrandResponse salida de una marca.
type BrandResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"nombre"`
	Estado    bool      `json:"estado"`
	Version   int64     `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
