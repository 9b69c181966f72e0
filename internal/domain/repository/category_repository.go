package repository

import (
	"context"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
)

// CategoryRepository puerto de persistencia para categorías.
type CategoryRepository interface {
	Create(ctx context.Context, c *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	Update(ctx context.Context, c *entity.Category) error
	List(ctx context.Context, f ListFilter) ([]*entity.Category, int, error)
	SoftDelete(ctx context.Context, id int64, version *int64) error
}

// SubcategoryRepository puerto de persistencia para subcategorías.
type SubcategoryRepository interface {
	Create(ctx context.Context, s *entity.Subcategory) error
	GetByID(ctx context.Context, id int64) (*entity.Subcategory, error)
	Update(ctx context.Context, s *entity.Subcategory) error
	List(ctx context.Context, f ListFilter) ([]*entity.Subcategory, int, error)
	ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Subcategory, error)
	SoftDelete(ctx context.Context, id int64, version *int64) error
}

// BrandRepository puerto de persistencia para marcas.
type BrandRepository interface {
	Create(ctx context.Context, b *entity.Brand) error
	GetByID(ctx context.Context, id int64) (*entity.Brand, error)
	Update(ctx context.Context, b *entity.Brand) error
	List(ctx context.Context, f ListFilter) ([]*entity.Brand, int, error)
	SoftDelete(ctx context.Context, id int64, version *int64) error
}
