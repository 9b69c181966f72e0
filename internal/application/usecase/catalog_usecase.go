package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// CategoryUseCase CRUD de categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

// Create crea una categoría.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c := &entity.Category{
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Estado:      activeOr(in.Estado),
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// GetByID obtiene una categoría.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.CategoryResponse, error) {
	c, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// Update reemplaza los datos si la versión coincide.
func (uc *CategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &entity.Category{
		ID:          id,
		Name:        strings.TrimSpace(in.Name),
		Description: strings.TrimSpace(in.Description),
		Estado:      activeOr(in.Estado),
		Version:     in.Version,
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

// List listado paginado.
func (uc *CategoryUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.ListResponse[dto.CategoryResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, toCategoryResponse), f.Query, total), nil
}

// Delete baja lógica.
func (uc *CategoryUseCase) Delete(ctx context.Context, id int64, version *int64) error {
	return uc.repo.SoftDelete(ctx, id, version)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Estado:      c.Estado,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// SubcategoryUseCase CRUD de subcategorías.
type SubcategoryUseCase struct {
	repo       repository.SubcategoryRepository
	categories repository.CategoryRepository
}

// NewSubcategoryUseCase construye el caso de uso.
func NewSubcategoryUseCase(repo repository.SubcategoryRepository, categories repository.CategoryRepository) *SubcategoryUseCase {
	return &SubcategoryUseCase{repo: repo, categories: categories}
}

func (uc *SubcategoryUseCase) checkCategory(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.NewFieldError("id_categoria", "la categoría no existe")
	}
	return c, nil
}

// Create crea una subcategoría dentro de una categoría existente.
func (uc *SubcategoryUseCase) Create(ctx context.Context, in dto.SubcategoryRequest) (*dto.SubcategoryResponse, error) {
	cat, err := uc.checkCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	s := &entity.Subcategory{
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Name:         strings.TrimSpace(in.Name),
		Estado:       activeOr(in.Estado),
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSubcategoryResponse(s), nil
}

// GetByID obtiene una subcategoría.
func (uc *SubcategoryUseCase) GetByID(ctx context.Context, id int64) (*dto.SubcategoryResponse, error) {
	s, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toSubcategoryResponse(s), nil
}

// Update reemplaza los datos si la versión coincide.
func (uc *SubcategoryUseCase) Update(ctx context.Context, id int64, in dto.UpdateSubcategoryRequest) (*dto.SubcategoryResponse, error) {
	cat, err := uc.checkCategory(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}
	s := &entity.Subcategory{
		ID:           id,
		CategoryID:   cat.ID,
		CategoryName: cat.Name,
		Name:         strings.TrimSpace(in.Name),
		Estado:       activeOr(in.Estado),
		Version:      in.Version,
	}
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSubcategoryResponse(s), nil
}

// List listado paginado.
func (uc *SubcategoryUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.ListResponse[dto.SubcategoryResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, toSubcategoryResponse), f.Query, total), nil
}

// ListByCategory subcategorías de una categoría (selector dependiente del formulario de producto).
func (uc *SubcategoryUseCase) ListByCategory(ctx context.Context, categoryID int64) ([]dto.SubcategoryResponse, error) {
	if _, err := found(uc.categories.GetByID(ctx, categoryID)); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	return mapList(list, toSubcategoryResponse), nil
}

// Delete baja lógica.
func (uc *SubcategoryUseCase) Delete(ctx context.Context, id int64, version *int64) error {
	return uc.repo.SoftDelete(ctx, id, version)
}

func toSubcategoryResponse(s *entity.Subcategory) *dto.SubcategoryResponse {
	return &dto.SubcategoryResponse{
		ID:           s.ID,
		CategoryID:   s.CategoryID,
		CategoryName: s.CategoryName,
		Name:         s.Name,
		Estado:       s.Estado,
		Version:      s.Version,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

// BrandUseCase CRUD de marcas.
type BrandUseCase struct {
	repo repository.BrandRepository
}

// NewBrandUseCase construye el caso de uso.
func NewBrandUseCase(repo repository.BrandRepository) *BrandUseCase {
	return &BrandUseCase{repo: repo}
}

// Create crea una marca.
func (uc *BrandUseCase) Create(ctx context.Context, in dto.BrandRequest) (*dto.BrandResponse, error) {
	b := &entity.Brand{Name: strings.TrimSpace(in.Name), Estado: activeOr(in.Estado)}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// GetByID obtiene una marca.
func (uc *BrandUseCase) GetByID(ctx context.Context, id int64) (*dto.BrandResponse, error) {
	b, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// Update reemplaza los datos si la versión coincide.
func (uc *BrandUseCase) Update(ctx context.Context, id int64, in dto.UpdateBrandRequest) (*dto.BrandResponse, error) {
	b := &entity.Brand{ID: id, Name: strings.TrimSpace(in.Name), Estado: activeOr(in.Estado), Version: in.Version}
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBrandResponse(b), nil
}

// List listado paginado.
func (uc *BrandUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.ListResponse[dto.BrandResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, toBrandResponse), f.Query, total), nil
}

// Delete baja lógica.
func (uc *BrandUseCase) Delete(ctx context.Context, id int64, version *int64) error {
	return uc.repo.SoftDelete(ctx, id, version)
}

func toBrandResponse(b *entity.Brand) *dto.BrandResponse {
	return &dto.BrandResponse{
		ID:        b.ID,
		Name:      b.Name,
		Estado:    b.Estado,
		Version:   b.Version,
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}
