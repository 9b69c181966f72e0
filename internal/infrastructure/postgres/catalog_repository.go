package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository    = (*CategoryRepo)(nil)
	_ repository.SubcategoryRepository = (*SubcategoryRepo)(nil)
	_ repository.BrandRepository       = (*BrandRepo)(nil)
)

// CategoryRepo categorías sobre PostgreSQL.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

const categoryColumns = `id, nombre, descripcion, estado, version, created_at, updated_at`

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Estado, &c.Version, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserta la categoría y completa ID, versión y fechas.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO categorias (nombre, descripcion, estado)
		VALUES ($1, $2, $3)
		RETURNING id, version, created_at, updated_at`,
		c.Name, c.Description, c.Estado,
	).Scan(&c.ID, &c.Version, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return mapWriteError("insert category", err)
	}
	return nil
}

// GetByID obtiene una categoría; nil, nil si no existe.
func (r *CategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categorias WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// Update actualiza si c.Version coincide con la versión almacenada.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	err := r.q.QueryRow(ctx, `
		UPDATE categorias SET nombre = $2, descripcion = $3, estado = $4, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $5
		RETURNING version, updated_at`,
		c.ID, c.Name, c.Description, c.Estado, c.Version,
	).Scan(&c.Version, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return versionMiss(ctx, r.q, "categorias", c.ID)
		}
		return mapWriteError("update category", err)
	}
	return nil
}

// List lista categorías con búsqueda por nombre y descripción.
func (r *CategoryRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Category, int, error) {
	return runList(ctx, r.q, listSpec{
		columns:    categoryColumns,
		from:       "categorias",
		searchCols: []string{"nombre", "descripcion"},
		estadoCol:  "estado",
		orderBy:    "nombre",
	}, nil, f, scanCategory)
}

// SoftDelete desactiva la categoría.
func (r *CategoryRepo) SoftDelete(ctx context.Context, id int64, version *int64) error {
	return softDelete(ctx, r.q, "categorias", id, version)
}

// SubcategoryRepo subcategorías sobre PostgreSQL.
type SubcategoryRepo struct {
	q Querier
}

// NewSubcategoryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubcategoryRepository(q Querier) *SubcategoryRepo {
	return &SubcategoryRepo{q: q}
}

const subcategoryColumns = `s.id, s.categoria_id, c.nombre, s.nombre, s.estado, s.version, s.created_at, s.updated_at`
const subcategoryFrom = `subcategorias s JOIN categorias c ON c.id = s.categoria_id`

func scanSubcategory(row pgx.Row) (*entity.Subcategory, error) {
	var s entity.Subcategory
	if err := row.Scan(&s.ID, &s.CategoryID, &s.CategoryName, &s.Name, &s.Estado, &s.Version, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta la subcategoría.
func (r *SubcategoryRepo) Create(ctx context.Context, s *entity.Subcategory) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO subcategorias (categoria_id, nombre, estado)
		VALUES ($1, $2, $3)
		RETURNING id, version, created_at, updated_at`,
		s.CategoryID, s.Name, s.Estado,
	).Scan(&s.ID, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapWriteError("insert subcategory", err)
	}
	return nil
}

// GetByID obtiene una subcategoría con el nombre de su categoría.
func (r *SubcategoryRepo) GetByID(ctx context.Context, id int64) (*entity.Subcategory, error) {
	s, err := scanSubcategory(r.q.QueryRow(ctx, `SELECT `+subcategoryColumns+` FROM `+subcategoryFrom+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subcategory: %w", err)
	}
	return s, nil
}

// Update actualiza con control de versión.
func (r *SubcategoryRepo) Update(ctx context.Context, s *entity.Subcategory) error {
	err := r.q.QueryRow(ctx, `
		UPDATE subcategorias SET categoria_id = $2, nombre = $3, estado = $4, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $5
		RETURNING version, updated_at`,
		s.ID, s.CategoryID, s.Name, s.Estado, s.Version,
	).Scan(&s.Version, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return versionMiss(ctx, r.q, "subcategorias", s.ID)
		}
		return mapWriteError("update subcategory", err)
	}
	return nil
}

// List lista subcategorías; la búsqueda incluye el nombre de la categoría.
func (r *SubcategoryRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Subcategory, int, error) {
	return runList(ctx, r.q, listSpec{
		columns:    subcategoryColumns,
		from:       subcategoryFrom,
		searchCols: []string{"s.nombre", "c.nombre"},
		estadoCol:  "s.estado",
		orderBy:    "c.nombre, s.nombre",
	}, nil, f, scanSubcategory)
}

// ListByCategory subcategorías activas de una categoría (selector dependiente).
func (r *SubcategoryRepo) ListByCategory(ctx context.Context, categoryID int64) ([]*entity.Subcategory, error) {
	b := &whereBuilder{}
	b.cond("s.categoria_id = " + b.arg(categoryID))
	activo := true
	list, _, err := runList(ctx, r.q, listSpec{
		columns:   subcategoryColumns,
		from:      subcategoryFrom,
		estadoCol: "s.estado",
		orderBy:   "s.nombre",
	}, b, repository.ListFilter{Estado: &activo}, scanSubcategory)
	return list, err
}

// SoftDelete desactiva la subcategoría.
func (r *SubcategoryRepo) SoftDelete(ctx context.Context, id int64, version *int64) error {
	return softDelete(ctx, r.q, "subcategorias", id, version)
}

// BrandRepo marcas sobre PostgreSQL.
type BrandRepo struct {
	q Querier
}

// NewBrandRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBrandRepository(q Querier) *BrandRepo {
	return &BrandRepo{q: q}
}

const brandColumns = `id, nombre, estado, version, created_at, updated_at`

func scanBrand(row pgx.Row) (*entity.Brand, error) {
	var b entity.Brand
	if err := row.Scan(&b.ID, &b.Name, &b.Estado, &b.Version, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}

// Create inserta la marca.
func (r *BrandRepo) Create(ctx context.Context, b *entity.Brand) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO marcas (nombre, estado) VALUES ($1, $2)
		RETURNING id, version, created_at, updated_at`,
		b.Name, b.Estado,
	).Scan(&b.ID, &b.Version, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return mapWriteError("insert brand", err)
	}
	return nil
}

// GetByID obtiene una marca; nil, nil si no existe.
func (r *BrandRepo) GetByID(ctx context.Context, id int64) (*entity.Brand, error) {
	b, err := scanBrand(r.q.QueryRow(ctx, `SELECT `+brandColumns+` FROM marcas WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get brand: %w", err)
	}
	return b, nil
}

// Update actualiza con control de versión.
func (r *BrandRepo) Update(ctx context.Context, b *entity.Brand) error {
	err := r.q.QueryRow(ctx, `
		UPDATE marcas SET nombre = $2, estado = $3, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $4
		RETURNING version, updated_at`,
		b.ID, b.Name, b.Estado, b.Version,
	).Scan(&b.Version, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return versionMiss(ctx, r.q, "marcas", b.ID)
		}
		return mapWriteError("update brand", err)
	}
	return nil
}

// List lista marcas.
func (r *BrandRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Brand, int, error) {
	return runList(ctx, r.q, listSpec{
		columns:    brandColumns,
		from:       "marcas",
		searchCols: []string{"nombre"},
		estadoCol:  "estado",
		orderBy:    "nombre",
	}, nil, f, scanBrand)
}

// SoftDelete desactiva la marca.
func (r *BrandRepo) SoftDelete(ctx context.Context, id int64, version *int64) error {
	return softDelete(ctx, r.q, "marcas", id, version)
}
