package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `p.id, p.codigo, p.descripcion, p.unidad, p.precio_costo, p.precio_venta_min, p.precio_venta_max,
	p.precio_por_mayor, p.categoria_id, p.subcategoria_id, p.marca_id, c.nombre, m.nombre,
	i.stock_minimo, i.stock_actual, i.updated_at, p.estado, p.version, p.created_at, p.updated_at`

const productFrom = `productos p
	JOIN categorias c ON c.id = p.categoria_id
	JOIN marcas m ON m.id = p.marca_id
	JOIN inventarios i ON i.producto_id = p.id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	if err := row.Scan(&p.ID, &p.Code, &p.Description, &p.Unit, &p.CostPrice, &p.MinSalePrice, &p.MaxSalePrice,
		&p.WholesalePrice, &p.CategoryID, &p.SubcategoryID, &p.BrandID, &p.CategoryName, &p.BrandName,
		&p.Inventory.MinStock, &p.Inventory.CurrentStock, &p.Inventory.UpdatedAt,
		&p.Estado, &p.Version, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Inventory.ProductID = p.ID
	return &p, nil
}

// Create persiste el producto y su inventario (stock 0) en una sola sentencia.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		WITH p AS (
			INSERT INTO productos (codigo, descripcion, unidad, precio_costo, precio_venta_min, precio_venta_max,
			    precio_por_mayor, categoria_id, subcategoria_id, marca_id, estado)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			RETURNING id, version, created_at, updated_at
		), i AS (
			INSERT INTO inventarios (producto_id, stock_minimo, stock_actual)
			SELECT id, $12, 0 FROM p
		)
		SELECT id, version, created_at, updated_at FROM p`,
		p.Code, p.Description, p.Unit, p.CostPrice, p.MinSalePrice, p.MaxSalePrice,
		p.WholesalePrice, p.CategoryID, p.SubcategoryID, p.BrandID, p.Estado, p.Inventory.MinStock,
	).Scan(&p.ID, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return mapWriteError("insert product", err)
	}
	p.Inventory.ProductID = p.ID
	p.Inventory.CurrentStock = 0
	return nil
}

// GetByID obtiene un producto con su inventario; nil, nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	return r.getOne(ctx, `p.id = $1`, id)
}

// GetByCode obtiene un producto por código.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	return r.getOne(ctx, `p.codigo = $1`, code)
}

func (r *ProductRepo) getOne(ctx context.Context, where string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM `+productFrom+` WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza datos y stock mínimo. El stock actual no se toca (solo vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		WITH p AS (
			UPDATE productos SET codigo = $2, descripcion = $3, unidad = $4, precio_costo = $5, precio_venta_min = $6,
			    precio_venta_max = $7, precio_por_mayor = $8, categoria_id = $9, subcategoria_id = $10, marca_id = $11,
			    estado = $12, version = version + 1, updated_at = now()
			WHERE id = $1 AND version = $13
			RETURNING id, version, updated_at
		), i AS (
			UPDATE inventarios SET stock_minimo = $14, updated_at = now()
			WHERE producto_id IN (SELECT id FROM p)
		)
		SELECT version, updated_at FROM p`,
		p.ID, p.Code, p.Description, p.Unit, p.CostPrice, p.MinSalePrice, p.MaxSalePrice, p.WholesalePrice,
		p.CategoryID, p.SubcategoryID, p.BrandID, p.Estado, p.Version, p.Inventory.MinStock,
	).Scan(&p.Version, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return versionMiss(ctx, r.q, "productos", p.ID)
		}
		return mapWriteError("update product", err)
	}
	return nil
}

// List lista productos con búsqueda por código, descripción, categoría y marca.
func (r *ProductRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Product, int, error) {
	return runList(ctx, r.q, productListSpec(), nil, f, scanProduct)
}

// ListLowStock productos activos con stock actual <= mínimo.
func (r *ProductRepo) ListLowStock(ctx context.Context) ([]*entity.Product, error) {
	b := &whereBuilder{}
	b.cond("i.stock_actual <= i.stock_minimo")
	activo := true
	spec := productListSpec()
	spec.orderBy = "i.stock_actual - i.stock_minimo, p.descripcion"
	list, _, err := runList(ctx, r.q, spec, b, repository.ListFilter{Estado: &activo}, scanProduct)
	return list, err
}

// SoftDelete desactiva el producto.
func (r *ProductRepo) SoftDelete(ctx context.Context, id int64, version *int64) error {
	return softDelete(ctx, r.q, "productos", id, version)
}

func productListSpec() listSpec {
	return listSpec{
		columns:    productColumns,
		from:       productFrom,
		searchCols: []string{"p.codigo", "p.descripcion", "c.nombre", "m.nombre"},
		estadoCol:  "p.estado",
		orderBy:    "p.descripcion",
	}
}
