package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/application/inventory"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo          repository.ProductRepository
	categories    repository.CategoryRepository
	subcategories repository.SubcategoryRepository
	brands        repository.BrandRepository
	txRunner      inventory.TxRunner
	inventoryUC   *inventory.RegisterMovementUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categories repository.CategoryRepository,
	subcategories repository.SubcategoryRepository,
	brands repository.BrandRepository,
	txRunner inventory.TxRunner,
	inventoryUC *inventory.RegisterMovementUseCase,
) *ProductUseCase {
	return &ProductUseCase{
		repo:          repo,
		categories:    categories,
		subcategories: subcategories,
		brands:        brands,
		txRunner:      txRunner,
		inventoryUC:   inventoryUC,
	}
}

// Create crea el producto con su inventario. Si stock_inicial > 0 registra una entrada en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, userID *int64, in dto.ProductRequest) (*dto.ProductResponse, error) {
	p := productFromRequest(in)
	if err := uc.validate(ctx, p, 0); err != nil {
		return nil, err
	}
	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		if err := r.Products.Create(ctx, p); err != nil {
			return err
		}
		if in.InitialStock <= 0 {
			return nil
		}
		mov, err := uc.inventoryUC.ApplyInTx(ctx, r.Movements, r.Stock, inventory.MovementInputDTO{
			UserID:    userID,
			ProductID: p.ID,
			Type:      entity.MovementTypeIN,
			Quantity:  in.InitialStock,
			Reason:    "Stock inicial",
			Source:    entity.MovementSourceManual,
		})
		if err != nil {
			return err
		}
		p.Inventory.CurrentStock = mov.StockAfter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// GetByID obtiene un producto con su inventario.
func (uc *ProductUseCase) GetByID(ctx context.Context, id int64) (*dto.ProductResponse, error) {
	p, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toProductResponse(p), nil
}

// Update actualiza datos y stock mínimo. stock_inicial se ignora.
func (uc *ProductUseCase) Update(ctx context.Context, id int64, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if _, err := found(uc.repo.GetByID(ctx, id)); err != nil {
		return nil, err
	}
	p := productFromRequest(in.ProductRequest)
	p.ID = id
	p.Version = in.Version
	if err := uc.validate(ctx, p, id); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List listado paginado.
func (uc *ProductUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.ListResponse[dto.ProductResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, toProductResponse), f.Query, total), nil
}

// LowStock productos activos en o bajo su stock mínimo.
func (uc *ProductUseCase) LowStock(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}
	return mapList(list, toProductResponse), nil
}

// Delete baja lógica.
func (uc *ProductUseCase) Delete(ctx context.Context, id int64, version *int64) error {
	return uc.repo.SoftDelete(ctx, id, version)
}

// validate reglas de precios, código único y referencias de catálogo. selfID excluye al propio producto.
func (uc *ProductUseCase) validate(ctx context.Context, p *entity.Product, selfID int64) error {
	if err := p.ValidatePrices(); err != nil {
		return err
	}
	existing, err := uc.repo.GetByCode(ctx, p.Code)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewFieldError("codigo", "ya existe un producto con ese código")
	}
	cat, err := uc.categories.GetByID(ctx, p.CategoryID)
	if err != nil {
		return err
	}
	if cat == nil || !cat.Estado {
		return domain.NewFieldError("id_categoria", "la categoría no existe o está inactiva")
	}
	if p.SubcategoryID != nil {
		sub, err := uc.subcategories.GetByID(ctx, *p.SubcategoryID)
		if err != nil {
			return err
		}
		if sub == nil || !sub.Estado {
			return domain.NewFieldError("id_subcategoria", "la subcategoría no existe o está inactiva")
		}
		if sub.CategoryID != p.CategoryID {
			return domain.NewFieldError("id_subcategoria", "la subcategoría no pertenece a la categoría")
		}
	}
	brand, err := uc.brands.GetByID(ctx, p.BrandID)
	if err != nil {
		return err
	}
	if brand == nil || !brand.Estado {
		return domain.NewFieldError("id_marca", "la marca no existe o está inactiva")
	}
	return nil
}

func productFromRequest(in dto.ProductRequest) *entity.Product {
	return &entity.Product{
		Code:           strings.TrimSpace(in.Code),
		Description:    strings.TrimSpace(in.Description),
		Unit:           strings.ToUpper(strings.TrimSpace(in.Unit)),
		CostPrice:      in.CostPrice,
		MinSalePrice:   in.MinSalePrice,
		MaxSalePrice:   in.MaxSalePrice,
		WholesalePrice: in.WholesalePrice,
		CategoryID:     in.CategoryID,
		SubcategoryID:  in.SubcategoryID,
		BrandID:        in.BrandID,
		Inventory:      entity.Inventory{MinStock: in.MinStock},
		Estado:         activeOr(in.Estado),
	}
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:             p.ID,
		Code:           p.Code,
		Description:    p.Description,
		Unit:           p.Unit,
		CostPrice:      p.CostPrice,
		MinSalePrice:   p.MinSalePrice,
		MaxSalePrice:   p.MaxSalePrice,
		WholesalePrice: p.WholesalePrice,
		CategoryID:     p.CategoryID,
		CategoryName:   p.CategoryName,
		SubcategoryID:  p.SubcategoryID,
		BrandID:        p.BrandID,
		BrandName:      p.BrandName,
		MinStock:       p.Inventory.MinStock,
		CurrentStock:   p.Inventory.CurrentStock,
		LowStock:       p.Inventory.LowStock(),
		Estado:         p.Estado,
		Version:        p.Version,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}
