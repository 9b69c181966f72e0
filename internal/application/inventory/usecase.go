package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
	"github.com/jhoicas/autopartes-api/pkg/listview"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional (IN, OUT)
// con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	movementRepo repository.InventoryMovementRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementRepo repository.InventoryMovementRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		movementRepo: movementRepo,
	}
}

// MovementInputDTO entrada para registrar un movimiento.
// Source MANUAL para ajustes; COMPRA/VENTA con ReferenceID cuando lo genera un documento.
type MovementInputDTO struct {
	UserID      *int64
	ProductID   int64
	Type        string
	Quantity    int
	Reason      string
	Source      string
	ReferenceID *int64
}

func (in MovementInputDTO) validate() error {
	if in.ProductID <= 0 {
		return domain.NewFieldError("id_producto", "el producto es obligatorio")
	}
	if in.Type != entity.MovementTypeIN && in.Type != entity.MovementTypeOUT {
		return domain.NewFieldError("tipo", "el tipo debe ser IN u OUT")
	}
	if in.Quantity <= 0 {
		return domain.NewFieldError("cantidad", "la cantidad debe ser mayor a cero")
	}
	return nil
}

// RegisterMovement valida, abre la transacción y aplica el movimiento.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInputDTO) (*entity.InventoryMovement, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if input.Source == "" {
		input.Source = entity.MovementSourceManual
	}
	product, err := uc.productRepo.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if !product.Estado {
		return nil, domain.NewFieldError("id_producto", "el producto está inactivo")
	}

	var mov *entity.InventoryMovement
	err = uc.txRunner.Run(ctx, func(r TxRepos) error {
		var err error
		mov, err = uc.ApplyInTx(ctx, r.Movements, r.Stock, input)
		return err
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// RegisterMovementFromRequest adapta el request HTTP al caso de uso (ajuste manual).
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, userID *int64, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	mov, err := uc.RegisterMovement(ctx, MovementInputDTO{
		UserID:    userID,
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Source:    entity.MovementSourceManual,
	})
	if err != nil {
		return nil, err
	}
	out := ToMovementResponse(mov)
	return &out, nil
}

// ApplyInTx aplica el movimiento con los repositorios de la transacción del caller
// (compras y ventas lo usan para que stock, kardex y documento se confirmen juntos).
// Bloquea el inventario del producto; una salida mayor al stock devuelve ErrInsufficientStock.
func (uc *RegisterMovementUseCase) ApplyInTx(
	ctx context.Context,
	movRepo repository.InventoryMovementRepository,
	stockRepo repository.StockRepository,
	input MovementInputDTO,
) (*entity.InventoryMovement, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	stock, err := stockRepo.GetForUpdate(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, domain.ErrNotFound
	}
	mov := &entity.InventoryMovement{
		ProductID:   input.ProductID,
		Type:        input.Type,
		Quantity:    input.Quantity,
		StockBefore: stock.CurrentStock,
		Reason:      input.Reason,
		Source:      input.Source,
		ReferenceID: input.ReferenceID,
		UserID:      input.UserID,
	}
	mov.StockAfter = stock.CurrentStock + mov.Delta()
	if mov.StockAfter < 0 {
		return nil, fmt.Errorf("%w: producto %d tiene %d, se requieren %d",
			domain.ErrInsufficientStock, input.ProductID, stock.CurrentStock, input.Quantity)
	}
	if err := stockRepo.SetStock(ctx, input.ProductID, mov.StockAfter); err != nil {
		return nil, err
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

// ListMovements kardex paginado.
func (uc *RegisterMovementUseCase) ListMovements(ctx context.Context, f repository.MovementFilter) (*dto.ListResponse[dto.MovementResponse], error) {
	list, total, err := uc.movementRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, ToMovementResponse(m))
	}
	return dto.NewListResponse(items, listview.Query{Page: f.Page, PageSize: f.PageSize}, total), nil
}

// ToMovementResponse mapea la entidad al DTO.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:          m.ID,
		ProductID:   m.ProductID,
		Type:        m.Type,
		Quantity:    m.Quantity,
		StockBefore: m.StockBefore,
		StockAfter:  m.StockAfter,
		Reason:      m.Reason,
		Source:      m.Source,
		ReferenceID: m.ReferenceID,
		UserID:      m.UserID,
		CreatedAt:   m.CreatedAt,
	}
}
