package billing

import (
	"context"

	"github.com/jhoicas/autopartes-api/internal/application/inventory"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción de compras, ventas y cuentas.
type TxRepos struct {
	Movements repository.InventoryMovementRepository
	Stock     repository.StockRepository
	Products  repository.ProductRepository
	Purchases repository.PurchaseRepository
	Sales     repository.SaleRepository
	Accounts  repository.AccountRepository
}

// BillingTxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y documentos.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(r TxRepos) error) error
}

// InventoryUseCase integra compras y ventas con el inventario.
// ApplyInTx usa los repositorios del caller (misma transacción); si retorna error
// (ej: ErrInsufficientStock), el caller hace rollback.
type InventoryUseCase interface {
	ApplyInTx(
		ctx context.Context,
		movRepo repository.InventoryMovementRepository,
		stockRepo repository.StockRepository,
		input inventory.MovementInputDTO,
	) (*entity.InventoryMovement, error)
}

// ReceiptPDFGenerator genera el comprobante de una venta.
type ReceiptPDFGenerator interface {
	GenerateSaleReceipt(ctx context.Context, sale *entity.Sale, client *entity.Client) ([]byte, error)
}
