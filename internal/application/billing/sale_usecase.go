package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// SaleUseCase registra ventas y descuenta el inventario en una sola transacción.
// Una venta a crédito genera la cuenta por cobrar en la misma transacción.
type SaleUseCase struct {
	txRunner    BillingTxRunner
	inventoryUC InventoryUseCase
	clientRepo  repository.ClientRepository
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	now         func() time.Time
}

// NewSaleUseCase construye el caso de uso.
func NewSaleUseCase(
	txRunner BillingTxRunner,
	inventoryUC InventoryUseCase,
	clientRepo repository.ClientRepository,
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
) *SaleUseCase {
	return &SaleUseCase{
		txRunner:    txRunner,
		inventoryUC: inventoryUC,
		clientRepo:  clientRepo,
		productRepo: productRepo,
		saleRepo:    saleRepo,
		now:         time.Now,
	}
}

// salePrice precio 0 toma el precio de venta mínimo; no se vende bajo costo ni sobre el máximo.
func salePrice(p *entity.Product, price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsZero() {
		return p.MinSalePrice, nil
	}
	if price.LessThan(p.CostPrice) {
		return price, domain.NewFieldError("precio_unitario", "el precio no puede ser menor al costo ("+p.CostPrice.StringFixed(2)+")")
	}
	if p.MaxSalePrice.IsPositive() && price.GreaterThan(p.MaxSalePrice) {
		return price, domain.NewFieldError("precio_unitario", "el precio no puede superar el máximo ("+p.MaxSalePrice.StringFixed(2)+")")
	}
	return price, nil
}

// Create registra la venta. Sin stock suficiente en alguna línea no se guarda nada.
func (uc *SaleUseCase) Create(ctx context.Context, userID *int64, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	client, err := uc.clientRepo.GetByID(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}
	if client == nil || !client.Estado {
		return nil, domain.NewFieldError("id_cliente", "el cliente no existe o está inactivo")
	}
	date, due, err := documentDates(uc.now(), in.Date, in.PaymentType, in.DueDate)
	if err != nil {
		return nil, err
	}
	lines, total, err := buildLines(ctx, uc.productRepo, in.Lines, salePrice)
	if err != nil {
		return nil, err
	}

	s := &entity.Sale{
		Date:        date,
		ClientID:    client.ID,
		ClientName:  client.DisplayName(),
		WorkerID:    in.WorkerID,
		PaymentType: in.PaymentType,
		DueDate:     due,
		Total:       total,
		Lines:       lines,
	}
	err = uc.txRunner.RunBilling(ctx, func(r TxRepos) error {
		if err := r.Sales.Create(ctx, s); err != nil {
			return err
		}
		if err := applyLines(ctx, uc.inventoryUC, r, s.Lines, entity.MovementTypeOUT, entity.MovementSourceSale, s.ID, userID, "Venta"); err != nil {
			return err
		}
		if s.PaymentType != entity.PaymentTypeCredit {
			return nil
		}
		return r.Accounts.Create(ctx, &entity.Account{
			Kind:        entity.AccountReceivable,
			PartyID:     s.ClientID,
			SourceID:    s.ID,
			Total:       s.Total,
			Outstanding: s.Total,
			DueDate:     *s.DueDate,
		})
	})
	if err != nil {
		return nil, err
	}
	return toSaleResponse(s), nil
}

// Get venta con líneas.
func (uc *SaleUseCase) Get(ctx context.Context, id int64) (*dto.SaleResponse, error) {
	s, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	return toSaleResponse(s), nil
}

// List listado paginado (sin líneas).
func (uc *SaleUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.ListResponse[dto.SaleResponse], error) {
	list, total, err := uc.saleRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return dto.NewListResponse(items, f.Query, total), nil
}

// Annul anula la venta: devuelve el stock y cierra la cuenta por cobrar si no tiene pagos.
func (uc *SaleUseCase) Annul(ctx context.Context, userID *int64, id int64, version *int64) error {
	return uc.txRunner.RunBilling(ctx, func(r TxRepos) error {
		s, err := r.Sales.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if s == nil {
			return domain.ErrNotFound
		}
		if !s.Estado {
			return domain.ErrAlreadyAnnulled
		}
		if err := checkVersion(s.Version, version); err != nil {
			return err
		}
		if err := closeAccount(ctx, r, entity.AccountReceivable, s.ID); err != nil {
			return err
		}
		if err := reverseMovements(ctx, uc.inventoryUC, r, entity.MovementSourceSale, s.ID, userID, "Anulación de venta"); err != nil {
			return err
		}
		return r.Sales.Annul(ctx, s.ID)
	})
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:          s.ID,
		Date:        s.Date,
		ClientID:    s.ClientID,
		ClientName:  s.ClientName,
		WorkerID:    s.WorkerID,
		WorkerName:  s.WorkerName,
		PaymentType: s.PaymentType,
		DueDate:     s.DueDate,
		Total:       s.Total,
		Estado:      s.Estado,
		Version:     s.Version,
		Lines:       toLineResponses(s.Lines),
		CreatedAt:   s.CreatedAt,
	}
}
