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

// PurchaseUseCase registra compras: cabecera, líneas, entradas de inventario y,
// si es a crédito, la cuenta por pagar; todo en una sola transacción.
type PurchaseUseCase struct {
	txRunner     BillingTxRunner
	inventoryUC  InventoryUseCase
	supplierRepo repository.SupplierRepository
	productRepo  repository.ProductRepository
	purchaseRepo repository.PurchaseRepository
	now          func() time.Time
}

// NewPurchaseUseCase construye el caso de uso.
func NewPurchaseUseCase(
	txRunner BillingTxRunner,
	inventoryUC InventoryUseCase,
	supplierRepo repository.SupplierRepository,
	productRepo repository.ProductRepository,
	purchaseRepo repository.PurchaseRepository,
) *PurchaseUseCase {
	return &PurchaseUseCase{
		txRunner:     txRunner,
		inventoryUC:  inventoryUC,
		supplierRepo: supplierRepo,
		productRepo:  productRepo,
		purchaseRepo: purchaseRepo,
		now:          time.Now,
	}
}

// purchasePrice precio 0 toma el costo del producto.
func purchasePrice(p *entity.Product, price decimal.Decimal) (decimal.Decimal, error) {
	if price.IsZero() {
		return p.CostPrice, nil
	}
	return price, nil
}

// Create registra la compra.
func (uc *PurchaseUseCase) Create(ctx context.Context, userID *int64, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || !supplier.Estado {
		return nil, domain.NewFieldError("id_proveedor", "el proveedor no existe o está inactivo")
	}
	date, due, err := documentDates(uc.now(), in.Date, in.PaymentType, in.DueDate)
	if err != nil {
		return nil, err
	}
	lines, total, err := buildLines(ctx, uc.productRepo, in.Lines, purchasePrice)
	if err != nil {
		return nil, err
	}

	p := &entity.Purchase{
		Date:         date,
		SupplierID:   supplier.ID,
		SupplierName: supplier.BusinessName,
		WorkerID:     in.WorkerID,
		DocumentNo:   in.DocumentNo,
		PaymentType:  in.PaymentType,
		DueDate:      due,
		Total:        total,
		Lines:        lines,
	}
	err = uc.txRunner.RunBilling(ctx, func(r TxRepos) error {
		if err := r.Purchases.Create(ctx, p); err != nil {
			return err
		}
		if err := applyLines(ctx, uc.inventoryUC, r, p.Lines, entity.MovementTypeIN, entity.MovementSourcePurchase, p.ID, userID, "Compra"); err != nil {
			return err
		}
		if p.PaymentType != entity.PaymentTypeCredit {
			return nil
		}
		return r.Accounts.Create(ctx, &entity.Account{
			Kind:        entity.AccountPayable,
			PartyID:     p.SupplierID,
			SourceID:    p.ID,
			Total:       p.Total,
			Outstanding: p.Total,
			DueDate:     *p.DueDate,
		})
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(p), nil
}

// Get compra con líneas.
func (uc *PurchaseUseCase) Get(ctx context.Context, id int64) (*dto.PurchaseResponse, error) {
	p, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return toPurchaseResponse(p), nil
}

// List listado paginado (sin líneas).
func (uc *PurchaseUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.ListResponse[dto.PurchaseResponse], error) {
	list, total, err := uc.purchaseRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PurchaseResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPurchaseResponse(p))
	}
	return dto.NewListResponse(items, f.Query, total), nil
}

// Annul anula la compra: revierte las entradas (falla si el stock ya se vendió) y cierra la cuenta por pagar.
func (uc *PurchaseUseCase) Annul(ctx context.Context, userID *int64, id int64, version *int64) error {
	return uc.txRunner.RunBilling(ctx, func(r TxRepos) error {
		p, err := r.Purchases.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if !p.Estado {
			return domain.ErrAlreadyAnnulled
		}
		if err := checkVersion(p.Version, version); err != nil {
			return err
		}
		if err := closeAccount(ctx, r, entity.AccountPayable, p.ID); err != nil {
			return err
		}
		if err := reverseMovements(ctx, uc.inventoryUC, r, entity.MovementSourcePurchase, p.ID, userID, "Anulación de compra"); err != nil {
			return err
		}
		return r.Purchases.Annul(ctx, p.ID)
	})
}

// documentDates fecha del documento (hoy si no viene) y vencimiento obligatorio a crédito.
func documentDates(now time.Time, date *time.Time, paymentType string, due *time.Time) (time.Time, *time.Time, error) {
	d := now
	if date != nil && !date.IsZero() {
		d = *date
	}
	switch paymentType {
	case entity.PaymentTypeCash:
		return d, nil, nil
	case entity.PaymentTypeCredit:
		if due == nil || due.IsZero() {
			return d, nil, domain.NewFieldError("fecha_vencimiento", "la fecha de vencimiento es obligatoria para pagos a crédito")
		}
		if due.Before(truncateDay(d)) {
			return d, nil, domain.NewFieldError("fecha_vencimiento", "el vencimiento no puede ser anterior a la fecha del documento")
		}
		return d, due, nil
	default:
		return d, nil, domain.NewFieldError("tipo_pago", "el tipo de pago debe ser CONTADO o CREDITO")
	}
}

func truncateDay(t time.Time) time.Time {
	y, m, dd := t.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, t.Location())
}

func toPurchaseResponse(p *entity.Purchase) *dto.PurchaseResponse {
	return &dto.PurchaseResponse{
		ID:           p.ID,
		Date:         p.Date,
		SupplierID:   p.SupplierID,
		SupplierName: p.SupplierName,
		WorkerID:     p.WorkerID,
		DocumentNo:   p.DocumentNo,
		PaymentType:  p.PaymentType,
		DueDate:      p.DueDate,
		Total:        p.Total,
		Estado:       p.Estado,
		Version:      p.Version,
		Lines:        toLineResponses(p.Lines),
		CreatedAt:    p.CreatedAt,
	}
}
