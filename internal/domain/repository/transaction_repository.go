package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
)

// PurchaseRepository puerto de persistencia para compras (cabecera + líneas).
type PurchaseRepository interface {
	Create(ctx context.Context, p *entity.Purchase) error
	GetByID(ctx context.Context, id int64) (*entity.Purchase, error)
	// GetForUpdate bloquea la cabecera (anulación).
	GetForUpdate(ctx context.Context, id int64) (*entity.Purchase, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Purchase, int, error)
	Annul(ctx context.Context, id int64) error
}

// SaleRepository puerto de persistencia para ventas (cabecera + líneas).
type SaleRepository interface {
	Create(ctx context.Context, s *entity.Sale) error
	GetByID(ctx context.Context, id int64) (*entity.Sale, error)
	GetForUpdate(ctx context.Context, id int64) (*entity.Sale, error)
	List(ctx context.Context, f ListFilter) ([]*entity.Sale, int, error)
	Annul(ctx context.Context, id int64) error
}

// AccountFilter filtros de cuentas por cobrar/pagar.
type AccountFilter struct {
	ListFilter
	Kind   string
	Status string // pendiente | vencida | pagada
	From   *time.Time
	To     *time.Time
	Today  time.Time
}

// AccountRepository puerto de persistencia para cuentas y sus pagos.
type AccountRepository interface {
	Create(ctx context.Context, a *entity.Account) error
	GetByID(ctx context.Context, kind string, id int64) (*entity.Account, error)
	GetForUpdate(ctx context.Context, kind string, id int64) (*entity.Account, error)
	GetBySource(ctx context.Context, kind string, sourceID int64) (*entity.Account, error)
	List(ctx context.Context, f AccountFilter) ([]*entity.Account, int, error)
	AddPayment(ctx context.Context, p *entity.Payment) error
	SetOutstanding(ctx context.Context, id int64, outstanding decimal.Decimal) error
	Close(ctx context.Context, id int64) error
}
