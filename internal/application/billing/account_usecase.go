package billing

import (
	"context"
	"time"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// AccountUseCase cuentas por cobrar y por pagar: consulta y registro de pagos.
type AccountUseCase struct {
	txRunner    BillingTxRunner
	accountRepo repository.AccountRepository
	now         func() time.Time
}

// NewAccountUseCase construye el caso de uso.
func NewAccountUseCase(txRunner BillingTxRunner, accountRepo repository.AccountRepository) *AccountUseCase {
	return &AccountUseCase{txRunner: txRunner, accountRepo: accountRepo, now: time.Now}
}

// List cuentas del tipo indicado; Status filtra por pendiente, vencida o pagada respecto a hoy.
func (uc *AccountUseCase) List(ctx context.Context, f repository.AccountFilter) (*dto.ListResponse[dto.AccountResponse], error) {
	switch f.Status {
	case "", entity.AccountStatusPending, entity.AccountStatusOverdue, entity.AccountStatusPaid:
	default:
		return nil, domain.NewFieldError("estado", "el estado debe ser pendiente, vencida o pagada")
	}
	now := uc.now()
	f.Today = truncateDay(now)
	list, total, err := uc.accountRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.AccountResponse, 0, len(list))
	for _, a := range list {
		items = append(items, *toAccountResponse(a, now))
	}
	return dto.NewListResponse(items, f.Query, total), nil
}

// Get cuenta con su historial de pagos.
func (uc *AccountUseCase) Get(ctx context.Context, kind string, id int64) (*dto.AccountResponse, error) {
	a, err := uc.accountRepo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, domain.ErrNotFound
	}
	return toAccountResponse(a, uc.now()), nil
}

// Pay aplica un abono con la cuenta bloqueada. Un monto mayor al saldo devuelve ErrOverpayment.
func (uc *AccountUseCase) Pay(ctx context.Context, kind string, id int64, userID *int64, in dto.PaymentRequest) (*dto.AccountResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.NewFieldError("monto", "el monto debe ser mayor a cero")
	}
	paidAt := uc.now()
	if in.PaidAt != nil && !in.PaidAt.IsZero() {
		paidAt = *in.PaidAt
	}
	err := uc.txRunner.RunBilling(ctx, func(r TxRepos) error {
		a, err := r.Accounts.GetForUpdate(ctx, kind, id)
		if err != nil {
			return err
		}
		if a == nil {
			return domain.ErrNotFound
		}
		if !a.Estado {
			return domain.ErrAlreadyAnnulled
		}
		if err := checkVersion(a.Version, in.Version); err != nil {
			return err
		}
		if in.Amount.GreaterThan(a.Outstanding) {
			return domain.ErrOverpayment
		}
		if err := r.Accounts.AddPayment(ctx, &entity.Payment{
			AccountID: a.ID,
			Amount:    in.Amount,
			Method:    in.Method,
			Note:      in.Note,
			PaidAt:    paidAt,
			UserID:    userID,
		}); err != nil {
			return err
		}
		return r.Accounts.SetOutstanding(ctx, a.ID, a.Outstanding.Sub(in.Amount))
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, kind, id)
}

func toAccountResponse(a *entity.Account, now time.Time) *dto.AccountResponse {
	out := &dto.AccountResponse{
		ID:          a.ID,
		Kind:        a.Kind,
		PartyID:     a.PartyID,
		PartyName:   a.PartyName,
		SourceID:    a.SourceID,
		Total:       a.Total,
		Outstanding: a.Outstanding,
		DueDate:     a.DueDate,
		Status:      a.Status(now),
		Estado:      a.Estado,
		Version:     a.Version,
		CreatedAt:   a.CreatedAt,
	}
	for _, p := range a.Payments {
		out.Payments = append(out.Payments, dto.PaymentResponse{
			ID:     p.ID,
			Amount: p.Amount,
			Method: p.Method,
			Note:   p.Note,
			PaidAt: p.PaidAt,
			UserID: p.UserID,
		})
	}
	return out
}
