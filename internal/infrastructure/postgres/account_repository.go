package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

// AccountRepo cuentas por cobrar y por pagar (misma tabla, columna tipo).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

// el nombre del tercero depende del tipo: cliente (COBRAR) o proveedor (PAGAR)
const accountColumns = `a.id, a.tipo, a.tercero_id,
	COALESCE(pr.razon_social, cj.razon_social, cn.nombres || ' ' || cn.apellidos, ''),
	a.origen_id, a.monto_total, a.saldo_pendiente, a.fecha_vencimiento, a.estado, a.version, a.created_at, a.updated_at`

const accountFrom = `cuentas a
	LEFT JOIN proveedores pr ON a.tipo = 'PAGAR' AND pr.id = a.tercero_id
	LEFT JOIN clientes_juridicos cj ON a.tipo = 'COBRAR' AND cj.cliente_id = a.tercero_id
	LEFT JOIN clientes_naturales cn ON a.tipo = 'COBRAR' AND cn.cliente_id = a.tercero_id`

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	if err := row.Scan(&a.ID, &a.Kind, &a.PartyID, &a.PartyName, &a.SourceID, &a.Total, &a.Outstanding,
		&a.DueDate, &a.Estado, &a.Version, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserta la cuenta (saldo = total).
func (r *AccountRepo) Create(ctx context.Context, a *entity.Account) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO cuentas (tipo, tercero_id, origen_id, monto_total, saldo_pendiente, fecha_vencimiento)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, estado, version, created_at, updated_at`,
		a.Kind, a.PartyID, a.SourceID, a.Total, a.Outstanding, a.DueDate,
	).Scan(&a.ID, &a.Estado, &a.Version, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return mapWriteError("insert account", err)
	}
	return nil
}

// GetByID cuenta con sus pagos; nil, nil si no existe o es de otro tipo.
func (r *AccountRepo) GetByID(ctx context.Context, kind string, id int64) (*entity.Account, error) {
	return r.get(ctx, `a.tipo = $1 AND a.id = $2`, "", kind, id)
}

// GetForUpdate ídem bloqueando la fila de la cuenta.
func (r *AccountRepo) GetForUpdate(ctx context.Context, kind string, id int64) (*entity.Account, error) {
	return r.get(ctx, `a.tipo = $1 AND a.id = $2`, " FOR UPDATE OF a", kind, id)
}

// GetBySource cuenta generada por una venta o compra.
func (r *AccountRepo) GetBySource(ctx context.Context, kind string, sourceID int64) (*entity.Account, error) {
	return r.get(ctx, `a.tipo = $1 AND a.origen_id = $2`, " FOR UPDATE OF a", kind, sourceID)
}

func (r *AccountRepo) get(ctx context.Context, where, lock string, args ...any) (*entity.Account, error) {
	a, err := scanAccount(r.q.QueryRow(ctx, `SELECT `+accountColumns+` FROM `+accountFrom+` WHERE `+where+lock, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	payments, err := r.listPayments(ctx, a.ID)
	if err != nil {
		return nil, err
	}
	a.Payments = payments
	return a, nil
}

func (r *AccountRepo) listPayments(ctx context.Context, accountID int64) ([]entity.Payment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, cuenta_id, monto, metodo, nota, fecha_pago, usuario_id
		FROM pagos WHERE cuenta_id = $1 ORDER BY fecha_pago, id`, accountID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Payment, 0)
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.AccountID, &p.Amount, &p.Method, &p.Note, &p.PaidAt, &p.UserID); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// List cuentas de un tipo con filtros de estado derivado y rango de vencimiento.
func (r *AccountRepo) List(ctx context.Context, f repository.AccountFilter) ([]*entity.Account, int, error) {
	b := &whereBuilder{}
	b.cond("a.tipo = " + b.arg(f.Kind))
	switch f.Status {
	case entity.AccountStatusPaid:
		b.cond("a.saldo_pendiente = 0")
	case entity.AccountStatusOverdue:
		b.cond("a.saldo_pendiente > 0 AND a.fecha_vencimiento < " + b.arg(f.Today))
	case entity.AccountStatusPending:
		b.cond("a.saldo_pendiente > 0 AND a.fecha_vencimiento >= " + b.arg(f.Today))
	}
	if f.From != nil {
		b.cond("a.fecha_vencimiento >= " + b.arg(*f.From))
	}
	if f.To != nil {
		b.cond("a.fecha_vencimiento <= " + b.arg(*f.To))
	}
	return runList(ctx, r.q, listSpec{
		columns:    accountColumns,
		from:       accountFrom,
		searchCols: []string{"pr.razon_social", "pr.ruc", "cj.razon_social", "cj.ruc", "cn.nombres", "cn.apellidos", "cn.dni"},
		estadoCol:  "a.estado",
		orderBy:    "a.fecha_vencimiento, a.id",
	}, b, f.ListFilter, scanAccount)
}

// AddPayment registra un abono (la cuenta ya debe estar bloqueada).
func (r *AccountRepo) AddPayment(ctx context.Context, p *entity.Payment) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO pagos (cuenta_id, monto, metodo, nota, fecha_pago, usuario_id)
		VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.AccountID, p.Amount, p.Method, p.Note, p.PaidAt, p.UserID,
	).Scan(&p.ID)
	if err != nil {
		return mapWriteError("insert payment", err)
	}
	return nil
}

// SetOutstanding actualiza el saldo pendiente.
func (r *AccountRepo) SetOutstanding(ctx context.Context, id int64, outstanding decimal.Decimal) error {
	_, err := r.q.Exec(ctx, `UPDATE cuentas SET saldo_pendiente = $2, version = version + 1, updated_at = now() WHERE id = $1`, id, outstanding)
	if err != nil {
		return mapWriteError("set outstanding", err)
	}
	return nil
}

// Close desactiva la cuenta (anulación del documento de origen).
func (r *AccountRepo) Close(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE cuentas SET estado = FALSE, version = version + 1, updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("close account: %w", err)
	}
	return nil
}
