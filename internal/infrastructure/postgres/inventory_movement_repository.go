package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo kardex sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

const movementColumns = `id, producto_id, tipo, cantidad, stock_anterior, stock_posterior, motivo, origen, referencia_id, usuario_id, created_at`

func scanMovement(row pgx.Row) (*entity.InventoryMovement, error) {
	var m entity.InventoryMovement
	if err := row.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.StockBefore, &m.StockAfter,
		&m.Reason, &m.Source, &m.ReferenceID, &m.UserID, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

// Create registra el movimiento.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO movimientos_inventario (producto_id, tipo, cantidad, stock_anterior, stock_posterior, motivo, origen, referencia_id, usuario_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`,
		m.ProductID, m.Type, m.Quantity, m.StockBefore, m.StockAfter, m.Reason, m.Source, m.ReferenceID, m.UserID,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return mapWriteError("insert inventory movement", err)
	}
	return nil
}

// ListByReference movimientos generados por una compra o venta.
func (r *InventoryMovementRepo) ListByReference(ctx context.Context, source string, referenceID int64) ([]*entity.InventoryMovement, error) {
	rows, err := r.q.Query(ctx, `SELECT `+movementColumns+` FROM movimientos_inventario
		WHERE origen = $1 AND referencia_id = $2 ORDER BY id`, source, referenceID)
	if err != nil {
		return nil, fmt.Errorf("list movements by reference: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// List kardex filtrado por producto, tipo y rango de fechas, más reciente primero.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, int, error) {
	b := &whereBuilder{}
	if f.ProductID != nil {
		b.cond("producto_id = " + b.arg(*f.ProductID))
	}
	if f.Type != "" {
		b.cond("tipo = " + b.arg(f.Type))
	}
	if f.From != nil {
		b.cond("created_at >= " + b.arg(*f.From))
	}
	if f.To != nil {
		b.cond("created_at < " + b.arg(*f.To))
	}
	lf := repository.ListFilter{}
	lf.Page, lf.PageSize = f.Page, f.PageSize
	return runList(ctx, r.q, listSpec{
		columns: movementColumns,
		from:    "movimientos_inventario",
		orderBy: "created_at DESC, id DESC",
	}, b, lf, scanMovement)
}
