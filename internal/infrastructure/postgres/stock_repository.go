package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetForUpdate obtiene el inventario y bloquea la fila para update (SELECT FOR UPDATE).
func (r *StockRepo) GetForUpdate(ctx context.Context, productID int64) (*entity.Inventory, error) {
	var inv entity.Inventory
	err := r.q.QueryRow(ctx, `
		SELECT producto_id, stock_minimo, stock_actual, updated_at
		FROM inventarios WHERE producto_id = $1
		FOR UPDATE`, productID,
	).Scan(&inv.ProductID, &inv.MinStock, &inv.CurrentStock, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &inv, nil
}

// SetStock fija el stock actual (la fila ya debe estar bloqueada por GetForUpdate).
func (r *StockRepo) SetStock(ctx context.Context, productID int64, current int) error {
	_, err := r.q.Exec(ctx, `UPDATE inventarios SET stock_actual = $2, updated_at = now() WHERE producto_id = $1`, productID, current)
	if err != nil {
		return mapWriteError("set stock", err)
	}
	return nil
}
