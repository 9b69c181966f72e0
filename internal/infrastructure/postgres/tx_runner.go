package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/autopartes-api/internal/application/billing"
	"github.com/jhoicas/autopartes-api/internal/application/inventory"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(repos inventory.TxRepos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(inventory.TxRepos{
			Movements: NewInventoryMovementRepository(tx),
			Stock:     NewStockRepository(tx),
			Products:  NewProductRepository(tx),
		})
	})
}

// RunBilling inicia una transacción con repos de inventario, documentos y cuentas.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(repos billing.TxRepos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(billing.TxRepos{
			Movements: NewInventoryMovementRepository(tx),
			Stock:     NewStockRepository(tx),
			Products:  NewProductRepository(tx),
			Purchases: NewPurchaseRepository(tx),
			Sales:     NewSaleRepository(tx),
			Accounts:  NewAccountRepository(tx),
		})
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
