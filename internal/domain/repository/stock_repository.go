package repository

import (
	"context"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
)

// StockRepository puerto para el inventario 1:1 de cada producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). nil, nil si el producto no existe.
	GetForUpdate(ctx context.Context, productID int64) (*entity.Inventory, error)
	SetStock(ctx context.Context, productID int64, current int) error
}
