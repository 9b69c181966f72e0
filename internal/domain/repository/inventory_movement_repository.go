package repository

import (
	"context"
	"time"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
)

// MovementFilter filtros del kardex.
type MovementFilter struct {
	ProductID *int64
	Type      string
	From, To  *time.Time
	Page      int
	PageSize  int
}

// InventoryMovementRepository define el puerto de persistencia para movimientos de inventario.
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByReference(ctx context.Context, source string, referenceID int64) ([]*entity.InventoryMovement, error)
	List(ctx context.Context, f MovementFilter) ([]*entity.InventoryMovement, int, error)
}
