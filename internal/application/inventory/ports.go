package inventory

import (
	"context"

	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// TxRepos repositorios de inventario atados a una misma transacción.
type TxRepos struct {
	Movements repository.InventoryMovementRepository
	Stock     repository.StockRepository
	Products  repository.ProductRepository
}

// TxRunner abre la transacción del kardex: el stock se bloquea con FOR UPDATE
// y todo lo escrito por fn se confirma o se descarta junto.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
