package repository

import (
	"context"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
)

// WorkerRepository puerto de persistencia para trabajadores.
type WorkerRepository interface {
	Create(ctx context.Context, w *entity.Worker) error
	GetByID(ctx context.Context, id int64) (*entity.Worker, error)
	Update(ctx context.Context, w *entity.Worker) error
	UpdateContact(ctx context.Context, w *entity.Worker) error
	List(ctx context.Context, f ListFilter) ([]*entity.Worker, int, error)
	SoftDelete(ctx context.Context, id int64, version *int64) error
}

// ClientRepository puerto de persistencia para clientes con su sub-registro.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	Update(ctx context.Context, c *entity.Client) error
	List(ctx context.Context, f ListFilter) ([]*entity.Client, int, error)
	SoftDelete(ctx context.Context, id int64, version *int64) error
}

// RepresentativeRepository puerto de persistencia para representantes legales.
type RepresentativeRepository interface {
	Create(ctx context.Context, r *entity.Representative) error
	GetByID(ctx context.Context, id int64) (*entity.Representative, error)
	GetByDNI(ctx context.Context, dni string) (*entity.Representative, error)
	Update(ctx context.Context, r *entity.Representative) error
	List(ctx context.Context, f ListFilter) ([]*entity.Representative, int, error)
	SoftDelete(ctx context.Context, id int64, version *int64) error
}

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(ctx context.Context, s *entity.Supplier) error
	GetByID(ctx context.Context, id int64) (*entity.Supplier, error)
	GetByRUC(ctx context.Context, ruc string) (*entity.Supplier, error)
	Update(ctx context.Context, s *entity.Supplier) error
	List(ctx context.Context, f ListFilter) ([]*entity.Supplier, int, error)
	SoftDelete(ctx context.Context, id int64, version *int64) error
}
