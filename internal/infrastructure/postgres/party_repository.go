package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

var (
	_ repository.WorkerRepository         = (*WorkerRepo)(nil)
	_ repository.RepresentativeRepository = (*RepresentativeRepo)(nil)
	_ repository.SupplierRepository       = (*SupplierRepo)(nil)
)

// WorkerRepo trabajadores sobre PostgreSQL.
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

const workerColumns = `id, nombres, apellidos, dni, telefono, email, direccion, cargo, estado, version, created_at, updated_at`

func scanWorker(row pgx.Row) (*entity.Worker, error) {
	var w entity.Worker
	if err := row.Scan(&w.ID, &w.Names, &w.Surnames, &w.DNI, &w.Phone, &w.Email, &w.Address, &w.Position,
		&w.Estado, &w.Version, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// Create inserta el trabajador.
func (r *WorkerRepo) Create(ctx context.Context, w *entity.Worker) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO trabajadores (nombres, apellidos, dni, telefono, email, direccion, cargo, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, version, created_at, updated_at`,
		w.Names, w.Surnames, w.DNI, w.Phone, w.Email, w.Address, w.Position, w.Estado,
	).Scan(&w.ID, &w.Version, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		return mapWriteError("insert worker", err)
	}
	return nil
}

// GetByID obtiene un trabajador; nil, nil si no existe.
func (r *WorkerRepo) GetByID(ctx context.Context, id int64) (*entity.Worker, error) {
	w, err := scanWorker(r.q.QueryRow(ctx, `SELECT `+workerColumns+` FROM trabajadores WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get worker: %w", err)
	}
	return w, nil
}

// Update actualiza con control de versión.
func (r *WorkerRepo) Update(ctx context.Context, w *entity.Worker) error {
	err := r.q.QueryRow(ctx, `
		UPDATE trabajadores
		SET nombres = $2, apellidos = $3, dni = $4, telefono = $5, email = $6, direccion = $7, cargo = $8, estado = $9,
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $10
		RETURNING version, updated_at`,
		w.ID, w.Names, w.Surnames, w.DNI, w.Phone, w.Email, w.Address, w.Position, w.Estado, w.Version,
	).Scan(&w.Version, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return versionMiss(ctx, r.q, "trabajadores", w.ID)
		}
		return mapWriteError("update worker", err)
	}
	return nil
}

// UpdateContact actualiza teléfono, email y dirección sin control de versión (edición del propio perfil).
func (r *WorkerRepo) UpdateContact(ctx context.Context, w *entity.Worker) error {
	err := r.q.QueryRow(ctx, `
		UPDATE trabajadores SET telefono = $2, email = $3, direccion = $4, version = version + 1, updated_at = now()
		WHERE id = $1
		RETURNING version, updated_at`,
		w.ID, w.Phone, w.Email, w.Address,
	).Scan(&w.Version, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return versionMiss(ctx, r.q, "trabajadores", w.ID)
		}
		return mapWriteError("update worker contact", err)
	}
	return nil
}

// List lista trabajadores; búsqueda por nombres, apellidos, dni y cargo.
func (r *WorkerRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Worker, int, error) {
	return runList(ctx, r.q, listSpec{
		columns:    workerColumns,
		from:       "trabajadores",
		searchCols: []string{"nombres", "apellidos", "dni", "cargo"},
		estadoCol:  "estado",
		orderBy:    "apellidos, nombres",
	}, nil, f, scanWorker)
}

// SoftDelete desactiva el trabajador.
func (r *WorkerRepo) SoftDelete(ctx context.Context, id int64, version *int64) error {
	return softDelete(ctx, r.q, "trabajadores", id, version)
}

// RepresentativeRepo representantes legales sobre PostgreSQL.
type RepresentativeRepo struct {
	q Querier
}

// NewRepresentativeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRepresentativeRepository(q Querier) *RepresentativeRepo {
	return &RepresentativeRepo{q: q}
}

const representativeColumns = `id, nombres, apellidos, dni, telefono, estado, version, created_at, updated_at`

func scanRepresentative(row pgx.Row) (*entity.Representative, error) {
	var rp entity.Representative
	if err := row.Scan(&rp.ID, &rp.Names, &rp.Surnames, &rp.DNI, &rp.Phone, &rp.Estado, &rp.Version, &rp.CreatedAt, &rp.UpdatedAt); err != nil {
		return nil, err
	}
	return &rp, nil
}

// Create inserta el representante.
func (r *RepresentativeRepo) Create(ctx context.Context, rp *entity.Representative) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO representantes (nombres, apellidos, dni, telefono, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, version, created_at, updated_at`,
		rp.Names, rp.Surnames, rp.DNI, rp.Phone, rp.Estado,
	).Scan(&rp.ID, &rp.Version, &rp.CreatedAt, &rp.UpdatedAt)
	if err != nil {
		return mapWriteError("insert representative", err)
	}
	return nil
}

// GetByID obtiene un representante; nil, nil si no existe.
func (r *RepresentativeRepo) GetByID(ctx context.Context, id int64) (*entity.Representative, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetByDNI búsqueda exacta por DNI.
func (r *RepresentativeRepo) GetByDNI(ctx context.Context, dni string) (*entity.Representative, error) {
	return r.getOne(ctx, `dni = $1`, dni)
}

func (r *RepresentativeRepo) getOne(ctx context.Context, where string, arg any) (*entity.Representative, error) {
	rp, err := scanRepresentative(r.q.QueryRow(ctx, `SELECT `+representativeColumns+` FROM representantes WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get representative: %w", err)
	}
	return rp, nil
}

// Update actualiza con control de versión.
func (r *RepresentativeRepo) Update(ctx context.Context, rp *entity.Representative) error {
	err := r.q.QueryRow(ctx, `
		UPDATE representantes SET nombres = $2, apellidos = $3, dni = $4, telefono = $5, estado = $6,
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $7
		RETURNING version, updated_at`,
		rp.ID, rp.Names, rp.Surnames, rp.DNI, rp.Phone, rp.Estado, rp.Version,
	).Scan(&rp.Version, &rp.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return versionMiss(ctx, r.q, "representantes", rp.ID)
		}
		return mapWriteError("update representative", err)
	}
	return nil
}

// List lista representantes.
func (r *RepresentativeRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Representative, int, error) {
	return runList(ctx, r.q, listSpec{
		columns:    representativeColumns,
		from:       "representantes",
		searchCols: []string{"nombres", "apellidos", "dni"},
		estadoCol:  "estado",
		orderBy:    "apellidos, nombres",
	}, nil, f, scanRepresentative)
}

// SoftDelete desactiva el representante.
func (r *RepresentativeRepo) SoftDelete(ctx context.Context, id int64, version *int64) error {
	return softDelete(ctx, r.q, "representantes", id, version)
}

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

const supplierColumns = `id, ruc, razon_social, telefono, email, direccion, estado, version, created_at, updated_at`

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.RUC, &s.BusinessName, &s.Phone, &s.Email, &s.Address, &s.Estado, &s.Version, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta el proveedor.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO proveedores (ruc, razon_social, telefono, email, direccion, estado)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version, created_at, updated_at`,
		s.RUC, s.BusinessName, s.Phone, s.Email, s.Address, s.Estado,
	).Scan(&s.ID, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return mapWriteError("insert supplier", err)
	}
	return nil
}

// GetByID obtiene un proveedor; nil, nil si no existe.
func (r *SupplierRepo) GetByID(ctx context.Context, id int64) (*entity.Supplier, error) {
	return r.getOne(ctx, `id = $1`, id)
}

// GetByRUC búsqueda exacta por RUC.
func (r *SupplierRepo) GetByRUC(ctx context.Context, ruc string) (*entity.Supplier, error) {
	return r.getOne(ctx, `ruc = $1`, ruc)
}

func (r *SupplierRepo) getOne(ctx context.Context, where string, arg any) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx, `SELECT `+supplierColumns+` FROM proveedores WHERE `+where, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// Update actualiza con control de versión.
func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	err := r.q.QueryRow(ctx, `
		UPDATE proveedores SET ruc = $2, razon_social = $3, telefono = $4, email = $5, direccion = $6, estado = $7,
		    version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $8
		RETURNING version, updated_at`,
		s.ID, s.RUC, s.BusinessName, s.Phone, s.Email, s.Address, s.Estado, s.Version,
	).Scan(&s.Version, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return versionMiss(ctx, r.q, "proveedores", s.ID)
		}
		return mapWriteError("update supplier", err)
	}
	return nil
}

// List lista proveedores; búsqueda por RUC y razón social.
func (r *SupplierRepo) List(ctx context.Context, f repository.ListFilter) ([]*entity.Supplier, int, error) {
	return runList(ctx, r.q, listSpec{
		columns:    supplierColumns,
		from:       "proveedores",
		searchCols: []string{"ruc", "razon_social", "email"},
		estadoCol:  "estado",
		orderBy:    "razon_social",
	}, nil, f, scanSupplier)
}

// SoftDelete desactiva el proveedor.
func (r *SupplierRepo) SoftDelete(ctx context.Context, id int64, version *int64) error {
	return softDelete(ctx, r.q, "proveedores", id, version)
}
