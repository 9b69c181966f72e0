package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// WorkerUseCase CRUD de trabajadores.
type WorkerUseCase struct {
	repo repository.WorkerRepository
}

// NewWorkerUseCase construye el caso de uso.
func NewWorkerUseCase(repo repository.WorkerRepository) *WorkerUseCase {
	return &WorkerUseCase{repo: repo}
}

// Create crea un trabajador.
func (uc *WorkerUseCase) Create(ctx context.Context, in dto.WorkerRequest) (*dto.WorkerResponse, error) {
	w := workerFromRequest(in)
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return toWorkerResponse(w), nil
}

// GetByID obtiene un trabajador.
func (uc *WorkerUseCase) GetByID(ctx context.Context, id int64) (*dto.WorkerResponse, error) {
	w, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toWorkerResponse(w), nil
}

// Update reemplaza los datos si la versión coincide.
func (uc *WorkerUseCase) Update(ctx context.Context, id int64, in dto.UpdateWorkerRequest) (*dto.WorkerResponse, error) {
	w := workerFromRequest(in.WorkerRequest)
	w.ID = id
	w.Version = in.Version
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List listado paginado.
func (uc *WorkerUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.ListResponse[dto.WorkerResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, toWorkerResponse), f.Query, total), nil
}

// Delete baja lógica.
func (uc *WorkerUseCase) Delete(ctx context.Context, id int64, version *int64) error {
	return uc.repo.SoftDelete(ctx, id, version)
}

func workerFromRequest(in dto.WorkerRequest) *entity.Worker {
	return &entity.Worker{
		Names:    strings.TrimSpace(in.Names),
		Surnames: strings.TrimSpace(in.Surnames),
		DNI:      in.DNI,
		Phone:    strings.TrimSpace(in.Phone),
		Email:    strings.ToLower(strings.TrimSpace(in.Email)),
		Address:  strings.TrimSpace(in.Address),
		Position: strings.TrimSpace(in.Position),
		Estado:   activeOr(in.Estado),
	}
}

func toWorkerResponse(w *entity.Worker) *dto.WorkerResponse {
	return &dto.WorkerResponse{
		ID:        w.ID,
		Names:     w.Names,
		Surnames:  w.Surnames,
		DNI:       w.DNI,
		Phone:     w.Phone,
		Email:     w.Email,
		Address:   w.Address,
		Position:  w.Position,
		Estado:    w.Estado,
		Version:   w.Version,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// RepresentativeUseCase CRUD de representantes legales.
type RepresentativeUseCase struct {
	repo repository.RepresentativeRepository
}

// NewRepresentativeUseCase construye el caso de uso.
func NewRepresentativeUseCase(repo repository.RepresentativeRepository) *RepresentativeUseCase {
	return &RepresentativeUseCase{repo: repo}
}

// Create crea un representante; el DNI es único.
func (uc *RepresentativeUseCase) Create(ctx context.Context, in dto.RepresentativeRequest) (*dto.RepresentativeResponse, error) {
	if err := uc.checkDNI(ctx, in.DNI, 0); err != nil {
		return nil, err
	}
	r := representativeFromRequest(in)
	if err := uc.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return toRepresentativeResponse(r), nil
}

// GetByID obtiene un representante.
func (uc *RepresentativeUseCase) GetByID(ctx context.Context, id int64) (*dto.RepresentativeResponse, error) {
	r, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toRepresentativeResponse(r), nil
}

// GetByDNI búsqueda exacta por DNI.
func (uc *RepresentativeUseCase) GetByDNI(ctx context.Context, dni string) (*dto.RepresentativeResponse, error) {
	r, err := found(uc.repo.GetByDNI(ctx, strings.TrimSpace(dni)))
	if err != nil {
		return nil, err
	}
	return toRepresentativeResponse(r), nil
}

// Update reemplaza los datos si la versión coincide.
func (uc *RepresentativeUseCase) Update(ctx context.Context, id int64, in dto.UpdateRepresentativeRequest) (*dto.RepresentativeResponse, error) {
	if err := uc.checkDNI(ctx, in.DNI, id); err != nil {
		return nil, err
	}
	r := representativeFromRequest(in.RepresentativeRequest)
	r.ID = id
	r.Version = in.Version
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List listado paginado.
func (uc *RepresentativeUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.ListResponse[dto.RepresentativeResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, toRepresentativeResponse), f.Query, total), nil
}

// Delete baja lógica.
func (uc *RepresentativeUseCase) Delete(ctx context.Context, id int64, version *int64) error {
	return uc.repo.SoftDelete(ctx, id, version)
}

func (uc *RepresentativeUseCase) checkDNI(ctx context.Context, dni string, selfID int64) error {
	existing, err := uc.repo.GetByDNI(ctx, dni)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewFieldError("dni", "ya existe un representante con ese DNI")
	}
	return nil
}

func representativeFromRequest(in dto.RepresentativeRequest) *entity.Representative {
	return &entity.Representative{
		Names:    strings.TrimSpace(in.Names),
		Surnames: strings.TrimSpace(in.Surnames),
		DNI:      in.DNI,
		Phone:    strings.TrimSpace(in.Phone),
		Estado:   activeOr(in.Estado),
	}
}

func toRepresentativeResponse(r *entity.Representative) *dto.RepresentativeResponse {
	return &dto.RepresentativeResponse{
		ID:        r.ID,
		Names:     r.Names,
		Surnames:  r.Surnames,
		DNI:       r.DNI,
		Phone:     r.Phone,
		Estado:    r.Estado,
		Version:   r.Version,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

// Create crea un proveedor; el RUC es único.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := uc.checkRUC(ctx, in.RUC, 0); err != nil {
		return nil, err
	}
	s := supplierFromRequest(in)
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id int64) (*dto.SupplierResponse, error) {
	s, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// GetByRUC búsqueda exacta por RUC.
func (uc *SupplierUseCase) GetByRUC(ctx context.Context, ruc string) (*dto.SupplierResponse, error) {
	s, err := found(uc.repo.GetByRUC(ctx, strings.TrimSpace(ruc)))
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// Update reemplaza los datos si la versión coincide.
func (uc *SupplierUseCase) Update(ctx context.Context, id int64, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	if err := uc.checkRUC(ctx, in.RUC, id); err != nil {
		return nil, err
	}
	s := supplierFromRequest(in.SupplierRequest)
	s.ID = id
	s.Version = in.Version
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List listado paginado.
func (uc *SupplierUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.ListResponse[dto.SupplierResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, toSupplierResponse), f.Query, total), nil
}

// Delete baja lógica.
func (uc *SupplierUseCase) Delete(ctx context.Context, id int64, version *int64) error {
	return uc.repo.SoftDelete(ctx, id, version)
}

func (uc *SupplierUseCase) checkRUC(ctx context.Context, ruc string, selfID int64) error {
	existing, err := uc.repo.GetByRUC(ctx, ruc)
	if err != nil {
		return err
	}
	if existing != nil && existing.ID != selfID {
		return domain.NewFieldError("ruc", "ya existe un proveedor con ese RUC")
	}
	return nil
}

func supplierFromRequest(in dto.SupplierRequest) *entity.Supplier {
	return &entity.Supplier{
		RUC:          in.RUC,
		BusinessName: strings.TrimSpace(in.BusinessName),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Address:      strings.TrimSpace(in.Address),
		Estado:       activeOr(in.Estado),
	}
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:           s.ID,
		RUC:          s.RUC,
		BusinessName: s.BusinessName,
		Phone:        s.Phone,
		Email:        s.Email,
		Address:      s.Address,
		Estado:       s.Estado,
		Version:      s.Version,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}
