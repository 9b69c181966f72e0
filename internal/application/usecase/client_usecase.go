package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// ClientUseCase CRUD de clientes naturales y jurídicos.
type ClientUseCase struct {
	repo            repository.ClientRepository
	representatives repository.RepresentativeRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, representatives repository.RepresentativeRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo, representatives: representatives}
}

// Create crea el cliente con su sub-registro.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.ClientRequest) (*dto.ClientResponse, error) {
	c := clientFromRequest(in)
	if err := uc.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// GetByID obtiene un cliente.
func (uc *ClientUseCase) GetByID(ctx context.Context, id int64) (*dto.ClientResponse, error) {
	c, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	return toClientResponse(c), nil
}

// Update reemplaza los datos si la versión coincide. El tipo no puede cambiar.
func (uc *ClientUseCase) Update(ctx context.Context, id int64, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	current, err := found(uc.repo.GetByID(ctx, id))
	if err != nil {
		return nil, err
	}
	c := clientFromRequest(in.ClientRequest)
	if c.Type != current.Type {
		return nil, domain.NewFieldError("tipo", "no se puede cambiar el tipo de cliente")
	}
	c.ID = id
	c.Version = in.Version
	if err := uc.validate(ctx, c); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// List listado paginado.
func (uc *ClientUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.ListResponse[dto.ClientResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, toClientResponse), f.Query, total), nil
}

// Delete baja lógica.
func (uc *ClientUseCase) Delete(ctx context.Context, id int64, version *int64) error {
	return uc.repo.SoftDelete(ctx, id, version)
}

func (uc *ClientUseCase) validate(ctx context.Context, c *entity.Client) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Juridico == nil || c.Juridico.RepresentativeID == nil {
		return nil
	}
	rep, err := uc.representatives.GetByID(ctx, *c.Juridico.RepresentativeID)
	if err != nil {
		return err
	}
	if rep == nil || !rep.Estado {
		return domain.NewFieldError("juridico.id_representante", "el representante no existe o está inactivo")
	}
	return nil
}

func clientFromRequest(in dto.ClientRequest) *entity.Client {
	c := &entity.Client{
		Type:    in.Type,
		Phone:   strings.TrimSpace(in.Phone),
		Email:   strings.ToLower(strings.TrimSpace(in.Email)),
		Address: strings.TrimSpace(in.Address),
		Estado:  activeOr(in.Estado),
	}
	if in.Natural != nil {
		c.Natural = &entity.NaturalPerson{
			Names:    strings.TrimSpace(in.Natural.Names),
			Surnames: strings.TrimSpace(in.Natural.Surnames),
			DNI:      in.Natural.DNI,
		}
	}
	if in.Juridico != nil {
		c.Juridico = &entity.LegalEntity{
			LegalName:        strings.TrimSpace(in.Juridico.LegalName),
			RUC:              in.Juridico.RUC,
			RepresentativeID: in.Juridico.RepresentativeID,
		}
	}
	return c
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	out := &dto.ClientResponse{
		ID:          c.ID,
		Type:        c.Type,
		DisplayName: c.DisplayName(),
		Document:    c.Document(),
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		Estado:      c.Estado,
		Version:     c.Version,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	if c.Natural != nil {
		out.Natural = &dto.NaturalPersonDTO{Names: c.Natural.Names, Surnames: c.Natural.Surnames, DNI: c.Natural.DNI}
	}
	if c.Juridico != nil {
		out.Juridico = &dto.LegalEntityDTO{
			LegalName:        c.Juridico.LegalName,
			RUC:              c.Juridico.RUC,
			RepresentativeID: c.Juridico.RepresentativeID,
		}
	}
	return out
}
