package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
	"github.com/jhoicas/autopartes-api/pkg/permission"
)

// UserUseCase administración de usuarios y sus módulos. El alta vive en auth.
type UserUseCase struct {
	repo    repository.UserRepository
	modules repository.ModuleRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, modules repository.ModuleRepository) *UserUseCase {
	return &UserUseCase{repo: repo, modules: modules}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id int64) (*dto.UserResponse, error) {
	u, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(u), nil
}

// List listado paginado.
func (uc *UserUseCase) List(ctx context.Context, f repository.ListFilter) (*dto.ListResponse[dto.UserResponse], error) {
	list, total, err := uc.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.NewListResponse(mapList(list, ToUserResponse), f.Query, total), nil
}

// SetModules reemplaza los módulos asignados. Los slugs fuera del catálogo se rechazan.
func (uc *UserUseCase) SetModules(ctx context.Context, id int64, in dto.SetModulesRequest) (*dto.UserResponse, error) {
	if _, err := uc.GetByID(ctx, id); err != nil {
		return nil, err
	}
	ids, err := uc.ResolveModules(ctx, in.Modules)
	if err != nil {
		return nil, err
	}
	if _, err := uc.repo.SetModules(ctx, id, ids, in.Version); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, id)
}

// ResolveModules convierte slugs en IDs del catálogo, sin duplicados.
func (uc *UserUseCase) ResolveModules(ctx context.Context, slugs []string) ([]int64, error) {
	seen := make(map[permission.Slug]bool, len(slugs))
	valid := make([]string, 0, len(slugs))
	for _, s := range slugs {
		slug, err := permission.ParseSlug(s)
		if err != nil {
			return nil, domain.NewFieldError("modulos", fmt.Sprintf("módulo desconocido: %q", s))
		}
		if seen[slug] {
			continue
		}
		seen[slug] = true
		valid = append(valid, string(slug))
	}
	ids := make([]int64, 0, len(valid))
	if len(valid) == 0 {
		return ids, nil
	}
	mods, err := uc.modules.GetBySlugs(ctx, valid)
	if err != nil {
		return nil, err
	}
	if len(mods) != len(valid) {
		return nil, domain.NewFieldError("modulos", "algún módulo no está registrado")
	}
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	return ids, nil
}

// Delete desactiva un usuario. Nadie puede desactivarse a sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, actorID, id int64, version *int64) error {
	if actorID == id {
		return domain.NewFieldError("id", "no puede desactivar su propio usuario")
	}
	return uc.repo.SoftDelete(ctx, id, version)
}

// ModulesOf módulos de la entidad con slug válido.
func ModulesOf(list []entity.Module) []permission.Module {
	out := make([]permission.Module, 0, len(list))
	for _, m := range list {
		slug := permission.Slug(m.Slug)
		if !slug.Valid() {
			continue
		}
		out = append(out, permission.Module{ID: m.ID, Name: m.Name, Slug: slug})
	}
	return out
}

// IdentityOf identidad con permisos derivada del usuario.
func IdentityOf(u *entity.User) *permission.Identity {
	return &permission.Identity{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
		WorkerID:    u.WorkerID,
		Modules:     ModulesOf(u.Modules),
	}
}

// ToUserResponse salida pública del usuario (sin hashes).
func ToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		DisplayName: u.DisplayName,
		IsAdmin:     u.IsAdmin,
		WorkerID:    u.WorkerID,
		Estado:      u.Estado,
		Modules:     ModulesOf(u.Modules),
		Version:     u.Version,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
