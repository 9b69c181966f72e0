package usecase

import (
	"context"

	"github.com/jhoicas/autopartes-api/internal/domain/repository"
	"github.com/jhoicas/autopartes-api/pkg/permission"
)

// ModuleService expone el catálogo de módulos asignables.
type ModuleService struct {
	repo repository.ModuleRepository
}

// NewModuleService construye el servicio de módulos.
func NewModuleService(repo repository.ModuleRepository) *ModuleService {
	return &ModuleService{repo: repo}
}

// List módulos registrados en orden de menú.
func (s *ModuleService) List(ctx context.Context) ([]permission.Module, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]permission.Module, 0, len(list))
	for _, m := range list {
		slug := permission.Slug(m.Slug)
		if slug.Valid() {
			out = append(out, permission.Module{ID: m.ID, Name: m.Name, Slug: slug})
		}
	}
	return out, nil
}
