package usecase

import (
	"github.com/jhoicas/autopartes-api/internal/domain"
)

// activeOr estado del request; ausente significa activo.
func activeOr(estado *bool) bool {
	return estado == nil || *estado
}

// found convierte el nil, nil de los repositorios en ErrNotFound.
func found[T any](v *T, err error) (*T, error) {
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	return v, nil
}

// mapList aplica fn a cada elemento.
func mapList[E any, R any](list []*E, fn func(*E) *R) []R {
	out := make([]R, 0, len(list))
	for _, e := range list {
		out = append(out, *fn(e))
	}
	return out
}
