package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jhoicas/autopartes-api/pkg/listview"
)

// Page respuesta paginada de un listado.
type Page[T any] struct {
	Items []T               `json:"items"`
	Page  listview.PageInfo `json:"page"`
}

// Filter filtros opcionales de un listado además de búsqueda y página.
type Filter struct {
	Estado string // "activo" | "inactivo" | "" (todos)
	Extra  map[string]string
}

// EntityClient contrato genérico por recurso: listar, crear, actualizar y eliminar.
// resource es el segmento bajo /api (ej. "productos").
type EntityClient[T any] struct {
	c        *Client
	resource string
}

// NewEntityClient cliente de un recurso concreto.
func NewEntityClient[T any](c *Client, resource string) *EntityClient[T] {
	return &EntityClient[T]{c: c, resource: resource}
}

// Resource segmento del recurso.
func (e *EntityClient[T]) Resource() string { return e.resource }

// List colección completa, sin paginar.
func (e *EntityClient[T]) List(ctx context.Context) ([]T, error) {
	var out Page[T]
	if err := e.c.do(ctx, http.MethodGet, "/"+e.resource, nil, &out); err != nil {
		return nil, err
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	return out.Items, nil
}

// Query listado filtrado y paginado en el servidor.
func (e *EntityClient[T]) Query(ctx context.Context, q listview.Query, f Filter) (Page[T], error) {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Paged() {
		v.Set("page", strconv.Itoa(q.Page))
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if f.Estado != "" {
		v.Set("estado", f.Estado)
	}
	for k, val := range f.Extra {
		v.Set(k, val)
	}
	path := "/" + e.resource
	if enc := v.Encode(); enc != "" {
		path += "?" + enc
	}
	var out Page[T]
	if err := e.c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return Page[T]{}, err
	}
	if out.Items == nil {
		out.Items = []T{}
	}
	return out, nil
}

// Get un registro por ID.
func (e *EntityClient[T]) Get(ctx context.Context, id int64) (T, error) {
	var out T
	err := e.c.do(ctx, http.MethodGet, e.path(id), nil, &out)
	return out, err
}

// Create alta de un registro.
func (e *EntityClient[T]) Create(ctx context.Context, entity any) (T, error) {
	var out T
	err := e.c.do(ctx, http.MethodPost, "/"+e.resource, entity, &out)
	return out, err
}

// Update actualiza un registro. El cuerpo debe llevar la versión leída;
// si otro usuario escribió antes, el servidor responde 409 (ver IsConflict).
func (e *EntityClient[T]) Update(ctx context.Context, id int64, entity any) (T, error) {
	var out T
	err := e.c.do(ctx, http.MethodPut, e.path(id), entity, &out)
	return out, err
}

// Delete baja lógica (estado=false). Sin versión el borrado es idempotente.
func (e *EntityClient[T]) Delete(ctx context.Context, id int64) error {
	return e.c.do(ctx, http.MethodDelete, e.path(id), nil, nil)
}

// DeleteVersion baja lógica condicionada a la versión (If-Match).
func (e *EntityClient[T]) DeleteVersion(ctx context.Context, id int64, version int64) error {
	h := map[string]string{"If-Match": strconv.FormatInt(version, 10)}
	return e.c.doWithHeaders(ctx, http.MethodDelete, e.path(id), h, nil, nil)
}

// Post acción auxiliar sobre un registro (ej. /cuentas-por-cobrar/:id/pagos).
func (e *EntityClient[T]) Post(ctx context.Context, id int64, action string, in, out any) error {
	return e.c.do(ctx, http.MethodPost, fmt.Sprintf("%s/%s", e.path(id), action), in, out)
}

func (e *EntityClient[T]) path(id int64) string {
	return fmt.Sprintf("/%s/%d", e.resource, id)
}
