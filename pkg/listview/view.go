package listview

import (
	"context"
	"sync"
)

// Lister obtiene la colección completa (p. ej. client.EntityClient.List).
type Lister[T any] func(ctx context.Context) ([]T, error)

// View estado de una página de listado: colección completa, búsqueda, página y tamaño fijo.
// La colección es una caché de lectura; toda mutación pasa por el servidor y luego se refresca.
type View[T any] struct {
	mu       sync.RWMutex
	all      []T
	search   string
	page     int
	pageSize int
	fields   func(T) []string
}

// NewView crea la vista. fields devuelve los campos de texto sobre los que se busca.
func NewView[T any](pageSize int, fields func(T) []string) *View[T] {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &View[T]{page: 1, pageSize: pageSize, fields: fields}
}

// SetItems reemplaza la colección y acota la página actual.
func (v *View[T]) SetItems(items []T) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.all = items
	v.clampLocked()
}

// SetSearch cambia el texto de búsqueda y acota la página actual.
func (v *View[T]) SetSearch(s string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.search = s
	v.clampLocked()
}

// SetPage mueve a la página pedida, acotada al rango válido.
func (v *View[T]) SetPage(page int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.page = page
	v.clampLocked()
}

// Page página actual.
func (v *View[T]) Page() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.page
}

// Filtered items que pasan la búsqueda actual.
func (v *View[T]) Filtered() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Filter(v.all, v.search, v.fields)
}

// Rows filas de la página actual.
func (v *View[T]) Rows() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	rows, _ := Paginate(Filter(v.all, v.search, v.fields), v.page, v.pageSize)
	return rows
}

// Info metadatos de la página actual.
func (v *View[T]) Info() PageInfo {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Info(Query{Page: v.page, PageSize: v.pageSize}, len(Filter(v.all, v.search, v.fields)))
}

// TotalPages ceil(filtrados/tamaño).
func (v *View[T]) TotalPages() int {
	return v.Info().TotalPages
}

// Refresh vuelve a pedir la colección completa. Si falla, el estado anterior queda intacto.
func (v *View[T]) Refresh(ctx context.Context, list Lister[T]) error {
	items, err := list(ctx)
	if err != nil {
		return err
	}
	v.SetItems(items)
	return nil
}

// Mutate ejecuta la escritura y, si tuvo éxito, refresca incondicionalmente la colección.
// No hay actualización optimista: la vista refleja siempre lo que devolvió el servidor.
func (v *View[T]) Mutate(ctx context.Context, write func(ctx context.Context) error, list Lister[T]) error {
	if err := write(ctx); err != nil {
		return err
	}
	return v.Refresh(ctx, list)
}

func (v *View[T]) clampLocked() {
	total := len(Filter(v.all, v.search, v.fields))
	v.page = ClampPage(v.page, total, v.pageSize)
}
