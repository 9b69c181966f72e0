// Package listview implementa el patrón de listado: filtrar por texto libre,
// paginar con tamaño fijo y acotar la página cuando el conjunto filtrado cambia.
//
// El mismo contrato (búsqueda, página, tamaño) lo usan los endpoints del servidor
// y la vista en memoria del cliente, así la aritmética de páginas es única.
package listview

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultPageSize tamaño de página de las tablas del panel.
const DefaultPageSize = 10

// Query parámetros de listado. PageSize <= 0 significa "sin paginar".
type Query struct {
	Search   string
	Page     int
	PageSize int
}

// Paged informa si la consulta pide una página concreta.
func (q Query) Paged() bool { return q.PageSize > 0 }

// Offset desplazamiento de la página (1-based) ya acotada a >= 1.
func (q Query) Offset() int {
	if !q.Paged() {
		return 0
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * q.PageSize
}

// PageInfo metadatos de una página calculada.
type PageInfo struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TotalPages = ceil(total/size). Un conjunto vacío tiene 0 páginas.
func TotalPages(total, size int) int {
	if size <= 0 {
		if total > 0 {
			return 1
		}
		return 0
	}
	return (total + size - 1) / size
}

// ClampPage acota page al rango [1, TotalPages]; con 0 páginas devuelve 1.
func ClampPage(page, total, size int) int {
	last := TotalPages(total, size)
	if last < 1 {
		return 1
	}
	if page < 1 {
		return 1
	}
	if page > last {
		return last
	}
	return page
}

// Info calcula los metadatos de página acotando la página pedida.
func Info(q Query, total int) PageInfo {
	if !q.Paged() {
		return PageInfo{Page: 1, PageSize: total, Total: total, TotalPages: TotalPages(total, 0)}
	}
	return PageInfo{
		Page:       ClampPage(q.Page, total, q.PageSize),
		PageSize:   q.PageSize,
		Total:      total,
		TotalPages: TotalPages(total, q.PageSize),
	}
}

// Paginate devuelve items[(page-1)*size : page*size] tras acotar la página.
func Paginate[T any](items []T, page, size int) ([]T, PageInfo) {
	info := Info(Query{Page: page, PageSize: size}, len(items))
	if size <= 0 {
		return items, info
	}
	start := (info.Page - 1) * size
	if start >= len(items) {
		return []T{}, info
	}
	end := start + size
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], info
}

// Filter conserva los items cuyo texto (alguno de los campos) contiene search,
// sin distinguir mayúsculas ni tildes. Búsqueda vacía devuelve todo.
func Filter[T any](items []T, search string, fields func(T) []string) []T {
	needle := Fold(strings.TrimSpace(search))
	if needle == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		for _, f := range fields(it) {
			if strings.Contains(Fold(f), needle) {
				out = append(out, it)
				break
			}
		}
	}
	return out
}

// Fold normaliza texto para comparar: sin diacríticos y con case folding.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC, cases.Fold())
	out, _, err := transform.String(t, s)
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}
