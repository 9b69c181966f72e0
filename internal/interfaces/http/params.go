package http

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
	"github.com/jhoicas/autopartes-api/pkg/listview"
)

// maxPageSize tope de page_size aceptado.
const maxPageSize = 200

// listFilter lee q, page, page_size y estado. Sin page_size se devuelve la colección completa.
func listFilter(c *fiber.Ctx) (repository.ListFilter, error) {
	q, err := pageQuery(c)
	if err != nil {
		return repository.ListFilter{}, err
	}
	estado, err := parseEstado(c.Query("estado"))
	if err != nil {
		return repository.ListFilter{}, err
	}
	return repository.ListFilter{Query: q, Estado: estado}, nil
}

// pageQuery búsqueda y página; page_size se acota a maxPageSize.
func pageQuery(c *fiber.Ctx) (listview.Query, error) {
	q := listview.Query{Search: strings.TrimSpace(c.Query("q"))}
	if raw := c.Query("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size < 1 {
			return q, domain.NewFieldError("page_size", "debe ser un entero positivo")
		}
		q.PageSize = min(size, maxPageSize)
		q.Page = 1
	}
	if raw := c.Query("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return q, domain.NewFieldError("page", "debe ser un entero positivo")
		}
		q.Page = page
	}
	return q, nil
}

// parseEstado "activo"/"true"/"1" → true; "inactivo"/"false"/"0" → false; vacío o "todos" → nil.
func parseEstado(raw string) (*bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "todos":
		return nil, nil
	case "activo", "activos", "true", "1":
		v := true
		return &v, nil
	case "inactivo", "inactivos", "false", "0":
		v := false
		return &v, nil
	default:
		return nil, domain.NewFieldError("estado", "valores admitidos: activo, inactivo, todos")
	}
}

// dateQuery fecha opcional en formato YYYY-MM-DD.
func dateQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, time.Local)
	if err != nil {
		return nil, domain.NewFieldError(name, "formato esperado AAAA-MM-DD")
	}
	return &t, nil
}

// paramID lee un parámetro de ruta entero positivo.
func paramID(c *fiber.Ctx, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewFieldError(name, "identificador inválido")
	}
	return id, nil
}

// ifMatchVersion versión de If-Match (opcional) para bajas condicionadas.
func ifMatchVersion(c *fiber.Ctx) (*int64, error) {
	raw := strings.Trim(strings.TrimSpace(c.Get(fiber.HeaderIfMatch)), `"`)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, domain.NewFieldError("version", "If-Match inválido")
	}
	return &v, nil
}
