package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopartes-api/internal/application/usecase"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
	apphttp "github.com/jhoicas/autopartes-api/internal/interfaces/http"
	"github.com/jhoicas/autopartes-api/pkg/listview"
)

// memBrands repositorio de marcas en memoria con la misma semántica de versión que PostgreSQL.
type memBrands struct {
	mu     sync.Mutex
	items  map[int64]*entity.Brand
	nextID int64
}

func newMemBrands() *memBrands { return &memBrands{items: map[int64]*entity.Brand{}} }

func (m *memBrands) Create(_ context.Context, b *entity.Brand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, x := range m.items {
		if strings.EqualFold(x.Name, b.Name) {
			return domain.ErrDuplicate
		}
	}
	m.nextID++
	b.ID, b.Version = m.nextID, 1
	cp := *b
	m.items[b.ID] = &cp
	return nil
}

func (m *memBrands) GetByID(_ context.Context, id int64) (*entity.Brand, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if b, ok := m.items[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, nil
}

func (m *memBrands) Update(_ context.Context, b *entity.Brand) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[b.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.Version != b.Version {
		return domain.ErrConflict
	}
	b.Version++
	cp := *b
	m.items[b.ID] = &cp
	return nil
}

func (m *memBrands) List(_ context.Context, f repository.ListFilter) ([]*entity.Brand, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	all := make([]*entity.Brand, 0, len(m.items))
	for _, b := range m.items {
		if f.Estado != nil && b.Estado != *f.Estado {
			continue
		}
		all = append(all, b)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	all = listview.Filter(all, f.Search, func(b *entity.Brand) []string { return []string{b.Name} })
	if !f.Paged() {
		return all, len(all), nil
	}
	page, _ := listview.Paginate(all, f.Page, f.PageSize)
	return page, len(all), nil
}

func (m *memBrands) SoftDelete(_ context.Context, id int64, version *int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	if version != nil && cur.Version != *version {
		return domain.ErrConflict
	}
	if cur.Estado {
		cur.Estado = false
		cur.Version++
	}
	return nil
}

func buildBrandApp(repo *memBrands) *fiber.App {
	app := fiber.New()
	h := apphttp.NewBrandHandler(usecase.NewBrandUseCase(repo))
	app.Get("/marcas", h.List)
	app.Post("/marcas", h.Create)
	app.Get("/marcas/:id", h.GetByID)
	app.Put("/marcas/:id", h.Update)
	app.Delete("/marcas/:id", h.Delete)
	return app
}

func send(t *testing.T, app *fiber.App, method, path string, body any, headers ...string) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if s, ok := body.(string); ok {
			buf.WriteString(s)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestBrandHandler_CreateYGet(t *testing.T) {
	app := buildBrandApp(newMemBrands())

	resp := send(t, app, http.MethodPost, "/marcas", map[string]any{"nombre": "Bosch"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	assert.Equal(t, "Bosch", created["nombre"])
	assert.Equal(t, true, created["estado"])
	assert.Equal(t, float64(1), created["version"])

	resp = send(t, app, http.MethodGet, "/marcas/1", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Bosch", decodeBody(t, resp)["nombre"])
}

func TestBrandHandler_ValidacionDevuelveCampos(t *testing.T) {
	app := buildBrandApp(newMemBrands())

	resp := send(t, app, http.MethodPost, "/marcas", map[string]any{"nombre": ""})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "VALIDATION", body["code"])
	errs, ok := body["errors"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, errs, "nombre")
}

func TestBrandHandler_CuerpoInvalido(t *testing.T) {
	app := buildBrandApp(newMemBrands())
	resp := send(t, app, http.MethodPost, "/marcas", "{no es json")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decodeBody(t, resp)["code"])
}

func TestBrandHandler_Duplicado(t *testing.T) {
	app := buildBrandApp(newMemBrands())
	send(t, app, http.MethodPost, "/marcas", map[string]any{"nombre": "NGK"})
	resp := send(t, app, http.MethodPost, "/marcas", map[string]any{"nombre": "ngk"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", decodeBody(t, resp)["code"])
}

func TestBrandHandler_NoEncontradoEIDInvalido(t *testing.T) {
	app := buildBrandApp(newMemBrands())
	resp := send(t, app, http.MethodGet, "/marcas/99", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp = send(t, app, http.MethodGet, "/marcas/abc", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}

func TestBrandHandler_UpdateVersionVieja409(t *testing.T) {
	app := buildBrandApp(newMemBrands())
	send(t, app, http.MethodPost, "/marcas", map[string]any{"nombre": "Denso"})

	resp := send(t, app, http.MethodPut, "/marcas/1", map[string]any{"nombre": "Denso Corp", "version": 1})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), decodeBody(t, resp)["version"])

	// segundo escritor con la versión leída antes
	resp = send(t, app, http.MethodPut, "/marcas/1", map[string]any{"nombre": "Denso JP", "version": 1})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "VERSION_CONFLICT", decodeBody(t, resp)["code"])
}

func TestBrandHandler_UpdateSinVersion422(t *testing.T) {
	app := buildBrandApp(newMemBrands())
	send(t, app, http.MethodPost, "/marcas", map[string]any{"nombre": "Denso"})
	resp := send(t, app, http.MethodPut, "/marcas/1", map[string]any{"nombre": "Denso"})
	require.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	errs := decodeBody(t, resp)["errors"].(map[string]any)
	assert.Contains(t, errs, "version")
}

func TestBrandHandler_DeleteConIfMatch(t *testing.T) {
	repo := newMemBrands()
	app := buildBrandApp(repo)
	send(t, app, http.MethodPost, "/marcas", map[string]any{"nombre": "Valeo"})

	resp := send(t, app, http.MethodDelete, "/marcas/1", nil, "If-Match", "5")
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)

	resp = send(t, app, http.MethodDelete, "/marcas/1", nil, "If-Match", `"1"`)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	// sin If-Match la baja es idempotente
	resp = send(t, app, http.MethodDelete, "/marcas/1", nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
}

func TestBrandHandler_ListFiltraEstadoYPagina(t *testing.T) {
	repo := newMemBrands()
	app := buildBrandApp(repo)
	for _, n := range []string{"Bosch", "NGK", "Denso", "Valeo", "Monroe"} {
		send(t, app, http.MethodPost, "/marcas", map[string]any{"nombre": n})
	}
	send(t, app, http.MethodDelete, "/marcas/2", nil)

	resp := send(t, app, http.MethodGet, "/marcas?estado=activo", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Len(t, body["items"], 4)

	resp = send(t, app, http.MethodGet, "/marcas?estado=todos&page=3&page_size=2", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body = decodeBody(t, resp)
	items := body["items"].([]any)
	require.Len(t, items, 1)
	assert.Equal(t, "Monroe", items[0].(map[string]any)["nombre"])
	page := body["page"].(map[string]any)
	assert.Equal(t, float64(3), page["total_pages"])

	resp = send(t, app, http.MethodGet, "/marcas?estado=quiza", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
}
