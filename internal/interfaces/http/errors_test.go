package http

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/pkg/logger"
)

func TestRespondError_MapeoDeCodigos(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{domain.ErrNotFound, fiber.StatusNotFound},
		{fmt.Errorf("get product: %w", domain.ErrNotFound), fiber.StatusNotFound},
		{domain.ErrUserNotFound, fiber.StatusNotFound},
		{domain.ErrDuplicate, fiber.StatusConflict},
		{domain.ErrUsernameTaken, fiber.StatusConflict},
		{domain.ErrConflict, fiber.StatusConflict},
		{fmt.Errorf("%w: producto 3 tiene 1, se requieren 2", domain.ErrInsufficientStock), fiber.StatusConflict},
		{domain.ErrOverpayment, fiber.StatusConflict},
		{domain.ErrAlreadyAnnulled, fiber.StatusConflict},
		{domain.ErrHasPayments, fiber.StatusConflict},
		{domain.ErrNoChanges, fiber.StatusUnprocessableEntity},
		{domain.ErrInvalidCredentials, fiber.StatusUnauthorized},
		{domain.ErrUnauthorized, fiber.StatusUnauthorized},
		{domain.ErrForbidden, fiber.StatusForbidden},
		{domain.NewFieldError("ruc", "debe tener 11 dígitos"), fiber.StatusUnprocessableEntity},
		{errInvalidBody, fiber.StatusBadRequest},
		{errors.New("conexión rechazada"), fiber.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.err.Error(), func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error { return respondError(c, tc.err) })
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRespondError_InternoNoFiltraDetalle(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return respondError(c, errors.New("pq: password=secreto")) })
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.NotContains(t, string(raw), "secreto")
}

func TestRespondError_StockInsuficienteConservaDetalle(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return respondError(c, fmt.Errorf("%w: producto 3 tiene 1, se requieren 2", domain.ErrInsufficientStock))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "producto 3")
	assert.Contains(t, string(raw), "INSUFFICIENT_STOCK")
}

func TestRespondError_InternoSeRegistraConRequestID(t *testing.T) {
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf})

	app := fiber.New()
	app.Use(RequestLogger(l))
	app.Get("/", func(c *fiber.Ctx) error { return respondError(c, errors.New("conexión rechazada")) })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "rid-42")
	_, err := app.Test(req, -1)
	require.NoError(t, err)

	var line string
	for _, ln := range strings.Split(buf.String(), "\n") {
		if strings.Contains(ln, "error no controlado") {
			line = ln
		}
	}
	require.NotEmpty(t, line, "no se registró el error: %s", buf.String())
	assert.Contains(t, line, `"request_id":"rid-42"`)
	assert.Contains(t, line, "conexión rechazada")
}

type lineaPrueba struct {
	Cantidad int `json:"cantidad" validate:"required,min=1"`
}

type ventaPrueba struct {
	LineaBase
	Lineas []lineaPrueba `json:"lineas" validate:"required,min=1,dive"`
}

type LineaBase struct {
	ClienteID int64 `json:"id_cliente" validate:"required"`
}

func TestFieldErrors_RutasJSON(t *testing.T) {
	err := validate.Struct(ventaPrueba{Lineas: []lineaPrueba{{Cantidad: 0}}})
	require.Error(t, err)

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return respondError(c, err) })
	resp, terr := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, terr)
	raw, _ := io.ReadAll(resp.Body)
	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, string(raw), `"id_cliente"`)
	assert.Contains(t, string(raw), `"lineas[0].cantidad"`)
}

func TestJSONPath(t *testing.T) {
	assert.Equal(t, "codigo", jsonPath("UpdateProductRequest.ProductRequest.codigo"))
	assert.Equal(t, "juridico.id_representante", jsonPath("ClientRequest.juridico.id_representante"))
	assert.Equal(t, "lineas[2].cantidad", jsonPath("CreateSaleRequest.lineas[2].cantidad"))
}

func TestListFilter(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		f, err := listFilter(c)
		if err != nil {
			return respondError(c, err)
		}
		estado := "nil"
		if f.Estado != nil {
			estado = fmt.Sprint(*f.Estado)
		}
		return c.SendString(fmt.Sprintf("%s|%d|%d|%s", f.Search, f.Page, f.PageSize, estado))
	})
	get := func(q string) (int, string) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+q, nil), -1)
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(raw)
	}

	code, body := get("")
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "|0|0|nil", body)

	_, body = get("?q=filtro&page_size=10")
	assert.Equal(t, "filtro|1|10|nil", body)

	_, body = get("?page=2&page_size=5000&estado=inactivo")
	assert.Equal(t, "|2|200|false", body)

	code, _ = get("?page=0&page_size=10")
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
}

func TestIfMatchVersion(t *testing.T) {
	app := fiber.New()
	app.Delete("/", func(c *fiber.Ctx) error {
		v, err := ifMatchVersion(c)
		if err != nil {
			return respondError(c, err)
		}
		if v == nil {
			return c.SendString("nil")
		}
		return c.SendString(fmt.Sprint(*v))
	})
	do := func(h string) (int, string) {
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		if h != "" {
			req.Header.Set("If-Match", h)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		raw, _ := io.ReadAll(resp.Body)
		return resp.StatusCode, string(raw)
	}
	_, body := do("")
	assert.Equal(t, "nil", body)
	_, body = do(`"4"`)
	assert.Equal(t, "4", body)
	code, _ := do("abc")
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
}
