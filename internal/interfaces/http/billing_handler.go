package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopartes-api/internal/application/billing"
	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/domain/entity"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// PurchaseHandler compras a proveedores.
type PurchaseHandler struct {
	uc *billing.PurchaseUseCase
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *billing.PurchaseUseCase) *PurchaseHandler {
	return &PurchaseHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar compra
// @Description  Genera entradas de inventario y, si es a crédito, la cuenta por pagar.
// @Tags         compras
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/compras [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), userRef(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener compra con detalle
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [get]
func (h *PurchaseHandler) Get(c *fiber.Ctx) error {
	return getWith(c, h.uc.Get)
}

// List godoc
// @Summary      Listar compras
// @Tags         compras
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Proveedor o número de documento"
// @Param        page       query  int     false  "Página"
// @Param        page_size  query  int     false  "Tamaño de página"
// @Param        estado     query  string  false  "activo | inactivo (anuladas) | todos"
// @Success      200  {object}  dto.ListResponse[dto.PurchaseResponse]
// @Router       /api/compras [get]
func (h *PurchaseHandler) List(c *fiber.Ctx) error {
	return listWith(c, h.uc.List)
}

// Annul godoc
// @Summary      Anular compra
// @Description  Revierte las entradas de inventario y cierra la cuenta por pagar sin pagos.
// @Tags         compras
// @Security     Bearer
// @Param        id        path    int     true   "ID de la compra"
// @Param        If-Match  header  string  false  "Versión"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/compras/{id} [delete]
func (h *PurchaseHandler) Annul(c *fiber.Ctx) error {
	user := userRef(c)
	return deleteWith(c, func(ctx context.Context, id int64, version *int64) error {
		return h.uc.Annul(ctx, user, id, version)
	})
}

// SaleHandler ventas a clientes.
type SaleHandler struct {
	uc  *billing.SaleUseCase
	pdf *billing.PDFUseCase
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *billing.SaleUseCase, pdf *billing.PDFUseCase) *SaleHandler {
	return &SaleHandler{uc: uc, pdf: pdf}
}

// Create godoc
// @Summary      Registrar venta
// @Description  Descuenta stock (409 si no alcanza) y, si es a crédito, crea la cuenta por cobrar.
// @Tags         ventas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.SaleResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/ventas [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), userRef(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener venta con detalle
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [get]
func (h *SaleHandler) Get(c *fiber.Ctx) error {
	return getWith(c, h.uc.Get)
}

// List godoc
// @Summary      Listar ventas
// @Tags         ventas
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Cliente, documento o vendedor"
// @Param        page       query  int     false  "Página"
// @Param        page_size  query  int     false  "Tamaño de página"
// @Param        estado     query  string  false  "activo | inactivo (anuladas) | todos"
// @Success      200  {object}  dto.ListResponse[dto.SaleResponse]
// @Router       /api/ventas [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	return listWith(c, h.uc.List)
}

// Annul godoc
// @Summary      Anular venta
// @Description  Devuelve el stock y cierra la cuenta por cobrar; con pagos registrados responde 409.
// @Tags         ventas
// @Security     Bearer
// @Param        id        path    int     true   "ID de la venta"
// @Param        If-Match  header  string  false  "Versión"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id} [delete]
func (h *SaleHandler) Annul(c *fiber.Ctx) error {
	user := userRef(c)
	return deleteWith(c, func(ctx context.Context, id int64, version *int64) error {
		return h.uc.Annul(ctx, user, id, version)
	})
}

// DownloadPDF godoc
// @Summary      Comprobante de venta en PDF
// @Tags         ventas
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  int  true  "ID de la venta"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/ventas/{id}/pdf [get]
func (h *SaleHandler) DownloadPDF(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	data, filename, err := h.pdf.DownloadSalePDF(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(data)
}

// AccountHandler cuentas por cobrar o por pagar según kind.
type AccountHandler struct {
	uc   *billing.AccountUseCase
	kind string
}

// NewReceivableHandler cuentas por cobrar (ventas a crédito).
func NewReceivableHandler(uc *billing.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc, kind: entity.AccountReceivable}
}

// NewPayableHandler cuentas por pagar (compras a crédito).
func NewPayableHandler(uc *billing.AccountUseCase) *AccountHandler {
	return &AccountHandler{uc: uc, kind: entity.AccountPayable}
}

// List godoc
// @Summary      Listar cuentas
// @Description  Mismo contrato en /api/cuentas-por-cobrar y /api/cuentas-por-pagar.
// @Tags         cuentas
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Cliente o proveedor"
// @Param        estado     query  string  false  "pendiente | vencida | pagada"
// @Param        desde      query  string  false  "Vencimiento desde (AAAA-MM-DD)"
// @Param        hasta      query  string  false  "Vencimiento hasta (AAAA-MM-DD)"
// @Param        page       query  int     false  "Página"
// @Param        page_size  query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.ListResponse[dto.AccountResponse]
// @Router       /api/cuentas-por-cobrar [get]
func (h *AccountHandler) List(c *fiber.Ctx) error {
	q, err := pageQuery(c)
	if err != nil {
		return respondError(c, err)
	}
	f := repository.AccountFilter{
		ListFilter: repository.ListFilter{Query: q},
		Kind:       h.kind,
		Status:     strings.ToLower(strings.TrimSpace(c.Query("estado"))),
	}
	if f.From, err = dateQuery(c, "desde"); err != nil {
		return respondError(c, err)
	}
	if f.To, err = dateQuery(c, "hasta"); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener cuenta con pagos
// @Tags         cuentas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID de la cuenta"
// @Success      200  {object}  dto.AccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-cobrar/{id} [get]
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Get(c.UserContext(), h.kind, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Pay godoc
// @Summary      Registrar pago
// @Description  Un monto mayor al saldo pendiente responde 409 OVERPAYMENT.
// @Tags         cuentas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID de la cuenta"
// @Param        body  body  dto.PaymentRequest  true  "Pago"
// @Success      201   {object}  dto.AccountResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-cobrar/{id}/pagos [post]
func (h *AccountHandler) Pay(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	var in dto.PaymentRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Pay(c.UserContext(), h.kind, id, userRef(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
