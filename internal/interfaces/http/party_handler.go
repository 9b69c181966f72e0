package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopartes-api/internal/application/usecase"
)

// WorkerHandler CRUD de trabajador.
type WorkerHandler struct {
	uc *usecase.WorkerUseCase
}

// NewWorkerHandler construye el handler.
func NewWorkerHandler(uc *usecase.WorkerUseCase) *WorkerHandler {
	return &WorkerHandler{uc: uc}
}

// Create godoc
// @Summary      Crear trabajador
// @Tags         trabajadores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.WorkerRequest  true  "Datos"
// @Success      201   {object}  dto.WorkerResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/trabajadores [post]
func (h *WorkerHandler) Create(c *fiber.Ctx) error {
	return createWith(c, h.uc.Create)
}

// GetByID godoc
// @Summary      Obtener trabajador por ID
// @Tags         trabajadores
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.WorkerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/trabajadores/{id} [get]
func (h *WorkerHandler) GetByID(c *fiber.Ctx) error {
	return getWith(c, h.uc.GetByID)
}

// List godoc
// @Summary      Listar trabajador
// @Tags         trabajadores
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda"
// @Param        page       query  int     false  "Página (1-based)"
// @Param        page_size  query  int     false  "Tamaño de página; omitido = todo"
// @Param        estado     query  string  false  "activo | inactivo | todos"
// @Success      200  {object}  dto.ListResponse[dto.WorkerResponse]
// @Router       /api/trabajadores [get]
func (h *WorkerHandler) List(c *fiber.Ctx) error {
	return listWith(c, h.uc.List)
}

// Update godoc
// @Summary      Actualizar trabajador
// @Tags         trabajadores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateWorkerRequest  true  "Datos con version"
// @Success      200   {object}  dto.WorkerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/trabajadores/{id} [put]
func (h *WorkerHandler) Update(c *fiber.Ctx) error {
	return updateWith(c, h.uc.Update)
}

// Delete godoc
// @Summary      Dar de baja trabajador
// @Description  Baja lógica (estado=false). If-Match con la versión hace la baja condicional.
// @Tags         trabajadores
// @Security     Bearer
// @Param        id        path    int     true   "ID"
// @Param        If-Match  header  string  false  "Versión"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/trabajadores/{id} [delete]
func (h *WorkerHandler) Delete(c *fiber.Ctx) error {
	return deleteWith(c, h.uc.Delete)
}

// ClientHandler CRUD de cliente.
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClientRequest  true  "Datos"
// @Success      201   {object}  dto.ClientResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	return createWith(c, h.uc.Create)
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.ClientResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	return getWith(c, h.uc.GetByID)
}

// List godoc
// @Summary      Listar cliente
// @Tags         clientes
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda"
// @Param        page       query  int     false  "Página (1-based)"
// @Param        page_size  query  int     false  "Tamaño de página; omitido = todo"
// @Param        estado     query  string  false  "activo | inactivo | todos"
// @Success      200  {object}  dto.ListResponse[dto.ClientResponse]
// @Router       /api/clientes [get]
func (h *ClientHandler) List(c *fiber.Ctx) error {
	return listWith(c, h.uc.List)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clientes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateClientRequest  true  "Datos con version"
// @Success      200   {object}  dto.ClientResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [put]
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	return updateWith(c, h.uc.Update)
}

// Delete godoc
// @Summary      Dar de baja cliente
// @Description  Baja lógica (estado=false). If-Match con la versión hace la baja condicional.
// @Tags         clientes
// @Security     Bearer
// @Param        id        path    int     true   "ID"
// @Param        If-Match  header  string  false  "Versión"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [delete]
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	return deleteWith(c, h.uc.Delete)
}

// RepresentativeHandler CRUD de representante.
type RepresentativeHandler struct {
	uc *usecase.RepresentativeUseCase
}

// NewRepresentativeHandler construye el handler.
func NewRepresentativeHandler(uc *usecase.RepresentativeUseCase) *RepresentativeHandler {
	return &RepresentativeHandler{uc: uc}
}

// Create godoc
// @Summary      Crear representante
// @Tags         representantes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RepresentativeRequest  true  "Datos"
// @Success      201   {object}  dto.RepresentativeResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/representantes [post]
func (h *RepresentativeHandler) Create(c *fiber.Ctx) error {
	return createWith(c, h.uc.Create)
}

// GetByID godoc
// @Summary      Obtener representante por ID
// @Tags         representantes
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.RepresentativeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/representantes/{id} [get]
func (h *RepresentativeHandler) GetByID(c *fiber.Ctx) error {
	return getWith(c, h.uc.GetByID)
}

// List godoc
// @Summary      Listar representante
// @Tags         representantes
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda"
// @Param        page       query  int     false  "Página (1-based)"
// @Param        page_size  query  int     false  "Tamaño de página; omitido = todo"
// @Param        estado     query  string  false  "activo | inactivo | todos"
// @Success      200  {object}  dto.ListResponse[dto.RepresentativeResponse]
// @Router       /api/representantes [get]
func (h *RepresentativeHandler) List(c *fiber.Ctx) error {
	return listWith(c, h.uc.List)
}

// Update godoc
// @Summary      Actualizar representante
// @Tags         representantes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateRepresentativeRequest  true  "Datos con version"
// @Success      200   {object}  dto.RepresentativeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/representantes/{id} [put]
func (h *RepresentativeHandler) Update(c *fiber.Ctx) error {
	return updateWith(c, h.uc.Update)
}

// Delete godoc
// @Summary      Dar de baja representante
// @Description  Baja lógica (estado=false). If-Match con la versión hace la baja condicional.
// @Tags         representantes
// @Security     Bearer
// @Param        id        path    int     true   "ID"
// @Param        If-Match  header  string  false  "Versión"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/representantes/{id} [delete]
func (h *RepresentativeHandler) Delete(c *fiber.Ctx) error {
	return deleteWith(c, h.uc.Delete)
}

// GetByDNI godoc
// @Summary      Buscar representante por DNI
// @Tags         representantes
// @Security     Bearer
// @Produce      json
// @Param        dni  path  string  true  "DNI (8 dígitos)"
// @Success      200  {object}  dto.RepresentativeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/representantes/dni/{dni} [get]
func (h *RepresentativeHandler) GetByDNI(c *fiber.Ctx) error {
	out, err := h.uc.GetByDNI(c.UserContext(), c.Params("dni"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SupplierHandler CRUD de proveedor.
type SupplierHandler struct {
	uc *usecase.SupplierUseCase
}

// NewSupplierHandler construye el handler.
func NewSupplierHandler(uc *usecase.SupplierUseCase) *SupplierHandler {
	return &SupplierHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "Datos"
// @Success      201   {object}  dto.SupplierResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *SupplierHandler) Create(c *fiber.Ctx) error {
	return createWith(c, h.uc.Create)
}

// GetByID godoc
// @Summary      Obtener proveedor por ID
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [get]
func (h *SupplierHandler) GetByID(c *fiber.Ctx) error {
	return getWith(c, h.uc.GetByID)
}

// List godoc
// @Summary      Listar proveedor
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda"
// @Param        page       query  int     false  "Página (1-based)"
// @Param        page_size  query  int     false  "Tamaño de página; omitido = todo"
// @Param        estado     query  string  false  "activo | inactivo | todos"
// @Success      200  {object}  dto.ListResponse[dto.SupplierResponse]
// @Router       /api/proveedores [get]
func (h *SupplierHandler) List(c *fiber.Ctx) error {
	return listWith(c, h.uc.List)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         proveedores
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateSupplierRequest  true  "Datos con version"
// @Success      200   {object}  dto.SupplierResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [put]
func (h *SupplierHandler) Update(c *fiber.Ctx) error {
	return updateWith(c, h.uc.Update)
}

// Delete godoc
// @Summary      Dar de baja proveedor
// @Description  Baja lógica (estado=false). If-Match con la versión hace la baja condicional.
// @Tags         proveedores
// @Security     Bearer
// @Param        id        path    int     true   "ID"
// @Param        If-Match  header  string  false  "Versión"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [delete]
func (h *SupplierHandler) Delete(c *fiber.Ctx) error {
	return deleteWith(c, h.uc.Delete)
}

// GetByRUC godoc
// @Summary      Buscar proveedor por RUC
// @Tags         proveedores
// @Security     Bearer
// @Produce      json
// @Param        ruc  path  string  true  "RUC (11 dígitos)"
// @Success      200  {object}  dto.SupplierResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/ruc/{ruc} [get]
func (h *SupplierHandler) GetByRUC(c *fiber.Ctx) error {
	out, err := h.uc.GetByRUC(c.UserContext(), c.Params("ruc"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
