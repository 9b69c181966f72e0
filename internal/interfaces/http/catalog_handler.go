package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopartes-api/internal/application/usecase"
)

// CategoryHandler CRUD de categoría.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "Datos"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/categorias [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	return createWith(c, h.uc.Create)
}

// GetByID godoc
// @Summary      Obtener categoría por ID
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	return getWith(c, h.uc.GetByID)
}

// List godoc
// @Summary      Listar categoría
// @Tags         categorias
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda"
// @Param        page       query  int     false  "Página (1-based)"
// @Param        page_size  query  int     false  "Tamaño de página; omitido = todo"
// @Param        estado     query  string  false  "activo | inactivo | todos"
// @Success      200  {object}  dto.ListResponse[dto.CategoryResponse]
// @Router       /api/categorias [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	return listWith(c, h.uc.List)
}

// Update godoc
// @Summary      Actualizar categoría
// @Tags         categorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateCategoryRequest  true  "Datos con version"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	return updateWith(c, h.uc.Update)
}

// Delete godoc
// @Summary      Dar de baja categoría
// @Description  Baja lógica (estado=false). If-Match con la versión hace la baja condicional.
// @Tags         categorias
// @Security     Bearer
// @Param        id        path    int     true   "ID"
// @Param        If-Match  header  string  false  "Versión"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/categorias/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	return deleteWith(c, h.uc.Delete)
}

// SubcategoryHandler CRUD de subcategoría.
type SubcategoryHandler struct {
	uc *usecase.SubcategoryUseCase
}

// NewSubcategoryHandler construye el handler.
func NewSubcategoryHandler(uc *usecase.SubcategoryUseCase) *SubcategoryHandler {
	return &SubcategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear subcategoría
// @Tags         subcategorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubcategoryRequest  true  "Datos"
// @Success      201   {object}  dto.SubcategoryResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/subcategorias [post]
func (h *SubcategoryHandler) Create(c *fiber.Ctx) error {
	return createWith(c, h.uc.Create)
}

// GetByID godoc
// @Summary      Obtener subcategoría por ID
// @Tags         subcategorias
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.SubcategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subcategorias/{id} [get]
func (h *SubcategoryHandler) GetByID(c *fiber.Ctx) error {
	return getWith(c, h.uc.GetByID)
}

// List godoc
// @Summary      Listar subcategoría
// @Tags         subcategorias
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda"
// @Param        page       query  int     false  "Página (1-based)"
// @Param        page_size  query  int     false  "Tamaño de página; omitido = todo"
// @Param        estado     query  string  false  "activo | inactivo | todos"
// @Success      200  {object}  dto.ListResponse[dto.SubcategoryResponse]
// @Router       /api/subcategorias [get]
func (h *SubcategoryHandler) List(c *fiber.Ctx) error {
	return listWith(c, h.uc.List)
}

// Update godoc
// @Summary      Actualizar subcategoría
// @Tags         subcategorias
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateSubcategoryRequest  true  "Datos con version"
// @Success      200   {object}  dto.SubcategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/subcategorias/{id} [put]
func (h *SubcategoryHandler) Update(c *fiber.Ctx) error {
	return updateWith(c, h.uc.Update)
}

// Delete godoc
// @Summary      Dar de baja subcategoría
// @Description  Baja lógica (estado=false). If-Match con la versión hace la baja condicional.
// @Tags         subcategorias
// @Security     Bearer
// @Param        id        path    int     true   "ID"
// @Param        If-Match  header  string  false  "Versión"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/subcategorias/{id} [delete]
func (h *SubcategoryHandler) Delete(c *fiber.Ctx) error {
	return deleteWith(c, h.uc.Delete)
}

// ListByCategory godoc
// @Summary      Subcategorías de una categoría
// @Tags         subcategorias
// @Security     Bearer
// @Produce      json
// @Param        idCategoria  path  int  true  "ID de la categoría"
// @Success      200  {array}   dto.SubcategoryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/subcategorias/categoria/{idCategoria} [get]
func (h *SubcategoryHandler) ListByCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "idCategoria")
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListByCategory(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BrandHandler CRUD de marca.
type BrandHandler struct {
	uc *usecase.BrandUseCase
}

// NewBrandHandler construye el handler.
func NewBrandHandler(uc *usecase.BrandUseCase) *BrandHandler {
	return &BrandHandler{uc: uc}
}

// Create godoc
// @Summary      Crear marca
// @Tags         marcas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BrandRequest  true  "Datos"
// @Success      201   {object}  dto.BrandResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/marcas [post]
func (h *BrandHandler) Create(c *fiber.Ctx) error {
	return createWith(c, h.uc.Create)
}

// GetByID godoc
// @Summary      Obtener marca por ID
// @Tags         marcas
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID"
// @Success      200  {object}  dto.BrandResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/marcas/{id} [get]
func (h *BrandHandler) GetByID(c *fiber.Ctx) error {
	return getWith(c, h.uc.GetByID)
}

// List godoc
// @Summary      Listar marca
// @Tags         marcas
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Búsqueda"
// @Param        page       query  int     false  "Página (1-based)"
// @Param        page_size  query  int     false  "Tamaño de página; omitido = todo"
// @Param        estado     query  string  false  "activo | inactivo | todos"
// @Success      200  {object}  dto.ListResponse[dto.BrandResponse]
// @Router       /api/marcas [get]
func (h *BrandHandler) List(c *fiber.Ctx) error {
	return listWith(c, h.uc.List)
}

// Update godoc
// @Summary      Actualizar marca
// @Tags         marcas
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID"
// @Param        body  body  dto.UpdateBrandRequest  true  "Datos con version"
// @Success      200   {object}  dto.BrandResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/marcas/{id} [put]
func (h *BrandHandler) Update(c *fiber.Ctx) error {
	return updateWith(c, h.uc.Update)
}

// Delete godoc
// @Summary      Dar de baja marca
// @Description  Baja lógica (estado=false). If-Match con la versión hace la baja condicional.
// @Tags         marcas
// @Security     Bearer
// @Param        id        path    int     true   "ID"
// @Param        If-Match  header  string  false  "Versión"
// @Success      204
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/marcas/{id} [delete]
func (h *BrandHandler) Delete(c *fiber.Ctx) error {
	return deleteWith(c, h.uc.Delete)
}
