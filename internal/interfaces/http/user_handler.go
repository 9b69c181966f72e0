package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/application/usecase"
	"github.com/jhoicas/autopartes-api/pkg/listview"
)

// UserHandler administración de usuarios y sus módulos.
type UserHandler struct {
	uc      *usecase.UserUseCase
	modules *usecase.ModuleService
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *usecase.UserUseCase, modules *usecase.ModuleService) *UserHandler {
	return &UserHandler{uc: uc, modules: modules}
}

// ListModules godoc
// @Summary      Catálogo de módulos
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse[permission.Module]
// @Router       /api/modulos [get]
func (h *UserHandler) ListModules(c *fiber.Ctx) error {
	out, err := h.modules.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewListResponse(out, listview.Query{}, len(out)))
}

// List godoc
// @Summary      Listar usuarios
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        q          query  string  false  "Username o nombre"
// @Param        page       query  int     false  "Página"
// @Param        page_size  query  int     false  "Tamaño de página"
// @Param        estado     query  string  false  "activo | inactivo | todos"
// @Success      200  {object}  dto.ListResponse[dto.UserResponse]
// @Router       /api/usuarios [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	return listWith(c, h.uc.List)
}

// GetByID godoc
// @Summary      Obtener usuario
// @Tags         usuarios
// @Security     Bearer
// @Produce      json
// @Param        id   path  int  true  "ID del usuario"
// @Success      200  {object}  dto.UserResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	return getWith(c, h.uc.GetByID)
}

// SetModules godoc
// @Summary      Asignar módulos a un usuario
// @Description  Reemplaza la asignación completa. Slugs desconocidos → 422. Efectivo desde el próximo login o refresh.
// @Tags         usuarios
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int  true  "ID del usuario"
// @Param        body  body  dto.SetModulesRequest  true  "Slugs"
// @Success      200   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id}/modulos [put]
func (h *UserHandler) SetModules(c *fiber.Ctx) error {
	return updateWith(c, h.uc.SetModules)
}

// Delete godoc
// @Summary      Desactivar usuario
// @Description  Nunca se borra físicamente; no se permite desactivarse a sí mismo.
// @Tags         usuarios
// @Security     Bearer
// @Param        id        path    int     true   "ID del usuario"
// @Param        If-Match  header  string  false  "Versión"
// @Success      204
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/usuarios/{id} [delete]
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	actor := GetUserID(c)
	return deleteWith(c, func(ctx context.Context, id int64, version *int64) error {
		return h.uc.Delete(ctx, actor, id, version)
	})
}
