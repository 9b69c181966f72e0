package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/autopartes-api/internal/application/dto"
	"github.com/jhoicas/autopartes-api/internal/application/inventory"
	"github.com/jhoicas/autopartes-api/internal/domain"
	"github.com/jhoicas/autopartes-api/internal/domain/repository"
)

// InventoryHandler maneja las peticiones HTTP de movimientos e inventario (protegido).
type InventoryHandler struct {
	uc            *inventory.RegisterMovementUseCase
	replenishment *inventory.ReplenishmentUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.RegisterMovementUseCase, replenishment *inventory.ReplenishmentUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, replenishment: replenishment}
}

// RegisterMovement godoc
// @Summary      Registrar ajuste manual de inventario
// @Tags         inventario
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "id_producto, tipo (IN|OUT), cantidad, motivo"
// @Success      201   {object}  dto.MovementResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventario/movimientos [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := bindJSON(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.RegisterMovementFromRequest(c.UserContext(), userRef(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Kardex de movimientos
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Param        id_producto  query  int     false  "Producto"
// @Param        tipo         query  string  false  "IN | OUT"
// @Param        desde        query  string  false  "AAAA-MM-DD"
// @Param        hasta        query  string  false  "AAAA-MM-DD (inclusive)"
// @Param        page         query  int     false  "Página"
// @Param        page_size    query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Router       /api/inventario/movimientos [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	f, err := movementFilter(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ListMovements(c.UserContext(), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Replenishment godoc
// @Summary      Lista de reposición sugerida
// @Description  Productos activos en o bajo su stock mínimo, ordenados por urgencia.
// @Tags         inventario
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReplenishmentSuggestionDTO
// @Router       /api/inventario/reposicion [get]
func (h *InventoryHandler) Replenishment(c *fiber.Ctx) error {
	out, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func movementFilter(c *fiber.Ctx) (repository.MovementFilter, error) {
	lf, err := listFilter(c)
	if err != nil {
		return repository.MovementFilter{}, err
	}
	f := repository.MovementFilter{Page: lf.Page, PageSize: lf.PageSize}
	if raw := c.Query("id_producto"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			return f, domain.NewFieldError("id_producto", "identificador inválido")
		}
		f.ProductID = &id
	}
	if t := strings.ToUpper(strings.TrimSpace(c.Query("tipo"))); t != "" {
		if t != "IN" && t != "OUT" {
			return f, domain.NewFieldError("tipo", "valores admitidos: IN, OUT")
		}
		f.Type = t
	}
	if f.From, err = dateQuery(c, "desde"); err != nil {
		return f, err
	}
	to, err := dateQuery(c, "hasta")
	if err != nil {
		return f, err
	}
	if to != nil {
		end := to.AddDate(0, 0, 1)
		f.To = &end
	}
	return f, nil
}
