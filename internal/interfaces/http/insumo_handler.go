package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/inventory"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/domain/repository"
)

// InsumoHandler maneja insumos, sus movimientos y la sugerencia de reposición.
type InsumoHandler struct {
	insumos     *inventory.InsumoUseCase
	movimientos *inventory.MovimientoUseCase
	reposicion  *inventory.ReposicionUseCase
	proveedores *usecase.ProveedorUseCase
}

// NewInsumoHandler construye el handler.
func NewInsumoHandler(
	insumos *inventory.InsumoUseCase,
	movimientos *inventory.MovimientoUseCase,
	reposicion *inventory.ReposicionUseCase,
	proveedores *usecase.ProveedorUseCase,
) *InsumoHandler {
	return &InsumoHandler{insumos: insumos, movimientos: movimientos, reposicion: reposicion, proveedores: proveedores}
}

// Create godoc
// @Summary      Crear insumo
// @Tags         insumos
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateInsumoRequest  true  "nombre, unidad, categoria, stock_minimo"
// @Success      201   {object}  dto.InsumoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/insumos [post]
func (h *InsumoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateInsumoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.insumos.Create(c.UserContext(), GetRestaurantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener insumo
// @Tags         insumos
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {object}  dto.InsumoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [get]
func (h *InsumoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.insumos.GetByID(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar insumo (no modifica stock ni costo)
// @Tags         insumos
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                   true  "ID del insumo"
// @Param        body  body  dto.UpdateInsumoRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.InsumoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [put]
func (h *InsumoHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateInsumoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.insumos.Update(c.UserContext(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar insumo
// @Tags         insumos
// @Security     Bearer
// @Param        id   path  string  true  "ID del insumo"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id} [delete]
func (h *InsumoHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.insumos.Deactivate(c.UserContext(), GetRestaurantID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar insumos
// @Tags         insumos
// @Produce      json
// @Security     Bearer
// @Param        search             query  string  false  "Busca por nombre"
// @Param        categoria          query  string  false  "Categoría"
// @Param        solo_bajo_stock    query  bool    false  "Solo stock <= mínimo"
// @Param        incluir_inactivos  query  bool    false  "Incluye desactivados"
// @Param        limit              query  int     false  "Límite"  default(50)
// @Param        offset             query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.InsumoListResponse
// @Router       /api/insumos [get]
func (h *InsumoHandler) List(c *fiber.Ctx) error {
	f := repository.InsumoFilter{
		Search:           c.Query("search"),
		Categoria:        c.Query("categoria"),
		SoloBajoStock:    c.QueryBool("solo_bajo_stock"),
		IncluirInactivos: c.QueryBool("incluir_inactivos"),
		Limit:            c.QueryInt("limit", 50),
		Offset:           c.QueryInt("offset", 0),
	}
	out, err := h.insumos.List(c.UserContext(), GetRestaurantID(c), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// BajoStock godoc
// @Summary      Insumos bajo mínimo con sugerencia de compra
// @Description  Ordenados por urgencia; incluye el proveedor más barato cuando existe.
// @Tags         insumos
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.ReposicionSugerenciaDTO
// @Router       /api/insumos/bajo-stock [get]
func (h *InsumoHandler) BajoStock(c *fiber.Ctx) error {
	out, err := h.reposicion.ListBajoStock(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegistrarMovimiento godoc
// @Summary      Registrar movimiento de insumo
// @Description  compra (recalcula costo promedio), merma (requiere nota), ajuste (cantidad con signo) o produccion.
// @Tags         insumos
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                          true  "ID del insumo"
// @Param        body  body  dto.RegistrarMovimientoRequest  true  "Movimiento"
// @Success      201   {object}  dto.MovimientoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/insumos/{id}/movimientos [post]
func (h *InsumoHandler) RegistrarMovimiento(c *fiber.Ctx) error {
	var in dto.RegistrarMovimientoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.movimientos.RegistrarFromRequest(c.UserContext(), GetRestaurantID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovimientos godoc
// @Summary      Kardex del insumo
// @Tags         insumos
// @Produce      json
// @Security     Bearer
// @Param        id     path   string  true   "ID del insumo"
// @Param        desde  query  string  false  "RFC3339 o YYYY-MM-DD (hora local)"
// @Param        hasta  query  string  false  "RFC3339 o YYYY-MM-DD (hora local, día inclusive)"
// @Success      200    {array}  dto.MovimientoResponse
// @Failure      400    {object}  dto.ErrorResponse
// @Router       /api/insumos/{id}/movimientos [get]
func (h *InsumoHandler) ListMovimientos(c *fiber.Ctx) error {
	out, err := h.insumos.ListMovimientos(c.UserContext(), GetRestaurantID(c), c.Params("id"), c.Query("desde"), c.Query("hasta"),
		c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ListProveedores godoc
// @Summary      Proveedores activos del insumo, del más barato al más caro
// @Tags         insumos
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del insumo"
// @Success      200  {array}  dto.ProveedorInsumoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/insumos/{id}/proveedores [get]
func (h *InsumoHandler) ListProveedores(c *fiber.Ctx) error {
	out, err := h.proveedores.ListProveedores(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
