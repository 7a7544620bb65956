package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/orders"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
)

// ClienteHandler maneja el CRM de clientes.
type ClienteHandler struct {
	uc      *usecase.ClienteUseCase
	pedidos *orders.UseCase
}

// NewClienteHandler construye el handler.
func NewClienteHandler(uc *usecase.ClienteUseCase, pedidos *orders.UseCase) *ClienteHandler {
	return &ClienteHandler{uc: uc, pedidos: pedidos}
}

// Create godoc
// @Summary      Crear cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateClienteRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ClienteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/clientes [post]
func (h *ClienteHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetRestaurantID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         clientes
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClienteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [get]
func (h *ClienteHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         clientes
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                    true  "ID del cliente"
// @Param        body  body  dto.UpdateClienteRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ClienteResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/clientes/{id} [put]
func (h *ClienteHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateClienteRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         clientes
// @Produce      json
// @Security     Bearer
// @Param        search  query  string  false  "Nombre, documento o teléfono"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ClienteListResponse
// @Router       /api/clientes [get]
func (h *ClienteHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), GetRestaurantID(c), c.Query("search"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Pedidos godoc
// @Summary      Historial de pedidos del cliente
// @Tags         clientes
// @Produce      json
// @Security     Bearer
// @Param        id      path   string  true   "ID del cliente"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PedidoListResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/pedidos [get]
func (h *ClienteHandler) Pedidos(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.pedidos.HistorialCliente(c.UserContext(), GetRestaurantID(c), c.Params("id"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Estadísticas del cliente (pedidos entregados)
// @Tags         clientes
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClienteStatsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/clientes/{id}/stats [get]
func (h *ClienteHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
