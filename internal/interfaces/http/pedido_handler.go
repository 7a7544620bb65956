package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/orders"
)

// PedidoHandler maneja pedidos, la cola de cocina y los documentos del pedido.
type PedidoHandler struct {
	uc *orders.UseCase
}

// NewPedidoHandler construye el handler.
func NewPedidoHandler(uc *orders.UseCase) *PedidoHandler {
	return &PedidoHandler{uc: uc}
}

// Create godoc
// @Summary      Crear pedido
// @Description  Los precios salen de la carta. Si total_esperado difiere del calculado responde PRICE_MISMATCH.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreatePedidoRequest  true  "tipo, mesa, cliente_id, items"
// @Success      201   {object}  dto.PedidoResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos [post]
func (h *PedidoHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePedidoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetRestaurantID(c), GetUserID(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener pedido con items e historial
// @Tags         pedidos
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {object}  dto.PedidoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id} [get]
func (h *PedidoHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar pedidos
// @Tags         pedidos
// @Produce      json
// @Security     Bearer
// @Param        estado      query  string  false  "Uno o varios estados separados por coma"
// @Param        cliente_id  query  string  false  "Cliente"
// @Param        desde       query  string  false  "YYYY-MM-DD (zona del restaurante)"
// @Param        hasta       query  string  false  "YYYY-MM-DD inclusive"
// @Param        limit       query  int     false  "Límite"  default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.PedidoListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/pedidos [get]
func (h *PedidoHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), GetRestaurantID(c), orders.ListInput{
		Estados:   c.Query("estado"),
		ClienteID: c.Query("cliente_id"),
		Desde:     c.Query("desde"),
		Hasta:     c.Query("hasta"),
		Limit:     limit,
		Offset:    offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Cocina godoc
// @Summary      Cola de cocina (pendientes y en preparación, el más antiguo primero)
// @Tags         pedidos
// @Produce      json
// @Security     Bearer
// @Success      200  {array}  dto.PedidoResponse
// @Router       /api/pedidos/cocina [get]
func (h *PedidoHandler) Cocina(c *fiber.Ctx) error {
	out, err := h.uc.ColaCocina(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CambiarEstado godoc
// @Summary      Cambiar estado del pedido
// @Description  Entrar a en_preparacion descuenta insumos según receta; entregado registra el ingreso.
// @Tags         pedidos
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                    true  "ID del pedido"
// @Param        body  body  dto.CambiarEstadoRequest  true  "estado"
// @Success      200   {object}  dto.PedidoResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/estado [patch]
func (h *PedidoHandler) CambiarEstado(c *fiber.Ctx) error {
	var in dto.CambiarEstadoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CambiarEstado(c.UserContext(), orders.CambioEstadoInput{
		RestaurantID: GetRestaurantID(c),
		UserID:       GetUserID(c),
		Role:         GetRole(c),
		PedidoID:     c.Params("id"),
		Estado:       in.Estado,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// QR godoc
// @Summary      QR de seguimiento del pedido
// @Tags         pedidos
// @Produce      png
// @Security     Bearer
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/qr [get]
func (h *PedidoHandler) QR(c *fiber.Ctx) error {
	png, err := h.uc.TrackingQR(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// Ticket godoc
// @Summary      Ticket PDF del pedido
// @Tags         pedidos
// @Produce      application/pdf
// @Security     Bearer
// @Param        id   path  string  true  "ID del pedido"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/pedidos/{id}/ticket [get]
func (h *PedidoHandler) Ticket(c *fiber.Ctx) error {
	pdf, err := h.uc.Ticket(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="pedido-`+c.Params("id")+`.pdf"`)
	return c.Send(pdf)
}
