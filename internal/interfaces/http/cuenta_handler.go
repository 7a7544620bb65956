package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/payables"
)

// CuentaHandler maneja las cuentas por pagar a proveedores.
type CuentaHandler struct {
	uc *payables.UseCase
}

// NewCuentaHandler construye el handler.
func NewCuentaHandler(uc *payables.UseCase) *CuentaHandler {
	return &CuentaHandler{uc: uc}
}

// Create godoc
// @Summary      Crear cuenta por pagar manual
// @Tags         cuentas-por-pagar
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateCuentaRequest  true  "proveedor_id, concepto, monto, fechas"
// @Success      201   {object}  dto.CuentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-pagar [post]
func (h *CuentaHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCuentaRequest
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
// @Summary      Obtener cuenta con sus pagos
// @Tags         cuentas-por-pagar
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.CuentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-pagar/{id} [get]
func (h *CuentaHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar cuentas por pagar
// @Tags         cuentas-por-pagar
// @Produce      json
// @Security     Bearer
// @Param        estado        query  string  false  "pendiente|parcial|pagada|vencida|anulada"
// @Param        proveedor_id  query  string  false  "Proveedor"
// @Param        vence_hasta   query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.CuentaListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-pagar [get]
func (h *CuentaHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), GetRestaurantID(c), payables.ListInput{
		Estado:      c.Query("estado"),
		ProveedorID: c.Query("proveedor_id"),
		VenceHasta:  c.Query("vence_hasta"),
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Resumen godoc
// @Summary      Totales pendiente, vencido y próximo a vencer
// @Tags         cuentas-por-pagar
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.CuentasResumenResponse
// @Router       /api/cuentas-por-pagar/resumen [get]
func (h *CuentaHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Resumen(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RegistrarPago godoc
// @Summary      Registrar abono
// @Tags         cuentas-por-pagar
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                    true  "ID de la cuenta"
// @Param        body  body  dto.RegistrarPagoRequest  true  "monto, metodo, referencia"
// @Success      200   {object}  dto.CuentaResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-pagar/{id}/pagos [post]
func (h *CuentaHandler) RegistrarPago(c *fiber.Ctx) error {
	var in dto.RegistrarPagoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.RegistrarPago(c.UserContext(), GetRestaurantID(c), GetUserID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Anular godoc
// @Summary      Anular cuenta sin pagos
// @Tags         cuentas-por-pagar
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID de la cuenta"
// @Success      200  {object}  dto.CuentaResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-pagar/{id}/anular [post]
func (h *CuentaHandler) Anular(c *fiber.Ctx) error {
	out, err := h.uc.Anular(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// MarcarVencidas godoc
// @Summary      Marcar como vencidas las cuentas con vencimiento anterior a hoy
// @Tags         cuentas-por-pagar
// @Produce      json
// @Security     Bearer
// @Success      200  {object}  dto.MarcarVencidasResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/cuentas-por-pagar/marcar-vencidas [post]
func (h *CuentaHandler) MarcarVencidas(c *fiber.Ctx) error {
	n, err := h.uc.MarcarVencidas(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MarcarVencidasResponse{Marcadas: n})
}
