package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
)

// ProveedorHandler maneja proveedores y su catálogo de insumos.
type ProveedorHandler struct {
	uc *usecase.ProveedorUseCase
}

// NewProveedorHandler construye el handler.
func NewProveedorHandler(uc *usecase.ProveedorUseCase) *ProveedorHandler {
	return &ProveedorHandler{uc: uc}
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        body  body  dto.CreateProveedorRequest  true  "Datos del proveedor"
// @Success      201   {object}  dto.ProveedorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/proveedores [post]
func (h *ProveedorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProveedorRequest
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
// @Summary      Obtener proveedor
// @Tags         proveedores
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.ProveedorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [get]
func (h *ProveedorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id    path  string                      true  "ID del proveedor"
// @Param        body  body  dto.UpdateProveedorRequest  true  "Campos a modificar"
// @Success      200   {object}  dto.ProveedorResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [put]
func (h *ProveedorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProveedorRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetRestaurantID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Deactivate godoc
// @Summary      Desactivar proveedor
// @Tags         proveedores
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id} [delete]
func (h *ProveedorHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.uc.Deactivate(c.UserContext(), GetRestaurantID(c), c.Params("id")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// List godoc
// @Summary      Listar proveedores
// @Tags         proveedores
// @Produce      json
// @Security     Bearer
// @Param        solo_activos  query  bool  false  "Solo activos"  default(true)
// @Param        limit         query  int   false  "Límite"  default(20)
// @Param        offset        query  int   false  "Offset"  default(0)
// @Success      200  {object}  dto.ProveedorListResponse
// @Router       /api/proveedores [get]
func (h *ProveedorHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), GetRestaurantID(c), c.QueryBool("solo_activos", true), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// VincularInsumo godoc
// @Summary      Vincular o actualizar insumo del proveedor
// @Tags         proveedores
// @Accept       json
// @Produce      json
// @Security     Bearer
// @Param        id        path  string                     true  "ID del proveedor"
// @Param        insumoId  path  string                     true  "ID del insumo"
// @Param        body      body  dto.VincularInsumoRequest  true  "costo, activo"
// @Success      200       {object}  dto.ProveedorInsumoResponse
// @Failure      400       {object}  dto.ErrorResponse
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id}/insumos/{insumoId} [put]
func (h *ProveedorHandler) VincularInsumo(c *fiber.Ctx) error {
	var in dto.VincularInsumoRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.VincularInsumo(c.UserContext(), GetRestaurantID(c), c.Params("id"), c.Params("insumoId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// DesvincularInsumo godoc
// @Summary      Desactivar el vínculo proveedor-insumo
// @Tags         proveedores
// @Security     Bearer
// @Param        id        path  string  true  "ID del proveedor"
// @Param        insumoId  path  string  true  "ID del insumo"
// @Success      204
// @Failure      404       {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id}/insumos/{insumoId} [delete]
func (h *ProveedorHandler) DesvincularInsumo(c *fiber.Ctx) error {
	if err := h.uc.DesvincularInsumo(c.UserContext(), GetRestaurantID(c), c.Params("id"), c.Params("insumoId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListInsumos godoc
// @Summary      Insumos activos del proveedor
// @Tags         proveedores
// @Produce      json
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {array}  dto.ProveedorInsumoResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/proveedores/{id}/insumos [get]
func (h *ProveedorHandler) ListInsumos(c *fiber.Ctx) error {
	out, err := h.uc.ListInsumos(c.UserContext(), GetRestaurantID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
