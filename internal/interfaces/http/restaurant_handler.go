package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
)

// RestaurantHandler maneja el alta y consulta de restaurantes (público).
type RestaurantHandler struct {
	uc *usecase.RestaurantUseCase
}

// NewRestaurantHandler construye el handler.
func NewRestaurantHandler(uc *usecase.RestaurantUseCase) *RestaurantHandler {
	return &RestaurantHandler{uc: uc}
}

// Create godoc
// @Summary      Crear restaurante
// @Tags         restaurantes
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRestaurantRequest  true  "Datos del restaurante"
// @Success      201   {object}  dto.RestaurantResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/restaurantes [post]
func (h *RestaurantHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRestaurantRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener restaurante por ID
// @Tags         restaurantes
// @Produce      json
// @Param        id   path  string  true  "ID del restaurante"
// @Success      200  {object}  dto.RestaurantResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/restaurantes/{id} [get]
func (h *RestaurantHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar restaurantes
// @Tags         restaurantes
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200     {object}  dto.RestaurantListResponse
// @Router       /api/restaurantes [get]
func (h *RestaurantHandler) List(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
