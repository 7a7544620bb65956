package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/restaurante-api/internal/application/usecase"
)

// FinanzasHandler expone el libro de ingresos y egresos.
type FinanzasHandler struct {
	uc *usecase.LedgerUseCase
}

// NewFinanzasHandler construye el handler.
func NewFinanzasHandler(uc *usecase.LedgerUseCase) *FinanzasHandler {
	return &FinanzasHandler{uc: uc}
}

// Movimientos godoc
// @Summary      Movimientos financieros con totales del período
// @Tags         finanzas
// @Produce      json
// @Security     Bearer
// @Param        desde   query  string  false  "YYYY-MM-DD (por defecto inicio de mes)"
// @Param        hasta   query  string  false  "YYYY-MM-DD inclusive (por defecto hoy)"
// @Param        tipo    query  string  false  "ingreso|egreso"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.LedgerListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finanzas/movimientos [get]
func (h *FinanzasHandler) Movimientos(c *fiber.Ctx) error {
	limit, offset := page(c)
	out, err := h.uc.List(c.UserContext(), GetRestaurantID(c), c.Query("desde"), c.Query("hasta"), c.Query("tipo"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
