package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/restaurante-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Resumen devuelve ventas de hoy y del mes, pedidos abiertos, insumos bajo
// stock y cuentas vencidas.
// GET /api/dashboard/resumen
//
// No requiere parámetros; "hoy" y "mes" se calculan en la zona del restaurante.
func (h *DashboardHandler) Resumen(c *fiber.Ctx) error {
	out, err := h.uc.Resumen(c.UserContext(), GetRestaurantID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// VentasDiarias serie de ventas por día local, con días sin ventas en cero.
// GET /api/dashboard/ventas-diarias?desde=YYYY-MM-DD&hasta=YYYY-MM-DD
func (h *DashboardHandler) VentasDiarias(c *fiber.Ctx) error {
	out, err := h.uc.VentasPorDia(c.UserContext(), GetRestaurantID(c), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopProductos GET /api/dashboard/top-productos?desde&hasta&n (n por defecto 10, máximo 50).
func (h *DashboardHandler) TopProductos(c *fiber.Ctx) error {
	out, err := h.uc.TopProductos(c.UserContext(), GetRestaurantID(c), c.Query("desde"), c.Query("hasta"), c.QueryInt("n", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopClientes GET /api/dashboard/top-clientes?desde&hasta&n
func (h *DashboardHandler) TopClientes(c *fiber.Ctx) error {
	out, err := h.uc.TopClientes(c.UserContext(), GetRestaurantID(c), c.Query("desde"), c.Query("hasta"), c.QueryInt("n", 0))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ReportePDF reporte de ventas del rango como adjunto PDF.
// GET /api/dashboard/reporte.pdf?desde&hasta
func (h *DashboardHandler) ReportePDF(c *fiber.Ctx) error {
	pdf, err := h.uc.ReporteVentasPDF(c.UserContext(), GetRestaurantID(c), c.Query("desde"), c.Query("hasta"))
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-ventas.pdf"`)
	return c.Send(pdf)
}
