package dto

import "github.com/shopspring/decimal"

// DashboardResumenDTO respuesta de GET /api/dashboard/resumen.
// Los límites de "hoy" y "mes" se calculan en la zona horaria del restaurante.
type DashboardResumenDTO struct {
	VentasHoy          decimal.Decimal `json:"ventas_hoy"`
	VentasMes          decimal.Decimal `json:"ventas_mes"`
	PedidosHoy         int             `json:"pedidos_hoy"`
	PedidosMes         int             `json:"pedidos_mes"`
	TicketPromedioMes  decimal.Decimal `json:"ticket_promedio_mes"`
	PedidosAbiertos    int             `json:"pedidos_abiertos"`
	InsumosBajoStock   int             `json:"insumos_bajo_stock"`
	CuentasVencidas    int             `json:"cuentas_vencidas"`
	MontoVencido       decimal.Decimal `json:"monto_vencido"`
	VentasHoyFormatted string          `json:"ventas_hoy_formatted"`
	VentasMesFormatted string          `json:"ventas_mes_formatted"`
	Moneda             string          `json:"moneda"`
	Fecha              string          `json:"fecha"`      // hoy, YYYY-MM-DD local
	DateLabel          string          `json:"date_label"` // ej: "Febrero 2026"
}

// VentaDiariaDTO bucket de ventas de un día local.
type VentaDiariaDTO struct {
	Fecha   string          `json:"fecha"`
	Pedidos int             `json:"pedidos"`
	Total   decimal.Decimal `json:"total"`
}

// VentasDiariasResponse respuesta de GET /api/dashboard/ventas-diarias.
type VentasDiariasResponse struct {
	Desde          string           `json:"desde"`
	Hasta          string           `json:"hasta"`
	Dias           []VentaDiariaDTO `json:"dias"`
	Total          decimal.Decimal  `json:"total"`
	Pedidos        int              `json:"pedidos"`
	TicketPromedio decimal.Decimal  `json:"ticket_promedio"`
}

// TopProductoDTO producto del ranking.
type TopProductoDTO struct {
	ProductoID string          `json:"producto_id"`
	Nombre     string          `json:"nombre"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Total      decimal.Decimal `json:"total"`
}

// TopClienteDTO cliente del ranking.
type TopClienteDTO struct {
	ClienteID string          `json:"cliente_id"`
	Nombre    string          `json:"nombre"`
	Pedidos   int             `json:"pedidos"`
	Total     decimal.Decimal `json:"total"`
}
