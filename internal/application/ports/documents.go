package ports

import "context"

// ReporteVentasData contenido del reporte de ventas. Los montos llegan ya
// formateados en la moneda del restaurante.
type ReporteVentasData struct {
	Restaurante    string
	NIT            string
	Desde          string
	Hasta          string
	Dias           []ReporteDia
	TopProductos   []ReporteProducto
	Total          string
	Pedidos        int
	TicketPromedio string
	GeneradoEn     string
}

// ReporteDia fila de ventas por día.
type ReporteDia struct {
	Fecha   string
	Pedidos int
	Total   string
}

// ReporteProducto fila del ranking de productos.
type ReporteProducto struct {
	Nombre   string
	Cantidad string
	Total    string
}

// TicketData contenido del ticket de un pedido.
type TicketData struct {
	Restaurante string
	NIT         string
	Direccion   string
	Numero      int
	Tipo        string
	Mesa        string
	Cliente     string
	Fecha       string
	Items       []TicketItem
	Subtotal    string
	Impuestos   string
	Descuento   string
	Total       string
	TrackingURL string
}

// TicketItem línea impresa en el ticket.
type TicketItem struct {
	Cantidad string
	Nombre   string
	Total    string
}

// PDFGenerator genera los documentos imprimibles.
type PDFGenerator interface {
	ReporteVentas(ctx context.Context, data ReporteVentasData) ([]byte, error)
	TicketPedido(ctx context.Context, data TicketData) ([]byte, error)
}

// QRGenerator codifica un contenido como imagen PNG.
type QRGenerator interface {
	PNG(content string, size int) ([]byte, error)
}
