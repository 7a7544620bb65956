// Package pdf genera los documentos imprimibles del restaurante con Maroto v2.
//
// Reporte de ventas (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Restaurante + NIT   │  Período + fecha de emisión  │
//	│  RESUMEN: Total / Pedidos / Ticket promedio                 │
//	│  TABLA: Fecha | Pedidos | Total                             │
//	│  TABLA: Producto | Cantidad | Total                         │
//	└─────────────────────────────────────────────────────────────┘
//
// Ticket de pedido (rollo de 80 mm): encabezado, líneas, totales y el QR de
// seguimiento cuando hay URL pública configurada.
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/restaurante-api/internal/application/ports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 140, Green: 40, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Ancho y alto (mm) del rollo de impresora térmica.
const (
	ticketWidth  = 80
	ticketHeight = 240
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ ports.PDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa ports.PDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// ReporteVentas genera el reporte del período y devuelve sus bytes.
func (g *MarotoPDFGenerator) ReporteVentas(_ context.Context, data ports.ReporteVentasData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas", true).
		WithAuthor(data.Restaurante, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(reporteHeaderRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(resumenRow(data))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(sectionTitle("VENTAS POR DÍA"))
	m.AddRows(tableHeader([]string{"Fecha", "Pedidos", "Total"}, []int{4, 4, 4}))
	for _, d := range data.Dias {
		m.AddRows(tableRow([]string{d.Fecha, strconv.Itoa(d.Pedidos), d.Total}, []int{4, 4, 4}))
	}

	if len(data.TopProductos) > 0 {
		m.AddRows(row.New(4))
		m.AddRows(sectionTitle("PRODUCTOS MÁS VENDIDOS"))
		m.AddRows(tableHeader([]string{"Producto", "Cantidad", "Total"}, []int{6, 3, 3}))
		for _, p := range data.TopProductos {
			m.AddRows(tableRow([]string{p.Nombre, p.Cantidad, p.Total}, []int{6, 3, 3}))
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar reporte de ventas: %w", err)
	}
	return doc.GetBytes(), nil
}

// TicketPedido genera el ticket del pedido para impresora térmica.
func (g *MarotoPDFGenerator) TicketPedido(_ context.Context, data ports.TicketData) ([]byte, error) {
	cfg := config.NewBuilder().
		WithDimensions(ticketWidth, ticketHeight).
		WithLeftMargin(4).WithRightMargin(4).
		WithTopMargin(4).WithBottomMargin(4).
		WithDefaultFont(&props.Font{Family: "courier", Size: 8}).
		WithTitle(fmt.Sprintf("Pedido #%d", data.Numero), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(centered(data.Restaurante, 11, fontstyle.Bold))
	m.AddRows(centered("NIT: "+data.NIT, 8, fontstyle.Normal))
	if data.Direccion != "" {
		m.AddRows(centered(data.Direccion, 8, fontstyle.Normal))
	}
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.2}))

	m.AddRows(centered(fmt.Sprintf("PEDIDO #%d", data.Numero), 12, fontstyle.Bold))
	m.AddRows(centered(tipoLabel(data.Tipo, data.Mesa), 8, fontstyle.Normal))
	if data.Cliente != "" {
		m.AddRows(centered("Cliente: "+data.Cliente, 8, fontstyle.Normal))
	}
	m.AddRows(centered(data.Fecha, 8, fontstyle.Normal))
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.2}))

	for _, it := range data.Items {
		m.AddRows(row.New(5).Add(
			col.New(2).Add(text.New(it.Cantidad, props.Text{Size: 8, Top: 1})),
			col.New(6).Add(text.New(it.Nombre, props.Text{Size: 8, Top: 1})),
			col.New(4).Add(text.New(it.Total, props.Text{Size: 8, Top: 1, Align: align.Right})),
		))
	}
	m.AddRows(line.NewRow(2, props.Line{Thickness: 0.2}))

	m.AddRows(totalLine("Subtotal", data.Subtotal, false))
	m.AddRows(totalLine("Impuestos", data.Impuestos, false))
	if data.Descuento != "" {
		m.AddRows(totalLine("Descuento", data.Descuento, false))
	}
	m.AddRows(totalLine("TOTAL", data.Total, true))

	if data.TrackingURL != "" {
		m.AddRows(row.New(4))
		m.AddRows(row.New(40).Add(
			col.New(12).Add(code.NewQr(data.TrackingURL, props.Rect{Percent: 90, Center: true})),
		))
		m.AddRows(centered("Escanea para seguir tu pedido", 7, fontstyle.Normal))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar ticket: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// reporteHeaderRow: restaurante + NIT (izq) y período + emisión (der).
func reporteHeaderRow(data ports.ReporteVentasData) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(data.Restaurante, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("NIT: "+nonEmpty(data.NIT, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(data.Desde+" a "+data.Hasta, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Generado: "+data.GeneradoEn, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func resumenRow(data ports.ReporteVentasData) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Size: 8, Color: colorGray, Align: align.Center, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Center, Top: 6}),
		)
	}
	return row.New(14).Add(
		cell("Total vendido", data.Total),
		cell("Pedidos", strconv.Itoa(data.Pedidos)),
		cell("Ticket promedio", data.TicketPromedio),
	)
}

func sectionTitle(s string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

func tableHeader(labels []string, sizes []int) core.Row {
	cols := make([]core.Col, len(labels))
	for i, l := range labels {
		cols[i] = col.New(sizes[i]).Add(text.New(l, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: columnAlign(i), Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(cols...)
}

func tableRow(values []string, sizes []int) core.Row {
	cols := make([]core.Col, len(values))
	for i, v := range values {
		cols[i] = col.New(sizes[i]).Add(text.New(v, props.Text{
			Size: 8, Align: columnAlign(i), Top: 1, Left: 1, Right: 1,
		}))
	}
	return row.New(5).Add(cols...)
}

// columnAlign: primera columna a la izquierda, cifras a la derecha.
func columnAlign(i int) align.Type {
	if i == 0 {
		return align.Left
	}
	return align.Right
}

func centered(s string, size float64, style fontstyle.Type) core.Row {
	return row.New(size/2 + 2).Add(col.New(12).Add(
		text.New(s, props.Text{Size: size, Style: style, Align: align.Center, Top: 0.5}),
	))
}

func totalLine(label, value string, grand bool) core.Row {
	style := fontstyle.Normal
	size := 8.0
	if grand {
		style, size = fontstyle.Bold, 10
	}
	return row.New(size/2+2).Add(
		col.New(6).Add(text.New(label, props.Text{Size: size, Style: style})),
		col.New(6).Add(text.New(value, props.Text{Size: size, Style: style, Align: align.Right})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func tipoLabel(tipo, mesa string) string {
	switch tipo {
	case "mesa":
		return "Mesa " + mesa
	case "domicilio":
		return "Domicilio"
	default:
		return "Para llevar"
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
