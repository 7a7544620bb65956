package pdf_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/pdf"
)

func TestReporteVentas_GeneraPDF(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	doc, err := g.ReporteVentas(context.Background(), ports.ReporteVentasData{
		Restaurante: "La Fonda", NIT: "900123456", Desde: "2026-03-01", Hasta: "2026-03-10",
		Dias: []ports.ReporteDia{
			{Fecha: "2026-03-01", Pedidos: 2, Total: "$ 50.000"},
			{Fecha: "2026-03-02", Pedidos: 0, Total: "$ 0"},
		},
		TopProductos: []ports.ReporteProducto{{Nombre: "Bandeja paisa", Cantidad: "2", Total: "$ 50.000"}},
		Total:        "$ 50.000", Pedidos: 2, TicketPromedio: "$ 25.000", GeneradoEn: "10/03/2026 10:00",
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestTicketPedido_ConQRDeSeguimiento(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	doc, err := g.TicketPedido(context.Background(), ports.TicketData{
		Restaurante: "La Fonda", NIT: "900123456", Numero: 7, Tipo: "mesa", Mesa: "4",
		Fecha:    "05/06/2026 13:30",
		Items:    []ports.TicketItem{{Cantidad: "2", Nombre: "Ajiaco", Total: "$ 23.800"}},
		Subtotal: "$ 20.000", Impuestos: "$ 3.800", Total: "$ 23.800",
		TrackingURL: "https://pedidos.example.com/seguimiento/abc",
	})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(doc[:4]))
}
