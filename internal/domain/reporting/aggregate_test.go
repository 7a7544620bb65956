package reporting_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/domain/reporting"
)

var bogota = time.FixedZone("America/Bogota", -5*60*60)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestGroupByDay_RellenaDiasYUsaZonaLocal(t *testing.T) {
	from := time.Date(2026, 4, 1, 5, 0, 0, 0, time.UTC) // 1 abr 00:00 Bogotá
	to := time.Date(2026, 4, 4, 5, 0, 0, 0, time.UTC)   // 4 abr 00:00 Bogotá (exclusivo)

	ventas := []reporting.Venta{
		{PedidoID: "a", Total: d("10000"), Fecha: time.Date(2026, 4, 1, 15, 0, 0, 0, time.UTC)},
		// 2 abr 03:00 UTC = 1 abr 22:00 en Bogotá
		{PedidoID: "b", Total: d("5000"), Fecha: time.Date(2026, 4, 2, 3, 0, 0, 0, time.UTC)},
		{PedidoID: "c", Total: d("7000"), Fecha: time.Date(2026, 4, 3, 18, 0, 0, 0, time.UTC)},
		// fuera de rango
		{PedidoID: "z", Total: d("1"), Fecha: time.Date(2026, 4, 4, 6, 0, 0, 0, time.UTC)},
	}

	got := reporting.GroupByDay(ventas, from, to, bogota)
	require.Len(t, got, 3)

	assert.Equal(t, "2026-04-01", got[0].Fecha)
	assert.Equal(t, 2, got[0].Pedidos)
	assert.True(t, got[0].Total.Equal(d("15000")))

	assert.Equal(t, "2026-04-02", got[1].Fecha)
	assert.Equal(t, 0, got[1].Pedidos)
	assert.True(t, got[1].Total.IsZero())

	assert.Equal(t, "2026-04-03", got[2].Fecha)
	assert.True(t, got[2].Total.Equal(d("7000")))
}

func TestTopProductos(t *testing.T) {
	items := []reporting.ItemVendido{
		{ProductoID: "p1", Nombre: "Ajiaco", Cantidad: d("2"), Total: d("50000")},
		{ProductoID: "p2", Nombre: "Limonada", Cantidad: d("10"), Total: d("40000")},
		{ProductoID: "p1", Nombre: "Ajiaco", Cantidad: d("1"), Total: d("25000")},
		{ProductoID: "p3", Nombre: "Arepa", Cantidad: d("4"), Total: d("40000")},
	}

	top := reporting.TopProductos(items, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "p1", top[0].ProductoID)
	assert.True(t, top[0].Cantidad.Equal(d("3")))
	assert.True(t, top[0].Total.Equal(d("75000")))
	// empate en ingreso: gana la mayor cantidad
	assert.Equal(t, "p2", top[1].ProductoID)

	assert.Len(t, reporting.TopProductos(items, 0), 3, "n<=0 devuelve todos")
}

func TestTopClientes_IgnoraAnonimos(t *testing.T) {
	ventas := []reporting.Venta{
		{ClienteID: "c1", ClienteNombre: "Ana", Total: d("30000")},
		{ClienteID: "", Total: d("99000")},
		{ClienteID: "c2", ClienteNombre: "Luis", Total: d("20000")},
		{ClienteID: "c2", ClienteNombre: "Luis", Total: d("20000")},
	}
	top := reporting.TopClientes(ventas, 5)
	require.Len(t, top, 2)
	assert.Equal(t, "c2", top[0].ClienteID)
	assert.Equal(t, 2, top[0].Pedidos)
	assert.True(t, top[0].Total.Equal(d("40000")))
}

func TestTotalesYTicketPromedio(t *testing.T) {
	total, n := reporting.Totales([]reporting.Venta{{Total: d("10000")}, {Total: d("5000")}, {Total: d("5000")}})
	assert.True(t, total.Equal(d("20000")))
	assert.Equal(t, 3, n)
	assert.True(t, reporting.TicketPromedio(total, n).Equal(d("6666.67")))
	assert.True(t, reporting.TicketPromedio(total, 0).IsZero())
}
