package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/analytics"
	"github.com/jhoicas/restaurante-api/internal/application/apptest"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/tenant"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// 2026-03-10 10:00 en Bogotá.
var ahora = time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

type fakePDF struct{ reporte ports.ReporteVentasData }

func (f *fakePDF) ReporteVentas(_ context.Context, data ports.ReporteVentasData) ([]byte, error) {
	f.reporte = data
	return []byte("%PDF"), nil
}

func (f *fakePDF) TicketPedido(context.Context, ports.TicketData) ([]byte, error) {
	return nil, nil
}

func seed(t *testing.T) (*analytics.DashboardUseCase, *fakePDF, string) {
	t.Helper()
	ctx := context.Background()
	store := apptest.NewStore()
	r := &entity.Restaurant{Name: "La Fonda", NIT: "900", Timezone: "America/Bogota", Currency: "COP"}
	require.NoError(t, store.Restaurants().Create(ctx, r))
	ana := &entity.Cliente{RestaurantID: r.ID, Nombre: "Ana"}
	require.NoError(t, store.Clientes().Create(ctx, ana))

	pedidos := []entity.Pedido{
		// hoy 09:00 local
		{Estado: entity.PedidoEntregado, ClienteID: ana.ID, Total: d("30000"), CreatedAt: time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC),
			Items: []entity.PedidoItem{{ProductoID: "p-bandeja", Nombre: "Bandeja", Cantidad: d("1"), Total: d("30000")}}},
		// ayer 22:30 local, ya es 10 de marzo en UTC
		{Estado: entity.PedidoEntregado, Total: d("20000"), CreatedAt: time.Date(2026, 3, 10, 3, 30, 0, 0, time.UTC),
			Items: []entity.PedidoItem{{ProductoID: "p-jugo", Nombre: "Jugo", Cantidad: d("2"), Total: d("20000")}}},
		{Estado: entity.PedidoPendiente, Total: d("10000"), CreatedAt: time.Date(2026, 3, 10, 14, 30, 0, 0, time.UTC)},
		{Estado: entity.PedidoEntregado, Total: d("50000"), CreatedAt: time.Date(2026, 2, 28, 20, 0, 0, 0, time.UTC)},
		{Estado: entity.PedidoCancelado, Total: d("99000"), CreatedAt: time.Date(2026, 3, 10, 13, 0, 0, 0, time.UTC)},
	}
	for i := range pedidos {
		p := pedidos[i]
		p.RestaurantID = r.ID
		p.Numero = i + 1
		p.Tipo = entity.PedidoTipoLlevar
		require.NoError(t, store.Pedidos().Create(ctx, &p))
	}

	require.NoError(t, store.Insumos().Create(ctx, &entity.Insumo{RestaurantID: r.ID, Nombre: "Arroz", Unidad: entity.UnidadKg,
		Stock: d("0"), StockMinimo: d("5"), Activo: true}))
	require.NoError(t, store.Cuentas().Create(ctx, &entity.CuentaPorPagar{RestaurantID: r.ID, Concepto: "Factura", Monto: d("40000"),
		Saldo: d("40000"), Estado: entity.CuentaPendiente, FechaVencimiento: time.Date(2026, 3, 1, 5, 0, 0, 0, time.UTC)}))

	pdf := &fakePDF{}
	tenants := tenant.NewResolver(store.Restaurants(), tenant.Defaults{})
	uc := analytics.NewDashboardUseCase(store.Reports(), store.Pedidos(), store.Insumos(), store.Cuentas(), tenants, pdf).
		WithClock(func() time.Time { return ahora })
	return uc, pdf, r.ID
}

func TestResumen_LimitesEnHoraLocal(t *testing.T) {
	uc, _, restID := seed(t)

	res, err := uc.Resumen(context.Background(), restID)
	require.NoError(t, err)

	assert.True(t, res.VentasHoy.Equal(d("30000")))
	assert.Equal(t, 1, res.PedidosHoy)
	assert.True(t, res.VentasMes.Equal(d("50000")))
	assert.Equal(t, 2, res.PedidosMes)
	assert.True(t, res.TicketPromedioMes.Equal(d("25000")))
	assert.Equal(t, 1, res.PedidosAbiertos)
	assert.Equal(t, 1, res.InsumosBajoStock)
	assert.Equal(t, 1, res.CuentasVencidas)
	assert.True(t, res.MontoVencido.Equal(d("40000")))
	assert.Equal(t, "$ 30.000", res.VentasHoyFormatted)
	assert.Equal(t, "COP", res.Moneda)
	assert.Equal(t, "2026-03-10", res.Fecha)
	assert.Equal(t, "Marzo 2026", res.DateLabel)
}

func TestResumen_RestauranteInexistente(t *testing.T) {
	uc, _, _ := seed(t)
	_, err := uc.Resumen(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVentasPorDia_DiasSinVentasEnCero(t *testing.T) {
	uc, _, restID := seed(t)

	res, err := uc.VentasPorDia(context.Background(), restID, "2026-03-08", "2026-03-10")
	require.NoError(t, err)

	require.Len(t, res.Dias, 3)
	assert.Equal(t, "2026-03-08", res.Dias[0].Fecha)
	assert.Zero(t, res.Dias[0].Pedidos)
	assert.True(t, res.Dias[1].Total.Equal(d("20000")))
	assert.True(t, res.Dias[2].Total.Equal(d("30000")))
	assert.Equal(t, 2, res.Pedidos)
	assert.Equal(t, "2026-03-10", res.Hasta)

	_, err = uc.VentasPorDia(context.Background(), restID, "2025-01-01", "2026-03-10")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.VentasPorDia(context.Background(), restID, "10-03-2026", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.VentasPorDia(context.Background(), restID, "0001-01-01", "9999-12-31")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err = uc.VentasPorDia(context.Background(), restID, "2025-03-11", "2026-03-10")
	require.NoError(t, err)
	assert.Len(t, res.Dias, 365)
}

func TestTopProductosYClientes(t *testing.T) {
	uc, _, restID := seed(t)
	ctx := context.Background()

	prods, err := uc.TopProductos(ctx, restID, "", "", 0)
	require.NoError(t, err)
	require.Len(t, prods, 2)
	assert.Equal(t, "Bandeja", prods[0].Nombre)
	assert.Equal(t, "Jugo", prods[1].Nombre)

	_, err = uc.TopProductos(ctx, restID, "", "", 51)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	clientes, err := uc.TopClientes(ctx, restID, "2026-02-01", "2026-03-10", 5)
	require.NoError(t, err)
	require.Len(t, clientes, 1)
	assert.Equal(t, "Ana", clientes[0].Nombre)
	assert.Equal(t, 1, clientes[0].Pedidos)
}

func TestReporteVentasPDF(t *testing.T) {
	uc, pdf, restID := seed(t)

	out, err := uc.ReporteVentasPDF(context.Background(), restID, "2026-03-01", "2026-03-10")
	require.NoError(t, err)
	assert.NotEmpty(t, out)

	rep := pdf.reporte
	assert.Equal(t, "La Fonda", rep.Restaurante)
	assert.Len(t, rep.Dias, 10)
	assert.Equal(t, "$ 50.000", rep.Total)
	assert.Equal(t, 2, rep.Pedidos)
	require.Len(t, rep.TopProductos, 2)
	assert.Equal(t, "Bandeja", rep.TopProductos[0].Nombre)
	assert.Equal(t, "10/03/2026 10:00", rep.GeneradoEn)
}
