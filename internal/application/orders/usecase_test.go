package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/application/apptest"
	"github.com/jhoicas/restaurante-api/internal/application/dto"
	"github.com/jhoicas/restaurante-api/internal/application/inventory"
	"github.com/jhoicas/restaurante-api/internal/application/orders"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/tenant"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

var ahora = time.Date(2026, 6, 5, 18, 30, 0, 0, time.UTC)

type fakeQR struct{ content string }

func (f *fakeQR) PNG(content string, _ int) ([]byte, error) {
	f.content = content
	return []byte("png"), nil
}

type fakePDF struct{ ticket ports.TicketData }

func (f *fakePDF) ReporteVentas(context.Context, ports.ReporteVentasData) ([]byte, error) {
	return []byte("%PDF"), nil
}

func (f *fakePDF) TicketPedido(_ context.Context, data ports.TicketData) ([]byte, error) {
	f.ticket = data
	return []byte("%PDF"), nil
}

type fixture struct {
	store    *apptest.Store
	pub      *apptest.Publisher
	qr       *fakeQR
	pdf      *fakePDF
	uc       *orders.UseCase
	movs     *inventory.MovimientoUseCase
	restID   string
	bandeja  *entity.Producto
	insumoID string
	cliente  *entity.Cliente
}

func newFixture(t *testing.T, stockCarne string) *fixture {
	t.Helper()
	ctx := context.Background()
	store := apptest.NewStore()
	r := &entity.Restaurant{Name: "La Fonda", NIT: "900123", Address: "Cra 7 # 12-30", Timezone: "America/Bogota", Currency: "COP", TaxIncluded: true}
	require.NoError(t, store.Restaurants().Create(ctx, r))
	tenants := tenant.NewResolver(store.Restaurants(), tenant.Defaults{})
	movs := inventory.NewMovimientoUseCase(store, tenants, zerolog.Nop())

	carne := &entity.Insumo{RestaurantID: r.ID, Nombre: "Carne molida", Unidad: entity.UnidadKg, Activo: true}
	require.NoError(t, store.Insumos().Create(ctx, carne))
	if stockCarne != "" {
		costo := d("20000")
		_, err := movs.Registrar(ctx, inventory.MovimientoInput{RestaurantID: r.ID, InsumoID: carne.ID, Tipo: entity.MovimientoCompra, Cantidad: d(stockCarne), CostoUnitario: &costo})
		require.NoError(t, err)
	}

	bandeja := &entity.Producto{RestaurantID: r.ID, Nombre: "Bandeja paisa", Categoria: "platos", Precio: d("11900"), TasaImpuesto: d("19"), Activo: true}
	require.NoError(t, store.Productos().Create(ctx, bandeja))
	require.NoError(t, store.Productos().SetReceta(ctx, bandeja.ID, []entity.RecetaItem{{ProductoID: bandeja.ID, InsumoID: carne.ID, Cantidad: d("0.2")}}))

	cli := &entity.Cliente{RestaurantID: r.ID, Nombre: "Ana Gómez", Documento: "1020"}
	require.NoError(t, store.Clientes().Create(ctx, cli))

	pub := &apptest.Publisher{}
	qr := &fakeQR{}
	pdf := &fakePDF{}
	uc := orders.NewUseCase(store, store.Pedidos(), store.Productos(), store.Clientes(), movs, tenants, pub, pdf, qr,
		orders.Config{PublicBaseURL: "https://pedidos.lafonda.co/"}, zerolog.Nop()).
		WithClock(func() time.Time { return ahora })

	return &fixture{store: store, pub: pub, qr: qr, pdf: pdf, uc: uc, movs: movs, restID: r.ID, bandeja: bandeja, insumoID: carne.ID, cliente: cli}
}

func (f *fixture) crear(t *testing.T) *dto.PedidoResponse {
	t.Helper()
	p, err := f.uc.Create(context.Background(), f.restID, "cajero-1", dto.CreatePedidoRequest{
		Tipo:  entity.PedidoTipoMesa,
		Mesa:  "4",
		Items: []dto.CreatePedidoItemDTO{{ProductoID: f.bandeja.ID, Cantidad: d("2"), Notas: "sin chicharrón"}},
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) cambiar(role, id, estado string) (*dto.PedidoResponse, error) {
	return f.uc.CambiarEstado(context.Background(), orders.CambioEstadoInput{
		RestaurantID: f.restID, UserID: role + "-1", Role: role, PedidoID: id, Estado: estado,
	})
}

func TestCreate_PreciosDeCartaConImpuestoIncluido(t *testing.T) {
	f := newFixture(t, "1")

	p := f.crear(t)

	assert.Equal(t, 1, p.Numero)
	assert.Equal(t, entity.PedidoPendiente, p.Estado)
	assert.True(t, p.Subtotal.Equal(d("20000")))
	assert.True(t, p.Impuestos.Equal(d("3800")))
	assert.True(t, p.Total.Equal(d("23800")))
	assert.Equal(t, "$ 23.800", p.TotalFormatted)
	require.Len(t, p.Items, 1)
	assert.Equal(t, "Bandeja paisa", p.Items[0].Nombre)
	require.Len(t, p.Historial, 1)

	events := f.pub.Events()
	require.Len(t, events, 1)
	assert.Equal(t, ports.EventoPedidoNuevo, events[0].Tipo)
	assert.Equal(t, "sin chicharrón", events[0].Items[0].Notas)

	segundo := f.crear(t)
	assert.Equal(t, 2, segundo.Numero)
}

func TestCreate_TotalEsperadoDistintoFalla(t *testing.T) {
	f := newFixture(t, "1")
	ctx := context.Background()
	esperado := d("20000")

	_, err := f.uc.Create(ctx, f.restID, "cajero-1", dto.CreatePedidoRequest{
		Tipo:          entity.PedidoTipoLlevar,
		Items:         []dto.CreatePedidoItemDTO{{ProductoID: f.bandeja.ID, Cantidad: d("2")}},
		TotalEsperado: &esperado,
	})
	assert.ErrorIs(t, err, domain.ErrPriceMismatch)

	list, err := f.uc.List(ctx, f.restID, orders.ListInput{})
	require.NoError(t, err)
	assert.Empty(t, list.Items)
	assert.Empty(t, f.pub.Events())
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	item := []dto.CreatePedidoItemDTO{{ProductoID: f.bandeja.ID, Cantidad: d("1")}}

	_, err := f.uc.Create(ctx, f.restID, "u", dto.CreatePedidoRequest{Tipo: entity.PedidoTipoMesa, Items: item})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "mesa requerida")

	_, err = f.uc.Create(ctx, f.restID, "u", dto.CreatePedidoRequest{Tipo: entity.PedidoTipoDomicilio, Items: item})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cliente requerido")

	_, err = f.uc.Create(ctx, f.restID, "u", dto.CreatePedidoRequest{Tipo: entity.PedidoTipoLlevar,
		Items: []dto.CreatePedidoItemDTO{{ProductoID: "no-existe", Cantidad: d("1")}}})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	inactivo := *f.bandeja
	inactivo.Activo = false
	require.NoError(t, f.store.Productos().Update(ctx, &inactivo))
	_, err = f.uc.Create(ctx, f.restID, "u", dto.CreatePedidoRequest{Tipo: entity.PedidoTipoLlevar, Items: item})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, f.restID, "u", dto.CreatePedidoRequest{Tipo: "drive", Items: item})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCambiarEstado_FlujoCompleto(t *testing.T) {
	f := newFixture(t, "1")
	ctx := context.Background()
	p := f.crear(t)

	_, err := f.cambiar(entity.RoleCocina, p.ID, entity.PedidoEnPreparacion)
	require.NoError(t, err)

	ins, err := f.store.Insumos().GetByID(ctx, f.insumoID)
	require.NoError(t, err)
	assert.True(t, ins.Stock.Equal(d("0.6")), "0.2 kg × 2 bandejas")
	movs := f.store.AllMovimientos()
	prod := movs[len(movs)-1]
	assert.Equal(t, entity.MovimientoProduccion, prod.Tipo)
	assert.Equal(t, p.ID, prod.PedidoID)

	_, err = f.cambiar(entity.RoleCocina, p.ID, entity.PedidoListo)
	require.NoError(t, err)
	res, err := f.cambiar(entity.RoleCajero, p.ID, entity.PedidoEntregado)
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoEntregado, res.Estado)

	var ingresos []entity.LedgerEntry
	for _, e := range f.store.AllLedger() {
		if e.Tipo == entity.LedgerIngreso {
			ingresos = append(ingresos, e)
		}
	}
	require.Len(t, ingresos, 1)
	assert.True(t, ingresos[0].Monto.Equal(d("23800")))
	assert.Equal(t, entity.OrigenPedido, ingresos[0].Origen)

	got, err := f.uc.GetByID(ctx, f.restID, p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Historial, 4)

	events := f.pub.Events()
	require.Len(t, events, 4)
	assert.Equal(t, ports.EventoPedidoActualizado, events[3].Tipo)
	assert.Equal(t, entity.PedidoListo, events[3].EstadoAnterior)

	_, err = f.cambiar(entity.RoleAdmin, p.ID, entity.PedidoCancelado)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCambiarEstado_StockInsuficienteNoCambiaNada(t *testing.T) {
	f := newFixture(t, "0.3")
	ctx := context.Background()
	p := f.crear(t)
	antes := len(f.store.AllMovimientos())

	_, err := f.cambiar(entity.RoleCocina, p.ID, entity.PedidoEnPreparacion)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, err := f.uc.GetByID(ctx, f.restID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoPendiente, got.Estado)
	assert.Len(t, got.Historial, 1)
	assert.Len(t, f.store.AllMovimientos(), antes)
	ins, err := f.store.Insumos().GetByID(ctx, f.insumoID)
	require.NoError(t, err)
	assert.True(t, ins.Stock.Equal(d("0.3")))
}

func TestCambiarEstado_Reglas(t *testing.T) {
	f := newFixture(t, "1")
	p := f.crear(t)

	_, err := f.cambiar(entity.RoleCajero, p.ID, entity.PedidoEntregado)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.cambiar(entity.RoleCocina, p.ID, entity.PedidoCancelado)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = f.cambiar(entity.RoleCajero, p.ID, entity.PedidoPendiente)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = f.cambiar(entity.RoleCajero, p.ID, "perdido")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.CambiarEstado(context.Background(), orders.CambioEstadoInput{
		RestaurantID: "otro", Role: entity.RoleAdmin, PedidoID: p.ID, Estado: entity.PedidoCancelado,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	res, err := f.cambiar(entity.RoleCajero, p.ID, entity.PedidoCancelado)
	require.NoError(t, err)
	assert.Equal(t, entity.PedidoCancelado, res.Estado)
}

func TestColaCocina_SinTopeYMasAntiguoPrimero(t *testing.T) {
	f := newFixture(t, "")
	reloj := ahora
	f.uc.WithClock(func() time.Time { return reloj })
	for i := 0; i < 250; i++ {
		reloj = reloj.Add(time.Minute)
		f.crear(t)
	}

	cola, err := f.uc.ColaCocina(context.Background(), f.restID)
	require.NoError(t, err)

	require.Len(t, cola, 250)
	assert.Equal(t, 1, cola[0].Numero)
	assert.Equal(t, 250, cola[len(cola)-1].Numero)
	for i := 1; i < len(cola); i++ {
		assert.True(t, cola[i-1].CreatedAt.Before(cola[i].CreatedAt))
	}
	assert.Len(t, cola[0].Items, 1)
}

func TestColaCocinaYListado(t *testing.T) {
	f := newFixture(t, "5")
	ctx := context.Background()
	p1 := f.crear(t)
	p2 := f.crear(t)
	p3 := f.crear(t)
	_, err := f.cambiar(entity.RoleCocina, p1.ID, entity.PedidoEnPreparacion)
	require.NoError(t, err)
	_, err = f.cambiar(entity.RoleCajero, p3.ID, entity.PedidoCancelado)
	require.NoError(t, err)

	cola, err := f.uc.ColaCocina(ctx, f.restID)
	require.NoError(t, err)
	require.Len(t, cola, 2)
	assert.Equal(t, p1.ID, cola[0].ID)
	assert.Equal(t, p2.ID, cola[1].ID)

	list, err := f.uc.List(ctx, f.restID, orders.ListInput{Estados: "cancelado"})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, p3.ID, list.Items[0].ID)

	// 18:30 UTC es 13:30 del 5 de junio en Bogotá.
	list, err = f.uc.List(ctx, f.restID, orders.ListInput{Desde: "2026-06-05", Hasta: "2026-06-05"})
	require.NoError(t, err)
	assert.Len(t, list.Items, 3)
	list, err = f.uc.List(ctx, f.restID, orders.ListInput{Desde: "2026-06-06"})
	require.NoError(t, err)
	assert.Empty(t, list.Items)

	_, err = f.uc.List(ctx, f.restID, orders.ListInput{Estados: "pendiente,raro"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHistorialCliente(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	_, err := f.uc.Create(ctx, f.restID, "u", dto.CreatePedidoRequest{
		Tipo: entity.PedidoTipoDomicilio, ClienteID: f.cliente.ID, MetodoPago: "transferencia",
		Items: []dto.CreatePedidoItemDTO{{ProductoID: f.bandeja.ID, Cantidad: d("1")}},
	})
	require.NoError(t, err)
	f.crear(t)

	h, err := f.uc.HistorialCliente(ctx, f.restID, f.cliente.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, h.Items, 1)
	assert.Equal(t, "Ana Gómez", h.Items[0].ClienteNombre)

	_, err = f.uc.HistorialCliente(ctx, f.restID, "no-existe", 0, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTrackingQRYTicket(t *testing.T) {
	f := newFixture(t, "")
	ctx := context.Background()
	p := f.crear(t)

	png, err := f.uc.TrackingQR(ctx, f.restID, p.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, png)
	assert.Equal(t, "https://pedidos.lafonda.co/seguimiento/"+p.ID, f.qr.content)

	_, err = f.uc.Ticket(ctx, f.restID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "La Fonda", f.pdf.ticket.Restaurante)
	assert.Equal(t, "05/06/2026 13:30", f.pdf.ticket.Fecha)
	assert.Equal(t, "$ 23.800", f.pdf.ticket.Total)
	require.Len(t, f.pdf.ticket.Items, 1)
	assert.Equal(t, "2", f.pdf.ticket.Items[0].Cantidad)

	_, err = f.uc.TrackingQR(ctx, "otro", p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
