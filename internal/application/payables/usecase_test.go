package payables_test

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
	"github.com/jhoicas/restaurante-api/internal/application/payables"
	"github.com/jhoicas/restaurante-api/internal/application/tenant"
	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// 2026-04-15 10:00 en Bogotá.
var ahora = time.Date(2026, 4, 15, 15, 0, 0, 0, time.UTC)

type fixture struct {
	store  *apptest.Store
	uc     *payables.UseCase
	restID string
	prov   *entity.Proveedor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := apptest.NewStore()
	r := &entity.Restaurant{Name: "La Fonda", NIT: "900", Timezone: "America/Bogota", Currency: "COP"}
	require.NoError(t, store.Restaurants().Create(ctx, r))
	p := &entity.Proveedor{RestaurantID: r.ID, Nombre: "Carnes del Llano", NIT: "800", DiasCredito: 15, Activo: true}
	require.NoError(t, store.Proveedores().Create(ctx, p))

	tenants := tenant.NewResolver(store.Restaurants(), tenant.Defaults{})
	uc := payables.NewUseCase(store, store.Cuentas(), store.Proveedores(), store.Restaurants(), tenants, zerolog.Nop()).
		WithClock(func() time.Time { return ahora })
	return &fixture{store: store, uc: uc, restID: r.ID, prov: p}
}

func (f *fixture) cuenta(t *testing.T, monto, emision, vence string) *dto.CuentaResponse {
	t.Helper()
	c, err := f.uc.Create(context.Background(), f.restID, dto.CreateCuentaRequest{
		ProveedorID: f.prov.ID, Concepto: "Factura 123", Monto: d(monto), FechaEmision: emision, FechaVencimiento: vence,
	})
	require.NoError(t, err)
	return c
}

func TestCreate_VencimientoPorDiasDeCredito(t *testing.T) {
	f := newFixture(t)

	c := f.cuenta(t, "500000", "", "")

	assert.Equal(t, entity.CuentaPendiente, c.Estado)
	assert.True(t, c.Saldo.Equal(d("500000")))
	assert.Equal(t, time.Date(2026, 4, 15, 5, 0, 0, 0, time.UTC), c.FechaEmision)
	assert.Equal(t, time.Date(2026, 4, 30, 5, 0, 0, 0, time.UTC), c.FechaVencimiento)
	assert.Equal(t, "Carnes del Llano", c.ProveedorNombre)
}

func TestCreate_Validaciones(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, f.restID, dto.CreateCuentaRequest{ProveedorID: f.prov.ID, Concepto: "x", Monto: d("0")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, f.restID, dto.CreateCuentaRequest{ProveedorID: f.prov.ID, Concepto: "x", Monto: d("10"),
		FechaEmision: "2026-04-10", FechaVencimiento: "2026-04-01"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, f.restID, dto.CreateCuentaRequest{ProveedorID: f.prov.ID, Concepto: "x", Monto: d("10"), FechaEmision: "10/04/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(ctx, f.restID, dto.CreateCuentaRequest{ProveedorID: "otro", Concepto: "x", Monto: d("10")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegistrarPago_ParcialYTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cuenta(t, "300000", "2026-04-01", "2026-04-30")

	res, err := f.uc.RegistrarPago(ctx, f.restID, "user-1", c.ID, dto.RegistrarPagoRequest{Monto: d("100000"), Metodo: "transferencia"})
	require.NoError(t, err)
	assert.Equal(t, entity.CuentaParcial, res.Estado)
	assert.True(t, res.Saldo.Equal(d("200000")))
	require.Len(t, res.Pagos, 1)

	res, err = f.uc.RegistrarPago(ctx, f.restID, "user-1", c.ID, dto.RegistrarPagoRequest{Monto: d("200000")})
	require.NoError(t, err)
	assert.Equal(t, entity.CuentaPagada, res.Estado)
	assert.True(t, res.Saldo.IsZero())
	assert.Len(t, res.Pagos, 2)

	ledger := f.store.AllLedger()
	require.Len(t, ledger, 2)
	for _, e := range ledger {
		assert.Equal(t, entity.LedgerEgreso, e.Tipo)
		assert.Equal(t, entity.OrigenPagoProveedor, e.Origen)
	}

	_, err = f.uc.RegistrarPago(ctx, f.restID, "user-1", c.ID, dto.RegistrarPagoRequest{Monto: d("1")})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestRegistrarPago_SobrepagoNoModificaNada(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cuenta(t, "50000", "", "")

	_, err := f.uc.RegistrarPago(ctx, f.restID, "user-1", c.ID, dto.RegistrarPagoRequest{Monto: d("50001")})
	assert.ErrorIs(t, err, domain.ErrOverpayment)

	got, err := f.uc.GetByID(ctx, f.restID, c.ID)
	require.NoError(t, err)
	assert.True(t, got.Saldo.Equal(d("50000")))
	assert.Empty(t, got.Pagos)
	assert.Empty(t, f.store.AllLedger())
}

func TestRegistrarPago_MontoQueRedondeaACeroEsInvalido(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cuenta(t, "1000", "", "")

	_, err := f.uc.RegistrarPago(ctx, f.restID, "user-1", c.ID, dto.RegistrarPagoRequest{Monto: d("0.4")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	got, err := f.uc.GetByID(ctx, f.restID, c.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CuentaPendiente, got.Estado)
	assert.True(t, got.Saldo.Equal(d("1000")))
	assert.Empty(t, got.Pagos)
	assert.Empty(t, f.store.AllLedger())

	_, err = f.uc.Create(ctx, f.restID, dto.CreateCuentaRequest{ProveedorID: f.prov.ID, Concepto: "x", Monto: d("0.3")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_ProveedorDeContadoVenceElMismoDia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	contado := &entity.Proveedor{RestaurantID: f.restID, Nombre: "Plaza de mercado", NIT: "801", DiasCredito: 0, Activo: true}
	require.NoError(t, f.store.Proveedores().Create(ctx, contado))

	c, err := f.uc.Create(ctx, f.restID, dto.CreateCuentaRequest{ProveedorID: contado.ID, Concepto: "Verduras", Monto: d("80000")})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 4, 15, 5, 0, 0, 0, time.UTC), c.FechaEmision)
	assert.Equal(t, c.FechaEmision, c.FechaVencimiento)
}

func TestRegistrarPago_AbonoParcialSobreVencidaSigueVencida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	c := f.cuenta(t, "80000", "2026-03-01", "2026-04-01")

	res, err := f.uc.RegistrarPago(ctx, f.restID, "user-1", c.ID, dto.RegistrarPagoRequest{Monto: d("30000"), Metodo: "efectivo"})
	require.NoError(t, err)
	assert.Equal(t, entity.CuentaVencida, res.Estado)

	_, err = f.uc.RegistrarPago(ctx, f.restID, "user-1", c.ID, dto.RegistrarPagoRequest{Monto: d("1"), Metodo: "cheque"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAnular(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	sinPagos := f.cuenta(t, "10000", "", "")
	conPagos := f.cuenta(t, "10000", "", "")
	_, err := f.uc.RegistrarPago(ctx, f.restID, "user-1", conPagos.ID, dto.RegistrarPagoRequest{Monto: d("5000")})
	require.NoError(t, err)

	res, err := f.uc.Anular(ctx, f.restID, sinPagos.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CuentaAnulada, res.Estado)

	_, err = f.uc.Anular(ctx, f.restID, conPagos.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Anular(ctx, "otro-restaurante", sinPagos.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMarcarVencidas_UsaElDiaLocal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	vencida := f.cuenta(t, "10000", "2026-04-01", "2026-04-14")
	venceHoy := f.cuenta(t, "10000", "2026-04-01", "2026-04-15")

	n, err := f.uc.MarcarVencidas(ctx, f.restID)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := f.uc.GetByID(ctx, f.restID, vencida.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CuentaVencida, got.Estado)
	got, err = f.uc.GetByID(ctx, f.restID, venceHoy.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.CuentaPendiente, got.Estado)

	n, err = f.uc.MarcarVencidasTodos(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestListYResumen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.cuenta(t, "10000", "2026-03-01", "2026-04-10")
	f.cuenta(t, "20000", "2026-04-01", "2026-04-20")
	f.cuenta(t, "40000", "2026-04-01", "2026-05-30")
	_, err := f.uc.MarcarVencidas(ctx, f.restID)
	require.NoError(t, err)

	list, err := f.uc.List(ctx, f.restID, payables.ListInput{VenceHasta: "2026-04-20"})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, entity.CuentaVencida, list.Items[0].Estado)

	_, err = f.uc.List(ctx, f.restID, payables.ListInput{Estado: "rara"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	r, err := f.uc.Resumen(ctx, f.restID)
	require.NoError(t, err)
	assert.True(t, r.TotalPendiente.Equal(d("70000")))
	assert.True(t, r.TotalVencido.Equal(d("10000")))
	assert.Equal(t, 1, r.CuentasVencidas)
	assert.True(t, r.ProximasAVencer.Equal(d("20000")))
	assert.Equal(t, "$ 70.000", r.TotalPendienteFormatted)
}
