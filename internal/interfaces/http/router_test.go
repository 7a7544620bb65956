package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/restaurante-api/internal/application/analytics"
	"github.com/jhoicas/restaurante-api/internal/application/apptest"
	"github.com/jhoicas/restaurante-api/internal/application/auth"
	"github.com/jhoicas/restaurante-api/internal/application/inventory"
	"github.com/jhoicas/restaurante-api/internal/application/orders"
	"github.com/jhoicas/restaurante-api/internal/application/payables"
	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/application/tenant"
	"github.com/jhoicas/restaurante-api/internal/application/usecase"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/qr"
	apphttp "github.com/jhoicas/restaurante-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/restaurante-api/pkg/jwt"
)

type fakePDF struct{}

func (fakePDF) ReporteVentas(context.Context, ports.ReporteVentasData) ([]byte, error) {
	return []byte("%PDF-reporte"), nil
}

func (fakePDF) TicketPedido(context.Context, ports.TicketData) ([]byte, error) {
	return []byte("%PDF-ticket"), nil
}

type apiFixture struct {
	app    *fiber.App
	store  *apptest.Store
	restID string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := apptest.NewStore()
	tenants := tenant.NewResolver(store.Restaurants(), tenant.Defaults{Timezone: "America/Bogota", Currency: "COP", Locale: "es"})
	movs := inventory.NewMovimientoUseCase(store, tenants, zerolog.Nop())
	proveedorUC := usecase.NewProveedorUseCase(store.Proveedores(), store.Insumos())
	pedidoUC := orders.NewUseCase(store, store.Pedidos(), store.Productos(), store.Clientes(), movs, tenants, nil,
		fakePDF{}, qr.NewGenerator(), orders.Config{PublicBaseURL: "https://pedidos.test"}, zerolog.Nop())

	app := fiber.New()
	app.Use(apphttp.RequestLogger(zerolog.Nop()))
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:       auth.NewAuthUseCase(store.Users(), store.Restaurants(), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		RestaurantUC: usecase.NewRestaurantUseCase(store.Restaurants(), "America/Bogota", "COP"),
		InsumoUC:     inventory.NewInsumoUseCase(store.Insumos(), store.Movimientos(), tenants),
		MovimientoUC: movs,
		ReposicionUC: inventory.NewReposicionUseCase(store.Insumos(), store.Proveedores()),
		ProveedorUC:  proveedorUC,
		CuentaUC:     payables.NewUseCase(store, store.Cuentas(), store.Proveedores(), store.Restaurants(), tenants, zerolog.Nop()),
		ProductoUC:   usecase.NewProductoUseCase(store, store.Productos(), store.Insumos()),
		ClienteUC:    usecase.NewClienteUseCase(store.Clientes()),
		PedidoUC:     pedidoUC,
		LedgerUC:     usecase.NewLedgerUseCase(store.Ledger(), tenants),
		DashboardUC:  appanalytics.NewDashboardUseCase(store.Reports(), store.Pedidos(), store.Insumos(), store.Cuentas(), tenants, fakePDF{}),
		JWTSecret:    testJWTSecret,
	})

	f := &apiFixture{app: app, store: store}
	var rest map[string]any
	resp := f.do(t, http.MethodPost, "/api/restaurantes", "", map[string]any{"name": "La Fonda", "nit": "900123"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &rest)
	f.restID = rest["id"].(string)
	return f
}

func (f *apiFixture) token(t *testing.T, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, role+"-1", f.restID, role, testIssuer, testExpMin)
	require.NoError(t, err)
	return tok
}

func (f *apiFixture) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var e struct {
		Code string `json:"code"`
	}
	decode(t, resp, &e)
	return e.Code
}

func TestRouter_FlujoPedidoCompleto(t *testing.T) {
	f := newAPI(t)
	admin, cajero, cocina, compras := f.token(t, "admin"), f.token(t, "cajero"), f.token(t, "cocina"), f.token(t, "compras")

	resp := f.do(t, http.MethodPost, "/api/insumos", cajero, map[string]any{"nombre": "Carne molida", "unidad": "kg"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "cajero no escribe insumos")

	var insumo map[string]any
	resp = f.do(t, http.MethodPost, "/api/insumos", compras, map[string]any{"nombre": "Carne molida", "unidad": "kg", "stock_minimo": "0.5"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &insumo)
	insumoID := insumo["id"].(string)

	resp = f.do(t, http.MethodPost, "/api/insumos/"+insumoID+"/movimientos", compras,
		map[string]any{"tipo": "compra", "cantidad": "1", "costo_unitario": "20000"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	var producto map[string]any
	resp = f.do(t, http.MethodPost, "/api/productos", admin, map[string]any{
		"nombre": "Bandeja paisa", "categoria": "platos", "precio": "11900", "tasa_impuesto": "19",
		"receta": []map[string]any{{"insumo_id": insumoID, "cantidad": "0.2"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &producto)

	var pedido map[string]any
	resp = f.do(t, http.MethodPost, "/api/pedidos", cajero, map[string]any{
		"tipo": "mesa", "mesa": "4",
		"items": []map[string]any{{"producto_id": producto["id"], "cantidad": "2"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &pedido)
	pedidoID := pedido["id"].(string)
	assert.Equal(t, "pendiente", pedido["estado"])

	var cola []map[string]any
	resp = f.do(t, http.MethodGet, "/api/pedidos/cocina", cocina, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &cola)
	assert.Len(t, cola, 1)

	resp = f.do(t, http.MethodPatch, "/api/pedidos/"+pedidoID+"/estado", cocina, map[string]any{"estado": "en_preparacion"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPatch, "/api/pedidos/"+pedidoID+"/estado", cocina, map[string]any{"estado": "entregado"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", errorCode(t, resp))

	resp = f.do(t, http.MethodPatch, "/api/pedidos/"+pedidoID+"/estado", cajero, map[string]any{"estado": "pendiente"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, resp))

	resp = f.do(t, http.MethodPatch, "/api/pedidos/"+pedidoID+"/estado", cocina, map[string]any{"estado": "listo"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	resp = f.do(t, http.MethodPatch, "/api/pedidos/"+pedidoID+"/estado", cajero, map[string]any{"estado": "entregado"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/insumos/"+insumoID, cocina, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &insumo)
	assert.Equal(t, "0.6", insumo["stock"])

	var ledger struct {
		Items []map[string]any `json:"items"`
	}
	resp = f.do(t, http.MethodGet, "/api/finanzas/movimientos", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &ledger)
	tipos := map[string]int{}
	for _, e := range ledger.Items {
		tipos[e["tipo"].(string)]++
	}
	assert.Equal(t, map[string]int{"ingreso": 1, "egreso": 1}, tipos, "compra de contado y venta entregada")

	resp = f.do(t, http.MethodGet, "/api/pedidos/"+pedidoID+"/qr", cajero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get("Content-Type"))
	png, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG")))

	resp = f.do(t, http.MethodGet, "/api/pedidos/"+pedidoID+"/ticket", cajero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()
}

func TestRouter_StockInsuficienteNoCambiaEstado(t *testing.T) {
	f := newAPI(t)
	admin, cajero, compras := f.token(t, "admin"), f.token(t, "cajero"), f.token(t, "compras")

	var insumo, producto, pedido map[string]any
	resp := f.do(t, http.MethodPost, "/api/insumos", compras, map[string]any{"nombre": "Queso", "unidad": "kg"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &insumo)

	resp = f.do(t, http.MethodPost, "/api/productos", admin, map[string]any{
		"nombre": "Arepa", "precio": "5000", "tasa_impuesto": "0",
		"receta": []map[string]any{{"insumo_id": insumo["id"], "cantidad": "0.1"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &producto)

	resp = f.do(t, http.MethodPost, "/api/pedidos", cajero, map[string]any{
		"tipo": "llevar", "items": []map[string]any{{"producto_id": producto["id"], "cantidad": "1"}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &pedido)

	resp = f.do(t, http.MethodPatch, "/api/pedidos/"+pedido["id"].(string)+"/estado", cajero, map[string]any{"estado": "en_preparacion"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, "/api/pedidos/"+pedido["id"].(string), cajero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &pedido)
	assert.Equal(t, "pendiente", pedido["estado"])
}

func TestRouter_CuentaSobrepagoYMarcarVencidas(t *testing.T) {
	f := newAPI(t)
	compras, admin := f.token(t, "compras"), f.token(t, "admin")

	var prov, cuenta map[string]any
	resp := f.do(t, http.MethodPost, "/api/proveedores", compras, map[string]any{"nombre": "Carnes del Valle", "nit": "800111"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &prov)

	resp = f.do(t, http.MethodPost, "/api/proveedores", compras, map[string]any{"nombre": "Otro", "nit": "800111"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", errorCode(t, resp))

	resp = f.do(t, http.MethodPost, "/api/proveedores", compras, map[string]any{"nombre": "Lácteos", "nit": "890.903.938-1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "dígito de verificación incorrecto")
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = f.do(t, http.MethodPost, "/api/cuentas-por-pagar", compras, map[string]any{
		"proveedor_id": prov["id"], "concepto": "Factura 55", "monto": "100000",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	decode(t, resp, &cuenta)
	cuentaID := cuenta["id"].(string)

	resp = f.do(t, http.MethodPost, "/api/cuentas-por-pagar/"+cuentaID+"/pagos", compras, map[string]any{"monto": "150000", "metodo": "efectivo"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "OVERPAYMENT", errorCode(t, resp))

	resp = f.do(t, http.MethodPost, "/api/cuentas-por-pagar/"+cuentaID+"/pagos", compras, map[string]any{"monto": "40000", "metodo": "transferencia"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &cuenta)
	assert.Equal(t, "parcial", cuenta["estado"])

	resp = f.do(t, http.MethodPost, "/api/cuentas-por-pagar/"+cuentaID+"/anular", compras, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/cuentas-por-pagar/marcar-vencidas", compras, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	var marcadas map[string]int
	resp = f.do(t, http.MethodPost, "/api/cuentas-por-pagar/marcar-vencidas", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &marcadas)
	assert.Equal(t, 0, marcadas["marcadas"], "la cuenta vence en 30 días")
}

func TestRouter_ErroresDeEntrada(t *testing.T) {
	f := newAPI(t)
	cajero, cocina := f.token(t, "cajero"), f.token(t, "cocina")

	resp := f.do(t, http.MethodGet, "/api/pedidos?desde=05-01-2026", cajero, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, "/api/clientes/00000000-0000-0000-0000-00000000dead", cajero, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))

	resp = f.do(t, http.MethodGet, "/api/dashboard/resumen", cocina, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/dashboard/top-productos?n=500", cajero, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodGet, "/api/insumos", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/pedidos", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cajero)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))
}

func TestRouter_PaginacionAcotada(t *testing.T) {
	f := newAPI(t)
	cajero := f.token(t, "cajero")

	var out struct {
		Page struct {
			Limit  int `json:"limit"`
			Offset int `json:"offset"`
		} `json:"page"`
	}
	resp := f.do(t, http.MethodGet, "/api/clientes?limit=500&offset=-3", cajero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, 100, out.Page.Limit)
	assert.Equal(t, 0, out.Page.Offset)

	resp = f.do(t, http.MethodGet, "/api/clientes?limit=abc", cajero, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &out)
	assert.Equal(t, 20, out.Page.Limit)
}

func TestRouter_RegistroYLogin(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "caja@lafonda.co", "password": "secreta123", "restaurant_id": f.restID,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = f.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "caja@lafonda.co", "password": "secreta123", "restaurant_id": f.restID,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", errorCode(t, resp))

	var login map[string]any
	resp = f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{"email": "caja@lafonda.co", "password": "secreta123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &login)
	require.NotEmpty(t, login["token"])

	resp = f.do(t, http.MethodGet, "/api/pedidos", login["token"].(string), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}
