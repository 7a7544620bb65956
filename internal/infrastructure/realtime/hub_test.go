package realtime_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/infrastructure/realtime"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func tokens(tok string) (string, error) {
	switch tok {
	case "tok-a":
		return "rest-a", nil
	case "tok-b":
		return "rest-b", nil
	}
	return "", errors.New("token inválido")
}

type harness struct {
	hub    *realtime.Hub
	srv    *httptest.Server
	cancel context.CancelFunc
}

func newHarness(t *testing.T, opts realtime.Options) *harness {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	hub := realtime.NewHub(tokens, opts, zerolog.Nop())
	go hub.Run(ctx)
	h := &harness{hub: hub, srv: httptest.NewServer(hub), cancel: cancel}
	t.Cleanup(func() {
		h.cancel()
		<-hub.Done()
		h.srv.Close()
	})
	return h
}

func (h *harness) dial(t *testing.T, canal, token string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(h.srv.URL, "http") + "?canal=" + canal + "&token=" + token
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func (h *harness) waitClients(t *testing.T, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return h.hub.Clients() == n }, 2*time.Second, 10*time.Millisecond)
}

func readEvento(t *testing.T, conn *websocket.Conn) ports.PedidoEvento {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev ports.PedidoEvento
	require.NoError(t, conn.ReadJSON(&ev))
	return ev
}

func TestHub_DifundePorRestauranteYCanal(t *testing.T) {
	h := newHarness(t, realtime.Options{})
	cocinaA := h.dial(t, realtime.CanalCocina, "tok-a")
	cajaA := h.dial(t, realtime.CanalCaja, "tok-a")
	cajaB := h.dial(t, realtime.CanalCaja, "tok-b")
	h.waitClients(t, 3)

	h.hub.Publish(context.Background(), ports.PedidoEvento{
		Tipo: ports.EventoPedidoNuevo, RestaurantID: "rest-a", PedidoID: "p1", Numero: 1, Estado: "pendiente",
	})
	assert.Equal(t, "p1", readEvento(t, cocinaA).PedidoID)
	assert.Equal(t, "p1", readEvento(t, cajaA).PedidoID)

	// Entregado solo va a caja.
	h.hub.Publish(context.Background(), ports.PedidoEvento{
		Tipo: ports.EventoPedidoActualizado, RestaurantID: "rest-a", PedidoID: "p1", Estado: "entregado",
	})
	assert.Equal(t, "entregado", readEvento(t, cajaA).Estado)

	h.hub.Publish(context.Background(), ports.PedidoEvento{
		Tipo: ports.EventoPedidoNuevo, RestaurantID: "rest-a", PedidoID: "p2", Estado: "pendiente",
	})
	assert.Equal(t, "p2", readEvento(t, cocinaA).PedidoID, "cocina no debe recibir el entregado")

	// El restaurante B no recibió nada de A.
	require.NoError(t, cajaB.SetReadDeadline(time.Now().Add(100*time.Millisecond)))
	_, _, err := cajaB.ReadMessage()
	assert.Error(t, err)
}

func TestHub_RechazaCanalYTokenInvalidos(t *testing.T) {
	h := newHarness(t, realtime.Options{})
	httpc := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}

	res, err := httpc.Get(h.srv.URL + "?canal=bar&token=tok-a")
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	res, err = httpc.Get(h.srv.URL + "?canal=cocina&token=otro")
	require.NoError(t, err)
	_ = res.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestHub_DesconexionLiberaCliente(t *testing.T) {
	h := newHarness(t, realtime.Options{})
	conn := h.dial(t, realtime.CanalCaja, "tok-a")
	h.waitClients(t, 1)

	require.NoError(t, conn.Close())
	h.waitClients(t, 0)
}

func TestHub_ClienteLentoEsDescartado(t *testing.T) {
	h := newHarness(t, realtime.Options{SendBuffer: 1})
	_ = h.dial(t, realtime.CanalCaja, "tok-a") // nunca lee
	h.waitClients(t, 1)

	big := strings.Repeat("x", 256*1024)
	for i := 0; i < 200; i++ {
		h.hub.Publish(context.Background(), ports.PedidoEvento{
			Tipo: ports.EventoPedidoNuevo, RestaurantID: "rest-a", PedidoID: big, Estado: "pendiente",
		})
	}
	h.waitClients(t, 0)
}

func TestHub_PingMantieneViva(t *testing.T) {
	h := newHarness(t, realtime.Options{PingInterval: 20 * time.Millisecond, PongWait: 200 * time.Millisecond})
	conn := h.dial(t, realtime.CanalCocina, "tok-a")
	pings := make(chan struct{}, 8)
	conn.SetPingHandler(func(data string) error {
		select {
		case pings <- struct{}{}:
		default:
		}
		return conn.WriteControl(websocket.PongMessage, []byte(data), time.Now().Add(time.Second))
	})
	// El handler de ping solo corre mientras se lee.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	select {
	case <-pings:
	case <-time.After(2 * time.Second):
		t.Fatal("no llegó ningún ping")
	}
	time.Sleep(300 * time.Millisecond)
	assert.Equal(t, 1, h.hub.Clients(), "con pong la conexión sigue abierta")
}
