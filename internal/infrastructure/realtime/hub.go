// Package realtime difunde los eventos de pedidos a las pantallas de cocina
// (KDS) y caja por WebSocket.
package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurante-api/internal/application/ports"
	"github.com/jhoicas/restaurante-api/internal/domain/entity"
)

// Canales a los que se puede suscribir una pantalla.
const (
	CanalCocina = "cocina"
	CanalCaja   = "caja"
)

// Authenticator valida el token del query param y devuelve el restaurante.
type Authenticator func(token string) (restaurantID string, err error)

// Options tiempos del protocolo; los ceros toman los valores por defecto.
type Options struct {
	SendBuffer   int           // mensajes en cola por cliente antes de descartarlo
	PingInterval time.Duration // frecuencia de los ping frames
	PongWait     time.Duration // sin pong en este plazo se cierra la conexión
	WriteWait    time.Duration
}

func (o Options) withDefaults() Options {
	if o.SendBuffer <= 0 {
		o.SendBuffer = 64
	}
	if o.PongWait <= 0 {
		o.PongWait = 60 * time.Second
	}
	if o.PingInterval <= 0 || o.PingInterval >= o.PongWait {
		o.PingInterval = o.PongWait * 9 / 10
	}
	if o.WriteWait <= 0 {
		o.WriteWait = 10 * time.Second
	}
	return o
}

type client struct {
	id           string
	restaurantID string
	canal        string
	conn         *websocket.Conn
	send         chan []byte
}

type message struct {
	restaurantID string
	cocina       bool // también va a las pantallas de cocina
	payload      []byte
}

var _ ports.PedidoPublisher = (*Hub)(nil)

// Hub registro de conexiones y difusión por restaurante y canal.
type Hub struct {
	log        zerolog.Logger
	auth       Authenticator
	opts       Options
	upgrader   websocket.Upgrader
	register   chan *client
	unregister chan *client
	broadcast  chan message
	done       chan struct{}
	clients    map[*client]struct{}
	count      chan int
}

// NewHub construye el hub. Llamar Run antes de aceptar conexiones.
func NewHub(auth Authenticator, opts Options, log zerolog.Logger) *Hub {
	return &Hub{
		log:  log.With().Str("component", "realtime").Logger(),
		auth: auth,
		opts: opts.withDefaults(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Pantallas de la red local servidas desde otro origen.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan message, 256),
		done:       make(chan struct{}),
		clients:    make(map[*client]struct{}),
		count:      make(chan int),
	}
}

// Run atiende registros y difusiones hasta que ctx termina; al salir cierra
// todas las conexiones.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.log.Info().Str("client_id", c.id).Str("canal", c.canal).Str("restaurant_id", c.restaurantID).
				Msg("pantalla conectada")
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.log.Info().Str("client_id", c.id).Msg("pantalla desconectada")
			}
		case m := <-h.broadcast:
			for c := range h.clients {
				if c.restaurantID != m.restaurantID || (c.canal == CanalCocina && !m.cocina) {
					continue
				}
				select {
				case c.send <- m.payload:
				default:
					// Cliente lento: se descarta para no frenar a los demás.
					h.drop(c)
					h.log.Warn().Str("client_id", c.id).Msg("pantalla descartada por buffer lleno")
				}
			}
		case h.count <- len(h.clients):
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
}

// Clients cantidad de conexiones activas; 0 si el hub ya terminó.
func (h *Hub) Clients() int {
	select {
	case n := <-h.count:
		return n
	case <-h.done:
		return 0
	}
}

// Done se cierra cuando Run termina.
func (h *Hub) Done() <-chan struct{} { return h.done }

// Publish encola el evento sin bloquear; si la cola está llena lo descarta.
// Cocina no recibe los pedidos ya entregados.
func (h *Hub) Publish(_ context.Context, ev ports.PedidoEvento) {
	payload, err := json.Marshal(ev)
	if err != nil {
		h.log.Error().Err(err).Str("pedido_id", ev.PedidoID).Msg("serializar evento")
		return
	}
	m := message{
		restaurantID: ev.RestaurantID,
		cocina:       ev.Estado != entity.PedidoEntregado,
		payload:      payload,
	}
	select {
	case h.broadcast <- m:
	default:
		h.log.Warn().Str("pedido_id", ev.PedidoID).Str("tipo", ev.Tipo).Msg("cola de eventos llena, evento descartado")
	}
}

// ServeHTTP atiende /ws?canal=cocina|caja&token=<jwt>.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	canal := r.URL.Query().Get("canal")
	if canal != CanalCocina && canal != CanalCaja {
		http.Error(w, "canal debe ser cocina o caja", http.StatusBadRequest)
		return
	}
	restaurantID, err := h.auth(r.URL.Query().Get("token"))
	if err != nil || restaurantID == "" {
		http.Error(w, "token inválido", http.StatusUnauthorized)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("upgrade websocket")
		return
	}
	c := &client{
		id:           uuid.New().String(),
		restaurantID: restaurantID,
		canal:        canal,
		conn:         conn,
		send:         make(chan []byte, h.opts.SendBuffer),
	}
	select {
	case h.register <- c:
	case <-h.done:
		_ = conn.Close()
		return
	}
	go h.writePump(c)
	go h.readPump(c)
}

// readPump descarta lo que envía la pantalla; solo mantiene vivo el deadline con los pong.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		_ = c.conn.Close()
	}()
	_ = c.conn.SetReadDeadline(time.Now().Add(h.opts.PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(h.opts.PongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Str("client_id", c.id).Msg("lectura websocket")
			}
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(h.opts.PingInterval)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.opts.WriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(h.opts.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
