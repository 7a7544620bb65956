package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de evento publicados al tablero de cocina y caja.
const (
	EventoPedidoNuevo       = "pedido_nuevo"
	EventoPedidoActualizado = "pedido_actualizado"
)

// PedidoEvento payload publicado tras confirmar la transacción.
type PedidoEvento struct {
	Tipo           string             `json:"tipo"`
	RestaurantID   string             `json:"restaurant_id"`
	PedidoID       string             `json:"pedido_id"`
	Numero         int                `json:"numero"`
	TipoPedido     string             `json:"tipo_pedido"`
	Mesa           string             `json:"mesa,omitempty"`
	Estado         string             `json:"estado"`
	EstadoAnterior string             `json:"estado_anterior,omitempty"`
	Items          []PedidoEventoItem `json:"items,omitempty"`
	Fecha          time.Time          `json:"fecha"`
}

// PedidoEventoItem lo que cocina necesita ver de cada línea.
type PedidoEventoItem struct {
	Nombre   string          `json:"nombre"`
	Cantidad decimal.Decimal `json:"cantidad"`
	Notas    string          `json:"notas,omitempty"`
}

// PedidoPublisher difunde eventos de pedidos. No debe bloquear al caso de uso.
type PedidoPublisher interface {
	Publish(ctx context.Context, ev PedidoEvento)
}

// NopPublisher descarta los eventos (tiempo real deshabilitado).
type NopPublisher struct{}

// Publish no hace nada.
func (NopPublisher) Publish(context.Context, PedidoEvento) {}
