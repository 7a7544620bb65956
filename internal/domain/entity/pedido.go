package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido. Las transiciones válidas viven en la tabla pedido_transiciones.
const (
	PedidoPendiente     = "pendiente"
	PedidoEnPreparacion = "en_preparacion"
	PedidoListo         = "listo"
	PedidoEntregado     = "entregado"
	PedidoCancelado     = "cancelado"
)

// Tipos de pedido.
const (
	PedidoTipoMesa      = "mesa"
	PedidoTipoLlevar    = "llevar"
	PedidoTipoDomicilio = "domicilio"
)

// Pedido orden de un cliente con sus ítems y totales conciliados.
type Pedido struct {
	ID            string
	RestaurantID  string
	Numero        int
	Tipo          string
	Mesa          string
	ClienteID     string
	ClienteNombre string // solo lectura
	Estado        string
	Subtotal      decimal.Decimal
	Impuestos     decimal.Decimal
	Descuento     decimal.Decimal
	Total         decimal.Decimal
	MetodoPago    string
	Notas         string
	CreadoPor     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []PedidoItem
	Historial     []PedidoEstadoCambio
}

// PedidoItem línea del pedido con precio congelado al momento de la venta.
type PedidoItem struct {
	ID             string
	PedidoID       string
	ProductoID     string
	Nombre         string
	Cantidad       decimal.Decimal
	PrecioUnitario decimal.Decimal
	TasaImpuesto   decimal.Decimal
	Base           decimal.Decimal
	Impuesto       decimal.Decimal
	Total          decimal.Decimal
	Notas          string
}

// PedidoEstadoCambio registro de auditoría de cada transición.
type PedidoEstadoCambio struct {
	PedidoID    string
	EstadoDesde string // vacío en la creación
	EstadoHasta string
	UsuarioID   string
	Fecha       time.Time
}
