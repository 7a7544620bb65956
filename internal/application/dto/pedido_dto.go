package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePedidoRequest body para POST /api/pedidos.
// Los precios se toman de la carta; TotalEsperado permite al POS verificar su cálculo.
type CreatePedidoRequest struct {
	Tipo          string                `json:"tipo" validate:"required,oneof=mesa llevar domicilio"`
	Mesa          string                `json:"mesa,omitempty"`
	ClienteID     string                `json:"cliente_id,omitempty"`
	Items         []CreatePedidoItemDTO `json:"items" validate:"required,min=1"`
	Descuento     decimal.Decimal       `json:"descuento"`
	TotalEsperado *decimal.Decimal      `json:"total_esperado,omitempty"`
	MetodoPago    string                `json:"metodo_pago,omitempty"`
	Notas         string                `json:"notas,omitempty"`
}

// CreatePedidoItemDTO línea solicitada.
type CreatePedidoItemDTO struct {
	ProductoID string          `json:"producto_id" validate:"required,uuid"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Notas      string          `json:"notas,omitempty"`
}

// CambiarEstadoRequest body para PATCH /api/pedidos/:id/estado.
type CambiarEstadoRequest struct {
	Estado string `json:"estado" validate:"required"`
}

// PedidoItemResponse línea del pedido con precio congelado.
type PedidoItemResponse struct {
	ProductoID     string          `json:"producto_id"`
	Nombre         string          `json:"nombre"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario"`
	TasaImpuesto   decimal.Decimal `json:"tasa_impuesto"`
	Base           decimal.Decimal `json:"base"`
	Impuesto       decimal.Decimal `json:"impuesto"`
	Total          decimal.Decimal `json:"total"`
	Notas          string          `json:"notas,omitempty"`
}

// EstadoCambioResponse entrada del historial de estados.
type EstadoCambioResponse struct {
	EstadoDesde string    `json:"estado_desde,omitempty"`
	EstadoHasta string    `json:"estado_hasta"`
	UsuarioID   string    `json:"usuario_id,omitempty"`
	Fecha       time.Time `json:"fecha"`
}

// PedidoResponse salida de un pedido.
type PedidoResponse struct {
	ID             string                 `json:"id"`
	Numero         int                    `json:"numero"`
	Tipo           string                 `json:"tipo"`
	Mesa           string                 `json:"mesa,omitempty"`
	ClienteID      string                 `json:"cliente_id,omitempty"`
	ClienteNombre  string                 `json:"cliente_nombre,omitempty"`
	Estado         string                 `json:"estado"`
	Subtotal       decimal.Decimal        `json:"subtotal"`
	Impuestos      decimal.Decimal        `json:"impuestos"`
	Descuento      decimal.Decimal        `json:"descuento"`
	Total          decimal.Decimal        `json:"total"`
	TotalFormatted string                 `json:"total_formatted,omitempty"`
	MetodoPago     string                 `json:"metodo_pago,omitempty"`
	Notas          string                 `json:"notas,omitempty"`
	CreadoPor      string                 `json:"creado_por,omitempty"`
	Items          []PedidoItemResponse   `json:"items,omitempty"`
	Historial      []EstadoCambioResponse `json:"historial,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

// PedidoListResponse lista paginada de pedidos.
type PedidoListResponse struct {
	Items []PedidoResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
