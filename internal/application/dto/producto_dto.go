package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductoRequest body para POST /api/productos.
type CreateProductoRequest struct {
	Nombre       string          `json:"nombre" validate:"required,max=200"`
	Categoria    string          `json:"categoria"`
	Precio       decimal.Decimal `json:"precio"`
	TasaImpuesto decimal.Decimal `json:"tasa_impuesto"`
	Receta       []RecetaItemDTO `json:"receta,omitempty"`
}

// UpdateProductoRequest body para PUT /api/productos/:id.
type UpdateProductoRequest struct {
	Nombre       *string          `json:"nombre"`
	Categoria    *string          `json:"categoria"`
	Precio       *decimal.Decimal `json:"precio"`
	TasaImpuesto *decimal.Decimal `json:"tasa_impuesto"`
	Activo       *bool            `json:"activo"`
}

// RecetaItemDTO insumo y cantidad consumida por unidad vendida.
type RecetaItemDTO struct {
	InsumoID     string          `json:"insumo_id"`
	InsumoNombre string          `json:"insumo_nombre,omitempty"`
	Cantidad     decimal.Decimal `json:"cantidad"`
}

// SetRecetaRequest body para PUT /api/productos/:id/receta (reemplaza la receta completa).
type SetRecetaRequest struct {
	Items []RecetaItemDTO `json:"items"`
}

// ProductoResponse salida de un producto de la carta.
type ProductoResponse struct {
	ID           string          `json:"id"`
	Nombre       string          `json:"nombre"`
	Categoria    string          `json:"categoria"`
	Precio       decimal.Decimal `json:"precio"`
	TasaImpuesto decimal.Decimal `json:"tasa_impuesto"`
	Activo       bool            `json:"activo"`
	Receta       []RecetaItemDTO `json:"receta,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProductoListResponse lista paginada de productos.
type ProductoListResponse struct {
	Items []ProductoResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// CreateClienteRequest body para POST /api/clientes.
type CreateClienteRequest struct {
	Nombre    string `json:"nombre" validate:"required,max=200"`
	Documento string `json:"documento"`
	Email     string `json:"email" validate:"omitempty,email"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Notas     string `json:"notas"`
}

// UpdateClienteRequest body para PUT /api/clientes/:id.
type UpdateClienteRequest struct {
	Nombre    *string `json:"nombre"`
	Documento *string `json:"documento"`
	Email     *string `json:"email"`
	Telefono  *string `json:"telefono"`
	Direccion *string `json:"direccion"`
	Notas     *string `json:"notas"`
}

// ClienteResponse salida de un cliente.
type ClienteResponse struct {
	ID        string    `json:"id"`
	Nombre    string    `json:"nombre"`
	Documento string    `json:"documento,omitempty"`
	Email     string    `json:"email,omitempty"`
	Telefono  string    `json:"telefono,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	Notas     string    `json:"notas,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClienteListResponse lista paginada de clientes.
type ClienteListResponse struct {
	Items []ClienteResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ClienteStatsResponse acumulados de compra del cliente.
type ClienteStatsResponse struct {
	ClienteID      string          `json:"cliente_id"`
	Pedidos        int             `json:"pedidos"`
	TotalGastado   decimal.Decimal `json:"total_gastado"`
	TicketPromedio decimal.Decimal `json:"ticket_promedio"`
	UltimoPedido   *time.Time      `json:"ultimo_pedido,omitempty"`
}
