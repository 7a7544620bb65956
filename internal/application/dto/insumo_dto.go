package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateInsumoRequest body para POST /api/insumos. Stock y costo inician en 0.
type CreateInsumoRequest struct {
	Nombre      string          `json:"nombre" validate:"required,max=200"`
	Unidad      string          `json:"unidad" validate:"required,oneof=kg g l ml und"`
	Categoria   string          `json:"categoria"`
	StockMinimo decimal.Decimal `json:"stock_minimo"`
}

// UpdateInsumoRequest body para PUT /api/insumos/:id (campos opcionales, sin stock ni costo).
type UpdateInsumoRequest struct {
	Nombre      *string          `json:"nombre"`
	Unidad      *string          `json:"unidad"`
	Categoria   *string          `json:"categoria"`
	StockMinimo *decimal.Decimal `json:"stock_minimo"`
	Activo      *bool            `json:"activo"`
}

// InsumoResponse salida de un insumo.
type InsumoResponse struct {
	ID            string          `json:"id"`
	Nombre        string          `json:"nombre"`
	Unidad        string          `json:"unidad"`
	Categoria     string          `json:"categoria"`
	Stock         decimal.Decimal `json:"stock"`
	StockMinimo   decimal.Decimal `json:"stock_minimo"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	BajoStock     bool            `json:"bajo_stock"`
	Activo        bool            `json:"activo"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// InsumoListResponse lista paginada de insumos.
type InsumoListResponse struct {
	Items []InsumoResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// RegistrarMovimientoRequest body para POST /api/insumos/:id/movimientos.
type RegistrarMovimientoRequest struct {
	Tipo          string           `json:"tipo" validate:"required,oneof=compra merma ajuste produccion"`
	Cantidad      decimal.Decimal  `json:"cantidad"`
	CostoUnitario *decimal.Decimal `json:"costo_unitario,omitempty"` // obligatorio en compra
	ProveedorID   string           `json:"proveedor_id,omitempty"`
	ACredito      bool             `json:"a_credito,omitempty"`
	Nota          string           `json:"nota,omitempty"`
	Fecha         *time.Time       `json:"fecha,omitempty"`
}

// MovimientoResponse salida de un movimiento de insumo.
type MovimientoResponse struct {
	ID            string          `json:"id"`
	InsumoID      string          `json:"insumo_id"`
	Tipo          string          `json:"tipo"`
	Cantidad      decimal.Decimal `json:"cantidad"`
	CostoUnitario decimal.Decimal `json:"costo_unitario"`
	CostoTotal    decimal.Decimal `json:"costo_total"`
	StockAnterior decimal.Decimal `json:"stock_anterior"`
	StockNuevo    decimal.Decimal `json:"stock_nuevo"`
	ProveedorID   string          `json:"proveedor_id,omitempty"`
	PedidoID      string          `json:"pedido_id,omitempty"`
	CuentaID      string          `json:"cuenta_id,omitempty"` // cuenta por pagar creada por una compra a crédito
	Nota          string          `json:"nota,omitempty"`
	Fecha         time.Time       `json:"fecha"`
	CreadoPor     string          `json:"creado_por,omitempty"`
}

// ReposicionSugerenciaDTO insumo bajo mínimo con la compra sugerida.
type ReposicionSugerenciaDTO struct {
	Insumo           InsumoResponse   `json:"insumo"`
	StockIdeal       decimal.Decimal  `json:"stock_ideal"`       // StockMinimo * 1.5
	CantidadSugerida decimal.Decimal  `json:"cantidad_sugerida"` // StockIdeal - Stock
	ProveedorID      string           `json:"proveedor_id,omitempty"`
	ProveedorNombre  string           `json:"proveedor_nombre,omitempty"`
	CostoProveedor   *decimal.Decimal `json:"costo_proveedor,omitempty"`
	CostoEstimado    decimal.Decimal  `json:"costo_estimado"`
	Prioridad        int              `json:"prioridad"` // 1 = más urgente
}
