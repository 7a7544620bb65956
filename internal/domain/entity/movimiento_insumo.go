package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de insumo.
const (
	MovimientoCompra     = "compra"
	MovimientoMerma      = "merma"
	MovimientoAjuste     = "ajuste"
	MovimientoProduccion = "produccion"
)

// MovimientoInsumo evento que afecta el stock de un insumo.
// Cantidad es con signo: positiva para entradas, negativa para salidas.
type MovimientoInsumo struct {
	ID            string
	RestaurantID  string
	InsumoID      string
	Tipo          string
	Cantidad      decimal.Decimal
	CostoUnitario decimal.Decimal
	CostoTotal    decimal.Decimal
	StockAnterior decimal.Decimal
	StockNuevo    decimal.Decimal
	ProveedorID   string // solo compras
	PedidoID      string // solo producción originada en un pedido
	Nota          string
	Fecha         time.Time
	CreadoPor     string
}
