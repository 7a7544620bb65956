package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos y orígenes de movimientos financieros.
const (
	LedgerIngreso = "ingreso"
	LedgerEgreso  = "egreso"

	OrigenPedido        = "pedido"
	OrigenPagoProveedor = "pago_proveedor"
	OrigenCompraContado = "compra_contado"
)

// LedgerEntry línea del libro de movimientos financieros. Solo la crean otros
// casos de uso dentro de su propia transacción.
type LedgerEntry struct {
	ID           string
	RestaurantID string
	Tipo         string
	Origen       string
	ReferenciaID string
	Monto        decimal.Decimal
	Descripcion  string
	Fecha        time.Time
}
