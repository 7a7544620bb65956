package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una cuenta por pagar.
const (
	CuentaPendiente = "pendiente"
	CuentaParcial   = "parcial"
	CuentaPagada    = "pagada"
	CuentaVencida   = "vencida"
	CuentaAnulada   = "anulada"
)

// CuentaPorPagar deuda con un proveedor.
type CuentaPorPagar struct {
	ID               string
	RestaurantID     string
	ProveedorID      string
	ProveedorNombre  string // solo lectura
	MovimientoID     string // compra a crédito que la originó (opcional)
	Concepto         string
	Monto            decimal.Decimal
	Saldo            decimal.Decimal
	FechaEmision     time.Time
	FechaVencimiento time.Time
	Estado           string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Pagos            []PagoCuenta
}

// Abierta indica si aún admite pagos.
func (c *CuentaPorPagar) Abierta() bool {
	switch c.Estado {
	case CuentaPendiente, CuentaParcial, CuentaVencida:
		return true
	}
	return false
}

// PagoCuenta abono registrado contra una cuenta por pagar.
type PagoCuenta struct {
	ID         string
	CuentaID   string
	Monto      decimal.Decimal
	Metodo     string // efectivo, transferencia, tarjeta
	Referencia string
	Fecha      time.Time
	CreadoPor  string
}
