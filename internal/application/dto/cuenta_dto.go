package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCuentaRequest body para POST /api/cuentas-por-pagar. Fechas en YYYY-MM-DD local.
type CreateCuentaRequest struct {
	ProveedorID      string          `json:"proveedor_id" validate:"required,uuid"`
	Concepto         string          `json:"concepto" validate:"required"`
	Monto            decimal.Decimal `json:"monto"`
	FechaEmision     string          `json:"fecha_emision"`
	FechaVencimiento string          `json:"fecha_vencimiento"`
}

// RegistrarPagoRequest body para POST /api/cuentas-por-pagar/:id/pagos.
type RegistrarPagoRequest struct {
	Monto      decimal.Decimal `json:"monto"`
	Metodo     string          `json:"metodo" validate:"required,oneof=efectivo transferencia tarjeta"`
	Referencia string          `json:"referencia"`
}

// PagoResponse abono registrado.
type PagoResponse struct {
	ID         string          `json:"id"`
	Monto      decimal.Decimal `json:"monto"`
	Metodo     string          `json:"metodo"`
	Referencia string          `json:"referencia,omitempty"`
	Fecha      time.Time       `json:"fecha"`
	CreadoPor  string          `json:"creado_por,omitempty"`
}

// CuentaResponse salida de una cuenta por pagar.
type CuentaResponse struct {
	ID               string          `json:"id"`
	ProveedorID      string          `json:"proveedor_id"`
	ProveedorNombre  string          `json:"proveedor_nombre,omitempty"`
	MovimientoID     string          `json:"movimiento_id,omitempty"`
	Concepto         string          `json:"concepto"`
	Monto            decimal.Decimal `json:"monto"`
	Saldo            decimal.Decimal `json:"saldo"`
	FechaEmision     time.Time       `json:"fecha_emision"`
	FechaVencimiento time.Time       `json:"fecha_vencimiento"`
	Estado           string          `json:"estado"`
	Pagos            []PagoResponse  `json:"pagos,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// CuentaListResponse lista paginada de cuentas.
type CuentaListResponse struct {
	Items []CuentaResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}

// CuentasResumenResponse respuesta de GET /api/cuentas-por-pagar/resumen.
type CuentasResumenResponse struct {
	TotalPendiente          decimal.Decimal `json:"total_pendiente"`
	TotalVencido            decimal.Decimal `json:"total_vencido"`
	CuentasVencidas         int             `json:"cuentas_vencidas"`
	ProximasAVencer         decimal.Decimal `json:"proximas_a_vencer"` // próximos 7 días
	TotalPendienteFormatted string          `json:"total_pendiente_formatted"`
	TotalVencidoFormatted   string          `json:"total_vencido_formatted"`
}

// MarcarVencidasResponse resultado del barrido de vencidas.
type MarcarVencidasResponse struct {
	Marcadas int `json:"marcadas"`
}

// LedgerEntryResponse línea del libro financiero.
type LedgerEntryResponse struct {
	ID           string          `json:"id"`
	Tipo         string          `json:"tipo"`
	Origen       string          `json:"origen"`
	ReferenciaID string          `json:"referencia_id"`
	Monto        decimal.Decimal `json:"monto"`
	Descripcion  string          `json:"descripcion"`
	Fecha        time.Time       `json:"fecha"`
}

// LedgerListResponse movimientos del período con totales.
type LedgerListResponse struct {
	Items    []LedgerEntryResponse `json:"items"`
	Ingresos decimal.Decimal       `json:"ingresos"`
	Egresos  decimal.Decimal       `json:"egresos"`
	Neto     decimal.Decimal       `json:"neto"`
	Desde    string                `json:"desde"`
	Hasta    string                `json:"hasta"`
}
