package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cliente registro de CRM.
type Cliente struct {
	ID           string
	RestaurantID string
	Nombre       string
	Documento    string // cédula o NIT, único por restaurante si se informa
	Email        string
	Telefono     string
	Direccion    string
	Notas        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ClienteStats acumulados de compra de un cliente (pedidos entregados).
type ClienteStats struct {
	ClienteID      string
	Pedidos        int
	TotalGastado   decimal.Decimal
	TicketPromedio decimal.Decimal
	UltimoPedido   *time.Time
}
