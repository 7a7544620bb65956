package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proveedor entidad que suministra insumos.
type Proveedor struct {
	ID           string
	RestaurantID string
	Nombre       string
	NIT          string
	Contacto     string
	Telefono     string
	Email        string
	Direccion    string
	DiasCredito  int // plazo por defecto de las compras a crédito
	Activo       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ProveedorInsumo relación costo/activación entre un proveedor y un insumo.
type ProveedorInsumo struct {
	ProveedorID     string
	InsumoID        string
	Costo           decimal.Decimal
	Activo          bool
	UpdatedAt       time.Time
	ProveedorNombre string // solo lectura (listados)
	InsumoNombre    string // solo lectura (listados)
	InsumoUnidad    string // solo lectura (listados)
}
