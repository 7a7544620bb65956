package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProveedorRequest body para POST /api/proveedores.
type CreateProveedorRequest struct {
	Nombre      string `json:"nombre" validate:"required,max=200"`
	NIT         string `json:"nit" validate:"required,max=20"`
	Contacto    string `json:"contacto"`
	Telefono    string `json:"telefono"`
	Email       string `json:"email" validate:"omitempty,email"`
	Direccion   string `json:"direccion"`
	DiasCredito *int   `json:"dias_credito" validate:"omitempty,min=0"`
}

// UpdateProveedorRequest body para PUT /api/proveedores/:id.
type UpdateProveedorRequest struct {
	Nombre      *string `json:"nombre"`
	Contacto    *string `json:"contacto"`
	Telefono    *string `json:"telefono"`
	Email       *string `json:"email"`
	Direccion   *string `json:"direccion"`
	DiasCredito *int    `json:"dias_credito"`
	Activo      *bool   `json:"activo"`
}

// ProveedorResponse salida de un proveedor.
type ProveedorResponse struct {
	ID          string    `json:"id"`
	Nombre      string    `json:"nombre"`
	NIT         string    `json:"nit"`
	Contacto    string    `json:"contacto"`
	Telefono    string    `json:"telefono"`
	Email       string    `json:"email"`
	Direccion   string    `json:"direccion"`
	DiasCredito int       `json:"dias_credito"`
	Activo      bool      `json:"activo"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProveedorListResponse lista paginada de proveedores.
type ProveedorListResponse struct {
	Items []ProveedorResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// VincularInsumoRequest body para PUT /api/proveedores/:id/insumos/:insumoId.
type VincularInsumoRequest struct {
	Costo  decimal.Decimal `json:"costo"`
	Activo *bool           `json:"activo"`
}

// ProveedorInsumoResponse relación proveedor-insumo con su costo.
type ProveedorInsumoResponse struct {
	ProveedorID     string          `json:"proveedor_id"`
	ProveedorNombre string          `json:"proveedor_nombre,omitempty"`
	InsumoID        string          `json:"insumo_id"`
	InsumoNombre    string          `json:"insumo_nombre,omitempty"`
	InsumoUnidad    string          `json:"insumo_unidad,omitempty"`
	Costo           decimal.Decimal `json:"costo"`
	Activo          bool            `json:"activo"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
