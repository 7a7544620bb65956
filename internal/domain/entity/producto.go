package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto ítem de la carta que se vende en los pedidos.
type Producto struct {
	ID           string
	RestaurantID string
	Nombre       string
	Categoria    string
	Precio       decimal.Decimal
	TasaImpuesto decimal.Decimal // 0, 5, 8 (impoconsumo) o 19 (IVA)
	Activo       bool
	Receta       []RecetaItem
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// RecetaItem cantidad de insumo consumida por cada unidad vendida del producto.
type RecetaItem struct {
	ProductoID   string
	InsumoID     string
	InsumoNombre string // solo lectura
	Cantidad     decimal.Decimal
}
