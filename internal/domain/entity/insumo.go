package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Unidades de medida admitidas para insumos.
const (
	UnidadKg  = "kg"
	UnidadG   = "g"
	UnidadL   = "l"
	UnidadMl  = "ml"
	UnidadUnd = "und"
)

// ValidUnidad indica si la unidad está en el catálogo.
func ValidUnidad(u string) bool {
	switch u {
	case UnidadKg, UnidadG, UnidadL, UnidadMl, UnidadUnd:
		return true
	}
	return false
}

// Insumo materia prima del inventario. Stock y CostoUnitario (promedio ponderado)
// solo cambian vía movimientos.
type Insumo struct {
	ID            string
	RestaurantID  string
	Nombre        string
	Unidad        string
	Categoria     string
	Stock         decimal.Decimal
	StockMinimo   decimal.Decimal
	CostoUnitario decimal.Decimal
	Activo        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// BajoStock indica si el insumo está en o por debajo de su mínimo.
func (i *Insumo) BajoStock() bool {
	return i.Activo && i.Stock.LessThanOrEqual(i.StockMinimo)
}
