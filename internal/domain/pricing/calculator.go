// Package pricing concilia los precios de un pedido: calcula base, impuesto y
// total por línea a partir de los precios de la carta y verifica el total que
// envía el punto de venta.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurante-api/internal/domain"
	"github.com/jhoicas/restaurante-api/pkg/money"
)

var (
	hundred    = decimal.NewFromInt(100)
	tasasValid = []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(5),
		decimal.NewFromInt(8),
		decimal.NewFromInt(19),
	}
)

// TasaValida IVA 0/5/19 o impoconsumo 8.
func TasaValida(tasa decimal.Decimal) bool {
	for _, t := range tasasValid {
		if tasa.Equal(t) {
			return true
		}
	}
	return false
}

// Linea precio de carta (no el que envía el cliente) y cantidad vendida.
type Linea struct {
	ProductoID   string
	Cantidad     decimal.Decimal
	Precio       decimal.Decimal
	TasaImpuesto decimal.Decimal
}

// LineaCalculada línea con su descomposición base + impuesto.
type LineaCalculada struct {
	Linea
	Base     decimal.Decimal
	Impuesto decimal.Decimal
	Total    decimal.Decimal
}

// Entrada parámetros de la conciliación.
type Entrada struct {
	Lineas           []Linea
	ImpuestoIncluido bool
	Descuento        decimal.Decimal
	TotalEsperado    *decimal.Decimal // total que calculó el POS; nil = no verificar
	Moneda           string
}

// Resultado totales conciliados del pedido.
type Resultado struct {
	Lineas    []LineaCalculada
	Subtotal  decimal.Decimal
	Impuestos decimal.Decimal
	Descuento decimal.Decimal
	Total     decimal.Decimal
}

// ProcesarCalculosFinancieros calcula los totales del pedido.
//
// Con impuesto incluido: bruto = precio*cantidad, base = bruto/(1+t), impuesto = bruto-base.
// Sin impuesto incluido: base = precio*cantidad, impuesto = base*t, bruto = base+impuesto.
// Total = subtotal + impuestos - descuento, todo redondeado a la unidad menor de la moneda.
func ProcesarCalculosFinancieros(in Entrada) (*Resultado, error) {
	if len(in.Lineas) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Descuento.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	res := &Resultado{Lineas: make([]LineaCalculada, 0, len(in.Lineas))}
	for _, l := range in.Lineas {
		if !l.Cantidad.IsPositive() || l.Precio.IsNegative() || !TasaValida(l.TasaImpuesto) {
			return nil, domain.ErrInvalidInput
		}
		calc := calcularLinea(l, in.ImpuestoIncluido, in.Moneda)
		res.Lineas = append(res.Lineas, calc)
		res.Subtotal = res.Subtotal.Add(calc.Base)
		res.Impuestos = res.Impuestos.Add(calc.Impuesto)
	}

	bruto := res.Subtotal.Add(res.Impuestos)
	descuento := money.Round(in.Descuento, in.Moneda)
	if descuento.GreaterThan(bruto) {
		return nil, domain.ErrInvalidInput
	}
	res.Descuento = descuento
	res.Total = bruto.Sub(descuento)

	if in.TotalEsperado != nil {
		diff := in.TotalEsperado.Sub(res.Total).Abs()
		if diff.GreaterThan(money.Tolerance(in.Moneda)) {
			return nil, domain.ErrPriceMismatch
		}
	}
	return res, nil
}

func calcularLinea(l Linea, incluido bool, moneda string) LineaCalculada {
	factor := l.TasaImpuesto.Div(hundred)
	out := LineaCalculada{Linea: l}
	if incluido {
		bruto := money.Round(l.Precio.Mul(l.Cantidad), moneda)
		out.Base = money.Round(bruto.Div(decimal.NewFromInt(1).Add(factor)), moneda)
		out.Impuesto = bruto.Sub(out.Base)
		out.Total = bruto
		return out
	}
	out.Base = money.Round(l.Precio.Mul(l.Cantidad), moneda)
	out.Impuesto = money.Round(out.Base.Mul(factor), moneda)
	out.Total = out.Base.Add(out.Impuesto)
	return out
}
