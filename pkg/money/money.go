// Package money redondeo y formateo de montos según la moneda del restaurante.
package money

import (
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Decimales por moneda; el peso colombiano no usa centavos en la práctica.
var minorUnits = map[string]int32{
	"COP": 0,
	"CLP": 0,
	"USD": 2,
	"EUR": 2,
	"MXN": 2,
	"PEN": 2,
}

var symbols = map[string]string{
	"COP": "$",
	"CLP": "$",
	"USD": "US$",
	"EUR": "€",
	"MXN": "$",
	"PEN": "S/",
}

// MinorUnits devuelve la cantidad de decimales de la moneda (2 si es desconocida).
func MinorUnits(currency string) int32 {
	if d, ok := minorUnits[strings.ToUpper(currency)]; ok {
		return d
	}
	return 2
}

// Round redondea al número de decimales de la moneda.
func Round(amount decimal.Decimal, currency string) decimal.Decimal {
	return amount.Round(MinorUnits(currency))
}

// Tolerance la menor diferencia representable (1 unidad menor de la moneda).
func Tolerance(currency string) decimal.Decimal {
	return decimal.New(1, -MinorUnits(currency))
}

// Formatter formatea montos con separadores del idioma configurado.
type Formatter struct {
	currency string
	group    string
	decimal  string
}

// NewFormatter construye un formateador; un locale inválido cae a español.
func NewFormatter(locale, currency string) *Formatter {
	tag, err := language.Parse(locale)
	if err != nil {
		tag = language.Spanish
	}
	group, dec := separators(message.NewPrinter(tag))
	return &Formatter{
		currency: strings.ToUpper(currency),
		group:    group,
		decimal:  dec,
	}
}

// separators toma los separadores de miles y decimales del idioma formateando
// una muestra conocida (1234567,5).
func separators(p *message.Printer) (string, string) {
	sample := p.Sprint(number.Decimal(1234567.5, number.MinFractionDigits(1), number.MaxFractionDigits(1)))
	var seps []string
	for _, r := range sample {
		if !unicode.IsDigit(r) {
			seps = append(seps, string(r))
		}
	}
	switch len(seps) {
	case 0:
		return ",", "."
	case 1:
		return "", seps[0]
	default:
		return seps[0], seps[len(seps)-1]
	}
}

// Currency código ISO configurado.
func (f *Formatter) Currency() string { return f.currency }

// Format devuelve el monto con símbolo, ej: "$ 1.250.000" (es, COP). Trabaja
// sobre los dígitos del decimal, sin pasar por float64.
func (f *Formatter) Format(amount decimal.Decimal) string {
	v := Round(amount, f.currency)
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	entero, fraccion, _ := strings.Cut(v.StringFixed(MinorUnits(f.currency)), ".")
	n := groupDigits(entero, f.group)
	if fraccion != "" {
		n += f.decimal + fraccion
	}
	sym, ok := symbols[f.currency]
	if !ok {
		sym = f.currency
	}
	return sign + sym + " " + n
}

func groupDigits(digits, sep string) string {
	if sep == "" || len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteString(sep)
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
