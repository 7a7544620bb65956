// Package nit normaliza y valida el NIT colombiano de restaurantes y proveedores.
package nit

import (
	"errors"
	"strings"
	"unicode"
)

// ErrInvalid NIT con caracteres no permitidos, longitud fuera de rango o
// dígito de verificación incorrecto.
var ErrInvalid = errors.New("NIT inválido")

// Pesos del módulo 11 de la DIAN, aplicados de derecha a izquierda.
var weights = [15]int{3, 7, 13, 17, 19, 23, 29, 37, 41, 43, 47, 53, 59, 67, 71}

const (
	minDigits = 5
	maxDigits = len(weights)
)

// Normalize quita puntos y espacios. Si el NIT trae dígito de verificación
// ("890.903.938-8") lo valida y devuelve "890903938-8"; sin guion devuelve
// solo los dígitos.
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	base, dv, hasDV := strings.Cut(s, "-")
	digits, ok := digitsOf(base)
	if !ok || len(digits) < minDigits || len(digits) > maxDigits {
		return "", ErrInvalid
	}
	if !hasDV {
		return digits, nil
	}
	dv = strings.TrimSpace(dv)
	if len(dv) != 1 || dv[0] != VerificationDigit(digits) {
		return "", ErrInvalid
	}
	return digits + "-" + dv, nil
}

// VerificationDigit calcula el dígito de verificación de la base numérica.
func VerificationDigit(base string) byte {
	var sum int
	for i := 0; i < len(base) && i < maxDigits; i++ {
		sum += int(base[len(base)-1-i]-'0') * weights[i]
	}
	r := sum % 11
	if r < 2 {
		return byte('0' + r)
	}
	return byte('0' + 11 - r)
}

func digitsOf(s string) (string, bool) {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			b.WriteRune(r)
		case r == '.' || r == ' ':
		default:
			return "", false
		}
	}
	return b.String(), true
}
