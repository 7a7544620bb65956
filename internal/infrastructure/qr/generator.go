// Package qr codifica URLs de seguimiento como imágenes PNG.
package qr

import (
	"errors"
	"fmt"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/jhoicas/restaurante-api/internal/application/ports"
)

var _ ports.QRGenerator = (*Generator)(nil)

// Generator implementa ports.QRGenerator con go-qrcode.
type Generator struct {
	level qrcode.RecoveryLevel
}

// NewGenerator construye el generador con recuperación media (15%).
func NewGenerator() *Generator {
	return &Generator{level: qrcode.Medium}
}

// PNG codifica content en un PNG cuadrado de size píxeles.
func (g *Generator) PNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, errors.New("qr: contenido vacío")
	}
	png, err := qrcode.Encode(content, g.level, size)
	if err != nil {
		return nil, fmt.Errorf("qr: codificar: %w", err)
	}
	return png, nil
}
