package qr_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/internal/infrastructure/qr"
)

func TestPNG_Dimensiones(t *testing.T) {
	b, err := qr.NewGenerator().PNG("https://pedidos.example.com/seguimiento/123", 256)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Equal(t, 256, img.Bounds().Dx())
	assert.Equal(t, 256, img.Bounds().Dy())
}

func TestPNG_ContenidoVacio(t *testing.T) {
	_, err := qr.NewGenerator().PNG("", 256)
	assert.Error(t, err)
}
