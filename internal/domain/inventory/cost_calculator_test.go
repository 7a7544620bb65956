package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restaurante-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostoPromedioPonderado(t *testing.T) {
	cases := []struct {
		name                         string
		stock, costo, cant, costoEnt string
		want                         string
	}{
		{"sin stock previo toma costo de entrada", "0", "0", "10", "4500", "4500"},
		{"promedio simple", "10", "1000", "10", "2000", "1500"},
		{"promedio ponderado", "2", "3000", "8", "2500", "2600"},
		{"stock negativo heredado", "-1", "900", "5", "1000", "1000"},
		{"redondeo a 4 decimales", "3", "1", "3", "2", "1.5"},
		{"tercios", "1", "1", "2", "0", "0.3333"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := inventory.CostoPromedioPonderado(d(tc.stock), d(tc.costo), d(tc.cant), d(tc.costoEnt))
			assert.True(t, got.Equal(d(tc.want)), "esperado %s, obtenido %s", tc.want, got)
		})
	}
}

func TestPuedeDescontar(t *testing.T) {
	assert.True(t, inventory.PuedeDescontar(d("5"), d("5")))
	assert.False(t, inventory.PuedeDescontar(d("4.99"), d("5")))
}
