package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcomandos(t *testing.T) {
	root := newRootCmd()
	names := map[string]bool{}
	for _, c := range root.Commands() {
		names[c.Name()] = true
	}
	assert.True(t, names["migrate"])
	assert.True(t, names["vencidas"])
	assert.True(t, names["reporte-ventas"])
}

func TestReporteVentas_RequiereRestaurante(t *testing.T) {
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs([]string{"reporte-ventas", "--desde", "2026-05-01"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"restaurante"`)
}

func TestVencidas_FlagRestauranteOpcional(t *testing.T) {
	cmd := newVencidasCmd(&globalFlags{})
	f := cmd.Flags().Lookup("restaurante")
	require.NotNil(t, f)
	assert.Equal(t, "", f.DefValue)
}

func TestMigrate_NoAceptaArgumentos(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"migrate", "extra"})
	assert.Error(t, root.Execute())
}
