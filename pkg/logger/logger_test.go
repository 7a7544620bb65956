package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/pkg/logger"
)

func TestNew_ProduccionEmiteJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Level: "info", Out: &buf})

	l.Info().Str("pedido", "42").Msg("pedido creado")
	l.Debug().Msg("no debe salir")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "pedido creado", entry["message"])
	assert.Equal(t, "42", entry["pedido"])
	assert.Equal(t, "info", entry["level"])
}

func TestComponent_AgregaCampo(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.Config{Env: "production", Out: &buf})

	c := l.Component("jobs")
	c.Warn().Msg("barrido")

	assert.Contains(t, buf.String(), `"component":"jobs"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, logger.ParseLevel("debug"))
	assert.Equal(t, zerolog.InfoLevel, logger.ParseLevel("desconocido"))
}
