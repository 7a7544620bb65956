package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restaurante-api/internal/infrastructure/postgres"
)

func TestContainsPattern_EscapaComodines(t *testing.T) {
	cases := map[string]string{
		"ana":       `%ana%`,
		"50%":       `%50\%%`,
		"ana_maria": `%ana\_maria%`,
		`c:\tmp`:    `%c:\\tmp%`,
		"":          `%%`,
	}
	for in, want := range cases {
		assert.Equal(t, want, postgres.ContainsPattern(in), in)
	}
}
