package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/restaurante-api/internal/application/dto"
)

func TestPageRequest_DefaultPage(t *testing.T) {
	cases := []struct {
		name          string
		in            dto.PageRequest
		limit, offset int
	}{
		{"vacío", dto.PageRequest{}, dto.DefaultPageLimit, 0},
		{"negativos", dto.PageRequest{Limit: -5, Offset: -1}, dto.DefaultPageLimit, 0},
		{"sobre el máximo", dto.PageRequest{Limit: 500, Offset: 40}, dto.MaxPageLimit, 40},
		{"válido", dto.PageRequest{Limit: 35, Offset: 70}, 35, 70},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := tc.in
			p.DefaultPage()
			assert.Equal(t, tc.limit, p.Limit)
			assert.Equal(t, tc.offset, p.Offset)
		})
	}
}
