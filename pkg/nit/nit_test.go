package nit_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurante-api/pkg/nit"
)

func TestVerificationDigit(t *testing.T) {
	cases := map[string]byte{
		"890903938": '8',
		"800197268": '4',
		"860034313": '7',
	}
	for base, want := range cases {
		assert.Equal(t, want, nit.VerificationDigit(base), base)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
		err  bool
	}{
		{in: "890.903.938-8", want: "890903938-8"},
		{in: " 800197268 - 4 ", want: "800197268-4"},
		{in: "1020304050", want: "1020304050"},
		{in: "900123", want: "900123"},
		{in: "890903938-1", err: true},
		{in: "123", err: true},
		{in: "90012A", err: true},
		{in: "890903938-", err: true},
		{in: "", err: true},
	}
	for _, tt := range tests {
		got, err := nit.Normalize(tt.in)
		if tt.err {
			assert.ErrorIs(t, err, nit.ErrInvalid, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}
}
