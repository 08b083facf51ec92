package token_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vela-lang/vela/lang/token"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		ident string
		want  token.Token
	}{
		{"and", token.AND},
		{"while", token.WHILE},
		{"fun", token.FUN},
		{"print", token.PRINT},
		{"continue", token.CONTINUE},
		{"x", token.IDENT},
		{"fortune", token.IDENT},
	}
	for _, c := range cases {
		t.Run(c.ident, func(t *testing.T) {
			require.Equal(t, c.want, token.Lookup(c.ident))
		})
	}
}

func TestTokenString(t *testing.T) {
	require.Equal(t, "+", token.PLUS.String())
	require.Equal(t, "and", token.AND.String())
	require.Equal(t, "end of file", token.EOF.String())
}
