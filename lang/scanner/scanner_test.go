package scanner_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vela-lang/vela/lang/scanner"
	"github.com/vela-lang/vela/lang/token"
)

func scanAll(t *testing.T, src string) []scanner.Token {
	t.Helper()
	s := scanner.New(src)
	var toks []scanner.Token
	for {
		tok := s.Scan()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func TestScanPunctuationAndOperators(t *testing.T) {
	toks := scanAll(t, "( ) { } , . - + ; / * ? : ! != = == < <= > >=")
	want := []token.Token{
		token.LPAREN, token.RPAREN, token.LBRACE, token.RBRACE, token.COMMA,
		token.DOT, token.MINUS, token.PLUS, token.SEMI, token.SLASH, token.STAR,
		token.QMARK, token.COLON, token.BANG, token.BANG_EQ, token.EQ, token.EQ_EQ,
		token.LT, token.LT_EQ, token.GT, token.GT_EQ, token.EOF,
	}
	require.Len(t, toks, len(want))
	for i, w := range want {
		require.Equalf(t, w, toks[i].Type, "token %d", i)
	}
}

func TestScanLineComment(t *testing.T) {
	toks := scanAll(t, "1 // a comment\n2")
	require.Equal(t, token.NUMBER, toks[0].Type)
	require.Equal(t, "1", toks[0].Lexeme)
	require.Equal(t, token.NUMBER, toks[1].Type)
	require.Equal(t, 2, toks[1].Line)
}

func TestScanNumbers(t *testing.T) {
	cases := []string{"123", "1.25", "1_000", "1_000.500_1"}
	for _, c := range cases {
		toks := scanAll(t, c)
		require.Equal(t, token.NUMBER, toks[0].Type)
		require.Equal(t, c, toks[0].Lexeme)
	}
}

func TestScanString(t *testing.T) {
	toks := scanAll(t, `"hello world"`)
	require.Equal(t, token.STRING, toks[0].Type)
	require.Equal(t, `"hello world"`, toks[0].Lexeme)
}

func TestScanMultilineString(t *testing.T) {
	toks := scanAll(t, "\"line1\nline2\"\nx")
	require.Equal(t, token.STRING, toks[0].Type)
	require.Equal(t, token.IDENT, toks[1].Type)
	require.Equal(t, 3, toks[1].Line)
}

func TestScanUnterminatedString(t *testing.T) {
	toks := scanAll(t, `"never closes`)
	require.Equal(t, token.ILLEGAL, toks[0].Type)
	require.Equal(t, "Unterminated string.", toks[0].Lexeme)
	// the token stream still terminates
	require.Equal(t, token.EOF, toks[len(toks)-1].Type)
}

func TestScanKeywordsAndIdentifiers(t *testing.T) {
	toks := scanAll(t, "var fun if else while for print return nil true false and or continue fortune")
	kws := []token.Token{
		token.VAR, token.FUN, token.IF, token.ELSE, token.WHILE, token.FOR,
		token.PRINT, token.RETURN, token.NIL, token.TRUE, token.FALSE,
		token.AND, token.OR, token.CONTINUE, token.IDENT,
	}
	for i, k := range kws {
		require.Equalf(t, k, toks[i].Type, "token %d (%s)", i, toks[i].Lexeme)
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	toks := scanAll(t, "@")
	require.Equal(t, token.ILLEGAL, toks[0].Type)
	require.Equal(t, "Unexpected character.", toks[0].Lexeme)
}
