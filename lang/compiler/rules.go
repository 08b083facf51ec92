package compiler

import "github.com/vela-lang/vela/lang/token"

// Precedence orders binding strength from loosest to tightest, low to high,
// as laid out by spec.md's Pratt table.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecTernary
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

// parseFn is a prefix or infix parsing function; canAssign tells it whether
// it is allowed to consume a trailing '=' (only true at or below
// PrecAssignment).
type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix, infix parseFn
	prec          Precedence
}

var rules = map[token.Token]parseRule{
	token.LPAREN:  {prefix: (*Compiler).grouping, infix: (*Compiler).call, prec: PrecCall},
	token.MINUS:   {prefix: (*Compiler).unary, infix: (*Compiler).binary, prec: PrecTerm},
	token.PLUS:    {infix: (*Compiler).binary, prec: PrecTerm},
	token.SLASH:   {infix: (*Compiler).binary, prec: PrecFactor},
	token.STAR:    {infix: (*Compiler).binary, prec: PrecFactor},
	token.BANG:    {prefix: (*Compiler).unary},
	token.BANG_EQ: {infix: (*Compiler).binary, prec: PrecEquality},
	token.EQ_EQ:   {infix: (*Compiler).binary, prec: PrecEquality},
	token.GT:      {infix: (*Compiler).binary, prec: PrecComparison},
	token.GT_EQ:   {infix: (*Compiler).binary, prec: PrecComparison},
	token.LT:      {infix: (*Compiler).binary, prec: PrecComparison},
	token.LT_EQ:   {infix: (*Compiler).binary, prec: PrecComparison},
	token.NUMBER:  {prefix: (*Compiler).number},
	token.STRING:  {prefix: (*Compiler).string},
	token.IDENT:   {prefix: (*Compiler).variable},
	token.AND:     {infix: (*Compiler).and_, prec: PrecAnd},
	token.OR:      {infix: (*Compiler).or_, prec: PrecOr},
	token.QMARK:   {infix: (*Compiler).ternary, prec: PrecTernary},
	token.FALSE:   {prefix: (*Compiler).literal},
	token.TRUE:    {prefix: (*Compiler).literal},
	token.NIL:     {prefix: (*Compiler).literal},
}

func getRule(tok token.Token) parseRule { return rules[tok] }
