// Package value implements the runtime value representation of the vela
// scripting language: a small tagged union of nil, bool, and number scalars,
// plus a reference to a heap-allocated Object for everything else (strings,
// functions, natives, closures, upvalues).
package value

import (
	"fmt"
	"math"
)

// Kind identifies the top-level discriminant of a Value.
type Kind uint8

const (
	KindNil Kind = iota
	KindBool
	KindNumber
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindObject:
		return "object"
	default:
		return "<invalid kind>"
	}
}

// Value is implemented by every runtime value: the three scalar kinds (Nil,
// Bool, Number) and every heap Object (via *Object's embedders).
type Value interface {
	Kind() Kind
	String() string
}

// Nil is the single value of kind KindNil.
type Nil struct{}

func (Nil) Kind() Kind     { return KindNil }
func (Nil) String() string { return "nil" }

// Bool is a boolean scalar value.
type Bool bool

func (Bool) Kind() Kind { return KindBool }
func (b Bool) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Number is an IEEE-754 double scalar value.
type Number float64

func (Number) Kind() Kind { return KindNumber }
func (n Number) String() string {
	f := float64(n)
	if math.IsInf(f, 1) {
		return "inf"
	}
	if math.IsInf(f, -1) {
		return "-inf"
	}
	if math.IsNaN(f) {
		return "nan"
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// Truthy implements the language's truthiness rule: nil is false, a bool is
// itself, and every other value (including 0 and "") is true.
func Truthy(v Value) bool {
	switch vv := v.(type) {
	case Nil:
		return false
	case Bool:
		return bool(vv)
	default:
		return true
	}
}

// Equal implements value equality: two values are equal only if their kinds
// match. Bools compare by value, numbers by IEEE-754 ==, and objects by
// reference identity — which is safe for strings because they are always
// interned (see package table).
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Nil:
		return true
	case Bool:
		return av == b.(Bool)
	case Number:
		return av == b.(Number)
	default:
		// Every heap object is embedded behind a distinct pointer type
		// (*String, *Function, ...), so Go's own interface equality already
		// compares by pointer identity here.
		return a == b
	}
}
