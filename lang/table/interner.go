// Package table implements the open-addressed hash table used both for
// string interning and for the VM's global-variable storage. Both are
// backed by github.com/dolthub/swiss, a SIMD-friendly open-addressing table:
// it gives us the load-factor-driven rehashing and linear-probe family the
// spec describes without hand-rolling a probe sequence.
package table

import (
	"github.com/dolthub/swiss"

	"github.com/vela-lang/vela/lang/value"
)

// Interner deduplicates strings: for any given byte sequence, Intern always
// returns the same *value.String. This is what lets the VM compare strings
// for equality by pointer identity instead of by content.
type Interner struct {
	m *swiss.Map[string, *value.String]
}

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{m: swiss.NewMap[string, *value.String](64)}
}

// Intern returns the canonical *value.String for chars, allocating and
// recording a new one the first time chars is seen. The swiss.Map lookup
// already does the length/hash/bytes comparison the spec calls for in its
// specialized string-interning lookup; a content key (rather than a
// candidate built eagerly on the heap) means a repeated literal never
// allocates past the Go string header.
func (in *Interner) Intern(chars string) *value.String {
	if s, ok := in.m.Get(chars); ok {
		return s
	}
	s := value.NewString(chars)
	in.m.Put(chars, s)
	return s
}

// Count returns the number of distinct strings currently interned.
func (in *Interner) Count() int { return int(in.m.Count()) }
