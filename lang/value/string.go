package value

// String is an immutable, interned string value. Construction always goes
// through package table's interner (table.Interner.Intern), which guarantees
// the invariant that at most one live *String exists for any given byte
// sequence — so string equality is pointer identity (see Equal).
type String struct {
	Object
	Chars string
	Hash  uint32
}

var _ Value = (*String)(nil)

func (s *String) String() string { return s.Chars }

// NewString constructs a *String with its hash precomputed. It does not
// intern the result — callers outside package table should go through the
// VM's interner instead of calling this directly, or they will defeat
// deduplication.
func NewString(chars string) *String {
	return &String{Object: NewObject(ObjString), Chars: chars, Hash: HashString(chars)}
}

// HashString computes the 32-bit FNV-1a hash of s, as used for string
// interning and as the hash table's key hash.
func HashString(s string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= 16777619
	}
	return h
}
