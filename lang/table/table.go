package table

import (
	"github.com/dolthub/swiss"

	"github.com/vela-lang/vela/lang/value"
)

// Table is the open-addressed map used for the VM's global variables. Keys
// are always interned strings, so pointer identity is enough — the table
// never needs to compare string contents on lookup.
type Table struct {
	m *swiss.Map[*value.String, value.Value]
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{m: swiss.NewMap[*value.String, value.Value](8)}
}

// Get returns the value stored for key, or !found if key is not present.
func (t *Table) Get(key *value.String) (value.Value, bool) {
	return t.m.Get(key)
}

// Set stores v under key, returning true if key was not already present.
func (t *Table) Set(key *value.String, v value.Value) bool {
	_, existed := t.m.Get(key)
	t.m.Put(key, v)
	return !existed
}

// Delete removes key from the table, returning true if it was present.
func (t *Table) Delete(key *value.String) bool {
	return t.m.Delete(key)
}

// Count returns the number of entries currently in the table.
func (t *Table) Count() int { return int(t.m.Count()) }
