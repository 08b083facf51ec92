package object

import "github.com/vela-lang/vela/lang/value"

// Upvalue is a heap cell shared between an enclosing frame's stack slot and
// the closures that capture it. While Open, it points at a live stack slot;
// once the VM closes it (because the slot's scope exited), it owns a copy of
// the value instead.
//
// The VM tracks its open upvalues itself (a slice kept sorted by descending
// StackIndex, so "close everything at or above slot S" doesn't need a full
// scan); NextOpen is the intrusive-list alternative to that, kept on the
// struct but unused by the current VM.
type Upvalue struct {
	value.Object

	// Location points at the live stack slot while the upvalue is open. It is
	// nil once the upvalue has been closed.
	Location *value.Value

	// Closed holds the value copied off the stack when the upvalue was closed.
	// Only meaningful once Location == nil.
	Closed value.Value

	// StackIndex is the absolute stack slot this upvalue refers to while open;
	// it is what keeps the VM's open-upvalue list sorted.
	StackIndex int

	// NextOpen is the intrusive-list link to the next (lower-index) open
	// upvalue. The VM keeps its open upvalues in a slice and never sets it.
	NextOpen *Upvalue
}

var _ value.Value = (*Upvalue)(nil)

// NewUpvalue allocates an open Upvalue referring to the stack slot at index,
// whose current contents are pointed to by loc.
func NewUpvalue(loc *value.Value, index int) *Upvalue {
	return &Upvalue{
		Object:     value.NewObject(value.ObjUpvalue),
		Location:   loc,
		StackIndex: index,
	}
}

// IsOpen reports whether the upvalue still refers to a live stack slot.
func (u *Upvalue) IsOpen() bool { return u.Location != nil }

// Get returns the upvalue's current value, whether open or closed.
func (u *Upvalue) Get() value.Value {
	if u.Location != nil {
		return *u.Location
	}
	return u.Closed
}

// Set writes through the upvalue, whether open or closed.
func (u *Upvalue) Set(v value.Value) {
	if u.Location != nil {
		*u.Location = v
		return
	}
	u.Closed = v
}

// Close detaches the upvalue from the stack, copying its current value into
// Closed. After Close, the upvalue no longer aliases any stack slot.
func (u *Upvalue) Close() {
	u.Closed = *u.Location
	u.Location = nil
}

func (u *Upvalue) String() string { return "<upvalue>" }
