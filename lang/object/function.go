// Package object implements the heap object variants that sit above plain
// values: compiled functions, native functions, closures, and the upvalue
// cells that let closures share captured locals.
package object

import (
	"fmt"

	"github.com/vela-lang/vela/lang/chunk"
	"github.com/vela-lang/vela/lang/value"
)

// Function is a compile-time artifact: a fixed arity, an upvalue count, and
// the bytecode chunk the compiler emitted for its body. The top-level script
// is compiled as an anonymous Function with Name == nil.
type Function struct {
	value.Object
	Name         *value.String
	Arity        int
	UpvalueCount int
	Chunk        chunk.Chunk
}

var _ value.Value = (*Function)(nil)

// NewFunction allocates a Function. Functions are compile-time artifacts,
// reachable through a Chunk's Constants slice rather than the VM's
// intrusive object list; only objects the VM itself allocates at run time
// (Closure, Upvalue, Native) are linked into that list.
func NewFunction() *Function {
	return &Function{Object: value.NewObject(value.ObjFunction)}
}

// NumUpvalues returns the function's upvalue count. It exists (alongside the
// UpvalueCount field) so the chunk package's disassembler can read it via a
// narrow interface without importing package object, which would cycle
// back through chunk.
func (f *Function) NumUpvalues() int { return f.UpvalueCount }

func (f *Function) String() string {
	if f.Name == nil {
		return "<script>"
	}
	return fmt.Sprintf("<fn %s>", f.Name.Chars)
}

// NativeFn is the signature every native (host-provided) function must
// implement.
type NativeFn func(args []value.Value) (value.Value, error)

// Native is a host function exposed to vela programs, such as clock.
type Native struct {
	value.Object
	Name  string
	Arity int
	Fn    NativeFn
}

var _ value.Value = (*Native)(nil)

// NewNative allocates a Native wrapping fn.
func NewNative(name string, arity int, fn NativeFn) *Native {
	return &Native{Object: value.NewObject(value.ObjNative), Name: name, Arity: arity, Fn: fn}
}

func (n *Native) String() string { return fmt.Sprintf("<native fn %s>", n.Name) }

// Closure pairs a Function with the upvalues it captured at creation time.
// len(Upvalues) always equals Function.UpvalueCount.
type Closure struct {
	value.Object
	Function *Function
	Upvalues []*Upvalue
}

var _ value.Value = (*Closure)(nil)

// NewClosure allocates a Closure over fn with upvalueCount empty upvalue
// slots, to be filled in by the VM as it executes the OpClosure operand
// records.
func NewClosure(fn *Function) *Closure {
	return &Closure{
		Object:   value.NewObject(value.ObjClosure),
		Function: fn,
		Upvalues: make([]*Upvalue, fn.UpvalueCount),
	}
}

func (c *Closure) String() string { return c.Function.String() }
