// Package vm implements the stack-based virtual machine that executes
// bytecode chunks produced by package compiler.
package vm

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/vela-lang/vela/lang/chunk"
	"github.com/vela-lang/vela/lang/compiler"
	"github.com/vela-lang/vela/lang/object"
	"github.com/vela-lang/vela/lang/table"
	"github.com/vela-lang/vela/lang/value"
)

const (
	maxFrames = 64
	stackMax  = maxFrames * 256
)

// InterpretResult reports the outcome of a single Interpret call.
type InterpretResult int

const (
	OK InterpretResult = iota
	CompileError
	RuntimeError
)

func (r InterpretResult) String() string {
	switch r {
	case OK:
		return "OK"
	case CompileError:
		return "CompileError"
	case RuntimeError:
		return "RuntimeError"
	default:
		return "<invalid result>"
	}
}

// callFrame is one live invocation: the closure being executed, the
// instruction pointer into its chunk, and the base index into vm.stack
// that holds slot 0 (the closure itself) for this call.
type callFrame struct {
	closure *object.Closure
	ip      int
	slots   int
}

// VM is one independent interpreter instance. Nothing here is package
// global state: every VM owns its own stack, globals, interned strings,
// and open-upvalue list, so a process may run more than one concurrently
// (each one is itself strictly single-threaded, per the non-reentrancy
// contract documented on Interpret).
type VM struct {
	stack    [stackMax]value.Value
	stackTop int

	frames     [maxFrames]callFrame
	frameCount int

	globals  *table.Table
	interner *table.Interner

	openUpvalues []*object.Upvalue // sorted by descending StackIndex

	// objects is the head of the intrusive list every Closure, Upvalue, and
	// Native gets linked into as the VM allocates it. Go's own garbage
	// collector reclaims them; the list exists so the VM always has a census
	// of its own live allocations, independent of that collector.
	objects *value.Object

	running bool // reentrancy guard: Interpret must not be re-entered from a native

	Stdout io.Writer
	Stderr io.Writer
}

// Option configures a VM at construction time.
type Option func(*VM)

// WithStdout overrides the writer that PRINT writes to. Defaults to
// os.Stdout.
func WithStdout(w io.Writer) Option { return func(vm *VM) { vm.Stdout = w } }

// WithStderr overrides the writer that compile/runtime diagnostics are
// printed to. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option { return func(vm *VM) { vm.Stderr = w } }

// New constructs a ready-to-use VM: globals table, string interner, and
// the built-in native functions (clock) are all wired up before New
// returns.
func New(opts ...Option) *VM {
	vm := &VM{
		globals:  table.NewTable(),
		interner: table.NewInterner(),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(vm)
	}
	vm.defineNatives()
	return vm
}

// Interpret compiles and runs source to completion. It must not be called
// re-entrantly from within a native function running on this VM — doing so
// is a programming error and Interpret returns RuntimeError immediately
// without running anything.
func (vm *VM) Interpret(ctx context.Context, source string) InterpretResult {
	if vm.running {
		fmt.Fprintln(vm.Stderr, "interpret called re-entrantly")
		return RuntimeError
	}

	fn, err := compiler.Compile(source, vm.interner)
	if err != nil {
		fmt.Fprintln(vm.Stderr, err.Error())
		return CompileError
	}

	closure := object.NewClosure(fn)
	vm.track(&closure.Object)
	vm.push(closure)
	vm.callValue(closure, 0)

	vm.running = true
	defer func() { vm.running = false }()
	return vm.run(ctx)
}

func (vm *VM) push(v value.Value) { vm.stack[vm.stackTop] = v; vm.stackTop++ }

func (vm *VM) pop() value.Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) value.Value { return vm.stack[vm.stackTop-1-distance] }

func (vm *VM) resetStack() {
	vm.stackTop = 0
	vm.frameCount = 0
	vm.openUpvalues = nil
}

func (vm *VM) currentFrame() *callFrame { return &vm.frames[vm.frameCount-1] }

// track links o at the head of the VM's intrusive object list. Closures,
// Upvalues and Natives are linked in here; Functions (compile-time constants
// kept in a Chunk's Constants slice) and Strings (created by the interner,
// including those made by run-time concatenation) are not.
func (vm *VM) track(o *value.Object) {
	o.SetNext(vm.objects)
	vm.objects = o
}

func (vm *VM) readByte(f *callFrame) byte {
	b := f.closure.Function.Chunk.Code[f.ip]
	f.ip++
	return b
}

func (vm *VM) readUint16(f *callFrame) uint16 {
	hi := vm.readByte(f)
	lo := vm.readByte(f)
	return uint16(hi)<<8 | uint16(lo)
}

func (vm *VM) readConstant(f *callFrame, idx int) value.Value {
	return f.closure.Function.Chunk.Constants[idx]
}

// run executes instructions on behalf of the top call frame until either
// the outermost frame returns (OK) or a runtime error aborts execution.
func (vm *VM) run(ctx context.Context) InterpretResult {
	f := vm.currentFrame()
	steps := 0
	for {
		steps++
		if steps&0xff == 0 {
			if err := ctx.Err(); err != nil {
				return vm.runtimeError(f, "%s", err.Error())
			}
		}

		op := chunk.OpCode(vm.readByte(f))
		switch op {
		case chunk.OpConstant:
			vm.push(vm.readConstant(f, int(vm.readByte(f))))
		case chunk.OpConstantLong:
			vm.push(vm.readConstant(f, int(vm.readUint16(f))))

		case chunk.OpNil:
			vm.push(value.Nil{})
		case chunk.OpTrue:
			vm.push(value.Bool(true))
		case chunk.OpFalse:
			vm.push(value.Bool(false))

		case chunk.OpPop:
			vm.pop()
		case chunk.OpPopN:
			n := int(vm.readByte(f))
			vm.stackTop -= n

		case chunk.OpGetLocal:
			vm.push(vm.stack[f.slots+int(vm.readByte(f))])
		case chunk.OpGetLocalLong:
			vm.push(vm.stack[f.slots+int(vm.readUint16(f))])
		case chunk.OpSetLocal:
			vm.stack[f.slots+int(vm.readByte(f))] = vm.peek(0)
		case chunk.OpSetLocalLong:
			vm.stack[f.slots+int(vm.readUint16(f))] = vm.peek(0)

		case chunk.OpGetGlobal:
			if r, ok := vm.getGlobal(f, int(vm.readByte(f))); ok {
				vm.push(r)
			} else {
				return RuntimeError
			}
		case chunk.OpGetGlobalLong:
			if r, ok := vm.getGlobal(f, int(vm.readUint16(f))); ok {
				vm.push(r)
			} else {
				return RuntimeError
			}
		case chunk.OpDefineGlobal:
			vm.defineGlobal(f, int(vm.readByte(f)))
		case chunk.OpDefineGlobalLong:
			vm.defineGlobal(f, int(vm.readUint16(f)))
		case chunk.OpSetGlobal:
			if !vm.setGlobal(f, int(vm.readByte(f))) {
				return RuntimeError
			}
		case chunk.OpSetGlobalLong:
			if !vm.setGlobal(f, int(vm.readUint16(f))) {
				return RuntimeError
			}

		case chunk.OpGetUpvalue:
			vm.push(f.closure.Upvalues[vm.readByte(f)].Get())
		case chunk.OpGetUpvalueLong:
			vm.push(f.closure.Upvalues[vm.readUint16(f)].Get())
		case chunk.OpSetUpvalue:
			f.closure.Upvalues[vm.readByte(f)].Set(vm.peek(0))
		case chunk.OpSetUpvalueLong:
			f.closure.Upvalues[vm.readUint16(f)].Set(vm.peek(0))
		case chunk.OpCloseUpvalue:
			vm.closeUpvalues(vm.stackTop - 1)
			vm.pop()

		case chunk.OpEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(value.Equal(a, b)))
		case chunk.OpNotEqual:
			b, a := vm.pop(), vm.pop()
			vm.push(value.Bool(!value.Equal(a, b)))
		case chunk.OpGreater:
			if !vm.numericBinary(f, func(a, b float64) value.Value { return value.Bool(a > b) }) {
				return RuntimeError
			}
		case chunk.OpGreaterEqual:
			if !vm.numericBinary(f, func(a, b float64) value.Value { return value.Bool(a >= b) }) {
				return RuntimeError
			}
		case chunk.OpLess:
			if !vm.numericBinary(f, func(a, b float64) value.Value { return value.Bool(a < b) }) {
				return RuntimeError
			}
		case chunk.OpLessEqual:
			if !vm.numericBinary(f, func(a, b float64) value.Value { return value.Bool(a <= b) }) {
				return RuntimeError
			}

		case chunk.OpAdd:
			if !vm.add(f) {
				return RuntimeError
			}
		case chunk.OpSubtract:
			if !vm.numericBinary(f, func(a, b float64) value.Value { return value.Number(a - b) }) {
				return RuntimeError
			}
		case chunk.OpMultiply:
			if !vm.numericBinary(f, func(a, b float64) value.Value { return value.Number(a * b) }) {
				return RuntimeError
			}
		case chunk.OpDivide:
			if !vm.numericBinary(f, func(a, b float64) value.Value { return value.Number(a / b) }) {
				return RuntimeError
			}

		case chunk.OpNot:
			vm.push(value.Bool(!value.Truthy(vm.pop())))
		case chunk.OpNegate:
			n, ok := vm.peek(0).(value.Number)
			if !ok {
				return vm.runtimeError(f, "Operand must be a number.")
			}
			vm.pop()
			vm.push(-n)

		case chunk.OpPrint:
			fmt.Fprintln(vm.Stdout, vm.pop().String())

		case chunk.OpJump:
			offset := vm.readUint16(f)
			f.ip += int(offset)
		case chunk.OpJumpIfTrue:
			offset := vm.readUint16(f)
			if value.Truthy(vm.peek(0)) {
				f.ip += int(offset)
			}
		case chunk.OpJumpIfFalse:
			offset := vm.readUint16(f)
			if !value.Truthy(vm.peek(0)) {
				f.ip += int(offset)
			}
		case chunk.OpLoop:
			offset := vm.readUint16(f)
			f.ip -= int(offset)

		case chunk.OpCall:
			argCount := int(vm.readByte(f))
			if !vm.callValue(vm.peek(argCount), argCount) {
				return RuntimeError
			}
			f = vm.currentFrame()

		case chunk.OpReturn:
			result := vm.pop()
			vm.closeUpvalues(f.slots)
			vm.frameCount--
			if vm.frameCount == 0 {
				vm.pop() // the top-level script closure itself
				return OK
			}
			vm.stackTop = f.slots
			vm.push(result)
			f = vm.currentFrame()

		case chunk.OpClosure, chunk.OpClosureLong:
			vm.makeClosure(f, op)

		default:
			return vm.runtimeError(f, "Unknown opcode %d.", op)
		}
	}
}

func (vm *VM) getGlobal(f *callFrame, idx int) (value.Value, bool) {
	name := vm.readConstant(f, idx).(*value.String)
	v, ok := vm.globals.Get(name)
	if !ok {
		vm.runtimeError(f, "Undefined variable '%s'.", name.Chars)
		return nil, false
	}
	return v, true
}

func (vm *VM) defineGlobal(f *callFrame, idx int) {
	name := vm.readConstant(f, idx).(*value.String)
	vm.globals.Set(name, vm.peek(0))
	vm.pop()
}

func (vm *VM) setGlobal(f *callFrame, idx int) bool {
	name := vm.readConstant(f, idx).(*value.String)
	if vm.globals.Set(name, vm.peek(0)) {
		vm.globals.Delete(name) // Set() on an absent key must not create it
		vm.runtimeError(f, "Undefined variable '%s'.", name.Chars)
		return false
	}
	return true
}

func (vm *VM) numericBinary(f *callFrame, op func(a, b float64) value.Value) bool {
	b, bok := vm.peek(0).(value.Number)
	a, aok := vm.peek(1).(value.Number)
	if !aok || !bok {
		vm.runtimeError(f, "Operands must be numbers.")
		return false
	}
	vm.pop()
	vm.pop()
	vm.push(op(float64(a), float64(b)))
	return true
}

func (vm *VM) add(f *callFrame) bool {
	b, a := vm.peek(0), vm.peek(1)
	switch av := a.(type) {
	case value.Number:
		bv, ok := b.(value.Number)
		if !ok {
			break
		}
		vm.pop()
		vm.pop()
		vm.push(av + bv)
		return true
	case *value.String:
		bv, ok := b.(*value.String)
		if !ok {
			break
		}
		vm.pop()
		vm.pop()
		vm.push(vm.interner.Intern(av.Chars + bv.Chars))
		return true
	}
	vm.runtimeError(f, "Operands must be two numbers or two strings.")
	return false
}

func (vm *VM) makeClosure(f *callFrame, op chunk.OpCode) {
	var idx int
	if op == chunk.OpClosure {
		idx = int(vm.readByte(f))
	} else {
		idx = int(vm.readUint16(f))
	}
	fn := vm.readConstant(f, idx).(*object.Function)
	closure := object.NewClosure(fn)
	vm.track(&closure.Object)
	for i := 0; i < fn.UpvalueCount; i++ {
		isLocal := vm.readByte(f)
		index := int(vm.readUint16(f))
		if isLocal != 0 {
			closure.Upvalues[i] = vm.captureUpvalue(f.slots + index)
		} else {
			closure.Upvalues[i] = f.closure.Upvalues[index]
		}
	}
	vm.push(closure)
}
