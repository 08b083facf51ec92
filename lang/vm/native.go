package vm

import (
	"time"

	"github.com/vela-lang/vela/lang/object"
	"github.com/vela-lang/vela/lang/value"
)

// defineNatives registers every native function a freshly constructed VM
// exposes to vela programs. This is the extension point for adding more:
// one vm.defineNative call per native.
func (vm *VM) defineNatives() {
	vm.defineNative("clock", 0, nativeClock)
}

func (vm *VM) defineNative(name string, arity int, fn object.NativeFn) {
	n := object.NewNative(name, arity, fn)
	vm.track(&n.Object)
	vm.globals.Set(vm.interner.Intern(name), n)
}

// nativeClock returns the number of seconds elapsed since the Unix epoch,
// matching the reference implementation's clock() built-in.
func nativeClock([]value.Value) (value.Value, error) {
	return value.Number(float64(time.Now().UnixNano()) / 1e9), nil
}
