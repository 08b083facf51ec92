package vm

import (
	"github.com/vela-lang/vela/lang/object"
	"github.com/vela-lang/vela/lang/value"
)

// callValue dispatches a CALL instruction's callee, which must be either a
// Closure (pushes a new call frame) or a Native (invoked immediately).
// Returns false if a runtime error was raised.
func (vm *VM) callValue(callee value.Value, argCount int) bool {
	switch c := callee.(type) {
	case *object.Closure:
		return vm.call(c, argCount)
	case *object.Native:
		return vm.callNative(c, argCount)
	default:
		return vm.runtimeErrorNoFrame("Can only call functions and classes.")
	}
}

func (vm *VM) call(closure *object.Closure, argCount int) bool {
	if argCount != closure.Function.Arity {
		return vm.runtimeErrorNoFrame("Expected %d arguments but got %d.", closure.Function.Arity, argCount)
	}
	if vm.frameCount == maxFrames {
		return vm.runtimeErrorNoFrame("Stack overflow.")
	}
	vm.frames[vm.frameCount] = callFrame{
		closure: closure,
		ip:      0,
		slots:   vm.stackTop - argCount - 1,
	}
	vm.frameCount++
	return true
}

func (vm *VM) callNative(n *object.Native, argCount int) bool {
	if argCount != n.Arity {
		return vm.runtimeErrorNoFrame("Expected %d arguments but got %d.", n.Arity, argCount)
	}
	args := make([]value.Value, argCount)
	copy(args, vm.stack[vm.stackTop-argCount:vm.stackTop])

	result, err := n.Fn(args)
	if err != nil {
		return vm.runtimeErrorNoFrame("%s", err.Error())
	}
	vm.stackTop -= argCount + 1
	vm.push(result)
	return true
}
