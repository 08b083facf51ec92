package vm

import "fmt"

// reportRuntimeError writes the formatted message plus a stack trace of
// every live call frame (innermost first) to vm.Stderr, then resets the
// VM's stack and frame state so it is ready for the next Interpret call.
func (vm *VM) reportRuntimeError(format string, args ...any) {
	fmt.Fprintln(vm.Stderr, fmt.Sprintf(format, args...))

	for i := vm.frameCount - 1; i >= 0; i-- {
		f := &vm.frames[i]
		fn := f.closure.Function
		line := fn.Chunk.GetLine(f.ip - 1)
		name := "script"
		if fn.Name != nil {
			name = fn.Name.Chars
		}
		fmt.Fprintf(vm.Stderr, "[line %d] in %s\n", line, name)
	}

	vm.resetStack()
}

// runtimeError is used from the dispatch loop, where callers need an
// InterpretResult back.
func (vm *VM) runtimeError(f *callFrame, format string, args ...any) InterpretResult {
	vm.reportRuntimeError(format, args...)
	_ = f
	return RuntimeError
}

// runtimeErrorNoFrame is used from call setup (callValue/call/callNative),
// where callers need a bool back and the frame that would explain the
// error is whatever is currently on top (the caller), since the callee's
// frame has not been pushed yet.
func (vm *VM) runtimeErrorNoFrame(format string, args ...any) bool {
	vm.reportRuntimeError(format, args...)
	return false
}
