package vm_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/lang/vm"
)

func run(t *testing.T, source string) (string, vm.InterpretResult) {
	t.Helper()
	var out, errOut bytes.Buffer
	machine := vm.New(vm.WithStdout(&out), vm.WithStderr(&errOut))
	result := machine.Interpret(context.Background(), source)
	if result != vm.OK {
		t.Logf("stderr: %s", errOut.String())
	}
	return out.String(), result
}

func TestArithmeticPrecedence(t *testing.T) {
	out, result := run(t, "print 1 + 2 * 3;")
	require.Equal(t, vm.OK, result)
	assert.Equal(t, "7\n", out)
}

func TestStringInterningEquality(t *testing.T) {
	out, result := run(t, `var a = "hi"; var b = "hi"; print a == b;`)
	require.Equal(t, vm.OK, result)
	assert.Equal(t, "true\n", out)
}

func TestForLoopAccumulates(t *testing.T) {
	out, result := run(t, `var a = 0; for (var i = 0; i < 3; i = i + 1) a = a + i; print a;`)
	require.Equal(t, vm.OK, result)
	assert.Equal(t, "3\n", out)
}

func TestClosureSharesCapturedLocalAcrossCalls(t *testing.T) {
	out, result := run(t, `
		fun make(){ var x = 0; fun inc(){ x = x + 1; return x; } return inc; }
		var c = make();
		print c();
		print c();
	`)
	require.Equal(t, vm.OK, result)
	assert.Equal(t, "1\n2\n", out)
}

func TestRecursiveFactorial(t *testing.T) {
	out, result := run(t, `
		fun fact(n){ if (n <= 1) return 1; return n * fact(n-1); }
		print fact(5);
	`)
	require.Equal(t, vm.OK, result)
	assert.Equal(t, "120\n", out)
}

func TestClockNative(t *testing.T) {
	out, result := run(t, "print clock() >= 0;")
	require.Equal(t, vm.OK, result)
	assert.Equal(t, "true\n", out)
}

func TestSelfInitializerIsCompileError(t *testing.T) {
	_, result := run(t, "var x = x;")
	assert.Equal(t, vm.CompileError, result)
}

func TestAddingStringAndNumberIsRuntimeError(t *testing.T) {
	var out, errOut bytes.Buffer
	machine := vm.New(vm.WithStdout(&out), vm.WithStderr(&errOut))
	result := machine.Interpret(context.Background(), `1 + "a";`)
	assert.Equal(t, vm.RuntimeError, result)
	assert.Contains(t, errOut.String(), "Operands must be two numbers or two strings.")
}

func TestDeepRecursionOverflowsCallStack(t *testing.T) {
	var out, errOut bytes.Buffer
	machine := vm.New(vm.WithStdout(&out), vm.WithStderr(&errOut))
	result := machine.Interpret(context.Background(), `
		fun recur(n) { return recur(n + 1); }
		print recur(0);
	`)
	assert.Equal(t, vm.RuntimeError, result)
	assert.Contains(t, errOut.String(), "Stack overflow.")
}

func TestUndefinedGlobalReadIsRuntimeError(t *testing.T) {
	var out, errOut bytes.Buffer
	machine := vm.New(vm.WithStdout(&out), vm.WithStderr(&errOut))
	result := machine.Interpret(context.Background(), `print nope;`)
	assert.Equal(t, vm.RuntimeError, result)
	assert.Contains(t, errOut.String(), "Undefined variable 'nope'.")
}

func TestSetOnUndefinedGlobalDoesNotCreateIt(t *testing.T) {
	var out, errOut bytes.Buffer
	machine := vm.New(vm.WithStdout(&out), vm.WithStderr(&errOut))
	result := machine.Interpret(context.Background(), `nope = 1;`)
	assert.Equal(t, vm.RuntimeError, result)
	assert.Contains(t, errOut.String(), "Undefined variable 'nope'.")
}

func TestContinueSkipsRemainderOfLoopBody(t *testing.T) {
	out, result := run(t, `
		var total = 0;
		for (var i = 0; i < 5; i = i + 1) {
			if (i == 2) continue;
			total = total + i;
		}
		print total;
	`)
	require.Equal(t, vm.OK, result)
	assert.Equal(t, "8\n", out)
}

func TestTernaryExpression(t *testing.T) {
	out, result := run(t, `print 1 < 2 ? "yes" : "no";`)
	require.Equal(t, vm.OK, result)
	assert.Equal(t, "yes\n", out)
}
