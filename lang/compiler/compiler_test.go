package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vela-lang/vela/lang/chunk"
	"github.com/vela-lang/vela/lang/compiler"
	"github.com/vela-lang/vela/lang/object"
	"github.com/vela-lang/vela/lang/table"
)

func compile(t *testing.T, src string) *object.Function {
	t.Helper()
	fn, err := compiler.Compile(src, table.NewInterner())
	require.NoError(t, err)
	require.NotNil(t, fn)
	return fn
}

func TestCompileArithmeticPrecedence(t *testing.T) {
	fn := compile(t, "print 1 + 2 * 3;")
	dis := chunk.Disassemble(&fn.Chunk, "script")
	assert.Contains(t, dis, "MULTIPLY")
	assert.Contains(t, dis, "ADD")
	assert.Contains(t, dis, "PRINT")
}

func TestCompileGlobalRoundTrip(t *testing.T) {
	fn := compile(t, "var x = 1; x = 2; print x;")
	dis := chunk.Disassemble(&fn.Chunk, "script")
	assert.Contains(t, dis, "DEFINE_GLOBAL")
	assert.Contains(t, dis, "SET_GLOBAL")
	assert.Contains(t, dis, "GET_GLOBAL")
}

func TestCompileSelfInitializerError(t *testing.T) {
	_, err := compiler.Compile("{ var a = a; }", table.NewInterner())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't read variable in its own initializer.")
}

func TestCompileReturnAtTopLevel(t *testing.T) {
	_, err := compiler.Compile("return 1;", table.NewInterner())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't return from top-level code.")
}

func TestCompileContinueOutsideLoop(t *testing.T) {
	_, err := compiler.Compile("continue;", table.NewInterner())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Can't use 'continue' outside of a loop.")
}

func TestCompileInvalidAssignmentTarget(t *testing.T) {
	_, err := compiler.Compile("1 + 2 = 3;", table.NewInterner())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid assignment target.")
}

func TestCompileUnterminatedString(t *testing.T) {
	_, err := compiler.Compile(`print "oops;`, table.NewInterner())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unterminated string.")
}

func TestCompileClosureCapturesLocal(t *testing.T) {
	fn := compile(t, `
		fun outer() {
			var x = 1;
			fun inner() {
				return x;
			}
			return inner;
		}
	`)
	// the script's constants are the global name "outer", then the function
	require.Len(t, fn.Chunk.Constants, 2)
	outer, ok := fn.Chunk.Constants[1].(*object.Function)
	require.True(t, ok)
	// outer's constants are the number 1, then the function inner
	require.Len(t, outer.Chunk.Constants, 2)
	inner, ok := outer.Chunk.Constants[1].(*object.Function)
	require.True(t, ok)
	require.Equal(t, 1, inner.UpvalueCount)

	dis := chunk.Disassemble(&outer.Chunk, "outer")
	assert.Contains(t, dis, "CLOSURE")

	innerDis := chunk.Disassemble(&inner.Chunk, "inner")
	assert.Contains(t, innerDis, "GET_UPVALUE")
}

func TestCompileWhileLoopJumpsBackward(t *testing.T) {
	fn := compile(t, `
		var i = 0;
		while (i < 3) {
			print i;
			i = i + 1;
		}
	`)
	dis := chunk.Disassemble(&fn.Chunk, "script")
	assert.Contains(t, dis, "LOOP")
	assert.Contains(t, dis, "JUMP_IF_FALSE")
}

func TestCompileForLoopDesugarsToWhile(t *testing.T) {
	fn := compile(t, `
		for (var i = 0; i < 3; i = i + 1) {
			print i;
		}
	`)
	dis := chunk.Disassemble(&fn.Chunk, "script")
	assert.Contains(t, dis, "LOOP")
	assert.Contains(t, dis, "JUMP_IF_FALSE")
}

func TestCompileTernary(t *testing.T) {
	fn := compile(t, "print 1 < 2 ? 3 : 4;")
	dis := chunk.Disassemble(&fn.Chunk, "script")
	assert.Contains(t, dis, "JUMP_IF_FALSE")
	assert.Contains(t, dis, "JUMP")
}

func TestCompileManyErrorsAreAllReported(t *testing.T) {
	_, err := compiler.Compile("var ;\nvar ;\n", table.NewInterner())
	require.Error(t, err)
	list, ok := err.(compiler.ErrorList)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(list), 2)
}
