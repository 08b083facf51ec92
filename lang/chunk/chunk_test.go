package chunk_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vela-lang/vela/lang/chunk"
	"github.com/vela-lang/vela/lang/value"
)

func TestWriteByteCollapsesRuns(t *testing.T) {
	var c chunk.Chunk
	c.WriteByte(byte(chunk.OpNil), 1)
	c.WriteByte(byte(chunk.OpTrue), 1)
	c.WriteByte(byte(chunk.OpPop), 2)

	require.Equal(t, 1, c.GetLine(0))
	require.Equal(t, 1, c.GetLine(1))
	require.Equal(t, 2, c.GetLine(2))
}

func TestAddConstant(t *testing.T) {
	var c chunk.Chunk
	idx, err := c.AddConstant(value.Number(42))
	require.NoError(t, err)
	require.Equal(t, 0, idx)

	idx2, err := c.AddConstant(value.Number(7))
	require.NoError(t, err)
	require.Equal(t, 1, idx2)
	require.Len(t, c.Constants, 2)
}

func TestAddConstantOverflow(t *testing.T) {
	var c chunk.Chunk
	c.Constants = make([]value.Value, chunk.MaxConstants)
	_, err := c.AddConstant(value.Number(1))
	require.ErrorIs(t, err, chunk.ErrTooManyConstants)
}

func TestDisassembleShowsOpcodesAndConstants(t *testing.T) {
	var c chunk.Chunk
	idx, _ := c.AddConstant(value.Number(7))
	c.WriteByte(byte(chunk.OpConstant), 1)
	c.WriteByte(byte(idx), 1)
	c.WriteByte(byte(chunk.OpReturn), 1)

	out := chunk.Disassemble(&c, "test")
	require.Contains(t, out, "CONSTANT")
	require.Contains(t, out, "'7'")
	require.Contains(t, out, "RETURN")
}
