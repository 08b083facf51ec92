// Package chunk implements the bytecode container produced by the compiler
// and executed by the VM: a flat byte array, its constant pool, and a
// run-length-encoded map from code offset to source line.
package chunk

import (
	"errors"

	"github.com/vela-lang/vela/lang/value"
)

// MaxConstants is the largest number of constants a single chunk may hold;
// a constant-pool index is a 16-bit value.
const MaxConstants = 1 << 16

// ErrTooManyConstants is returned by AddConstant once the pool is full.
var ErrTooManyConstants = errors.New("too many constants in one chunk")

// lineRun records that `count` consecutive bytes of code belong to `line`.
// Storing runs instead of one line number per byte keeps the map small for
// the common case of many bytecode bytes per source line.
type lineRun struct {
	line  int
	count int
}

// Chunk is a sequence of bytecode bytes plus the constant pool and source
// line map it was compiled against.
type Chunk struct {
	Code      []byte
	Constants []value.Value
	lines     []lineRun
}

// WriteByte appends one byte of code, attributing it to the given source
// line. Consecutive writes on the same line collapse into a single run.
func (c *Chunk) WriteByte(b byte, line int) {
	c.Code = append(c.Code, b)
	if n := len(c.lines); n > 0 && c.lines[n-1].line == line {
		c.lines[n-1].count++
		return
	}
	c.lines = append(c.lines, lineRun{line: line, count: 1})
}

// WriteUint16 appends a big-endian 16-bit operand, attributing both bytes to
// line.
func (c *Chunk) WriteUint16(v uint16, line int) {
	c.WriteByte(byte(v>>8), line)
	c.WriteByte(byte(v), line)
}

// GetLine returns the source line that produced the byte at offset. It scans
// the run-length map linearly; this is a diagnostics-only path, never called
// from the VM's dispatch loop.
func (c *Chunk) GetLine(offset int) int {
	remaining := offset
	for _, run := range c.lines {
		if remaining < run.count {
			return run.line
		}
		remaining -= run.count
	}
	if len(c.lines) > 0 {
		return c.lines[len(c.lines)-1].line
	}
	return 0
}

// AddConstant appends v to the constant pool and returns its index, unless
// doing so would exceed MaxConstants, in which case it returns
// ErrTooManyConstants and leaves the pool unchanged. The compiler is
// responsible for surfacing this as a compile error.
func (c *Chunk) AddConstant(v value.Value) (int, error) {
	if len(c.Constants) >= MaxConstants {
		return 0, ErrTooManyConstants
	}
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1, nil
}
