package maincmd

import (
	"context"
	"fmt"

	"github.com/mna/mainer"

	"github.com/vela-lang/vela/lang/chunk"
	"github.com/vela-lang/vela/lang/compiler"
	"github.com/vela-lang/vela/lang/table"
)

// Disasm compiles each file and prints a disassembly of its top-level
// chunk. The chunks of the functions declared in the file are not printed.
// It never runs the program.
func (c *Cmd) Disasm(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return printError(stdio, err)
		}
		src, err := readSource(path)
		if err != nil {
			return printError(stdio, err)
		}
		fn, err := compiler.Compile(src, table.NewInterner())
		if err != nil {
			return printError(stdio, err)
		}
		fmt.Fprint(stdio.Stdout, chunk.Disassemble(&fn.Chunk, path))
	}
	return nil
}
