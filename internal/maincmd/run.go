package maincmd

import (
	"context"
	"errors"

	"github.com/mna/mainer"

	"github.com/vela-lang/vela/lang/vm"
)

// Run compiles and executes a single source file, or stdin ("-" or no
// argument). vm.Interpret prints its own diagnostics; Run only needs to
// translate the result into the right process exit code (0/65/70).
func (c *Cmd) Run(ctx context.Context, stdio mainer.Stdio, args []string) error {
	path := "-"
	if len(args) > 0 {
		path = args[0]
	}
	src, err := readSource(path)
	if err != nil {
		return printError(stdio, err)
	}

	machine := vm.New(vm.WithStdout(stdio.Stdout), vm.WithStderr(stdio.Stderr))
	switch machine.Interpret(ctx, src) {
	case vm.OK:
		return nil
	case vm.CompileError:
		return errExitCode{65}
	case vm.RuntimeError:
		return errExitCode{70}
	default:
		return errors.New("unknown interpret result")
	}
}

// errExitCode carries a specific process exit code through Main without
// printing a redundant message: vm.Interpret already wrote its own.
type errExitCode struct{ code int }

func (e errExitCode) Error() string { return "" }
