package maincmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mna/mainer"

	"github.com/vela-lang/vela/lang/scanner"
	"github.com/vela-lang/vela/lang/token"
)

// Tokenize runs the scanner alone over each file (a path of "-" reads
// stdin) and prints every token it produces, one per line.
func (c *Cmd) Tokenize(ctx context.Context, stdio mainer.Stdio, args []string) error {
	for _, path := range args {
		if err := ctx.Err(); err != nil {
			return printError(stdio, err)
		}
		src, err := readSource(path)
		if err != nil {
			return printError(stdio, err)
		}
		tokenizeSource(stdio.Stdout, src)
	}
	return nil
}

func tokenizeSource(w io.Writer, src string) {
	s := scanner.New(src)
	for {
		tok := s.Scan()
		fmt.Fprintf(w, "%4d %-16s %q\n", tok.Line, tok.Type, tok.Lexeme)
		if tok.Type == token.EOF {
			return
		}
	}
}

func readSource(path string) (string, error) {
	if path == "-" {
		b, err := io.ReadAll(os.Stdin)
		return string(b), err
	}
	b, err := os.ReadFile(path)
	return string(b), err
}
