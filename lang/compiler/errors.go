package compiler

import (
	"fmt"
	"sort"
	"strings"
)

// Position is the source location of a compile error: vela programs are
// always a single in-memory source buffer, so a line number is precise
// enough — there is no multi-file token.FileSet to thread through.
type Position struct {
	Line int
}

// Error is a single compile-time diagnostic, shaped like the standard
// library's go/scanner.Error (the teacher reuses that type directly for its
// own error accumulation); vela defines its own because its Position has no
// column or filename.
type Error struct {
	Pos   Position
	Where string // e.g. "at end", "at 'x'", or "" for scanner-raised messages
	Msg   string
}

func (e Error) Error() string {
	if e.Where == "" {
		return fmt.Sprintf("[line %d] Error: %s", e.Pos.Line, e.Msg)
	}
	return fmt.Sprintf("[line %d] Error %s: %s", e.Pos.Line, e.Where, e.Msg)
}

// ErrorList accumulates every compile error found during a single compile,
// mirroring go/scanner.ErrorList's shape (Add, Sort, Err) so that panic-mode
// recovery can keep parsing to EOF instead of aborting on the first error.
type ErrorList []*Error

// Add appends a new Error to the list. where is a short locating phrase
// such as "at end" or "at 'x'"; pass "" when there is nothing to add beyond
// the line number (e.g. a scanner-raised message that is already self
// describing).
func (l *ErrorList) Add(pos Position, where, msg string) {
	*l = append(*l, &Error{Pos: pos, Where: where, Msg: msg})
}

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	msgs := make([]string, len(l))
	for i, e := range l {
		msgs[i] = e.Error()
	}
	return strings.Join(msgs, "\n")
}

// Sort orders the list by source line, matching go/scanner.ErrorList.Sort.
func (l ErrorList) Sort() {
	sort.Stable(byLine(l))
}

type byLine ErrorList

func (l byLine) Len() int           { return len(l) }
func (l byLine) Swap(i, j int)      { l[i], l[j] = l[j], l[i] }
func (l byLine) Less(i, j int) bool { return l[i].Pos.Line < l[j].Pos.Line }

// Err returns nil if the list is empty, or the list itself (as an error)
// otherwise.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}
