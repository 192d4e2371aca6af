package combo

import (
	"errors"
	"fmt"
)

// Errors reported by grammar compilation and parser drivers.
var (
	ErrNotDesugarable  = errors.New("combinator is not context-free")
	ErrConflicts       = errors.New("grammar has unresolved conflicts")
	ErrUnboundIndirect = errors.New("indirect parser has not been bound")
	ErrNotStaged       = errors.New("backend does not support chunked input")
)

// CompileError is returned when a back-end cannot compile a parser.
// Reason is one of the sentinel errors above and can be tested with errors.Is.
type CompileError struct {
	Backend string
	Reason  error
	States  []int // inadequate states, if any
	Detail  string
}

func (e *CompileError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Backend, e.Reason)
	if len(e.States) > 0 {
		msg += fmt.Sprintf(" (states %v)", e.States)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// Unwrap returns the reason.
func (e *CompileError) Unwrap() error {
	return e.Reason
}
