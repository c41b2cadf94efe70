package eval

import (
	"fmt"

	"github.com/you-not-fish/catscript/internal/syntax"
)

// RuntimeError is a fault raised while evaluating a program.
type RuntimeError struct {
	Pos syntax.Pos
	Msg string
}

func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: runtime error: %s", e.Pos, e.Msg)
}

func runtimeErrorf(n syntax.Node, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Pos: n.Pos(), Msg: fmt.Sprintf(format, args...)}
}
