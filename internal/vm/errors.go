package vm

import (
	"fmt"

	"github.com/you-not-fish/catscript/internal/bytecode"
)

// Error is a fault raised while executing bytecode.
type Error struct {
	Method string // name and descriptor
	PC     int
	Op     bytecode.Op
	Msg    string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s pc %d (%s): %s", e.Method, e.PC, e.Op, e.Msg)
}
