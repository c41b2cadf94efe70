package types2

import (
	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/types"
)

// Config specifies the configuration for type checking.
type Config struct {
	// Error is called for each semantic error, in the order found.
	// If nil, errors are only attached to the tree.
	Error ErrorHandler
}

// Check validates a parsed program: scoping, type assignability and return
// coverage. Every error found is attached to the offending node, so the
// tree carries the complete result; Check returns the first semantic error,
// or nil.
//
// Check does not stop at syntax errors. Erroneous subtrees are still
// traversed so that every semantic error is reported in the same pass.
func Check(prog *syntax.Program, conf *Config) error {
	if conf == nil {
		conf = &Config{}
	}

	c := &Checker{
		conf:     conf,
		syms:     types.NewSymbolTable(),
		uses:     make(map[string]*globalUses),
		declared: make(map[string]int),
	}

	c.checkProgram(prog)

	if c.errors > 0 {
		return c.first
	}
	return nil
}
