// Package types2 implements semantic validation for CatScript programs.
package types2

import (
	"fmt"

	"github.com/you-not-fish/catscript/internal/syntax"
)

// ErrorHandler is a function called for each semantic error.
type ErrorHandler func(err *syntax.Error)

// errorf records a semantic error of the given kind on node n.
func (c *Checker) errorf(n syntax.Node, kind syntax.ErrorKind, format string, args ...interface{}) {
	err := &syntax.Error{
		Kind: kind,
		Pos:  n.Pos(),
		Msg:  fmt.Sprintf(format, args...),
	}
	n.AddError(err)

	if c.errors == 0 {
		c.first = err
	}
	c.errors++

	if c.conf.Error != nil {
		c.conf.Error(err)
	}
}

// incompatible reports that a value of type have was used where want is
// required.
func (c *Checker) incompatible(n syntax.Node, have, want interface{}, context string) {
	c.errorf(n, syntax.IncompatibleTypes, "cannot use %v as %v in %s", have, want, context)
}
