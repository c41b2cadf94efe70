package types2

import (
	"fmt"

	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/types"
)

// call checks a function call against the registered signature. Arguments
// are checked even when the function is unknown.
func (c *Checker) call(e *syntax.CallExpr) types.Type {
	sig, ok := c.syms.LookupFunction(e.Name)
	if !ok {
		c.errorf(e, syntax.UnknownName, "undefined function: %s", e.Name)
		for _, a := range e.Args {
			c.value(a)
		}
		return types.Typ[types.Object]
	}

	c.callSite(e)

	if len(e.Args) != sig.NumParams() {
		c.errorf(e, syntax.ArgMismatch, "%s", arityMsg(e, sig))
	}
	for i, a := range e.Args {
		t := c.value(a)
		if i < sig.NumParams() && !types.AssignableTo(t, sig.Param(i)) {
			c.incompatible(a, t, sig.Param(i), fmt.Sprintf("argument %d to %s", i+1, e.Name))
		}
	}
	return sig.Result()
}

func arityMsg(e *syntax.CallExpr, sig *types.Signature) string {
	verb := "not enough"
	if len(e.Args) > sig.NumParams() {
		verb = "too many"
	}
	return fmt.Sprintf("%s arguments in call to %s\n\thave %d\n\twant %s",
		verb, e.Name, len(e.Args), sig)
}
