package types2

import (
	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/types"
)

// Checker is the type checker.
type Checker struct {
	conf *Config
	syms *types.SymbolTable // variable scopes and function signatures

	// Global initialisation order
	fn       *syntax.FuncDef        // function whose body is being checked
	uses     map[string]*globalUses // per function name
	declared map[string]int         // global variable -> declaration order
	calls    []topCall              // calls made by top-level statements

	// Error tracking
	errors int           // error count
	first  *syntax.Error // first error
}

// checkProgram validates a whole program.
func (c *Checker) checkProgram(prog *syntax.Program) {
	if prog.Expr != nil {
		c.expr(prog.Expr)
		return
	}

	// Phase 1: register function signatures, so calls may precede
	// definitions.
	for _, s := range prog.Stmts {
		if fd, ok := s.(*syntax.FuncDef); ok {
			if c.syms.RegisterFunction(fd.Name, fd.Signature()) {
				c.errorf(fd, syntax.DuplicateName, "function %s redeclared", fd.Name)
			}
		}
	}

	// Phase 2: statements (and function bodies) in source order
	c.stmts(prog.Stmts)

	// Phase 3: globals reached through calls made before their declaration
	c.checkInitOrder()
}

// openScope pushes a new scope.
func (c *Checker) openScope(comment string) {
	c.syms.PushScope(comment)
}

// closeScope pops the innermost scope.
func (c *Checker) closeScope() {
	c.syms.PopScope()
}

// declare binds name in the innermost scope, reporting a duplicate on n.
func (c *Checker) declare(n syntax.Node, name string, typ types.Type) {
	if c.syms.Declared(name) {
		c.errorf(n, syntax.DuplicateName, "%s redeclared in this block", name)
	}
	c.syms.RegisterSymbol(name, typ)
	if c.fn == nil && c.syms.Depth() == 1 {
		if _, ok := c.declared[name]; !ok {
			c.declared[name] = len(c.declared)
		}
	}
}
