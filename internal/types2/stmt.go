package types2

import (
	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/types"
)

// stmts checks a list of statements.
func (c *Checker) stmts(list []syntax.Stmt) {
	for _, s := range list {
		c.stmt(s)
	}
}

// stmt checks a single statement.
func (c *Checker) stmt(s syntax.Stmt) {
	switch s := s.(type) {
	case *syntax.PrintStmt:
		c.value(s.X)

	case *syntax.VarStmt:
		c.varStmt(s)

	case *syntax.AssignStmt:
		c.assignStmt(s)

	case *syntax.ForStmt:
		c.forStmt(s)

	case *syntax.IfStmt:
		c.ifStmt(s)

	case *syntax.FuncDef:
		c.funcDef(s)

	case *syntax.ReturnStmt:
		c.returnStmt(s)

	case *syntax.CallStmt:
		c.expr(s.Call)

	case *syntax.BadStmt:
		// Reported by the parser.

	default:
		c.errorf(s, syntax.UnexpectedToken, "unexpected statement %s", syntax.KindOf(s))
	}
}

// varStmt checks var name [: T] = x. The variable is declared even when
// the statement is erroneous, so later statements can still resolve it.
func (c *Checker) varStmt(s *syntax.VarStmt) {
	x := c.value(s.X)

	typ := x
	if s.TypeExpr != nil {
		typ = c.expr(s.TypeExpr)
		if !types.AssignableTo(x, typ) {
			c.incompatible(s, x, typ, "variable declaration")
		}
	}

	s.SetType(typ)
	c.declare(s, s.Name, typ)
}

// assignStmt checks name = x.
func (c *Checker) assignStmt(s *syntax.AssignStmt) {
	x := c.value(s.X)

	typ, ok := c.syms.Lookup(s.Name)
	if !ok {
		c.errorf(s, syntax.UnknownName, "undefined: %s", s.Name)
		s.SetType(types.Typ[types.Object])
		return
	}
	c.useGlobal(s.Name)
	if !types.AssignableTo(x, typ) {
		c.incompatible(s, x, typ, "assignment")
	}
	s.SetType(typ)
}

// forStmt checks for (v in x) { body }. The loop variable has the list's
// element type and is scoped to the body.
func (c *Checker) forStmt(s *syntax.ForStmt) {
	x := c.value(s.X)
	if !types.IsList(x) {
		c.errorf(s.X, syntax.IncompatibleTypes, "cannot range over %s (not a list)", x)
	}
	elem := types.ElemOf(x)
	s.SetType(elem)

	c.openScope("for")
	defer c.closeScope()

	c.syms.RegisterSymbol(s.Var, elem)
	c.stmts(s.Body)
}

// ifStmt checks an if statement and its else-if chain.
func (c *Checker) ifStmt(s *syntax.IfStmt) {
	if cond := c.value(s.Cond); !types.IsBoolean(cond) {
		c.errorf(s.Cond, syntax.IncompatibleTypes, "non-boolean condition (%s) in if statement", cond)
	}

	c.openScope("if then")
	c.stmts(s.Then)
	c.closeScope()

	switch {
	case s.ElseIf != nil:
		c.ifStmt(s.ElseIf)
	case s.Else != nil:
		c.openScope("if else")
		c.stmts(s.Else)
		c.closeScope()
	}
}

// funcDef checks a function body in a fresh scope holding its parameters,
// then checks return coverage for non-void functions.
func (c *Checker) funcDef(f *syntax.FuncDef) {
	c.fn = f
	defer func() { c.fn = nil }()

	c.openScope("function " + f.Name)
	for _, p := range f.Params {
		c.declare(p, p.Name, p.Type())
	}
	c.stmts(f.Body)
	c.closeScope()

	if !types.IsVoid(f.ResultType()) && !ReturnCovered(f.Body) {
		c.errorf(f, syntax.MissingReturnStatement, "missing return in function %s", f.Name)
	}
}

// returnStmt checks a return against its enclosing function's result type.
func (c *Checker) returnStmt(s *syntax.ReturnStmt) {
	var x types.Type
	if s.X != nil {
		x = c.value(s.X)
	}

	f := s.Func()
	if f == nil {
		c.errorf(s, syntax.InvalidReturnStatement, "return statement outside function")
		return
	}

	result := f.ResultType()
	switch {
	case s.X == nil && !types.IsVoid(result):
		c.errorf(s, syntax.IncompatibleTypes, "missing return value (want %s)", result)
	case s.X != nil && types.IsVoid(result):
		c.errorf(s, syntax.IncompatibleTypes, "unexpected return value in void function %s", f.Name)
	case s.X != nil && !types.AssignableTo(x, result):
		c.incompatible(s, x, result, "return statement")
	}
}

// ReturnCovered reports whether every path through stmts ends in a return.
// A list is covered if it contains a return, or an if statement whose then
// branch and every else-if/else branch are themselves covered. Loops never
// cover: their body may run zero times.
func ReturnCovered(stmts []syntax.Stmt) bool {
	for _, s := range stmts {
		switch s := s.(type) {
		case *syntax.ReturnStmt:
			return true
		case *syntax.IfStmt:
			if ifCovered(s) {
				return true
			}
		}
	}
	return false
}

func ifCovered(s *syntax.IfStmt) bool {
	if !ReturnCovered(s.Then) {
		return false
	}
	switch {
	case s.ElseIf != nil:
		return ifCovered(s.ElseIf)
	case s.Else != nil:
		return ReturnCovered(s.Else)
	}
	return false
}
