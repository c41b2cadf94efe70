package types2

import (
	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/types"
)

// expr checks an expression, records its type on the node and returns it.
// Children are always checked before the node itself.
func (c *Checker) expr(e syntax.Expr) types.Type {
	typ := c.exprInternal(e)
	e.SetType(typ)
	return typ
}

// value is like expr but additionally requires e to produce a value.
// A void call yields object so that callers do not report again.
func (c *Checker) value(e syntax.Expr) types.Type {
	typ := c.expr(e)
	if types.IsVoid(typ) {
		c.errorf(e, syntax.IncompatibleTypes, "void function call used as value")
		return types.Typ[types.Object]
	}
	return typ
}

// exprInternal is the main expression checking function.
func (c *Checker) exprInternal(e syntax.Expr) types.Type {
	switch e := e.(type) {
	case *syntax.IntLit:
		return types.Typ[types.Int]
	case *syntax.StringLit:
		return types.Typ[types.String]
	case *syntax.BoolLit:
		return types.Typ[types.Boolean]
	case *syntax.NullLit:
		return types.Typ[types.Null]
	case *syntax.Ident:
		return c.ident(e)
	case *syntax.UnaryExpr:
		return c.unary(e)
	case *syntax.AdditiveExpr:
		return c.additive(e)
	case *syntax.FactorExpr:
		return c.factor(e)
	case *syntax.ComparisonExpr:
		c.value(e.X)
		c.value(e.Y)
		return types.Typ[types.Boolean]
	case *syntax.EqualityExpr:
		c.value(e.X)
		c.value(e.Y)
		return types.Typ[types.Boolean]
	case *syntax.ParenExpr:
		return c.value(e.X)
	case *syntax.ListLit:
		return c.listLit(e)
	case *syntax.CallExpr:
		return c.call(e)
	case *syntax.TypeLit:
		if e.Type() != nil {
			return e.Type()
		}
		return types.Typ[types.Object]
	case *syntax.BadExpr:
		// The parser has already reported it.
		return types.Typ[types.Object]
	}
	c.errorf(e, syntax.UnexpectedToken, "unexpected expression %s", syntax.KindOf(e))
	return types.Typ[types.Object]
}

// ident resolves a variable reference.
func (c *Checker) ident(e *syntax.Ident) types.Type {
	typ, ok := c.syms.Lookup(e.Name)
	if !ok {
		c.errorf(e, syntax.UnknownName, "undefined: %s", e.Name)
		return types.Typ[types.Object]
	}
	c.useGlobal(e.Name)
	return typ
}

// unary checks -x (int) and not x (bool).
func (c *Checker) unary(e *syntax.UnaryExpr) types.Type {
	x := c.value(e.X)
	if e.Op == syntax.Not {
		if !types.IsBoolean(x) {
			c.incompatible(e.X, x, "bool", "not")
		}
		return types.Typ[types.Boolean]
	}
	if !types.IsInt(x) {
		c.incompatible(e.X, x, "int", "negation")
	}
	return types.Typ[types.Int]
}

// additive checks x + y and x - y. The result is string if either operand
// is a string; otherwise both operands must be int.
func (c *Checker) additive(e *syntax.AdditiveExpr) types.Type {
	x := c.value(e.X)
	y := c.value(e.Y)
	if types.IsString(x) || types.IsString(y) {
		if e.Op == syntax.Sub {
			c.errorf(e, syntax.IncompatibleTypes, "operator - not defined on string")
		}
		return types.Typ[types.String]
	}
	if !types.IsInt(x) {
		c.incompatible(e.X, x, "int", "operator "+e.Op.String())
	}
	if !types.IsInt(y) {
		c.incompatible(e.Y, y, "int", "operator "+e.Op.String())
	}
	return types.Typ[types.Int]
}

// factor checks x * y and x / y; both operands must be int.
func (c *Checker) factor(e *syntax.FactorExpr) types.Type {
	x := c.value(e.X)
	y := c.value(e.Y)
	if !types.IsInt(x) {
		c.incompatible(e.X, x, "int", "operator "+e.Op.String())
	}
	if !types.IsInt(y) {
		c.incompatible(e.Y, y, "int", "operator "+e.Op.String())
	}
	return types.Typ[types.Int]
}

// listLit infers list<T> from the first element. Every later element whose
// type differs is reported on the literal; the inferred type is unchanged.
func (c *Checker) listLit(e *syntax.ListLit) types.Type {
	if len(e.Elems) == 0 {
		return types.NewList(types.Typ[types.Object])
	}
	elem := c.value(e.Elems[0])
	for _, x := range e.Elems[1:] {
		if t := c.value(x); !types.Identical(t, elem) {
			c.errorf(e, syntax.IncompatibleTypes, "list element of type %s in list<%s>", t, elem)
		}
	}
	return types.NewList(elem)
}
