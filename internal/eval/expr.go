package eval

import (
	"github.com/you-not-fish/catscript/internal/syntax"
)

// expr evaluates an expression.
func (in *Interpreter) expr(e syntax.Expr) (Value, error) {
	switch e := e.(type) {
	case *syntax.IntLit:
		return e.Value, nil
	case *syntax.StringLit:
		return e.Value, nil
	case *syntax.BoolLit:
		return e.Value, nil
	case *syntax.NullLit:
		return nil, nil

	case *syntax.Ident:
		v, ok := in.env.Get(e.Name)
		if !ok {
			return nil, runtimeErrorf(e, "undefined variable %s", e.Name)
		}
		return v, nil

	case *syntax.ParenExpr:
		return in.expr(e.X)

	case *syntax.UnaryExpr:
		if e.Op == syntax.Not {
			b, err := in.boolean(e.X)
			return !b, err
		}
		x, err := in.integer(e.X)
		return -x, err

	case *syntax.AdditiveExpr:
		return in.additive(e)

	case *syntax.FactorExpr:
		x, err := in.integer(e.X)
		if err != nil {
			return nil, err
		}
		y, err := in.integer(e.Y)
		if err != nil {
			return nil, err
		}
		if e.Op == syntax.Mul {
			return x * y, nil
		}
		if y == 0 {
			return nil, runtimeErrorf(e, "integer divide by zero")
		}
		return x / y, nil

	case *syntax.ComparisonExpr:
		x, err := in.integer(e.X)
		if err != nil {
			return nil, err
		}
		y, err := in.integer(e.Y)
		if err != nil {
			return nil, err
		}
		switch e.Op {
		case syntax.Lss:
			return x < y, nil
		case syntax.Leq:
			return x <= y, nil
		case syntax.Gtr:
			return x > y, nil
		}
		return x >= y, nil

	case *syntax.EqualityExpr:
		x, err := in.expr(e.X)
		if err != nil {
			return nil, err
		}
		y, err := in.expr(e.Y)
		if err != nil {
			return nil, err
		}
		eq := Equal(x, y)
		if e.Op == syntax.Neq {
			return !eq, nil
		}
		return eq, nil

	case *syntax.ListLit:
		elems := make([]Value, len(e.Elems))
		for i, x := range e.Elems {
			v, err := in.expr(x)
			if err != nil {
				return nil, err
			}
			elems[i] = v
		}
		return NewList(elems...), nil

	case *syntax.CallExpr:
		return in.call(e)
	}
	return nil, runtimeErrorf(e, "cannot evaluate %s", syntax.KindOf(e))
}

// additive evaluates + and -. When either operand is a string the result
// is the concatenation of both operands' textual forms.
func (in *Interpreter) additive(e *syntax.AdditiveExpr) (Value, error) {
	x, err := in.expr(e.X)
	if err != nil {
		return nil, err
	}
	y, err := in.expr(e.Y)
	if err != nil {
		return nil, err
	}

	_, xs := x.(string)
	_, ys := y.(string)
	if xs || ys {
		return Format(x) + Format(y), nil
	}

	xi, ok := x.(int32)
	if !ok {
		return nil, runtimeErrorf(e.X, "operator %s on %s", e.Op, TypeName(x))
	}
	yi, ok := y.(int32)
	if !ok {
		return nil, runtimeErrorf(e.Y, "operator %s on %s", e.Op, TypeName(y))
	}
	if e.Op == syntax.Sub {
		return xi - yi, nil
	}
	return xi + yi, nil
}

// integer evaluates e and requires an int result.
func (in *Interpreter) integer(e syntax.Expr) (int32, error) {
	v, err := in.expr(e)
	if err != nil {
		return 0, err
	}
	i, ok := v.(int32)
	if !ok {
		return 0, runtimeErrorf(e, "expected int, found %s", TypeName(v))
	}
	return i, nil
}

// boolean evaluates e and requires a bool result.
func (in *Interpreter) boolean(e syntax.Expr) (bool, error) {
	v, err := in.expr(e)
	if err != nil {
		return false, err
	}
	b, ok := v.(bool)
	if !ok {
		return false, runtimeErrorf(e, "expected bool, found %s", TypeName(v))
	}
	return b, nil
}
