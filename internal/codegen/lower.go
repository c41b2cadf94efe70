package codegen

import (
	"github.com/you-not-fish/catscript/internal/bytecode"
	"github.com/you-not-fish/catscript/internal/rtabi"
	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/types"
)

// ----------------------------------------------------------------------------
// Statements

func (g *generator) stmts(list []syntax.Stmt) {
	for _, s := range list {
		g.stmt(s)
	}
}

// block emits list in its own scope.
func (g *generator) block(list []syntax.Stmt) {
	g.e.push()
	g.stmts(list)
	g.e.pop()
}

func (g *generator) stmt(s syntax.Stmt) {
	m := g.e.m
	switch s := s.(type) {
	case *syntax.PrintStmt:
		m.EmitVar(bytecode.OpALoad, 0)
		g.expr(s.X)
		g.box(s.X.Type())
		g.invoke(rtabi.ProgramPrint)

	case *syntax.VarStmt:
		g.expr(s.X)
		g.coerce(s.X.Type(), s.Type())
		g.e.store(g.e.declare(s.Name, s.Type()))

	case *syntax.AssignStmt:
		if l, ok := g.e.lookup(s.Name); ok {
			g.expr(s.X)
			g.coerce(s.X.Type(), l.typ)
			g.e.store(l)
			return
		}
		gl, ok := g.globals[s.Name]
		if !ok {
			g.errorf(s, "unresolved variable %s", s.Name)
			return
		}
		m.EmitVar(bytecode.OpALoad, 0)
		g.expr(s.X)
		g.coerce(s.X.Type(), gl.typ)
		g.putField(gl)

	case *syntax.ForStmt:
		g.forStmt(s)

	case *syntax.IfStmt:
		g.ifStmt(s)

	case *syntax.ReturnStmt:
		g.returnStmt(s)

	case *syntax.CallStmt:
		g.call(s.Call)
		if !types.IsVoid(s.Call.Type()) {
			m.Emit(bytecode.OpPop)
		}

	case *syntax.FuncDef:
		g.errorf(s, "nested function %s", s.Name)

	default:
		g.errorf(s, "cannot compile %s", syntax.KindOf(s))
	}
}

// globalVar stores a top-level declaration into its field.
func (g *generator) globalVar(s *syntax.VarStmt) {
	gl := g.globals[s.Name]
	g.e.m.EmitVar(bytecode.OpALoad, 0)
	g.expr(s.X)
	g.coerce(s.X.Type(), gl.typ)
	g.putField(gl)
}

func (g *generator) putField(gl global) {
	g.e.m.EmitMember(bytecode.OpPutField, g.class.Name, gl.field.Name, gl.field.Desc)
}

func (g *generator) getField(gl global) {
	g.e.m.EmitVar(bytecode.OpALoad, 0)
	g.e.m.EmitMember(bytecode.OpGetField, g.class.Name, gl.field.Name, gl.field.Desc)
}

// forStmt iterates with List.iterator. The loop variable is unboxed from
// each element into its own slot.
//
//	    <list>; INVOKEINTERFACE iterator; ASTORE it
//	top:
//	    ALOAD it; INVOKEINTERFACE hasNext; IFEQ end
//	    ALOAD it; INVOKEINTERFACE next; <unbox>; STORE var
//	    <body>
//	    GOTO top
//	end:
func (g *generator) forStmt(s *syntax.ForStmt) {
	m := g.e.m
	top, end := m.NewLabel(), m.NewLabel()

	g.expr(s.X)
	g.invoke(rtabi.ListIterator)
	it := g.e.temp(types.Typ[types.Object])
	g.e.store(it)

	m.Mark(top)
	g.e.load(it)
	g.invoke(rtabi.IterHasNext)
	m.EmitJump(bytecode.OpIfEq, end)

	g.e.push()
	g.e.load(it)
	g.invoke(rtabi.IterNext)
	g.unbox(s.Type())
	g.e.store(g.e.declare(s.Var, s.Type()))
	g.stmts(s.Body)
	g.e.pop()

	m.EmitJump(bytecode.OpGoto, top)
	m.Mark(end)
}

// ifStmt emits
//
//	    <cond>; IFEQ else
//	    <then>; GOTO end
//	else:
//	    <else-if or else>
//	end:
func (g *generator) ifStmt(s *syntax.IfStmt) {
	m := g.e.m
	elseL := m.NewLabel()

	g.expr(s.Cond)
	m.EmitJump(bytecode.OpIfEq, elseL)
	g.block(s.Then)

	if !s.HasElse() {
		m.Mark(elseL)
		return
	}

	end := m.NewLabel()
	m.EmitJump(bytecode.OpGoto, end)
	m.Mark(elseL)
	if s.ElseIf != nil {
		g.ifStmt(s.ElseIf)
	} else {
		g.block(s.Else)
	}
	m.Mark(end)
}

// returnStmt boxes the value when the function returns a reference type.
func (g *generator) returnStmt(s *syntax.ReturnStmt) {
	m := g.e.m
	fn := g.e.fn
	if fn == nil {
		g.errorf(s, "return outside function")
		return
	}
	if s.X == nil {
		m.Emit(bytecode.OpReturn)
		return
	}

	result := fn.ResultType()
	g.expr(s.X)
	g.coerce(s.X.Type(), result)
	if types.IsPrimitive(result) {
		m.Emit(bytecode.OpIReturn)
	} else {
		m.Emit(bytecode.OpAReturn)
	}
}

// ----------------------------------------------------------------------------
// Expressions

func (g *generator) expr(e syntax.Expr) {
	m := g.e.m
	switch e := e.(type) {
	case *syntax.IntLit:
		m.EmitLdc(e.Value)

	case *syntax.StringLit:
		m.EmitLdc(e.Value)

	case *syntax.BoolLit:
		if e.Value {
			m.Emit(bytecode.OpIConst1)
		} else {
			m.Emit(bytecode.OpIConst0)
		}

	case *syntax.NullLit:
		m.Emit(bytecode.OpAConstNull)

	case *syntax.Ident:
		if l, ok := g.e.lookup(e.Name); ok {
			g.e.load(l)
			return
		}
		gl, ok := g.globals[e.Name]
		if !ok {
			g.errorf(e, "unresolved variable %s", e.Name)
			return
		}
		g.getField(gl)

	case *syntax.ParenExpr:
		g.expr(e.X)

	case *syntax.UnaryExpr:
		g.expr(e.X)
		if e.Op == syntax.Not {
			m.Emit(bytecode.OpIConst1)
			m.Emit(bytecode.OpIXor)
		} else {
			m.Emit(bytecode.OpINeg)
		}

	case *syntax.AdditiveExpr:
		g.additive(e)

	case *syntax.FactorExpr:
		g.expr(e.X)
		g.expr(e.Y)
		if e.Op == syntax.Mul {
			m.Emit(bytecode.OpIMul)
		} else {
			m.Emit(bytecode.OpIDiv)
		}

	case *syntax.ComparisonExpr:
		g.expr(e.X)
		g.toInt(e.X.Type())
		g.expr(e.Y)
		g.toInt(e.Y.Type())
		g.materialize(compareOps[e.Op])

	case *syntax.EqualityExpr:
		g.expr(e.X)
		g.box(e.X.Type())
		g.expr(e.Y)
		g.box(e.Y.Type())
		g.invoke(rtabi.ObjectsEquals)
		if e.Op == syntax.Eql {
			g.materialize(bytecode.OpIfNe)
		} else {
			g.materialize(bytecode.OpIfEq)
		}

	case *syntax.ListLit:
		g.listLit(e)

	case *syntax.CallExpr:
		g.call(e)

	default:
		g.errorf(e, "cannot compile %s", syntax.KindOf(e))
	}
}

// toInt unwraps a non-int operand of a comparison. Operands of any type
// may be compared; only ints succeed at run time.
func (g *generator) toInt(t types.Type) {
	if !types.IsInt(t) {
		g.box(t)
		g.unbox(types.Typ[types.Int])
	}
}

var compareOps = map[syntax.Token]bytecode.Op{
	syntax.Lss: bytecode.OpIfICmpLt,
	syntax.Leq: bytecode.OpIfICmpLe,
	syntax.Gtr: bytecode.OpIfICmpGt,
	syntax.Geq: bytecode.OpIfICmpGe,
}

// materialize turns a conditional jump into a 0/1 value:
//
//	    <jump> true
//	    ICONST_0; GOTO end
//	true:
//	    ICONST_1
//	end:
func (g *generator) materialize(jump bytecode.Op) {
	m := g.e.m
	pushTrue, end := m.NewLabel(), m.NewLabel()
	m.EmitJump(jump, pushTrue)
	m.Emit(bytecode.OpIConst0)
	m.EmitJump(bytecode.OpGoto, end)
	m.Mark(pushTrue)
	m.Emit(bytecode.OpIConst1)
	m.Mark(end)
}

// additive emits integer arithmetic, or string concatenation of both
// operands' textual forms when the result is a string.
func (g *generator) additive(e *syntax.AdditiveExpr) {
	m := g.e.m
	if types.IsString(e.Type()) {
		g.expr(e.X)
		g.box(e.X.Type())
		g.invoke(rtabi.StringValueOf)
		g.expr(e.Y)
		g.box(e.Y.Type())
		g.invoke(rtabi.StringValueOf)
		g.invoke(rtabi.StringConcat)
		return
	}
	g.expr(e.X)
	g.expr(e.Y)
	if e.Op == syntax.Add {
		m.Emit(bytecode.OpIAdd)
	} else {
		m.Emit(bytecode.OpISub)
	}
}

// listLit allocates an ArrayList and appends each boxed element, leaving
// only the list on the stack.
func (g *generator) listLit(e *syntax.ListLit) {
	m := g.e.m
	m.EmitType(bytecode.OpNew, rtabi.ClassArrayList)
	m.Emit(bytecode.OpDup)
	g.invoke(rtabi.ArrayListInit)
	for _, x := range e.Elems {
		m.Emit(bytecode.OpDup)
		g.expr(x)
		g.box(x.Type())
		g.invoke(rtabi.ArrayListAdd)
		m.Emit(bytecode.OpPop)
	}
}

// call invokes a user function on this, converting each argument to its
// parameter's representation.
func (g *generator) call(e *syntax.CallExpr) {
	fd, ok := g.funcs[e.Name]
	if !ok {
		g.errorf(e, "unresolved function %s", e.Name)
		return
	}
	m := g.e.m
	m.EmitVar(bytecode.OpALoad, 0)
	for i, a := range e.Args {
		g.expr(a)
		g.coerce(a.Type(), fd.Params[i].Type())
	}
	m.EmitMember(bytecode.OpInvokeVirtual, g.class.Name, methodName(fd.Name), methodDesc(fd))
}
