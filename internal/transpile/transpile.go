// Package transpile emits a validated CatScript tree as source text in
// another language. Emission is structure preserving: every node is written
// in place, parentheses appear only where the source had them, and no type
// or scope information is consulted.
package transpile

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/catscript/internal/syntax"
)

const indentUnit = "    "

// JavaScript returns prog as a standalone JavaScript program.
func JavaScript(prog *syntax.Program) (string, error) {
	return Transpile(prog, TargetJavaScript)
}

// CatScript returns prog as canonical CatScript source.
func CatScript(prog *syntax.Program) (string, error) {
	return Transpile(prog, TargetCatScript)
}

// Transpile returns prog written for target. Trees carrying errors are
// refused with their syntax.ErrorList.
func Transpile(prog *syntax.Program, target Target) (string, error) {
	if errs := syntax.Errors(prog); len(errs) > 0 {
		return "", errs
	}
	d, ok := dialects[target]
	if !ok {
		return "", fmt.Errorf("transpile: unknown target %v", target)
	}
	p := &printer{d: d}
	p.program(prog)
	if p.err != nil {
		return "", p.err
	}
	return p.buf.String(), nil
}

type printer struct {
	d      *dialect
	buf    strings.Builder
	indent int
	err    error
}

func (p *printer) line(format string, args ...interface{}) {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString(indentUnit)
	}
	fmt.Fprintf(&p.buf, format, args...)
	p.buf.WriteByte('\n')
}

func (p *printer) errorf(n syntax.Node, format string, args ...interface{}) {
	if p.err == nil {
		p.err = fmt.Errorf("%s: transpile: %s", n.Pos(), fmt.Sprintf(format, args...))
	}
}

func (p *printer) program(prog *syntax.Program) {
	p.buf.WriteString(p.d.prelude)
	if prog.IsExpression() {
		fmt.Fprintf(&p.buf, p.d.exprProg, p.expr(prog.Expr))
		return
	}
	p.stmts(prog.Stmts)
}

func (p *printer) stmts(list []syntax.Stmt) {
	for _, s := range list {
		p.stmt(s)
	}
}

func (p *printer) block(list []syntax.Stmt) {
	p.indent++
	p.stmts(list)
	p.indent--
}

func (p *printer) stmt(s syntax.Stmt) {
	semi := p.d.semi
	switch s := s.(type) {
	case *syntax.PrintStmt:
		p.line("print(%s)%s", p.expr(s.X), semi)

	case *syntax.VarStmt:
		typ := ""
		if p.d.annotate && s.TypeExpr != nil {
			typ = " : " + typeLit(s.TypeExpr)
		}
		p.line("%s %s%s = %s%s", p.d.decl, p.d.name(s.Name), typ, p.expr(s.X), semi)

	case *syntax.AssignStmt:
		p.line("%s = %s%s", p.d.name(s.Name), p.expr(s.X), semi)

	case *syntax.CallStmt:
		p.line("%s%s", p.expr(s.Call), semi)

	case *syntax.ReturnStmt:
		if s.X == nil {
			p.line("return%s", semi)
		} else {
			p.line("return %s%s", p.expr(s.X), semi)
		}

	case *syntax.ForStmt:
		p.line(p.d.forIn, p.d.name(s.Var), p.expr(s.X))
		p.block(s.Body)
		p.line("}")

	case *syntax.IfStmt:
		p.line("if (%s) {", p.expr(s.Cond))
		p.ifTail(s)

	case *syntax.FuncDef:
		params := make([]string, len(s.Params))
		for i, par := range s.Params {
			params[i] = p.d.name(par.Name)
			if p.d.annotate && par.TypeExpr != nil {
				params[i] += " : " + typeLit(par.TypeExpr)
			}
		}
		result := ""
		if p.d.annotate && s.Result != nil {
			result = " : " + typeLit(s.Result)
		}
		p.line("function %s(%s)%s {", p.d.name(s.Name), strings.Join(params, ", "), result)
		p.block(s.Body)
		p.line("}")

	default:
		p.errorf(s, "unexpected statement %s", syntax.KindOf(s))
	}
}

// ifTail writes the body of an if statement and its else chain, starting
// after the opening brace.
func (p *printer) ifTail(s *syntax.IfStmt) {
	p.block(s.Then)
	switch {
	case s.ElseIf != nil:
		p.line("} else if (%s) {", p.expr(s.ElseIf.Cond))
		p.ifTail(s.ElseIf)
	case s.Else != nil:
		p.line("} else {")
		p.block(s.Else)
		p.line("}")
	default:
		p.line("}")
	}
}

func (p *printer) expr(x syntax.Expr) string {
	switch x := x.(type) {
	case *syntax.IntLit:
		if x.Lit != "" {
			return x.Lit
		}
		return fmt.Sprint(x.Value)
	case *syntax.StringLit:
		return quote(x.Value)
	case *syntax.BoolLit:
		if x.Value {
			return "true"
		}
		return "false"
	case *syntax.NullLit:
		return "null"
	case *syntax.Ident:
		return p.d.name(x.Name)
	case *syntax.ParenExpr:
		return "(" + p.expr(x.X) + ")"

	case *syntax.UnaryExpr:
		op, ok := p.d.ops[x.Op]
		if !ok {
			op = x.Op.String()
		}
		operand := p.expr(x.X)
		if strings.HasPrefix(operand, "-") && strings.HasSuffix(op, "-") {
			op += " "
		}
		return op + operand

	case *syntax.AdditiveExpr:
		if p.d.add != nil {
			return p.d.add(x.Op.String(), p.expr(x.X), p.expr(x.Y))
		}
		return p.binary(x.Op, x.X, x.Y)
	case *syntax.FactorExpr:
		if x.Op == syntax.Div && p.d.div != nil {
			return p.d.div(p.expr(x.X), p.expr(x.Y))
		}
		return p.binary(x.Op, x.X, x.Y)
	case *syntax.ComparisonExpr:
		return p.binary(x.Op, x.X, x.Y)
	case *syntax.EqualityExpr:
		return p.binary(x.Op, x.X, x.Y)

	case *syntax.ListLit:
		return "[" + p.exprList(x.Elems) + "]"
	case *syntax.CallExpr:
		return p.d.name(x.Name) + "(" + p.exprList(x.Args) + ")"
	}
	p.errorf(x, "unexpected expression %s", syntax.KindOf(x))
	return ""
}

func (p *printer) binary(op syntax.Token, x, y syntax.Expr) string {
	name, ok := p.d.ops[op]
	if !ok {
		name = op.String()
	}
	return p.expr(x) + " " + name + " " + p.expr(y)
}

func (p *printer) exprList(list []syntax.Expr) string {
	parts := make([]string, len(list))
	for i, x := range list {
		parts[i] = p.expr(x)
	}
	return strings.Join(parts, ", ")
}

func typeLit(t *syntax.TypeLit) string {
	if t.Elem != nil {
		return t.Name + "<" + typeLit(t.Elem) + ">"
	}
	return t.Name
}

// quote writes s as a double-quoted literal using only the escapes both
// target languages share.
func quote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}
