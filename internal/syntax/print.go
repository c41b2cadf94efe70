package syntax

import (
	"fmt"
	"io"
	"strings"
)

// Fprint writes a textual representation of the AST to w.
// Types recorded by the checker are shown after a colon.
func Fprint(w io.Writer, node Node) {
	p := &printer{w: w}
	p.print(node)
}

type printer struct {
	w      io.Writer
	indent int
}

func (p *printer) printf(format string, args ...interface{}) {
	fmt.Fprintf(p.w, "%s%s", strings.Repeat("  ", p.indent), fmt.Sprintf(format, args...))
}

// header prints the node's name, position, type annotation, extra detail and
// attached errors.
func (p *printer) header(n Node, detail string) {
	line := KindOf(n) + " " + n.Pos().String()
	if detail != "" {
		line += " " + detail
	}
	if x, ok := n.(Expr); ok && x.Type() != nil {
		line += " : " + x.Type().String()
	}
	p.printf("%s\n", line)
	for _, e := range n.Errs() {
		p.printf("  ! %s: %s\n", e.Kind, e.Msg)
	}
}

func (p *printer) section(label string, stmts []Stmt) {
	p.printf("%s:\n", label)
	p.indent++
	for _, s := range stmts {
		p.print(s)
	}
	p.indent--
}

func (p *printer) sub(label string, n Node) {
	p.printf("%s:\n", label)
	p.indent++
	p.print(n)
	p.indent--
}

func (p *printer) print(node Node) {
	if node == nil {
		return
	}

	switch n := node.(type) {
	case *Program:
		p.header(n, "")
		p.indent++
		if n.Expr != nil {
			p.print(n.Expr)
		}
		for _, s := range n.Stmts {
			p.print(s)
		}
		p.indent--

	case *IntLit:
		p.header(n, n.Lit)
	case *StringLit:
		p.header(n, fmt.Sprintf("%q", n.Value))
	case *BoolLit:
		p.header(n, fmt.Sprint(n.Value))
	case *NullLit:
		p.header(n, "")
	case *Ident:
		p.header(n, n.Name)
	case *BadExpr:
		p.header(n, describe(n.Tok))
	case *TypeLit:
		p.header(n, n.Name)

	case *UnaryExpr:
		p.header(n, n.Op.String())
		p.indent++
		p.print(n.X)
		p.indent--
	case *AdditiveExpr:
		p.binary(n, n.Op, n.X, n.Y)
	case *FactorExpr:
		p.binary(n, n.Op, n.X, n.Y)
	case *ComparisonExpr:
		p.binary(n, n.Op, n.X, n.Y)
	case *EqualityExpr:
		p.binary(n, n.Op, n.X, n.Y)

	case *ParenExpr:
		p.header(n, "")
		p.indent++
		p.print(n.X)
		p.indent--

	case *ListLit:
		p.header(n, fmt.Sprintf("len=%d", len(n.Elems)))
		p.indent++
		for _, e := range n.Elems {
			p.print(e)
		}
		p.indent--

	case *CallExpr:
		p.header(n, n.Name)
		p.indent++
		for _, a := range n.Args {
			p.print(a)
		}
		p.indent--

	case *PrintStmt:
		p.header(n, "")
		p.indent++
		p.print(n.X)
		p.indent--

	case *VarStmt:
		detail := n.Name
		if n.Type() != nil {
			detail += " : " + n.Type().String()
		}
		p.header(n, detail)
		p.indent++
		p.print(n.X)
		p.indent--

	case *AssignStmt:
		p.header(n, n.Name)
		p.indent++
		p.print(n.X)
		p.indent--

	case *ForStmt:
		p.header(n, n.Var)
		p.indent++
		p.sub("In", n.X)
		p.section("Body", n.Body)
		p.indent--

	case *IfStmt:
		p.header(n, "")
		p.indent++
		p.sub("Cond", n.Cond)
		p.section("Then", n.Then)
		if n.ElseIf != nil {
			p.sub("ElseIf", n.ElseIf)
		}
		if n.Else != nil {
			p.section("Else", n.Else)
		}
		p.indent--

	case *FuncDef:
		p.header(n, n.Name+n.Signature().String())
		p.indent++
		p.section("Body", n.Body)
		p.indent--

	case *ReturnStmt:
		p.header(n, "")
		if n.X != nil {
			p.indent++
			p.print(n.X)
			p.indent--
		}

	case *CallStmt:
		p.header(n, "")
		p.indent++
		p.print(n.Call)
		p.indent--

	case *BadStmt:
		p.header(n, describe(n.Tok))

	default:
		p.printf("%T\n", n)
	}
}

func (p *printer) binary(n Node, op Token, x, y Expr) {
	p.header(n, op.String())
	p.indent++
	p.print(x)
	p.print(y)
	p.indent--
}

// KindOf returns the node's type name without package qualifier,
// e.g. "IfStmt".
func KindOf(n Node) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", n), "*syntax.")
}

// Kinds returns the kinds of all nodes in the tree rooted at n, in
// depth-first order.
func Kinds(n Node) []string {
	var kinds []string
	Inspect(n, func(n Node) bool {
		kinds = append(kinds, KindOf(n))
		return true
	})
	return kinds
}
