package syntax

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/you-not-fish/catscript/internal/types"
)

// An ErrorHandler is called for each error recorded in a parsed tree.
type ErrorHandler func(err *Error)

// Parser performs syntax analysis on CatScript source code.
//
// The parser never aborts: every syntax error is attached to the node being
// built and parsing continues, so the result is always a complete tree.
type Parser struct {
	tokens   *TokenList
	filename string

	// Error handling
	errh    ErrorHandler
	errcnt  int
	first   error    // first error encountered
	lexErrs []*Error // malformed literals reported by the scanner
}

// NewParser creates a new Parser for the given source.
// The errh function, if non-nil, is called for each syntax error once the
// tree is complete.
func NewParser(filename string, src io.Reader, errh ErrorHandler) *Parser {
	p := &Parser{filename: filename, errh: errh}
	p.tokens = Tokenize(filename, src, func(line, col uint32, msg string) {
		p.lexErrs = append(p.lexErrs, &Error{
			Kind: InvalidLiteral,
			Pos:  NewPos(filename, line, col),
			Msg:  msg,
		})
	})
	return p
}

// Parse parses src as a program. See Parser.Parse.
func Parse(filename string, src io.Reader, errh ErrorHandler) *Program {
	return NewParser(filename, src, errh).Parse()
}

// ParseString parses src as a program without a file name.
func ParseString(src string) *Program {
	return Parse("", strings.NewReader(src), nil)
}

// Errors returns the number of errors reported by the last parse.
func (p *Parser) Errors() int {
	return p.errcnt
}

// FirstError returns the first error of the last parse, or nil if none.
func (p *Parser) FirstError() error {
	return p.first
}

// Tokens returns the parser's token list.
func (p *Parser) Tokens() *TokenList {
	return p.tokens
}

// ----------------------------------------------------------------------------
// Parsing entry points

// Parse parses the whole input. It first tries to read the input as a single
// expression; if that leaves tokens unconsumed, or nothing resembling an
// expression was found, it rewinds and parses a sequence of statements.
func (p *Parser) Parse() *Program {
	prog := &Program{}
	start := p.tokens.Current()

	x := p.expr()
	if _, bad := x.(*BadExpr); bad || p.tokens.HasMoreTokens() {
		p.tokens.Reset()
		for p.tokens.HasMoreTokens() {
			prog.Stmts = append(prog.Stmts, p.programStmt())
		}
	} else {
		prog.Expr = x
	}

	p.finish(prog, start)
	return p.done(prog)
}

// ParseExpression parses the whole input as a single expression.
// Trailing tokens are reported as unexpected.
func (p *Parser) ParseExpression() *Program {
	prog := &Program{}
	start := p.tokens.Current()
	prog.Expr = p.expr()
	if p.tokens.HasMoreTokens() {
		p.error(prog, UnexpectedToken, p.tokens.Current(), "expected end of expression")
	}
	p.finish(prog, start)
	return p.done(prog)
}

// done attaches scanner errors to the program and reports every error in
// the tree to the error handler.
func (p *Parser) done(prog *Program) *Program {
	for _, e := range p.lexErrs {
		prog.AddError(e)
	}
	p.errcnt = 0
	p.first = nil
	for _, e := range Errors(prog) {
		if p.errcnt == 0 {
			p.first = e
		}
		p.errcnt++
		if p.errh != nil {
			p.errh(e)
		}
	}
	return prog
}

// ----------------------------------------------------------------------------
// Helper methods

// error attaches a syntax error about lexeme lx to n.
func (p *Parser) error(n Node, kind ErrorKind, lx Lexeme, msg string) {
	n.AddError(&Error{Kind: kind, Pos: lx.Pos, Lit: lx.Lit, Msg: msg})
}

// want consumes the current token if it is tok. Otherwise it records an
// unexpected-token error on n and returns the current token without
// consuming it, so the caller can carry on as if it had been present.
func (p *Parser) want(tok Token, n Node) Lexeme {
	if p.tokens.Match(tok) {
		return p.tokens.Consume()
	}
	cur := p.tokens.Current()
	p.error(n, UnexpectedToken, cur, fmt.Sprintf("expected %s, found %s", tok, describe(cur)))
	return cur
}

// finish sets the span of n from start to the last consumed token and
// links the children of n back to it.
func (p *Parser) finish(n Node, start Lexeme) {
	p.finishAt(n, start.Pos)
}

func (p *Parser) finishAt(n Node, pos Pos) {
	b := n.base()
	b.pos = pos
	b.end = p.tokens.Previous().End
	if b.end.Before(pos) {
		b.end = pos
	}
	for _, c := range children(n) {
		c.base().parent = n
	}
}

// describe returns a short description of lx for error messages.
func describe(lx Lexeme) string {
	switch lx.Tok {
	case _EOF:
		return "end of input"
	case _Name, _Int, _Error:
		return fmt.Sprintf("%q", lx.Lit)
	case _String:
		return "string literal"
	}
	return fmt.Sprintf("'%s'", lx.Tok)
}

// ----------------------------------------------------------------------------
// Statements

// programStmt parses a top-level statement: a function definition or any
// ordinary statement.
func (p *Parser) programStmt() Stmt {
	if p.tokens.Match(_Function) {
		return p.funcDef()
	}
	return p.stmt()
}

// stmt parses an ordinary statement. Anything that cannot start a statement
// becomes a BadStmt that consumes exactly one token.
func (p *Parser) stmt() Stmt {
	switch {
	case p.tokens.Match(_For):
		return p.forStmt()
	case p.tokens.Match(_If):
		return p.ifStmt()
	case p.tokens.Match(_Print):
		return p.printStmt()
	case p.tokens.Match(_Var):
		return p.varStmt()
	case p.tokens.Match(_Name):
		return p.assignOrCall()
	case p.tokens.Match(_Return):
		return p.returnStmt()
	}

	lx := p.tokens.Consume()
	s := &BadStmt{Tok: lx}
	p.error(s, UnexpectedToken, lx, fmt.Sprintf("unexpected %s, expected statement", describe(lx)))
	p.finish(s, lx)
	return s
}

// block parses { stmts } for owner. If the input ends before the closing
// brace an unterminated-block error is recorded on owner and ok is false.
func (p *Parser) block(owner Node) (stmts []Stmt, ok bool) {
	p.want(_Lbrace, owner)
	stmts = []Stmt{}
	for !p.tokens.Match(_Rbrace) {
		if !p.tokens.HasMoreTokens() {
			p.error(owner, UnterminatedBlock, p.tokens.Current(), "unterminated block, expected '}'")
			return stmts, false
		}
		stmts = append(stmts, p.stmt())
	}
	p.tokens.Consume()
	return stmts, true
}

// forStmt parses: for (name in expr) { stmts }
func (p *Parser) forStmt() *ForStmt {
	s := &ForStmt{}
	start := p.tokens.Consume()

	p.want(_Lparen, s)
	s.Var = p.want(_Name, s).Lit
	p.want(_In, s)
	s.X = p.expr()
	p.want(_Rparen, s)
	s.Body, _ = p.block(s)

	p.finish(s, start)
	return s
}

// ifStmt parses: if (expr) { stmts } [else if ... | else { stmts }]
func (p *Parser) ifStmt() *IfStmt {
	s := &IfStmt{}
	start := p.tokens.Consume()

	p.want(_Lparen, s)
	s.Cond = p.expr()
	p.want(_Rparen, s)

	var ok bool
	if s.Then, ok = p.block(s); ok && p.tokens.MatchAndConsume(_Else) {
		if p.tokens.Match(_If) {
			s.ElseIf = p.ifStmt()
		} else {
			s.Else, _ = p.block(s)
		}
	}

	p.finish(s, start)
	return s
}

// printStmt parses: print(expr)
func (p *Parser) printStmt() *PrintStmt {
	s := &PrintStmt{}
	start := p.tokens.Consume()

	p.want(_Lparen, s)
	s.X = p.expr()
	p.want(_Rparen, s)

	p.finish(s, start)
	return s
}

// varStmt parses: var name [: type] = expr
func (p *Parser) varStmt() *VarStmt {
	s := &VarStmt{}
	start := p.tokens.Consume()

	s.Name = p.want(_Name, s).Lit
	if p.tokens.MatchAndConsume(_Colon) {
		s.TypeExpr = p.typeLit()
	}
	p.want(_Assign, s)
	s.X = p.expr()

	p.finish(s, start)
	return s
}

// assignOrCall parses either name(args) or name = expr.
func (p *Parser) assignOrCall() Stmt {
	id := p.tokens.Consume()
	if p.tokens.Match(_Lparen) {
		s := &CallStmt{Call: p.call(id)}
		p.finish(s, id)
		return s
	}

	s := &AssignStmt{Name: id.Lit}
	p.want(_Assign, s)
	s.X = p.expr()
	p.finish(s, id)
	return s
}

// returnStmt parses: return [expr]
func (p *Parser) returnStmt() *ReturnStmt {
	s := &ReturnStmt{}
	start := p.tokens.Consume()
	if !p.tokens.Match(_Rbrace, _EOF) {
		s.X = p.expr()
	}
	p.finish(s, start)
	return s
}

// funcDef parses: function name(params) [: type] { stmts }
func (p *Parser) funcDef() *FuncDef {
	f := &FuncDef{}
	start := p.tokens.Consume()

	f.Name = p.want(_Name, f).Lit
	p.want(_Lparen, f)
	if !p.tokens.Match(_Rparen) {
		for {
			f.Params = append(f.Params, p.param(f))
			if !p.tokens.MatchAndConsume(_Comma) {
				break
			}
		}
	}
	p.want(_Rparen, f)
	if p.tokens.MatchAndConsume(_Colon) {
		f.Result = p.typeLit()
	}
	f.Body, _ = p.block(f)

	p.finish(f, start)
	return f
}

// param parses: name [: type]
func (p *Parser) param(f *FuncDef) *Param {
	start := p.tokens.Current()
	par := &Param{Name: p.want(_Name, f).Lit}
	if p.tokens.MatchAndConsume(_Colon) {
		par.TypeExpr = p.typeLit()
		par.SetType(par.TypeExpr.Type())
	} else {
		par.SetType(types.Typ[types.Object])
	}
	p.finish(par, start)
	return par
}

// typeLit parses a type annotation: int, string, bool, object, list or
// list<type>. A bare list denotes object. Unknown names are errors and
// denote object.
func (p *Parser) typeLit() *TypeLit {
	t := &TypeLit{}
	start := p.tokens.Current()
	if !p.tokens.Match(_Name) {
		p.error(t, UnexpectedToken, start, fmt.Sprintf("expected type, found %s", describe(start)))
		t.SetType(types.Typ[types.Object])
		p.finishAt(t, start.Pos)
		return t
	}

	t.Name = p.tokens.Consume().Lit
	switch typ, ok := types.LookupTypeName(t.Name); {
	case ok:
		t.SetType(typ)
	case t.Name == "list":
		if p.tokens.MatchAndConsume(_Lss) {
			t.Elem = p.typeLit()
			p.want(_Gtr, t)
			t.SetType(types.NewList(t.Elem.Type()))
		} else {
			t.SetType(types.Typ[types.Object])
		}
	default:
		p.error(t, UnexpectedToken, start, fmt.Sprintf("unknown type %s", t.Name))
		t.SetType(types.Typ[types.Object])
	}

	p.finish(t, start)
	return t
}

// ----------------------------------------------------------------------------
// Expressions
//
// Precedence climbing, loosest to tightest:
//
//	equality    == !=
//	comparison  < <= > >=
//	additive    + -
//	factor      * /
//	unary       - not
//	primary

// expr parses an expression.
func (p *Parser) expr() Expr {
	return p.equality()
}

func (p *Parser) equality() Expr {
	x := p.comparison()
	for p.tokens.Match(_Eql, _Neq) {
		op := p.tokens.Consume().Tok
		e := &EqualityExpr{Op: op, X: x, Y: p.comparison()}
		p.finishAt(e, x.Pos())
		x = e
	}
	return x
}

func (p *Parser) comparison() Expr {
	x := p.additive()
	for p.tokens.Match(_Lss, _Leq, _Gtr, _Geq) {
		op := p.tokens.Consume().Tok
		e := &ComparisonExpr{Op: op, X: x, Y: p.additive()}
		p.finishAt(e, x.Pos())
		x = e
	}
	return x
}

func (p *Parser) additive() Expr {
	x := p.factor()
	for p.tokens.Match(_Add, _Sub) {
		op := p.tokens.Consume().Tok
		e := &AdditiveExpr{Op: op, X: x, Y: p.factor()}
		p.finishAt(e, x.Pos())
		x = e
	}
	return x
}

func (p *Parser) factor() Expr {
	x := p.unary()
	for p.tokens.Match(_Mul, _Div) {
		op := p.tokens.Consume().Tok
		e := &FactorExpr{Op: op, X: x, Y: p.unary()}
		p.finishAt(e, x.Pos())
		x = e
	}
	return x
}

// unary is right-associative: - - x is -(-x).
func (p *Parser) unary() Expr {
	if p.tokens.Match(_Sub, _Not) {
		start := p.tokens.Consume()
		e := &UnaryExpr{Op: start.Tok, X: p.unary()}
		p.finish(e, start)
		return e
	}
	return p.primary()
}

func (p *Parser) primary() Expr {
	start := p.tokens.Current()
	switch start.Tok {
	case _Int:
		p.tokens.Consume()
		x := &IntLit{Lit: start.Lit}
		v, err := strconv.ParseInt(start.Lit, 10, 32)
		if err != nil {
			p.error(x, InvalidLiteral, start, fmt.Sprintf("integer literal %s out of range", start.Lit))
		}
		x.Value = int32(v)
		p.finish(x, start)
		return x

	case _String:
		p.tokens.Consume()
		x := &StringLit{Value: start.Lit}
		p.finish(x, start)
		return x

	case _True, _False:
		p.tokens.Consume()
		x := &BoolLit{Value: start.Tok == _True}
		p.finish(x, start)
		return x

	case _Null:
		p.tokens.Consume()
		x := &NullLit{}
		p.finish(x, start)
		return x

	case _Name:
		p.tokens.Consume()
		if p.tokens.Match(_Lparen) {
			return p.call(start)
		}
		x := &Ident{Name: start.Lit}
		p.finish(x, start)
		return x

	case _Lparen:
		p.tokens.Consume()
		x := &ParenExpr{}
		x.X = p.expr()
		p.want(_Rparen, x)
		p.finish(x, start)
		return x

	case _Lbrack:
		return p.listLit()
	}

	lx := p.tokens.Consume()
	x := &BadExpr{Tok: lx}
	p.error(x, UnexpectedToken, lx, fmt.Sprintf("unexpected %s, expected expression", describe(lx)))
	p.finish(x, lx)
	return x
}

// listLit parses: [ [expr {, expr}] ]
func (p *Parser) listLit() *ListLit {
	x := &ListLit{}
	start := p.tokens.Consume()
	x.Elems = p.exprList(x, _Rbrack)
	if p.tokens.Match(_EOF) {
		p.error(x, UnterminatedList, p.tokens.Current(), "unterminated list, expected ']'")
	} else {
		p.want(_Rbrack, x)
	}
	p.finish(x, start)
	return x
}

// call parses the argument list of a call to name; the current token is '('.
func (p *Parser) call(name Lexeme) *CallExpr {
	x := &CallExpr{Name: name.Lit}
	p.tokens.Consume()
	x.Args = p.exprList(x, _Rparen)
	if p.tokens.Match(_EOF) {
		p.error(x, UnterminatedArgList, p.tokens.Current(), "unterminated argument list, expected ')'")
	} else {
		p.want(_Rparen, x)
	}
	p.finish(x, name)
	return x
}

// exprList parses comma-separated expressions up to (not including) close
// or the end of input. Missing commas are recorded on owner.
func (p *Parser) exprList(owner Node, close Token) []Expr {
	var list []Expr
	if p.tokens.Match(close) {
		return list
	}
	list = append(list, p.expr())
	for !p.tokens.Match(close, _EOF) {
		p.want(_Comma, owner)
		list = append(list, p.expr())
	}
	return list
}
