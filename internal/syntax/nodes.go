package syntax

import "github.com/you-not-fish/catscript/internal/types"

// ----------------------------------------------------------------------------
// Interfaces
//
// There are 2 main classes of nodes: Expressions and Statements.
// All nodes implement the Node interface. Program and Param are nodes
// that are neither.

// Node is the interface implemented by all AST nodes.
type Node interface {
	Pos() Pos // position of first character belonging to the node
	End() Pos // position of first character immediately after the node

	// Parent returns the enclosing node, or nil for the root. The link
	// is non-owning and exists only for upward lookups.
	Parent() Node

	// Errs returns the errors attached to this node (not its children).
	Errs() []*Error

	// AddError appends an error to the node.
	AddError(err *Error)

	base() *node
	aNode() // marker method to restrict implementations to this package
}

// Expr is the interface for all expression nodes.
type Expr interface {
	Node

	// Type returns the type computed by the checker, or nil before
	// checking. Type literals carry their type from parsing.
	Type() types.Type
	SetType(t types.Type)

	aExpr()
}

// Stmt is the interface for all statement nodes.
type Stmt interface {
	Node
	aStmt()
}

// ----------------------------------------------------------------------------
// Base node types

// node is the base struct embedded in all AST nodes.
type node struct {
	pos    Pos
	end    Pos
	errs   []*Error
	parent Node
}

func (n *node) Pos() Pos            { return n.pos }
func (n *node) End() Pos            { return n.end }
func (n *node) Parent() Node        { return n.parent }
func (n *node) Errs() []*Error      { return n.errs }
func (n *node) AddError(err *Error) { n.errs = append(n.errs, err) }
func (n *node) base() *node         { return n }
func (*node) aNode()                {}

// typed holds a type recorded by the checker.
type typed struct {
	typ types.Type
}

func (t *typed) Type() types.Type       { return t.typ }
func (t *typed) SetType(typ types.Type) { t.typ = typ }

// expr is embedded in all expression nodes.
type expr struct {
	node
	typed
}

func (*expr) aExpr() {}

// stmt is embedded in all statement nodes.
type stmt struct{ node }

func (*stmt) aStmt() {}

// ----------------------------------------------------------------------------
// Program

// Program is the root of a parsed source. Exactly one of Expr and Stmts is
// used: Expr in expression mode, Stmts otherwise.
type Program struct {
	node
	Expr  Expr   // single expression (nil in statement mode)
	Stmts []Stmt // top-level statements
}

// IsExpression reports whether the program was parsed in expression mode.
func (p *Program) IsExpression() bool {
	return p.Expr != nil
}

// Funcs returns the top-level function definitions by name. When a name is
// defined twice the first definition wins.
func (p *Program) Funcs() map[string]*FuncDef {
	funcs := make(map[string]*FuncDef)
	for _, s := range p.Stmts {
		if fd, ok := s.(*FuncDef); ok {
			if _, dup := funcs[fd.Name]; !dup {
				funcs[fd.Name] = fd
			}
		}
	}
	return funcs
}

// ----------------------------------------------------------------------------
// Expressions

// IntLit represents an integer literal.
type IntLit struct {
	expr
	Value int32
	Lit   string // literal text
}

// StringLit represents a string literal.
type StringLit struct {
	expr
	Value string // decoded content
}

// BoolLit represents true or false.
type BoolLit struct {
	expr
	Value bool
}

// NullLit represents null.
type NullLit struct {
	expr
}

// Ident represents a variable reference.
type Ident struct {
	expr
	Name string
}

// UnaryExpr represents -X or not X.
type UnaryExpr struct {
	expr
	Op Token // Sub or Not
	X  Expr
}

// AdditiveExpr represents X + Y or X - Y.
type AdditiveExpr struct {
	expr
	Op   Token // Add or Sub
	X, Y Expr
}

// FactorExpr represents X * Y or X / Y.
type FactorExpr struct {
	expr
	Op   Token // Mul or Div
	X, Y Expr
}

// ComparisonExpr represents X < Y, X <= Y, X > Y or X >= Y.
type ComparisonExpr struct {
	expr
	Op   Token
	X, Y Expr
}

// EqualityExpr represents X == Y or X != Y.
type EqualityExpr struct {
	expr
	Op   Token // Eql or Neq
	X, Y Expr
}

// ParenExpr represents a parenthesized expression: (X)
type ParenExpr struct {
	expr
	X Expr
}

// ListLit represents a list literal: [Elems...]
type ListLit struct {
	expr
	Elems []Expr
}

// CallExpr represents a function call: Name(Args...)
type CallExpr struct {
	expr
	Name string
	Args []Expr
}

// TypeLit represents a type annotation. It denotes a type, not a value;
// its Type is set by the parser.
type TypeLit struct {
	expr
	Name string   // int, string, bool, object, list, or an unknown name
	Elem *TypeLit // element type for list<...>, nil otherwise
}

// BadExpr is a placeholder for an expression that could not be parsed.
type BadExpr struct {
	expr
	Tok Lexeme // offending token
}

// ----------------------------------------------------------------------------
// Statements

// PrintStmt represents print(X).
type PrintStmt struct {
	stmt
	X Expr
}

// VarStmt represents var Name [: TypeExpr] = X.
// Its Type is the declared type: the annotation if present, otherwise the
// type of X.
type VarStmt struct {
	stmt
	typed
	Name     string
	TypeExpr *TypeLit // explicit type (nil if inferred)
	X        Expr
}

// AssignStmt represents Name = X. Its Type is the type of the variable.
type AssignStmt struct {
	stmt
	typed
	Name string
	X    Expr
}

// ForStmt represents for (Var in X) { Body }. Its Type is the type of the
// loop variable.
type ForStmt struct {
	stmt
	typed
	Var  string
	X    Expr
	Body []Stmt
}

// IfStmt represents if (Cond) { Then } followed by an optional else-if
// chain or else block. At most one of ElseIf and Else is set.
type IfStmt struct {
	stmt
	Cond   Expr
	Then   []Stmt
	ElseIf *IfStmt
	Else   []Stmt
}

// HasElse reports whether the statement ends in an else branch of any form.
func (s *IfStmt) HasElse() bool {
	return s.ElseIf != nil || s.Else != nil
}

// Param is a function parameter. Its Type is the annotated type, or object
// when the annotation is omitted.
type Param struct {
	node
	typed
	Name     string
	TypeExpr *TypeLit // nil if omitted
}

// FuncDef represents function Name(Params) [: Result] { Body }.
type FuncDef struct {
	stmt
	Name   string
	Params []*Param
	Result *TypeLit // nil for void
	Body   []Stmt
}

// ResultType returns the declared result type, void if none was given.
func (f *FuncDef) ResultType() types.Type {
	if f.Result == nil || f.Result.Type() == nil {
		return types.Typ[types.Void]
	}
	return f.Result.Type()
}

// Signature builds the function's type from its parameters and result.
func (f *FuncDef) Signature() *types.Signature {
	params := make([]types.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.Type()
	}
	return types.NewSignature(params, f.ResultType())
}

// ReturnStmt represents return [X].
type ReturnStmt struct {
	stmt
	X Expr // nil for bare return
}

// Func returns the nearest enclosing function definition, or nil when the
// statement is not inside a function.
func (s *ReturnStmt) Func() *FuncDef {
	return EnclosingFunc(s)
}

// CallStmt is a function call used as a statement.
type CallStmt struct {
	stmt
	Call *CallExpr
}

// BadStmt is a placeholder for a statement that could not be parsed.
type BadStmt struct {
	stmt
	Tok Lexeme // offending token
}

// EnclosingFunc walks parent links upward from n and returns the first
// function definition found.
func EnclosingFunc(n Node) *FuncDef {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if fd, ok := p.(*FuncDef); ok {
			return fd
		}
	}
	return nil
}
