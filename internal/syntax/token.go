// Package syntax implements lexical and syntactic analysis for CatScript:
// the scanner, the rewindable token list, the AST node model and the
// recursive-descent parser.
package syntax

import "fmt"

// Token represents the type of a lexical token.
type Token uint

const (
	// Special tokens
	_EOF   Token = iota // end of file
	_Error              // unrecognized character

	// Literals
	_Name   // identifier: foo, list, int
	_Int    // integer literal: 42
	_String // string literal: "hello"

	// Operators
	_Assign // =
	_Eql    // ==
	_Neq    // !=
	_Lss    // <
	_Leq    // <=
	_Gtr    // >
	_Geq    // >=
	_Add    // +
	_Sub    // -
	_Mul    // *
	_Div    // /

	// Delimiters
	_Lparen // (
	_Rparen // )
	_Lbrack // [
	_Rbrack // ]
	_Lbrace // {
	_Rbrace // }
	_Comma  // ,
	_Colon  // :

	// Keywords
	_Else
	_False
	_For
	_Function
	_If
	_In
	_Not
	_Null
	_Print
	_Return
	_True
	_Var

	tokenCount
)

// tokenNames maps tokens to their string representation.
var tokenNames = [...]string{
	_EOF:   "EOF",
	_Error: "ERROR",

	_Name:   "NAME",
	_Int:    "INT",
	_String: "STRING",

	_Assign: "=",
	_Eql:    "==",
	_Neq:    "!=",
	_Lss:    "<",
	_Leq:    "<=",
	_Gtr:    ">",
	_Geq:    ">=",
	_Add:    "+",
	_Sub:    "-",
	_Mul:    "*",
	_Div:    "/",

	_Lparen: "(",
	_Rparen: ")",
	_Lbrack: "[",
	_Rbrack: "]",
	_Lbrace: "{",
	_Rbrace: "}",
	_Comma:  ",",
	_Colon:  ":",

	_Else:     "else",
	_False:    "false",
	_For:      "for",
	_Function: "function",
	_If:       "if",
	_In:       "in",
	_Not:      "not",
	_Null:     "null",
	_Print:    "print",
	_Return:   "return",
	_True:     "true",
	_Var:      "var",
}

// String returns the string representation of the token.
func (t Token) String() string {
	if t < tokenCount {
		return tokenNames[t]
	}
	return fmt.Sprintf("token(%d)", t)
}

// Precedence returns the binding strength of a binary operator.
// Returns 0 for non-operators.
// Precedence levels (higher = binds tighter):
//
//	1: == !=
//	2: < <= > >=
//	3: + -
//	4: * /
func (t Token) Precedence() int {
	switch t {
	case _Eql, _Neq:
		return 1
	case _Lss, _Leq, _Gtr, _Geq:
		return 2
	case _Add, _Sub:
		return 3
	case _Mul, _Div:
		return 4
	}
	return 0
}

// IsKeyword reports whether t is a keyword token.
func (t Token) IsKeyword() bool {
	return t >= _Else && t <= _Var
}

// IsLiteral reports whether t is an integer or string literal token.
func (t Token) IsLiteral() bool {
	return t == _Int || t == _String
}

// IsOperator reports whether t is an operator token.
func (t Token) IsOperator() bool {
	return t >= _Assign && t <= _Div
}

// IsEOF reports whether t is the EOF token.
func (t Token) IsEOF() bool {
	return t == _EOF
}

// Exported tokens for use by the checker and the backends.
const (
	EOF Token = _EOF

	Add Token = _Add // +
	Sub Token = _Sub // -
	Mul Token = _Mul // *
	Div Token = _Div // /
	Eql Token = _Eql // ==
	Neq Token = _Neq // !=
	Lss Token = _Lss // <
	Leq Token = _Leq // <=
	Gtr Token = _Gtr // >
	Geq Token = _Geq // >=
	Not Token = _Not // not
)

// keywords maps keyword strings to their token type.
// Type names (int, string, bool, object, list) are not keywords; they are
// scanned as _Name and resolved by the parser in type position.
var keywords = map[string]Token{
	"else":     _Else,
	"false":    _False,
	"for":      _For,
	"function": _Function,
	"if":       _If,
	"in":       _In,
	"not":      _Not,
	"null":     _Null,
	"print":    _Print,
	"return":   _Return,
	"true":     _True,
	"var":      _Var,
}

// LookupKeyword returns the token for the given identifier string.
// If the identifier is a keyword, returns the keyword token.
// Otherwise, returns _Name.
func LookupKeyword(ident string) Token {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return _Name
}
