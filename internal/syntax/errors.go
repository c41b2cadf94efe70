package syntax

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies an error attached to a node.
type ErrorKind uint8

const (
	// Syntax errors, recorded by the parser.
	UnexpectedToken ErrorKind = iota
	UnterminatedArgList
	UnterminatedList
	UnterminatedBlock
	InvalidLiteral

	// Semantic errors, recorded by the checker.
	UnknownName
	DuplicateName
	IncompatibleTypes
	ArgMismatch
	InvalidReturnStatement
	MissingReturnStatement
)

var errorKindNames = [...]string{
	UnexpectedToken:        "unexpected token",
	UnterminatedArgList:    "unterminated argument list",
	UnterminatedList:       "unterminated list",
	UnterminatedBlock:      "unterminated block",
	InvalidLiteral:         "invalid literal",
	UnknownName:            "unknown name",
	DuplicateName:          "duplicate name",
	IncompatibleTypes:      "incompatible types",
	ArgMismatch:            "argument mismatch",
	InvalidReturnStatement: "invalid return statement",
	MissingReturnStatement: "missing return statement",
}

func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return fmt.Sprintf("ErrorKind(%d)", k)
}

// IsSyntax reports whether k is produced by the parser.
func (k ErrorKind) IsSyntax() bool {
	return k <= InvalidLiteral
}

// Error is a syntax or semantic error attached to a node.
type Error struct {
	Kind ErrorKind
	Pos  Pos
	Lit  string // offending token text, if any
	Msg  string
}

func (e *Error) Error() string {
	return e.Pos.String() + ": " + e.Msg
}

// ErrorList is the static-error result of a compilation: every error found
// in a tree, in source order.
type ErrorList []*Error

func (l ErrorList) Error() string {
	switch len(l) {
	case 0:
		return "no errors"
	case 1:
		return l[0].Error()
	}
	var b strings.Builder
	for i, e := range l {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(e.Error())
	}
	return b.String()
}

// Err returns l as an error, or nil if l is empty.
func (l ErrorList) Err() error {
	if len(l) == 0 {
		return nil
	}
	return l
}

// Count returns the number of errors of the given kind.
func (l ErrorList) Count(kind ErrorKind) int {
	n := 0
	for _, e := range l {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Errors collects every error attached to n and its descendants,
// sorted by position.
func Errors(n Node) ErrorList {
	var list ErrorList
	Inspect(n, func(n Node) bool {
		list = append(list, n.Errs()...)
		return true
	})
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Pos.Before(list[j].Pos)
	})
	return list
}

// HasErrors reports whether n or any descendant carries an error.
func HasErrors(n Node) bool {
	found := false
	Inspect(n, func(n Node) bool {
		if found {
			return false
		}
		found = len(n.Errs()) > 0
		return !found
	})
	return found
}
