package types

import "strings"

// List represents the parametric list<T> type.
type List struct {
	typ
	elem Type
}

// NewList returns a new list type with the given element type.
func NewList(elem Type) *List {
	return &List{elem: elem}
}

// Elem returns the element type of the list.
func (l *List) Elem() Type {
	return l.elem
}

// String implements Type.
func (l *List) String() string {
	if l.elem == nil {
		return "list<?>"
	}
	return "list<" + l.elem.String() + ">"
}

// Signature describes a function: ordered parameter types and a result.
// A nil result is never stored; functions without a declared result use void.
type Signature struct {
	params []Type
	result Type
}

// NewSignature creates a new function signature.
// If result is nil, the signature returns void.
func NewSignature(params []Type, result Type) *Signature {
	if result == nil {
		result = Typ[Void]
	}
	return &Signature{params: params, result: result}
}

// Params returns the parameter types.
func (s *Signature) Params() []Type {
	return s.params
}

// NumParams returns the number of parameters.
func (s *Signature) NumParams() int {
	return len(s.params)
}

// Param returns the i'th parameter type.
func (s *Signature) Param(i int) Type {
	return s.params[i]
}

// Result returns the result type.
func (s *Signature) Result() Type {
	return s.result
}

// String returns a human-readable representation of the signature.
func (s *Signature) String() string {
	var b strings.Builder
	b.WriteString("(")
	for i, p := range s.params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteString(") : ")
	b.WriteString(s.result.String())
	return b.String()
}
