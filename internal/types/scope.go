package types

import (
	"fmt"
	"sort"
	"strings"
)

// Scope maps names to types for one syntactic block.
type Scope struct {
	elems   map[string]Type
	comment string // debugging comment (e.g., "function foo", "for")
}

// NewScope creates an empty scope.
func NewScope(comment string) *Scope {
	return &Scope{elems: make(map[string]Type), comment: comment}
}

// Lookup returns the type bound to name in this scope only.
func (s *Scope) Lookup(name string) (Type, bool) {
	t, ok := s.elems[name]
	return t, ok
}

// Insert binds name to t. If name is already bound in this scope,
// the binding is replaced and Insert reports true.
func (s *Scope) Insert(name string, t Type) (existed bool) {
	_, existed = s.elems[name]
	s.elems[name] = t
	return existed
}

// Names returns the names bound in the scope, sorted alphabetically.
func (s *Scope) Names() []string {
	names := make([]string, 0, len(s.elems))
	for name := range s.elems {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Comment returns the scope's comment (for debugging).
func (s *Scope) Comment() string {
	return s.comment
}

// SymbolTable is the stack of scopes consulted during validation, plus the
// table of function signatures. The outermost scope is the global scope and
// is never popped.
//
// Scopes are opened by function bodies, for-loop bodies and if/else blocks
// and closed by the same construct.
type SymbolTable struct {
	scopes []*Scope
	funcs  map[string]*Signature
}

// NewSymbolTable returns a table holding only the global scope.
func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		scopes: []*Scope{NewScope("global")},
		funcs:  make(map[string]*Signature),
	}
}

// PushScope opens a new innermost scope.
func (st *SymbolTable) PushScope(comment string) *Scope {
	s := NewScope(comment)
	st.scopes = append(st.scopes, s)
	return s
}

// PopScope closes the innermost scope. The global scope cannot be popped.
func (st *SymbolTable) PopScope() {
	if len(st.scopes) == 1 {
		panic("types: PopScope on global scope")
	}
	st.scopes = st.scopes[:len(st.scopes)-1]
}

// Depth returns the number of open scopes, including the global scope.
func (st *SymbolTable) Depth() int {
	return len(st.scopes)
}

// Innermost returns the current scope.
func (st *SymbolTable) Innermost() *Scope {
	return st.scopes[len(st.scopes)-1]
}

// RegisterSymbol binds name in the innermost scope and reports whether the
// name was already declared in that same scope.
func (st *SymbolTable) RegisterSymbol(name string, t Type) (duplicate bool) {
	return st.Innermost().Insert(name, t)
}

// Declared reports whether name is bound in the innermost scope.
func (st *SymbolTable) Declared(name string) bool {
	_, ok := st.Innermost().Lookup(name)
	return ok
}

// HasSymbol reports whether name is visible from the innermost scope.
func (st *SymbolTable) HasSymbol(name string) bool {
	_, ok := st.Lookup(name)
	return ok
}

// Lookup searches for name from the innermost scope outwards, so inner
// declarations shadow outer ones.
func (st *SymbolTable) Lookup(name string) (Type, bool) {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if t, ok := st.scopes[i].Lookup(name); ok {
			return t, true
		}
	}
	return nil, false
}

// ResolvesGlobal reports whether name, looked up from the innermost scope,
// binds to the global scope.
func (st *SymbolTable) ResolvesGlobal(name string) bool {
	for i := len(st.scopes) - 1; i >= 0; i-- {
		if _, ok := st.scopes[i].Lookup(name); ok {
			return i == 0
		}
	}
	return false
}

// RegisterFunction records a function signature and reports whether a
// function with that name was already registered.
func (st *SymbolTable) RegisterFunction(name string, sig *Signature) (duplicate bool) {
	_, duplicate = st.funcs[name]
	if !duplicate {
		st.funcs[name] = sig
	}
	return duplicate
}

// LookupFunction returns the signature registered for name.
func (st *SymbolTable) LookupFunction(name string) (*Signature, bool) {
	sig, ok := st.funcs[name]
	return sig, ok
}

// String returns a string representation of the open scopes for debugging.
func (st *SymbolTable) String() string {
	var buf strings.Builder
	for i, s := range st.scopes {
		prefix := strings.Repeat("  ", i)
		fmt.Fprintf(&buf, "%sscope %s {\n", prefix, s.comment)
		for _, name := range s.Names() {
			fmt.Fprintf(&buf, "%s  %s: %s\n", prefix, name, s.elems[name])
		}
	}
	for i := len(st.scopes) - 1; i >= 0; i-- {
		fmt.Fprintf(&buf, "%s}\n", strings.Repeat("  ", i))
	}
	return buf.String()
}
