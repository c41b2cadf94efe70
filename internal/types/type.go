// Package types implements the CatScript type system: the closed set of value
// types, the assignability relation between them, and the scoped symbol table
// used during validation. This package has no AST dependencies.
package types

// Type is the interface implemented by all types.
type Type interface {
	// String returns the CatScript spelling of the type.
	String() string

	// aType is a marker method to restrict implementations to this package.
	aType()
}

// typ is a base struct for all type implementations.
type typ struct{}

func (typ) aType() {}
