package types

// BasicKind describes the kind of basic type.
type BasicKind int

const (
	Invalid BasicKind = iota // invalid type

	Int
	String
	Boolean
	Object
	Null
	Void
)

// Basic represents one of the non-parametric types.
type Basic struct {
	typ
	kind BasicKind
	name string
}

// Kind returns the kind of the basic type.
func (b *Basic) Kind() BasicKind {
	return b.kind
}

// Name returns the name of the basic type.
func (b *Basic) Name() string {
	return b.name
}

// String implements Type.
func (b *Basic) String() string {
	return b.name
}

// Typ holds the predeclared basic types, indexed by BasicKind.
// Typ[Invalid] is nil, representing an invalid type.
var Typ = []*Basic{
	Invalid: nil,
	Int:     {kind: Int, name: "int"},
	String:  {kind: String, name: "string"},
	Boolean: {kind: Boolean, name: "bool"},
	Object:  {kind: Object, name: "object"},
	Null:    {kind: Null, name: "null"},
	Void:    {kind: Void, name: "void"},
}
