package types

// predeclared maps the type names accepted in type annotations to their
// types. "list" is parametric and resolved by the parser.
var predeclared = map[string]Type{
	"int":    Typ[Int],
	"string": Typ[String],
	"bool":   Typ[Boolean],
	"object": Typ[Object],
}

// LookupTypeName returns the predeclared type with the given name.
func LookupTypeName(name string) (Type, bool) {
	t, ok := predeclared[name]
	return t, ok
}
