package types

// Identical reports whether x and y are identical types.
func Identical(x, y Type) bool {
	if x == y {
		return true
	}
	if x == nil || y == nil {
		return false
	}
	switch x := x.(type) {
	case *Basic:
		if y, ok := y.(*Basic); ok {
			return x.kind == y.kind
		}
	case *List:
		if y, ok := y.(*List); ok {
			return Identical(x.elem, y.elem)
		}
	}
	return false
}

// AssignableTo reports whether a value of type V is assignable to type T.
//
// Every type is assignable to object, null is assignable to any
// non-primitive type, and list<A> is assignable to list<B> only if A is
// assignable to B. Otherwise the types must be identical.
func AssignableTo(V, T Type) bool {
	if V == nil || T == nil {
		return false
	}
	if Identical(V, T) {
		return true
	}
	if isKind(T, Object) {
		return true
	}
	if isKind(V, Null) {
		return !IsPrimitive(T) && !isKind(T, Void)
	}
	if vl, ok := V.(*List); ok {
		if tl, ok := T.(*List); ok {
			return AssignableTo(vl.elem, tl.elem)
		}
	}
	return false
}

// isKind reports whether T is the basic type of the given kind.
func isKind(T Type, kind BasicKind) bool {
	b, ok := T.(*Basic)
	return ok && b.kind == kind
}

// IsPrimitive reports whether values of T are kept unboxed by the bytecode
// backend (int and bool).
func IsPrimitive(T Type) bool {
	return isKind(T, Int) || isKind(T, Boolean)
}

// IsInt reports whether T is int.
func IsInt(T Type) bool { return isKind(T, Int) }

// IsString reports whether T is string.
func IsString(T Type) bool { return isKind(T, String) }

// IsBoolean reports whether T is bool.
func IsBoolean(T Type) bool { return isKind(T, Boolean) }

// IsObject reports whether T is object.
func IsObject(T Type) bool { return isKind(T, Object) }

// IsNull reports whether T is the null type.
func IsNull(T Type) bool { return isKind(T, Null) }

// IsVoid reports whether T is void.
func IsVoid(T Type) bool { return isKind(T, Void) }

// IsList reports whether T is a list type.
func IsList(T Type) bool {
	_, ok := T.(*List)
	return ok
}

// ElemOf returns the element type of a list type, or object for any
// other type.
func ElemOf(T Type) Type {
	if l, ok := T.(*List); ok && l.elem != nil {
		return l.elem
	}
	return Typ[Object]
}
