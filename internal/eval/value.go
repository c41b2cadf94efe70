package eval

import (
	"strconv"
	"strings"
)

// Value is a CatScript runtime value. The dynamic type is one of int32,
// string, bool, *List, or nil for null (and for the result of a void call).
type Value interface{}

// List is a mutable list value. Lists are reference values: two list
// literals with the same elements are distinct lists.
type List struct {
	Elems []Value
}

// NewList returns a list holding elems.
func NewList(elems ...Value) *List {
	return &List{Elems: elems}
}

// Len returns the number of elements.
func (l *List) Len() int { return len(l.Elems) }

// Format returns the textual form of v used by print and string
// concatenation: decimal ints, raw strings, true/false, null, and
// [a, b, c] for lists.
func Format(v Value) string {
	var b strings.Builder
	format(&b, v)
	return b.String()
}

func format(b *strings.Builder, v Value) {
	switch v := v.(type) {
	case nil:
		b.WriteString("null")
	case int32:
		b.WriteString(strconv.FormatInt(int64(v), 10))
	case string:
		b.WriteString(v)
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case *List:
		b.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, e)
		}
		b.WriteByte(']')
	default:
		b.WriteString("?")
	}
}

// Equal reports whether x and y are the same value. Ints, bools and
// strings compare by value; lists compare by reference.
func Equal(x, y Value) bool {
	return x == y
}

// TypeName returns the CatScript name of v's dynamic type.
func TypeName(v Value) string {
	switch v.(type) {
	case nil:
		return "null"
	case int32:
		return "int"
	case string:
		return "string"
	case bool:
		return "bool"
	case *List:
		return "list"
	}
	return "object"
}
