package vm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/you-not-fish/catscript/internal/bytecode"
)

// Value is a VM value. Primitives on the operand stack and in locals are
// int32 (ints, and bools as 0 or 1). References are nil, string, Integer,
// bool (a boxed Boolean), *List, *Iterator or *Object.
type Value interface{}

// Integer is a boxed int.
type Integer int32

// List is an ArrayList.
type List struct {
	Elems []Value
}

// Iterator walks a List.
type Iterator struct {
	list *List
	next int
}

// Object is an instance of a compiled class.
type Object struct {
	Class  *bytecode.Class
	Fields map[string]Value
}

// Format returns the textual form of v, as String.valueOf would.
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
	case Integer:
		b.WriteString(strconv.FormatInt(int64(v), 10))
	case bool:
		b.WriteString(strconv.FormatBool(v))
	case string:
		b.WriteString(v)
	case *List:
		b.WriteByte('[')
		for i, e := range v.Elems {
			if i > 0 {
				b.WriteString(", ")
			}
			format(b, e)
		}
		b.WriteByte(']')
	case *Object:
		fmt.Fprintf(b, "%s@%p", v.Class.Name, v)
	default:
		fmt.Fprintf(b, "%T", v)
	}
}

// Equals reports whether a and b are equal as Objects.equals would:
// boxed values and strings by value, lists element by element, and other
// objects by identity.
func Equals(a, b Value) bool {
	switch a := a.(type) {
	case nil:
		return b == nil
	case *List:
		bl, ok := b.(*List)
		if !ok || len(a.Elems) != len(bl.Elems) {
			return false
		}
		for i := range a.Elems {
			if !Equals(a.Elems[i], bl.Elems[i]) {
				return false
			}
		}
		return true
	}
	return a == b
}

// className returns the internal class name of a reference value.
func className(v Value) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case Integer:
		return "java/lang/Integer"
	case bool:
		return "java/lang/Boolean"
	case string:
		return "java/lang/String"
	case *List:
		return "java/util/ArrayList"
	case *Iterator:
		return "java/util/Iterator"
	case *Object:
		return v.Class.Name
	case int32:
		return "int"
	}
	return fmt.Sprintf("%T", v)
}
