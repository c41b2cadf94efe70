package codegen

import (
	"github.com/you-not-fish/catscript/internal/bytecode"
	"github.com/you-not-fish/catscript/internal/rtabi"
	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/types"
)

// descriptor maps a CatScript type to its field descriptor.
func descriptor(t types.Type) string {
	switch {
	case types.IsInt(t):
		return rtabi.DescInt
	case types.IsBoolean(t):
		return rtabi.DescBoolean
	case types.IsString(t):
		return rtabi.DescString
	case types.IsList(t):
		return rtabi.DescList
	case types.IsVoid(t):
		return rtabi.DescVoid
	}
	return rtabi.DescObject // object and null
}

// methodDesc returns the method descriptor of a function definition.
func methodDesc(fd *syntax.FuncDef) string {
	params := make([]string, len(fd.Params))
	for i, p := range fd.Params {
		params[i] = descriptor(p.Type())
	}
	return rtabi.MethodDesc(descriptor(fd.ResultType()), params...)
}

// box converts a primitive of type t on the stack to its wrapper object.
// Reference types are left unchanged.
func (g *generator) box(t types.Type) {
	switch {
	case types.IsInt(t):
		g.invoke(rtabi.IntegerValueOf)
	case types.IsBoolean(t):
		g.invoke(rtabi.BooleanValueOf)
	}
}

// unbox converts an object on the stack to the representation of t:
// a checked unwrap for primitives, a checked cast for strings and lists.
func (g *generator) unbox(t types.Type) {
	m := g.e.m
	switch {
	case types.IsInt(t):
		m.EmitType(bytecode.OpCheckCast, rtabi.ClassInteger)
		g.invoke(rtabi.IntValue)
	case types.IsBoolean(t):
		m.EmitType(bytecode.OpCheckCast, rtabi.ClassBoolean)
		g.invoke(rtabi.BooleanValue)
	case types.IsString(t):
		m.EmitType(bytecode.OpCheckCast, rtabi.ClassString)
	case types.IsList(t):
		m.EmitType(bytecode.OpCheckCast, rtabi.ClassList)
	}
}

// coerce converts a value of type from on the stack for storage into a
// location of type to. Assignability guarantees the only conversion ever
// needed is boxing.
func (g *generator) coerce(from, to types.Type) {
	if types.IsPrimitive(from) && !types.IsPrimitive(to) {
		g.box(from)
	}
}
