package codegen

import (
	"github.com/you-not-fish/catscript/internal/bytecode"
	"github.com/you-not-fish/catscript/internal/rtabi"
	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/types"
)

// emitter tracks the method being emitted: its code and its local slots.
type emitter struct {
	m      *bytecode.Method
	fn     *syntax.FuncDef // nil for execute and evaluate
	scopes []map[string]local
	next   int // next free slot; 0 is this
}

// local is a variable held in a local slot.
type local struct {
	slot int
	typ  types.Type
}

func newEmitter(m *bytecode.Method, fn *syntax.FuncDef) *emitter {
	return &emitter{
		m:      m,
		fn:     fn,
		scopes: []map[string]local{{}},
		next:   1,
	}
}

// push opens a block scope.
func (e *emitter) push() {
	e.scopes = append(e.scopes, map[string]local{})
}

// pop closes the innermost block scope. Its slots are not reused.
func (e *emitter) pop() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// declare allocates a slot for name in the innermost scope.
func (e *emitter) declare(name string, typ types.Type) local {
	l := e.temp(typ)
	e.scopes[len(e.scopes)-1][name] = l
	return l
}

// temp allocates an unnamed slot.
func (e *emitter) temp(typ types.Type) local {
	l := local{slot: e.next, typ: typ}
	e.next++
	return l
}

// lookup resolves name from the innermost scope outward.
func (e *emitter) lookup(name string) (local, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if l, ok := e.scopes[i][name]; ok {
			return l, true
		}
	}
	return local{}, false
}

// load pushes the value of l.
func (e *emitter) load(l local) {
	if types.IsPrimitive(l.typ) {
		e.m.EmitVar(bytecode.OpILoad, l.slot)
	} else {
		e.m.EmitVar(bytecode.OpALoad, l.slot)
	}
}

// store pops into l.
func (e *emitter) store(l local) {
	if types.IsPrimitive(l.typ) {
		e.m.EmitVar(bytecode.OpIStore, l.slot)
	} else {
		e.m.EmitVar(bytecode.OpAStore, l.slot)
	}
}

// invoke emits a call of a host method on the current method.
func (g *generator) invoke(h rtabi.HostMethod) {
	g.invokeOn(g.e.m, h)
}

func (g *generator) invokeOn(m *bytecode.Method, h rtabi.HostMethod) {
	var op bytecode.Op
	switch h.Kind {
	case rtabi.Static:
		op = bytecode.OpInvokeStatic
	case rtabi.Special:
		op = bytecode.OpInvokeSpecial
	case rtabi.Interface:
		op = bytecode.OpInvokeInterface
	default:
		op = bytecode.OpInvokeVirtual
	}
	m.EmitMember(op, h.Owner, h.Name, h.Desc)
}
