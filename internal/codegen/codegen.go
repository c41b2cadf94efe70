// Package codegen lowers validated CatScript programs to stack-machine
// bytecode.
//
// Top-level variables become fields of the program class, every other
// variable a local slot of its method. Functions become instance methods
// whose descriptors follow their declared types; top-level statements form
// execute()V, and an expression program forms evaluate(), which returns
// the boxed value. Ints and bools stay unboxed on the operand stack and
// are boxed only where a reference is required.
package codegen

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/you-not-fish/catscript/internal/bytecode"
	"github.com/you-not-fish/catscript/internal/rtabi"
	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/types"
)

// Config configures code generation.
type Config struct {
	ClassName string       // internal class name; rtabi.DefaultClassName if empty
	Logger    *slog.Logger // debug tracing; discarded if nil
}

// generator holds state for compiling one program.
type generator struct {
	class   *bytecode.Class
	log     *slog.Logger
	globals map[string]global
	funcs   map[string]*syntax.FuncDef
	e       *emitter // current method
	err     error    // first error
}

// global is a top-level variable stored in a field of the program object.
type global struct {
	field *bytecode.Field
	typ   types.Type
}

// Compile lowers prog to a verified class. A tree carrying errors is
// refused with its syntax.ErrorList.
func Compile(prog *syntax.Program, conf *Config) (*bytecode.Class, error) {
	if errs := syntax.Errors(prog); len(errs) > 0 {
		return nil, errs
	}
	if conf == nil {
		conf = &Config{}
	}
	name := conf.ClassName
	if name == "" {
		name = rtabi.DefaultClassName
	}
	log := conf.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	g := &generator{
		class:   bytecode.NewClass(name, rtabi.ProgramBase),
		log:     log,
		globals: make(map[string]global),
		funcs:   prog.Funcs(),
	}
	g.program(prog)
	if g.err != nil {
		return nil, g.err
	}
	if err := bytecode.Verify(g.class); err != nil {
		return nil, fmt.Errorf("codegen: %w", err)
	}
	for _, m := range g.class.Methods {
		g.log.Debug("method", "class", name, "name", m.Name, "desc", m.Desc,
			"insts", len(m.Code), "stack", m.MaxStack, "locals", m.MaxLocals)
	}
	return g.class, nil
}

// errorf records an internal error on n. Only the first is kept.
func (g *generator) errorf(n syntax.Node, format string, args ...interface{}) {
	if g.err == nil {
		g.err = fmt.Errorf("%s: codegen: %s", n.Pos(), fmt.Sprintf(format, args...))
	}
}

// program emits the constructor, the entry method and one method per
// function definition.
func (g *generator) program(prog *syntax.Program) {
	g.constructor()

	if prog.IsExpression() {
		g.e = newEmitter(g.class.AddMethod(rtabi.Evaluate, rtabi.EvaluateDesc), nil)
		g.expr(prog.Expr)
		g.box(prog.Expr.Type())
		g.e.m.Emit(bytecode.OpAReturn)
		return
	}

	// Fields first, so functions can refer to any global.
	for _, s := range prog.Stmts {
		if vs, ok := s.(*syntax.VarStmt); ok {
			g.globals[vs.Name] = global{
				field: g.class.AddField(vs.Name, descriptor(vs.Type())),
				typ:   vs.Type(),
			}
		}
	}

	g.e = newEmitter(g.class.AddMethod(rtabi.Execute, rtabi.ExecuteDesc), nil)
	for _, s := range prog.Stmts {
		switch s := s.(type) {
		case *syntax.FuncDef:
			// Emitted below.
		case *syntax.VarStmt:
			g.globalVar(s)
		default:
			g.stmt(s)
		}
	}
	g.e.m.Emit(bytecode.OpReturn)

	for _, s := range prog.Stmts {
		if fd, ok := s.(*syntax.FuncDef); ok && g.funcs[fd.Name] == fd {
			g.funcDef(fd)
		}
	}
}

// constructor emits <init>, which only calls the program base's.
func (g *generator) constructor() {
	m := g.class.AddMethod(rtabi.Init, "()V")
	m.EmitVar(bytecode.OpALoad, 0)
	g.invokeOn(m, rtabi.ProgramInit)
	m.Emit(bytecode.OpReturn)
}

// funcDef emits a user function as an instance method. Parameters occupy
// slots 1..n in order.
func (g *generator) funcDef(fd *syntax.FuncDef) {
	g.e = newEmitter(g.class.AddMethod(methodName(fd.Name), methodDesc(fd)), fd)
	for _, p := range fd.Params {
		g.e.declare(p.Name, p.Type())
	}
	g.stmts(fd.Body)
	if types.IsVoid(fd.ResultType()) {
		g.e.m.Emit(bytecode.OpReturn)
	}
}

// methodName maps a function name to its method name, steering clear of
// the names the program class already uses.
func methodName(name string) string {
	switch name {
	case rtabi.Init, rtabi.Execute, rtabi.Evaluate, rtabi.ProgramPrint.Name:
		return name + "$"
	}
	return name
}
