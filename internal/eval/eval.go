// Package eval implements a tree-walking interpreter for validated
// CatScript programs.
package eval

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/you-not-fish/catscript/internal/syntax"
)

// DefaultMaxDepth is the call depth limit used when Config.MaxDepth is zero.
const DefaultMaxDepth = 10000

// Config configures an Interpreter.
type Config struct {
	Stdout   io.Writer    // print output; os.Stdout if nil
	Logger   *slog.Logger // debug tracing; discarded if nil
	MaxSteps int64        // statement budget; 0 means unlimited
	MaxDepth int          // call depth limit; DefaultMaxDepth if 0
}

// Interpreter evaluates programs. Globals persist across calls to Run, so
// an interactive session can declare a variable in one line and use it in
// the next.
type Interpreter struct {
	conf  Config
	log   *slog.Logger
	env   *Env
	funcs map[string]*syntax.FuncDef

	steps int64
	depth int
}

// New returns an interpreter with an empty global scope.
func New(conf *Config) *Interpreter {
	var c Config
	if conf != nil {
		c = *conf
	}
	if c.Stdout == nil {
		c.Stdout = os.Stdout
	}
	if c.MaxDepth == 0 {
		c.MaxDepth = DefaultMaxDepth
	}
	log := c.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Interpreter{
		conf:  c,
		log:   log,
		env:   NewEnv(),
		funcs: make(map[string]*syntax.FuncDef),
	}
}

// Globals returns the interpreter's environment.
func (in *Interpreter) Globals() *Env { return in.env }

// Run evaluates prog. In expression mode the value of the expression is
// returned; otherwise the statements are executed and the result is nil.
//
// A tree carrying syntax or semantic errors is refused with a
// syntax.ErrorList. Faults during execution are returned as *RuntimeError.
func (in *Interpreter) Run(prog *syntax.Program) (Value, error) {
	if errs := syntax.Errors(prog); len(errs) > 0 {
		return nil, errs
	}
	in.steps = 0

	if prog.IsExpression() {
		in.log.Debug("evaluate expression", "pos", prog.Pos())
		return in.expr(prog.Expr)
	}

	for name, fd := range prog.Funcs() {
		in.funcs[name] = fd
	}
	in.log.Debug("execute program", "stmts", len(prog.Stmts), "funcs", len(in.funcs))

	out, err := in.stmts(prog.Stmts)
	if err != nil {
		return nil, err
	}
	in.log.Debug("program finished", "steps", in.steps, "returned", out.returned)
	return nil, nil
}

// outcome is the result of executing a statement: either normal
// completion, or a return carrying its value up to the invoking call.
type outcome struct {
	returned bool
	value    Value
}

var normal = outcome{}

// stmts executes a statement list, stopping at the first return.
func (in *Interpreter) stmts(list []syntax.Stmt) (outcome, error) {
	for _, s := range list {
		out, err := in.stmt(s)
		if err != nil || out.returned {
			return out, err
		}
	}
	return normal, nil
}

// block executes a statement list in a fresh scope.
func (in *Interpreter) block(list []syntax.Stmt) (outcome, error) {
	in.env.Push()
	defer in.env.Pop()
	return in.stmts(list)
}

// stmt executes a single statement.
func (in *Interpreter) stmt(s syntax.Stmt) (outcome, error) {
	if in.conf.MaxSteps > 0 {
		in.steps++
		if in.steps > in.conf.MaxSteps {
			return normal, runtimeErrorf(s, "step limit of %d exceeded", in.conf.MaxSteps)
		}
	}

	switch s := s.(type) {
	case *syntax.PrintStmt:
		v, err := in.expr(s.X)
		if err != nil {
			return normal, err
		}
		if _, err := fmt.Fprintln(in.conf.Stdout, Format(v)); err != nil {
			return normal, fmt.Errorf("print: %w", err)
		}

	case *syntax.VarStmt:
		v, err := in.expr(s.X)
		if err != nil {
			return normal, err
		}
		in.env.Declare(s.Name, v)

	case *syntax.AssignStmt:
		v, err := in.expr(s.X)
		if err != nil {
			return normal, err
		}
		if !in.env.Assign(s.Name, v) {
			return normal, runtimeErrorf(s, "assignment to undefined variable %s", s.Name)
		}

	case *syntax.ForStmt:
		return in.forStmt(s)

	case *syntax.IfStmt:
		return in.ifStmt(s)

	case *syntax.FuncDef:
		// Registered by Run.

	case *syntax.ReturnStmt:
		var v Value
		if s.X != nil {
			var err error
			if v, err = in.expr(s.X); err != nil {
				return normal, err
			}
		}
		return outcome{returned: true, value: v}, nil

	case *syntax.CallStmt:
		if _, err := in.call(s.Call); err != nil {
			return normal, err
		}

	default:
		return normal, runtimeErrorf(s, "cannot execute %s", syntax.KindOf(s))
	}
	return normal, nil
}

// forStmt binds the loop variable to each element in a scope of its own
// per iteration.
func (in *Interpreter) forStmt(s *syntax.ForStmt) (outcome, error) {
	v, err := in.expr(s.X)
	if err != nil {
		return normal, err
	}
	l, ok := v.(*List)
	if !ok {
		return normal, runtimeErrorf(s.X, "cannot iterate over %s", TypeName(v))
	}

	for _, elem := range l.Elems {
		in.env.Push()
		in.env.Declare(s.Var, elem)
		out, err := in.stmts(s.Body)
		in.env.Pop()
		if err != nil || out.returned {
			return out, err
		}
	}
	return normal, nil
}

func (in *Interpreter) ifStmt(s *syntax.IfStmt) (outcome, error) {
	cond, err := in.boolean(s.Cond)
	if err != nil {
		return normal, err
	}
	switch {
	case cond:
		return in.block(s.Then)
	case s.ElseIf != nil:
		return in.ifStmt(s.ElseIf)
	case s.Else != nil:
		return in.block(s.Else)
	}
	return normal, nil
}

// call invokes a user function. The callee runs in a frame that sees the
// global scope and its own parameters; the caller's environment is
// restored on every exit path.
func (in *Interpreter) call(e *syntax.CallExpr) (Value, error) {
	fd, ok := in.funcs[e.Name]
	if !ok {
		return nil, runtimeErrorf(e, "call of undefined function %s", e.Name)
	}
	if len(e.Args) != len(fd.Params) {
		return nil, runtimeErrorf(e, "%s expects %d arguments, got %d", e.Name, len(fd.Params), len(e.Args))
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.expr(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	if in.depth >= in.conf.MaxDepth {
		return nil, runtimeErrorf(e, "stack overflow calling %s (depth %d)", e.Name, in.depth)
	}
	in.depth++
	saved := in.env
	in.env = saved.newFrame()
	defer func() {
		in.env = saved
		in.depth--
	}()

	for i, p := range fd.Params {
		in.env.Declare(p.Name, args[i])
	}
	out, err := in.stmts(fd.Body)
	if err != nil {
		return nil, err
	}
	return out.value, nil
}
