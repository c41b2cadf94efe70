package driver

import (
	"strings"

	"github.com/you-not-fish/catscript/internal/eval"
	"github.com/you-not-fish/catscript/internal/syntax"
)

const sessionFile = "<repl>"

// Session is an interactive evaluation context. Each input is validated
// together with every earlier accepted input, so declarations carry over
// from one line to the next; only the new statements are executed.
type Session struct {
	d       *Driver
	in      *eval.Interpreter
	history []string
	lines   uint32 // lines in history
	stmts   int    // top-level statements already executed
}

// NewSession returns an empty session printing to the driver's stdout.
func (d *Driver) NewSession() *Session {
	return &Session{
		d:  d,
		in: eval.New(d.evalConfig()),
	}
}

// Eval validates and runs one input. A bare expression other than a call
// is printed. Static errors are returned as a syntax.ErrorList positioned
// relative to the input.
func (s *Session) Eval(input string) error {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	if isValueExpr(input) {
		input = "print(" + input + ")"
	}

	src := strings.Join(append(s.history[:len(s.history):len(s.history)], input), "\n")
	prog, err := s.d.Compile(sessionFile, strings.NewReader(src))
	if err != nil {
		if list, ok := err.(syntax.ErrorList); ok {
			return s.rebase(list)
		}
		return err
	}

	if prog.IsExpression() {
		// A lone call with no history parses as an expression program.
		s.accept(input)
		_, err := s.in.Run(prog)
		return err
	}

	fresh := &syntax.Program{Stmts: prog.Stmts[s.stmts:]}
	s.stmts = len(prog.Stmts)
	s.accept(input)
	_, err = s.in.Run(fresh)
	return err
}

func (s *Session) accept(input string) {
	s.history = append(s.history, input)
	s.lines += uint32(strings.Count(input, "\n")) + 1
}

func (s *Session) rebase(list syntax.ErrorList) syntax.ErrorList {
	out := make(syntax.ErrorList, 0, len(list))
	for _, e := range list {
		line := e.Pos.Line()
		if line > s.lines {
			line -= s.lines
		}
		c := *e
		c.Pos = syntax.NewPos(sessionFile, line, e.Pos.Col())
		out = append(out, &c)
	}
	return out
}

// isValueExpr reports whether input is a single well-formed expression
// whose value should be shown.
func isValueExpr(input string) bool {
	prog := syntax.NewParser(sessionFile, strings.NewReader(input), nil).ParseExpression()
	if syntax.HasErrors(prog) {
		return false
	}
	_, call := prog.Expr.(*syntax.CallExpr)
	return !call
}
