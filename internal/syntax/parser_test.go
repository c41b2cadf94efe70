package syntax

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"strings"
	"testing"
)

// ----------------------------------------------------------------------------
// Test helpers

func parse(t *testing.T, src string) *Program {
	t.Helper()
	prog := Parse("test.cat", strings.NewReader(src), nil)
	if prog == nil {
		t.Fatal("Parse returned nil")
	}
	return prog
}

// parseClean parses src and fails the test on any syntax error.
func parseClean(t *testing.T, src string) *Program {
	t.Helper()
	prog := parse(t, src)
	if errs := Errors(prog); len(errs) > 0 {
		t.Fatalf("unexpected errors parsing %q:\n%v", src, errs)
	}
	return prog
}

// sexpr renders an expression fully parenthesized.
func sexpr(e Expr) string {
	switch e := e.(type) {
	case *IntLit:
		return e.Lit
	case *StringLit:
		return `"` + e.Value + `"`
	case *BoolLit:
		if e.Value {
			return "true"
		}
		return "false"
	case *NullLit:
		return "null"
	case *Ident:
		return e.Name
	case *UnaryExpr:
		return "(" + e.Op.String() + " " + sexpr(e.X) + ")"
	case *AdditiveExpr:
		return "(" + sexpr(e.X) + " " + e.Op.String() + " " + sexpr(e.Y) + ")"
	case *FactorExpr:
		return "(" + sexpr(e.X) + " " + e.Op.String() + " " + sexpr(e.Y) + ")"
	case *ComparisonExpr:
		return "(" + sexpr(e.X) + " " + e.Op.String() + " " + sexpr(e.Y) + ")"
	case *EqualityExpr:
		return "(" + sexpr(e.X) + " " + e.Op.String() + " " + sexpr(e.Y) + ")"
	case *ParenExpr:
		return "[" + sexpr(e.X) + "]"
	case *ListLit:
		parts := make([]string, len(e.Elems))
		for i, x := range e.Elems {
			parts[i] = sexpr(x)
		}
		return "list{" + strings.Join(parts, " ") + "}"
	case *CallExpr:
		parts := make([]string, len(e.Args))
		for i, x := range e.Args {
			parts[i] = sexpr(x)
		}
		return e.Name + "(" + strings.Join(parts, " ") + ")"
	case *BadExpr:
		return "BAD"
	}
	return "?"
}

// ----------------------------------------------------------------------------
// Expressions

func TestParseExpressionMode(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1", "1"},
		{`"hi"`, `"hi"`},
		{"true", "true"},
		{"null", "null"},
		{"x", "x"},
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 - 2 - 3", "((1 - 2) - 3)"},
		{"8 / 4 / 2", "((8 / 4) / 2)"},
		{"(1 + 2) * 3", "([(1 + 2)] * 3)"},
		{"- - 1", "(- (- 1))"},
		{"not not true", "(not (not true))"},
		{"-x * 2", "((- x) * 2)"},
		{"1 + 2 < 4", "((1 + 2) < 4)"},
		{"1 < 2 == true", "((1 < 2) == true)"},
		{"a == b != c", "((a == b) != c)"},
		{"a <= b >= c", "((a <= b) >= c)"},
		{"[]", "list{}"},
		{"[1, 2, 3]", "list{1 2 3}"},
		{"[[1], []]", "list{list{1} list{}}"},
		{"f()", "f()"},
		{"f(1, x + 1, [2])", "f(1 (x + 1) list{2})"},
		{"f(g(1))", "f(g(1))"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := parseClean(t, tt.src)
			if !prog.IsExpression() {
				t.Fatalf("program parsed in statement mode")
			}
			if got := sexpr(prog.Expr); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestParseStatementMode(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		kinds []string
	}{
		{"empty", "", nil},
		{"print", "print(1)", []string{"PrintStmt"}},
		{"var", "var x = 1", []string{"VarStmt"}},
		{"var typed", "var x : list<int> = [1]", []string{"VarStmt"}},
		{"assign", "var x = 1 x = 2", []string{"VarStmt", "AssignStmt"}},
		{"call", "print(1) foo(1, 2)", []string{"PrintStmt", "CallStmt"}},
		{"for", "for (x in [1]) { print(x) }", []string{"ForStmt"}},
		{"if", "if (true) { print(1) }", []string{"IfStmt"}},
		{"function", "function f() {} f()", []string{"FuncDef", "CallStmt"}},
		{"missing assign", "x y", []string{"AssignStmt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parse(t, tt.src)
			if prog.IsExpression() {
				t.Fatalf("program parsed in expression mode")
			}
			var kinds []string
			for _, s := range prog.Stmts {
				kinds = append(kinds, KindOf(s))
			}
			if strings.Join(kinds, ",") != strings.Join(tt.kinds, ",") {
				t.Errorf("statements = %v, want %v", kinds, tt.kinds)
			}
		})
	}
}

func TestParseExpressionEntry(t *testing.T) {
	p := NewParser("", strings.NewReader("1 + 2 3"), nil)
	prog := p.ParseExpression()
	if !prog.IsExpression() {
		t.Fatalf("ParseExpression returned a statement program")
	}
	errs := Errors(prog)
	if len(errs) != 1 || errs[0].Kind != UnexpectedToken {
		t.Errorf("errors = %v, want one unexpected token", errs)
	}
}

// ----------------------------------------------------------------------------
// Statements

func TestParseVarStmt(t *testing.T) {
	tests := []struct {
		src      string
		name     string
		typeName string // "" when no annotation
		declType string
	}{
		{"var x = 1", "x", "", ""},
		{"var x : int = 1", "x", "int", "int"},
		{"var s : string = \"a\"", "s", "string", "string"},
		{"var b : bool = true", "b", "bool", "bool"},
		{"var o : object = 1", "o", "object", "object"},
		{"var l : list = [1]", "l", "list", "object"},
		{"var l : list<string> = []", "l", "list", "list<string>"},
		{"var l : list<list<int>> = []", "l", "list", "list<list<int>>"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			prog := parseClean(t, tt.src)
			vs, ok := prog.Stmts[0].(*VarStmt)
			if !ok {
				t.Fatalf("got %T, want *VarStmt", prog.Stmts[0])
			}
			if vs.Name != tt.name {
				t.Errorf("Name = %q, want %q", vs.Name, tt.name)
			}
			if tt.typeName == "" {
				if vs.TypeExpr != nil {
					t.Errorf("TypeExpr = %v, want nil", vs.TypeExpr)
				}
				return
			}
			if vs.TypeExpr == nil {
				t.Fatalf("TypeExpr is nil")
			}
			if vs.TypeExpr.Name != tt.typeName {
				t.Errorf("TypeExpr.Name = %q, want %q", vs.TypeExpr.Name, tt.typeName)
			}
			if got := vs.TypeExpr.Type().String(); got != tt.declType {
				t.Errorf("annotated type = %s, want %s", got, tt.declType)
			}
		})
	}
}

func TestParseForStmt(t *testing.T) {
	prog := parseClean(t, "for(x in [1,2,3]){ for(y in [1,2,3]){ print(y) } }")
	outer := prog.Stmts[0].(*ForStmt)
	if outer.Var != "x" || sexpr(outer.X) != "list{1 2 3}" {
		t.Errorf("outer = for %s in %s", outer.Var, sexpr(outer.X))
	}
	if len(outer.Body) != 1 {
		t.Fatalf("outer body has %d statements, want 1", len(outer.Body))
	}
	inner := outer.Body[0].(*ForStmt)
	if inner.Var != "y" || len(inner.Body) != 1 {
		t.Errorf("inner = for %s with %d statements", inner.Var, len(inner.Body))
	}
	if inner.Parent() != outer {
		t.Errorf("inner.Parent() != outer")
	}
}

func TestParseElseIf(t *testing.T) {
	prog := parseClean(t, "if(false){print(-1)} else if(true){print(0)} else {print(1)}")
	if len(prog.Stmts) != 1 {
		t.Fatalf("got %d statements, want 1", len(prog.Stmts))
	}
	s := prog.Stmts[0].(*IfStmt)
	if len(s.Then) != 1 {
		t.Errorf("Then has %d statements, want 1", len(s.Then))
	}
	if s.Else != nil {
		t.Errorf("outer Else should be empty when an else-if follows")
	}
	if s.ElseIf == nil {
		t.Fatalf("ElseIf is nil")
	}
	if len(s.ElseIf.Then) != 1 || len(s.ElseIf.Else) != 1 {
		t.Errorf("else-if has %d then / %d else statements, want 1/1",
			len(s.ElseIf.Then), len(s.ElseIf.Else))
	}
	if !s.HasElse() || !s.ElseIf.HasElse() {
		t.Errorf("HasElse() = false")
	}
	if s.ElseIf.Parent() != s {
		t.Errorf("ElseIf.Parent() != outer if")
	}
}

func TestParseEmptyElse(t *testing.T) {
	prog := parseClean(t, "if (true) {} else {}")
	s := prog.Stmts[0].(*IfStmt)
	if s.Then == nil || s.Else == nil {
		t.Errorf("empty blocks should be non-nil: then=%v else=%v", s.Then, s.Else)
	}
	if !s.HasElse() {
		t.Errorf("HasElse() = false for empty else")
	}
}

func TestParseFuncDef(t *testing.T) {
	src := `function add(a : int, b, c : list<int>) : int {
		return a
	}`
	prog := parseClean(t, src)
	f := prog.Stmts[0].(*FuncDef)
	if f.Name != "add" || len(f.Params) != 3 {
		t.Fatalf("got %s with %d params", f.Name, len(f.Params))
	}
	wantParams := []struct{ name, typ string }{
		{"a", "int"}, {"b", "object"}, {"c", "list<int>"},
	}
	for i, w := range wantParams {
		p := f.Params[i]
		if p.Name != w.name || p.Type().String() != w.typ {
			t.Errorf("param %d = %s : %s, want %s : %s", i, p.Name, p.Type(), w.name, w.typ)
		}
	}
	if got := f.Signature().String(); got != "(int, object, list<int>) : int" {
		t.Errorf("Signature() = %s", got)
	}

	ret := f.Body[0].(*ReturnStmt)
	if ret.Func() != f {
		t.Errorf("ReturnStmt.Func() did not find enclosing function")
	}
	if funcs := prog.Funcs(); funcs["add"] != f {
		t.Errorf("Funcs()[add] = %v", funcs["add"])
	}
}

func TestParseVoidFunc(t *testing.T) {
	prog := parseClean(t, "function f() { return }")
	f := prog.Stmts[0].(*FuncDef)
	if f.Result != nil || f.ResultType().String() != "void" {
		t.Errorf("result = %v, want void", f.ResultType())
	}
	if ret := f.Body[0].(*ReturnStmt); ret.X != nil {
		t.Errorf("bare return has value %s", sexpr(ret.X))
	}
}

func TestReturnOutsideFunction(t *testing.T) {
	prog := parseClean(t, "if (true) { return 1 }")
	ret := prog.Stmts[0].(*IfStmt).Then[0].(*ReturnStmt)
	if ret.Func() != nil {
		t.Errorf("Func() = %v, want nil", ret.Func())
	}
}

func TestParentLinks(t *testing.T) {
	prog := parseClean(t, "function f(x) { if (x == 1) { print([x + 1]) } }")
	Inspect(prog, func(n Node) bool {
		for _, c := range children(n) {
			if c.Parent() != n {
				t.Errorf("%s child %s has parent %v", KindOf(n), KindOf(c), c.Parent())
			}
		}
		return true
	})
	if prog.Parent() != nil {
		t.Errorf("Program.Parent() = %v, want nil", prog.Parent())
	}
}

func TestSpans(t *testing.T) {
	prog := parseClean(t, "print(1 + 23)")
	ps := prog.Stmts[0].(*PrintStmt)
	if ps.Pos().Col() != 1 || ps.End().Col() != 14 {
		t.Errorf("print span = %s-%s, want 1:1-1:14", ps.Pos(), ps.End())
	}
	add := ps.X.(*AdditiveExpr)
	if add.Pos().Col() != 7 || add.End().Col() != 13 {
		t.Errorf("additive span = %s-%s, want 1:7-1:13", add.Pos(), add.End())
	}
}

// ----------------------------------------------------------------------------
// Errors and recovery

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []ErrorKind
	}{
		{"missing rparen", "print(1", []ErrorKind{UnexpectedToken}},
		{"missing assign", "var x 1", []ErrorKind{UnexpectedToken}},
		{"unterminated list", "var x = [1, 2", []ErrorKind{UnterminatedList}},
		{"unterminated args", "var x = f(1, 2", []ErrorKind{UnterminatedArgList}},
		{"missing comma", "print([1 2])", []ErrorKind{UnexpectedToken}},
		{"unterminated for", "for (x in [1]) { print(x)", []ErrorKind{UnterminatedBlock}},
		{"unterminated if", "if (true) { print(1)", []ErrorKind{UnterminatedBlock}},
		{"unterminated else", "if (true) { } else { print(1)", []ErrorKind{UnterminatedBlock}},
		{"unterminated function", "function f() { print(1)", []ErrorKind{UnterminatedBlock}},
		{"bad statement", "print(1) ) print(2)", []ErrorKind{UnexpectedToken}},
		{"bad expression", "print(*)", []ErrorKind{UnexpectedToken}},
		{"unknown type", "var x : float = 1", []ErrorKind{UnexpectedToken}},
		{"missing type", "var x : = 1", []ErrorKind{UnexpectedToken}},
		{"overflow", "print(2147483648)", []ErrorKind{InvalidLiteral}},
		{"nested function", "if (true) { function f() {} }", nil},
		{"bad char", "print(1) @", []ErrorKind{UnexpectedToken}},
		{"unterminated string", `print("abc`, []ErrorKind{InvalidLiteral, UnexpectedToken}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog := parse(t, tt.src)
			errs := Errors(prog)
			if tt.want == nil {
				if len(errs) == 0 {
					t.Errorf("expected errors, got none")
				}
				return
			}
			if len(errs) != len(tt.want) {
				t.Fatalf("got %d errors %v, want %v", len(errs), errs, tt.want)
			}
			for i, e := range errs {
				if e.Kind != tt.want[i] {
					t.Errorf("error %d = %s, want %s", i, e.Kind, tt.want[i])
				}
				if !e.Kind.IsSyntax() {
					t.Errorf("error %d kind %s is not a syntax error", i, e.Kind)
				}
			}
		})
	}
}

func TestBadStmtConsumesOneToken(t *testing.T) {
	prog := parse(t, ") ) print(1)")
	if len(prog.Stmts) != 3 {
		t.Fatalf("got %d statements, want 3", len(prog.Stmts))
	}
	for i := 0; i < 2; i++ {
		bs, ok := prog.Stmts[i].(*BadStmt)
		if !ok || bs.Tok.Tok != _Rparen {
			t.Errorf("stmt %d = %s, want BadStmt on ')'", i, KindOf(prog.Stmts[i]))
		}
	}
	if _, ok := prog.Stmts[2].(*PrintStmt); !ok {
		t.Errorf("stmt 2 = %s, want PrintStmt", KindOf(prog.Stmts[2]))
	}
}

func TestErrorHandler(t *testing.T) {
	var got []*Error
	p := NewParser("h.cat", strings.NewReader("print(1\nprint(2"), func(e *Error) {
		got = append(got, e)
	})
	prog := p.Parse()
	if p.Errors() != len(got) || len(got) == 0 {
		t.Fatalf("Errors() = %d, handler saw %d", p.Errors(), len(got))
	}
	if p.FirstError() != got[0] {
		t.Errorf("FirstError() = %v, want %v", p.FirstError(), got[0])
	}
	if !strings.HasPrefix(got[0].Error(), "h.cat:2:1: ") {
		t.Errorf("first error = %q", got[0].Error())
	}
	if !HasErrors(prog) {
		t.Errorf("HasErrors() = false")
	}
}

func TestErrorsSorted(t *testing.T) {
	prog := parse(t, "print(1 print(2 print(3")
	errs := Errors(prog)
	for i := 1; i < len(errs); i++ {
		if errs[i].Pos.Before(errs[i-1].Pos) {
			t.Errorf("errors out of order: %s before %s", errs[i-1].Pos, errs[i].Pos)
		}
	}
}

func TestParseTerminates(t *testing.T) {
	// Random token soup must always produce a tree.
	pieces := []string{
		"(", ")", "[", "]", "{", "}", ",", ":", "=", "==", "!=", "<", ">",
		"+", "-", "*", "/", "for", "if", "else", "print", "var", "function",
		"return", "in", "not", "null", "true", "x", "1", `"s"`, "list", "@",
	}
	rng := rand.New(rand.NewSource(468))
	for i := 0; i < 500; i++ {
		n := rng.Intn(30)
		var b strings.Builder
		for j := 0; j < n; j++ {
			b.WriteString(pieces[rng.Intn(len(pieces))])
			b.WriteByte(' ')
		}
		prog := parse(t, b.String())
		Errors(prog)
	}
}

// ----------------------------------------------------------------------------
// Printing

func TestFprint(t *testing.T) {
	prog := parse(t, "var x : list<int> = [1] print(x")
	var buf bytes.Buffer
	Fprint(&buf, prog)
	out := buf.String()
	for _, want := range []string{"Program", "VarStmt", "ListLit", "PrintStmt", "! unexpected token"} {
		if !strings.Contains(out, want) {
			t.Errorf("Fprint output missing %q:\n%s", want, out)
		}
	}
}

func TestFprintJSON(t *testing.T) {
	prog := parseClean(t, "function f(a : int) : int { return a * 2 } print(f(2))")
	var buf bytes.Buffer
	if err := FprintJSON(&buf, prog); err != nil {
		t.Fatalf("FprintJSON: %v", err)
	}
	var m map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &m); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if m["type"] != "Program" {
		t.Errorf("root type = %v", m["type"])
	}
	stmts, _ := m["stmts"].([]interface{})
	if len(stmts) != 2 {
		t.Fatalf("got %d statements", len(stmts))
	}
	fn := stmts[0].(map[string]interface{})
	if fn["type"] != "FuncDef" || fn["result"] != "int" {
		t.Errorf("function = %v", fn)
	}
}

func TestKinds(t *testing.T) {
	prog := parseClean(t, "print(1 + 2)")
	got := strings.Join(Kinds(prog), " ")
	want := "Program PrintStmt AdditiveExpr IntLit IntLit"
	if got != want {
		t.Errorf("Kinds() = %s, want %s", got, want)
	}
}
