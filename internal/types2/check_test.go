package types2

import (
	"strings"
	"testing"

	"github.com/you-not-fish/catscript/internal/syntax"
)

// parseAndCheck parses source code and runs the checker.
// Returns the program and every semantic error reported.
func parseAndCheck(t *testing.T, src string) (*syntax.Program, []*syntax.Error) {
	t.Helper()
	prog := syntax.Parse("test.cat", strings.NewReader(src), nil)
	if errs := syntax.Errors(prog); len(errs) > 0 {
		t.Fatalf("syntax errors in %q:\n%v", src, errs)
	}

	var errs []*syntax.Error
	conf := &Config{Error: func(err *syntax.Error) {
		errs = append(errs, err)
	}}
	err := Check(prog, conf)
	if (err == nil) != (len(errs) == 0) {
		t.Fatalf("Check returned %v with %d reported errors", err, len(errs))
	}
	if err != nil && err != errs[0] {
		t.Fatalf("Check returned %v, want first error %v", err, errs[0])
	}
	return prog, errs
}

// expectNoErrors checks that the source validates cleanly.
func expectNoErrors(t *testing.T, src string) *syntax.Program {
	t.Helper()
	prog, errs := parseAndCheck(t, src)
	if len(errs) > 0 {
		t.Errorf("unexpected errors in %q:\n%v", src, syntax.ErrorList(errs))
	}
	return prog
}

// expectErrors checks that the source produces exactly the given error kinds.
func expectErrors(t *testing.T, src string, want ...syntax.ErrorKind) {
	t.Helper()
	_, errs := parseAndCheck(t, src)
	if len(errs) != len(want) {
		t.Fatalf("%q: got %d errors %v, want %v", src, len(errs), syntax.ErrorList(errs), want)
	}
	for i, e := range errs {
		if e.Kind != want[i] {
			t.Errorf("%q: error %d = %s (%s), want %s", src, i, e.Kind, e.Msg, want[i])
		}
	}
}

func TestValidPrograms(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"print", `print(1) print("a") print(true) print(null) print([1])`},
		{"var infer", `var x = 1 var y = x + 2 print(y)`},
		{"var typed", `var x : int = 1 var s : string = "s" var b : bool = not true`},
		{"object", `var o : object = 1 o = "s" o = [1] o = null`},
		{"null to string", `var s : string = null`},
		{"null to list", `var l : list<int> = null`},
		{"covariant list", `var l : list<object> = [1, 2]`},
		{"nested list", `var l : list<list<int>> = [[1], [2, 3]]`},
		{"bare list", `var l : list = [1]`},
		{"string concat", `var s = "a" + 1 var t = 1 + "a" var u = "a" + [1]`},
		{"arith", `var x = (1 + 2) * 3 / 4 - -5`},
		{"comparison any", `print("a" < 1) print(null == [1]) print(1 != "1")`},
		{"for", `for (x in [1, 2]) { print(x + 1) }`},
		{"for string elem", `for (s in ["a"]) { var t : string = s }`},
		{"if else if", `if (1 < 2) { print(1) } else if (true) { print(2) } else { print(3) }`},
		{"shadow in block", `var x = 1 if (true) { var x = "s" print(x) }`},
		{"shadow in function", `var x = 1 function f(x : string) { print(x) }`},
		{"sibling blocks", `if (true) { var y = 1 } else { var y = 2 }`},
		{"function", `function f(a : int, b : int) : int { return a + b } print(f(1, 2))`},
		{"call before def", `print(f()) function f() : int { return 1 }`},
		{"recursion", `function fib(n : int) : int { if (n < 2) { return n } return fib(n - 1) + fib(n - 2) }`},
		{"void func", `function f() { print(1) return } f()`},
		{"object param", `function f(x) { print(x) } f(1) f("a") f([1])`},
		{"object result", `function f() : object { return 1 }`},
		{"list result", `function f() : list<int> { return [1] }`},
		{"null result", `function f() : string { return null }`},
		{"global in function", `var g = 1 function f() : int { return g }`},
		{"return in else-if chain", `function f(x : int) : int {
			if (x < 0) { return -1 } else if (x == 0) { return 0 } else { return 1 }
		}`},
		{"return after loop", `function f(l : list<int>) : int { for (x in l) { return x } return 0 }`},
		{"expression mode", `1 + 2 * 3`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectNoErrors(t, tt.src)
		})
	}
}

func TestInvalidPrograms(t *testing.T) {
	I := syntax.IncompatibleTypes
	tests := []struct {
		name string
		src  string
		want []syntax.ErrorKind
	}{
		{"heterogeneous list", `var x : list<int> = [1, true]`, []syntax.ErrorKind{I}},
		{"var mismatch", `var x : int = "s"`, []syntax.ErrorKind{I}},
		{"null to int", `var x : int = null`, []syntax.ErrorKind{I}},
		{"contravariant list", `var l : list<int> = [null] var m : list<string> = [1]`, []syntax.ErrorKind{I, I}},
		{"assign mismatch", `var x = 1 x = "s"`, []syntax.ErrorKind{I}},
		{"assign unknown", `y = 1`, []syntax.ErrorKind{syntax.UnknownName}},
		{"unknown ident", `print(y)`, []syntax.ErrorKind{syntax.UnknownName}},
		{"duplicate var", `var x = 1 var x = 2`, []syntax.ErrorKind{syntax.DuplicateName}},
		{"duplicate in block", `if (true) { var x = 1 var x = 2 }`, []syntax.ErrorKind{syntax.DuplicateName}},
		{"duplicate param", `function f(a, a) {}`, []syntax.ErrorKind{syntax.DuplicateName}},
		{"duplicate function", `function f() {} function f() {}`, []syntax.ErrorKind{syntax.DuplicateName}},
		{"scope ends", `if (true) { var x = 1 } print(x)`, []syntax.ErrorKind{syntax.UnknownName}},
		{"loop var scope", `for (i in [1]) {} print(i)`, []syntax.ErrorKind{syntax.UnknownName}},
		{"param scope", `function f(a) {} print(a)`, []syntax.ErrorKind{syntax.UnknownName}},
		{"additive int", `var x = 1 + true`, []syntax.ErrorKind{I}},
		{"additive both", `var x = null - true`, []syntax.ErrorKind{I, I}},
		{"string minus", `var x = "a" - 1`, []syntax.ErrorKind{I}},
		{"factor", `var x = "a" * 2`, []syntax.ErrorKind{I}},
		{"negate bool", `var x = -true`, []syntax.ErrorKind{I}},
		{"not int", `var x = not 1`, []syntax.ErrorKind{I}},
		{"if cond", `if (1) { }`, []syntax.ErrorKind{I}},
		{"for over int", `for (x in 1) { }`, []syntax.ErrorKind{I}},
		{"unknown function", `foo(1)`, []syntax.ErrorKind{syntax.UnknownName}},
		{"too many args", `function f(a) {} f(1, 2)`, []syntax.ErrorKind{syntax.ArgMismatch}},
		{"too few args", `function f(a, b) {} f(1)`, []syntax.ErrorKind{syntax.ArgMismatch}},
		{"arg type", `function f(a : int) {} f("s")`, []syntax.ErrorKind{I}},
		{"void as value", `function f() {} var x = f()`, []syntax.ErrorKind{I}},
		{"return outside", `return 1`, []syntax.ErrorKind{syntax.InvalidReturnStatement}},
		{"return in top-level if", `if (true) { return }`, []syntax.ErrorKind{syntax.InvalidReturnStatement}},
		{"value in void", `function f() { return 1 }`, []syntax.ErrorKind{I}},
		{"missing value", `function f() : int { return }`, []syntax.ErrorKind{I}},
		{"wrong value", `function f() : int { return "s" }`, []syntax.ErrorKind{I}},
		{"if without else", `function f(c : bool) : int { if (c) { return 1 } }`,
			[]syntax.ErrorKind{syntax.MissingReturnStatement}},
		{"return only in loop", `function f(l : list<int>) : int { for (x in l) { return x } }`,
			[]syntax.ErrorKind{syntax.MissingReturnStatement}},
		{"else-if without else", `function f(x : int) : int { if (x < 0) { return 1 } else if (x > 0) { return 2 } }`,
			[]syntax.ErrorKind{syntax.MissingReturnStatement}},
		{"empty body", `function f() : string { }`, []syntax.ErrorKind{syntax.MissingReturnStatement}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expectErrors(t, tt.src, tt.want...)
		})
	}
}

func TestMissingReturnWithElse(t *testing.T) {
	expectErrors(t, `function f(c : bool) : int { if (c) { return 1 } }`, syntax.MissingReturnStatement)
	expectNoErrors(t, `function f(c : bool) : int { if (c) { return 1 } else { return 2 } }`)
}

func TestValidationContinuesAfterError(t *testing.T) {
	// The erroneous declaration still declares x, so the later use of x is
	// not reported as unknown.
	expectErrors(t, `var x : int = "s" print(x + 1) var y : bool = 1`,
		syntax.IncompatibleTypes, syntax.IncompatibleTypes)
}

func TestRecordedTypes(t *testing.T) {
	prog := expectNoErrors(t, `
		var a = [1, 2]
		var b : list<object> = a
		var c = "x" + 1
		for (e in a) { print(e) }
		function f(p) : bool { return p == null }
		var d = f(1)
	`)

	tests := []struct {
		stmt int
		want string
	}{
		{0, "list<int>"},
		{1, "list<object>"},
		{2, "string"},
		{5, "bool"},
	}
	for _, tt := range tests {
		vs := prog.Stmts[tt.stmt].(*syntax.VarStmt)
		if got := vs.Type().String(); got != tt.want {
			t.Errorf("var %s : %s, want %s", vs.Name, got, tt.want)
		}
	}

	fs := prog.Stmts[3].(*syntax.ForStmt)
	if got := fs.Type().String(); got != "int" {
		t.Errorf("loop variable type = %s, want int", got)
	}
	ps := fs.Body[0].(*syntax.PrintStmt)
	if got := ps.X.Type().String(); got != "int" {
		t.Errorf("loop variable use type = %s, want int", got)
	}

	empty := expectNoErrors(t, `[]`)
	if got := empty.Expr.Type().String(); got != "list<object>" {
		t.Errorf("[] : %s, want list<object>", got)
	}
}

func TestErrorPositions(t *testing.T) {
	_, errs := parseAndCheck(t, "var x = 1\nprint(y)")
	if len(errs) != 1 {
		t.Fatalf("got %d errors", len(errs))
	}
	if got := errs[0].Error(); got != "test.cat:2:7: undefined: y" {
		t.Errorf("error = %q", got)
	}
}

func TestErrorsAttachedToTree(t *testing.T) {
	prog, errs := parseAndCheck(t, `var x : int = "s" function f() : int { }`)
	tree := syntax.Errors(prog)
	if len(tree) != len(errs) {
		t.Fatalf("tree has %d errors, handler saw %d", len(tree), len(errs))
	}
	for _, e := range tree {
		if e.Kind.IsSyntax() {
			t.Errorf("semantic error %s classified as syntax", e.Kind)
		}
	}
}

func TestCheckTreeWithSyntaxErrors(t *testing.T) {
	prog := syntax.ParseString(`print(1 print(undefinedName)`)
	var semantic []*syntax.Error
	Check(prog, &Config{Error: func(e *syntax.Error) { semantic = append(semantic, e) }})
	if len(semantic) != 1 || semantic[0].Kind != syntax.UnknownName {
		t.Errorf("semantic errors = %v, want one unknown name", syntax.ErrorList(semantic))
	}
}

func TestReturnCovered(t *testing.T) {
	tests := []struct {
		body string
		want bool
	}{
		{"return 1", true},
		{"print(1) return 1", true},
		{"print(1)", false},
		{"if (true) { return 1 }", false},
		{"if (true) { return 1 } else { return 2 }", true},
		{"if (true) { print(1) } else { return 2 }", false},
		{"if (true) { return 1 } else if (false) { return 2 } else { return 3 }", true},
		{"if (true) { return 1 } else if (false) { return 2 } else { print(3) }", false},
		{"if (true) { if (false) { return 1 } else { return 2 } } else { return 3 }", true},
		{"for (x in [1]) { return 1 }", false},
		{"if (true) { print(1) } return 2", true},
	}

	for _, tt := range tests {
		t.Run(tt.body, func(t *testing.T) {
			prog := syntax.ParseString("function f() : int { " + tt.body + " }")
			f := prog.Stmts[0].(*syntax.FuncDef)
			if got := ReturnCovered(f.Body); got != tt.want {
				t.Errorf("ReturnCovered = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCallBeforeGlobalDeclaration(t *testing.T) {
	invalid := []struct {
		name string
		src  string
		want string // message and position of the single error
	}{
		{"direct read", "f()\nvar x = 1\nfunction f() { print(x) }",
			"test.cat:1:1: undefined: x (used by f before its declaration)"},
		{"assignment", "f()\nvar x = 1\nfunction f() { x = 2 }",
			"test.cat:1:1: undefined: x (used by f before its declaration)"},
		{"through another function", "var a = 0\ng()\nvar x = 1\nfunction f() { print(x + a) }\nfunction g() { f() }",
			"test.cat:2:1: undefined: x (used by g before its declaration)"},
		{"own initializer", "var y = f()\nvar x = 2\nfunction f() : int { return x }",
			"test.cat:1:9: undefined: x (used by f before its declaration)"},
		{"inside top-level loop", "for (i in [1]) { f() }\nvar x = 1\nfunction f() { print(x) }",
			"test.cat:1:18: undefined: x (used by f before its declaration)"},
	}
	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := parseAndCheck(t, tt.src)
			if len(errs) != 1 {
				t.Fatalf("got %d errors %v, want 1", len(errs), syntax.ErrorList(errs))
			}
			if errs[0].Kind != syntax.UnknownName || errs[0].Error() != tt.want {
				t.Errorf("error = %s %q, want UnknownName %q", errs[0].Kind, errs[0].Error(), tt.want)
			}
		})
	}

	valid := []struct {
		name string
		src  string
	}{
		{"declared first", "var x = 1\nf()\nfunction f() { print(x) }"},
		{"parameter shadows", "f(1)\nvar x = 1\nfunction f(x : int) { print(x) }"},
		{"local shadows", "f()\nvar x = 1\nfunction f() { var x = 2 print(x) }"},
		{"recursion without globals", "f(3)\nfunction f(n : int) { if (n > 0) { f(n - 1) } }"},
		{"caller defined early, called late", "function g() { f() }\nvar x = 1\nfunction f() { print(x) }\ng()"},
		{"mutual recursion", "var x = 1\nf(2)\nfunction f(n : int) { if (n > 0) { g(n) } }\nfunction g(n : int) { print(x) f(n - 1) }"},
	}
	for _, tt := range valid {
		t.Run(tt.name, func(t *testing.T) {
			expectNoErrors(t, tt.src)
		})
	}
}
