package transpile

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/you-not-fish/catscript/internal/syntax"
	"github.com/you-not-fish/catscript/internal/types2"
)

func compile(t *testing.T, src string) *syntax.Program {
	t.Helper()
	prog, err := check(src)
	if err != nil {
		t.Fatal(err)
	}
	return prog
}

// check parses and validates src, returning its static errors.
func check(src string) (*syntax.Program, error) {
	prog := syntax.ParseString(src)
	if err := types2.Check(prog, nil); err != nil {
		return nil, fmt.Errorf("static errors in %q:\n%v", src, syntax.Errors(prog))
	}
	return prog, nil
}

func TestCanonicalCatScript(t *testing.T) {
	src := `var   x:list<int> =[1,2]
function f(a:int,b):int{return a}
for(i in x){if(i>1){print(i)}else if(i==1){print(-(-i))}else{print(null)}}
function g() { return }
var s = "tab\there \"q\" \\"
f(1, "b")
print(not (1 + 2 * 3 != 7))`

	want := `var x : list<int> = [1, 2]
function f(a : int, b) : int {
    return a
}
for (i in x) {
    if (i > 1) {
        print(i)
    } else if (i == 1) {
        print(-(-i))
    } else {
        print(null)
    }
}
function g() {
    return
}
var s = "tab\there \"q\" \\"
f(1, "b")
print(not (1 + 2 * 3 != 7))
`
	got, err := CatScript(compile(t, src))
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("CatScript:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []string{
		`1 + 2 * 3`,
		`print(- -3)`,
		`print(not not true)`,
		`print((1 + 2) * 3 / (4 - 5))`,
		`var l : list<list<string>> = [["a"], ["b"]]
print(l)`,
		`var l : list<int> = [1, 2]
for (x in l) { print(x) }`,
		`function fact(n : int) : int {
    if (n <= 1) { return 1 } else { return n * fact(n - 1) }
}
print(fact(5))`,
		`var b = true
if (b) { print(1) } else if (not b) { print(2) } else if (b == false) { print(3) }
if (b) { } else { }`,
		`var x = 1
x = x + 1
print("x is " + x)`,
		`function p(a, b : bool, c : list<int>) { print(a) }
p(null, false, [1])`,
		`print("line\nbreak\r\\")`,
	}
	for _, src := range tests {
		prog, err := check(src)
		if err != nil {
			t.Error(err)
			continue
		}
		out, err := CatScript(prog)
		if err != nil {
			t.Errorf("CatScript(%q): %v", src, err)
			continue
		}
		again, err := check(out)
		if err != nil {
			t.Errorf("output of %q does not validate: %v", src, err)
			continue
		}
		want := strings.Join(syntax.Kinds(prog), " ")
		if got := strings.Join(syntax.Kinds(again), " "); got != want {
			t.Errorf("round trip of %q:\noutput:\n%s\nkinds: %s\nwant:  %s", src, out, got, want)
			continue
		}
		out2, err := CatScript(again)
		if err != nil {
			t.Errorf("CatScript(%q): %v", out, err)
			continue
		}
		if out2 != out {
			t.Errorf("canonical form of %q is not stable:\n%s\nthen:\n%s", src, out, out2)
		}
	}
}

func TestJavaScript(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			"expression",
			`(7 + 2) / 2`,
			"console.log($show(Math.trunc(($add(7, 2)) / 2)));\n",
		},
		{
			"operators",
			`var x : int = 10 / 3
print(not (x == 3))
print(x != 3)
print(x - -1)`,
			`let x = Math.trunc(10 / 3);
print(!(x === 3));
print(x !== 3);
print(x - -1);
`,
		},
		{
			"loops and branches",
			`for (i in [1, 2]) {
    if (i < 2) { print("small") } else { print("big " + i) }
}`,
			`for (const i of [1, 2]) {
    if (i < 2) {
        print("small");
    } else {
        print($add("big ", i));
    }
}
`,
		},
		{
			"functions",
			`function add(a : int, b : int) : int { return a + b }
function log(v) { print(v)
return }
log(add(1, 2))`,
			`function add(a, b) {
    return $add(a, b);
}
function log(v) {
    print(v);
    return;
}
log(add(1, 2));
`,
		},
		{
			"reserved names",
			`var let = 1
var new = [let]
for (this in new) { print(this) }`,
			`let let$ = 1;
let new$ = [let$];
for (const this$ of new$) {
    print(this$);
}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JavaScript(compile(t, tt.src))
			if err != nil {
				t.Fatal(err)
			}
			if !strings.HasPrefix(got, jsPrelude) {
				t.Fatalf("output does not start with the prelude:\n%s", got)
			}
			if body := strings.TrimPrefix(got, jsPrelude); body != tt.want {
				t.Errorf("JavaScript:\ngot:\n%s\nwant:\n%s", body, tt.want)
			}
		})
	}
}

func TestRefusesErroneousTree(t *testing.T) {
	for _, src := range []string{
		`print(1 +)`,
		`var x : int = "a"`,
	} {
		prog := syntax.ParseString(src)
		types2.Check(prog, nil)
		for _, target := range []Target{TargetCatScript, TargetJavaScript} {
			out, err := Transpile(prog, target)
			var list syntax.ErrorList
			if !errors.As(err, &list) {
				t.Errorf("Transpile(%q, %v) = %q, %v; want ErrorList", src, target, out, err)
			}
		}
	}
}

func TestParseTarget(t *testing.T) {
	tests := []struct {
		in   string
		want Target
		ok   bool
	}{
		{"js", TargetJavaScript, true},
		{"JavaScript", TargetJavaScript, true},
		{"cat", TargetCatScript, true},
		{"catscript", TargetCatScript, true},
		{"python", 0, false},
	}
	for _, tt := range tests {
		got, err := ParseTarget(tt.in)
		if (err == nil) != tt.ok || (tt.ok && got != tt.want) {
			t.Errorf("ParseTarget(%q) = %v, %v", tt.in, got, err)
		}
	}
}
