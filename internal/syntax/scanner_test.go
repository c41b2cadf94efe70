package syntax

import (
	"strings"
	"testing"
)

func scanAll(t *testing.T, src string) ([]Lexeme, []string) {
	t.Helper()
	var errs []string
	toks := Tokenize("test.cat", strings.NewReader(src), func(line, col uint32, msg string) {
		errs = append(errs, msg)
	})
	return toks.Lexemes(), errs
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name   string
		src    string
		tokens []Token
		lits   []string
	}{
		{"empty", "", []Token{_EOF}, []string{""}},
		{"ident", "foo_1", []Token{_Name, _EOF}, []string{"foo_1", ""}},
		{"type names", "int list", []Token{_Name, _Name, _EOF}, []string{"int", "list", ""}},
		{"int", "123", []Token{_Int, _EOF}, []string{"123", ""}},
		{"string", `"hi there"`, []Token{_String, _EOF}, []string{"hi there", ""}},
		{"string escapes", `"a\n\t\"\\"`, []Token{_String, _EOF}, []string{"a\n\t\"\\", ""}},
		{"keywords", "var x = not true",
			[]Token{_Var, _Name, _Assign, _Not, _True, _EOF},
			[]string{"var", "x", "=", "not", "true", ""}},
		{"comparison", "a<=b>=c<d>e",
			[]Token{_Name, _Leq, _Name, _Geq, _Name, _Lss, _Name, _Gtr, _Name, _EOF},
			nil},
		{"equality", "a==b!=c", []Token{_Name, _Eql, _Name, _Neq, _Name, _EOF}, nil},
		{"arith", "1+2-3*4/5", []Token{_Int, _Add, _Int, _Sub, _Int, _Mul, _Int, _Div, _Int, _EOF}, nil},
		{"delimiters", "([{}]),:", []Token{_Lparen, _Lbrack, _Lbrace, _Rbrace, _Rbrack, _Rparen, _Comma, _Colon, _EOF}, nil},
		{"comment", "1 // two\n3", []Token{_Int, _Int, _EOF}, []string{"1", "3", ""}},
		{"newlines", "print(1)\nprint(2)\n",
			[]Token{_Print, _Lparen, _Int, _Rparen, _Print, _Lparen, _Int, _Rparen, _EOF}, nil},
		{"bad char", "a @ b", []Token{_Name, _Error, _Name, _EOF}, []string{"a", "@", "b", ""}},
		{"lone bang", "!x", []Token{_Error, _Name, _EOF}, []string{"!", "x", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lxs, errs := scanAll(t, tt.src)
			if len(errs) > 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}
			if len(lxs) != len(tt.tokens) {
				t.Fatalf("got %d tokens %v, want %d", len(lxs), lxs, len(tt.tokens))
			}
			for i, lx := range lxs {
				if lx.Tok != tt.tokens[i] {
					t.Errorf("token %d = %s, want %s", i, lx.Tok, tt.tokens[i])
				}
				if tt.lits != nil && lx.Lit != tt.lits[i] {
					t.Errorf("literal %d = %q, want %q", i, lx.Lit, tt.lits[i])
				}
			}
		})
	}
}

func TestScanPositions(t *testing.T) {
	lxs, _ := scanAll(t, "var x\n  = 10")
	want := []struct {
		line, col, endCol uint32
	}{
		{1, 1, 4}, // var
		{1, 5, 6}, // x
		{2, 3, 4}, // =
		{2, 5, 7}, // 10
		{2, 7, 7}, // EOF
	}
	for i, w := range want {
		lx := lxs[i]
		if lx.Pos.Line() != w.line || lx.Pos.Col() != w.col || lx.End.Col() != w.endCol {
			t.Errorf("token %d (%s) at %s-%s, want %d:%d-%d", i, lx.Tok, lx.Pos, lx.End, w.line, w.col, w.endCol)
		}
		if lx.Pos.Filename() != "test.cat" {
			t.Errorf("token %d filename = %q", i, lx.Pos.Filename())
		}
	}
}

func TestScanErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unterminated", `"abc`, "string not terminated"},
		{"bad escape", `"a\qb"`, "unknown escape sequence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lxs, errs := scanAll(t, tt.src)
			if len(errs) != 1 || !strings.Contains(errs[0], tt.want) {
				t.Errorf("errors = %v, want one containing %q", errs, tt.want)
			}
			if lxs[0].Tok != _String {
				t.Errorf("token = %s, want STRING", lxs[0].Tok)
			}
		})
	}
}

func TestTokenList(t *testing.T) {
	l := TokenizeString("a , b")

	if !l.Match(_Name) || l.Match(_Comma) || !l.Match(_Comma, _Name) {
		t.Errorf("Match on first token failed")
	}
	if lx := l.Consume(); lx.Lit != "a" {
		t.Errorf("Consume() = %q, want a", lx.Lit)
	}
	if l.Previous().Lit != "a" {
		t.Errorf("Previous() = %q, want a", l.Previous().Lit)
	}
	if l.MatchAndConsume(_Name) {
		t.Errorf("MatchAndConsume(NAME) on ',' should fail")
	}
	if !l.MatchAndConsume(_Comma) {
		t.Errorf("MatchAndConsume(',') should succeed")
	}
	l.Consume()
	if l.HasMoreTokens() {
		t.Errorf("HasMoreTokens() at EOF = true")
	}
	// Consuming at EOF stays at EOF.
	for i := 0; i < 3; i++ {
		if lx := l.Consume(); lx.Tok != _EOF {
			t.Fatalf("Consume() past end = %s, want EOF", lx.Tok)
		}
	}

	l.Reset()
	if l.Current().Lit != "a" || !l.HasMoreTokens() {
		t.Errorf("Reset() did not rewind")
	}
	if l.Len() != 4 {
		t.Errorf("Len() = %d, want 4", l.Len())
	}
}
