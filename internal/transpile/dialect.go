package transpile

import (
	"fmt"
	"strings"

	"github.com/you-not-fish/catscript/internal/syntax"
)

// Target selects the output language.
type Target int

const (
	TargetCatScript  Target = iota // canonical CatScript source
	TargetJavaScript               // standalone JavaScript
)

func (t Target) String() string {
	switch t {
	case TargetCatScript:
		return "catscript"
	case TargetJavaScript:
		return "javascript"
	}
	return fmt.Sprintf("target(%d)", int(t))
}

// ParseTarget returns the target with the given name.
func ParseTarget(name string) (Target, error) {
	switch strings.ToLower(name) {
	case "catscript", "cat":
		return TargetCatScript, nil
	case "javascript", "js":
		return TargetJavaScript, nil
	}
	return 0, fmt.Errorf("unknown transpile target %q", name)
}

// dialect is the per-target table of keywords and operator spellings.
type dialect struct {
	prelude  string
	semi     string // statement terminator
	decl     string // variable declaration keyword
	annotate bool   // keep type annotations
	forIn    string // loop header format: variable, sequence
	exprProg string // expression program format

	ops map[syntax.Token]string

	// Optional rewrites of binary operators; nil means "x op y".
	add func(op, x, y string) string
	div func(x, y string) string

	// reserved holds identifiers that must be renamed in the output.
	reserved map[string]bool
}

// name returns the spelling of a CatScript identifier in the dialect.
func (d *dialect) name(s string) string {
	if d.reserved[s] {
		return s + "$"
	}
	return s
}

var dialects = map[Target]*dialect{
	TargetCatScript: {
		decl:     "var",
		annotate: true,
		forIn:    "for (%s in %s) {",
		exprProg: "%s\n",
		ops: map[syntax.Token]string{
			syntax.Not: "not ",
			syntax.Eql: "==",
			syntax.Neq: "!=",
		},
	},
	TargetJavaScript: {
		prelude:  jsPrelude,
		semi:     ";",
		decl:     "let",
		forIn:    "for (const %s of %s) {",
		exprProg: "console.log($show(%s));\n",
		ops: map[syntax.Token]string{
			syntax.Not: "!",
			syntax.Eql: "===",
			syntax.Neq: "!==",
		},
		add: func(op, x, y string) string {
			if op == "+" {
				return fmt.Sprintf("$add(%s, %s)", x, y)
			}
			return x + " - " + y
		},
		div: func(x, y string) string {
			return fmt.Sprintf("Math.trunc(%s / %s)", x, y)
		},
		reserved: jsReserved,
	},
}

// jsPrelude defines print and the string-aware + used by the output.
const jsPrelude = `const $show = (v) => v === null ? "null" : Array.isArray(v) ? "[" + v.map($show).join(", ") + "]" : String(v);
const $add = (a, b) => typeof a === "string" || typeof b === "string" ? $show(a) + $show(b) : a + b;
function print(v) { console.log($show(v)); }

`

var jsReserved = map[string]bool{
	"await": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "debugger": true, "default": true,
	"delete": true, "do": true, "enum": true, "export": true, "extends": true,
	"finally": true, "implements": true, "import": true, "instanceof": true,
	"interface": true, "let": true, "new": true, "package": true,
	"private": true, "protected": true, "public": true, "static": true,
	"super": true, "switch": true, "this": true, "throw": true, "try": true,
	"typeof": true, "void": true, "while": true, "with": true, "yield": true,
	"arguments": true, "eval": true, "undefined": true, "NaN": true,
	"Infinity": true, "Math": true, "console": true, "String": true,
	"Array": true,
}
