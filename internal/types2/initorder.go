package types2

import (
	"sort"

	"github.com/you-not-fish/catscript/internal/syntax"
)

// globalUses records what a function body touches outside its own scopes.
type globalUses struct {
	globals map[string]bool // global variables read or assigned
	calls   map[string]bool // functions called
}

// topCall is a call made by a top-level statement, with the number of
// globals declared when it runs.
type topCall struct {
	call *syntax.CallExpr
	seen int
}

func (c *Checker) usesOf(name string) *globalUses {
	u := c.uses[name]
	if u == nil {
		u = &globalUses{globals: make(map[string]bool), calls: make(map[string]bool)}
		c.uses[name] = u
	}
	return u
}

// useGlobal notes that the current function body refers to name, if name
// binds to a global variable.
func (c *Checker) useGlobal(name string) {
	if c.fn != nil && c.syms.ResolvesGlobal(name) {
		c.usesOf(c.fn.Name).globals[name] = true
	}
}

// callSite notes a call to a known function.
func (c *Checker) callSite(e *syntax.CallExpr) {
	if c.fn != nil {
		c.usesOf(c.fn.Name).calls[e.Name] = true
		return
	}
	c.calls = append(c.calls, topCall{call: e, seen: len(c.declared)})
}

// checkInitOrder reports top-level calls that reach a global variable,
// directly or through further calls, before the variable's declaration
// has run.
func (c *Checker) checkInitOrder() {
	for _, tc := range c.calls {
		var late []string
		for name := range c.reachableGlobals(tc.call.Name) {
			if order, ok := c.declared[name]; ok && order >= tc.seen {
				late = append(late, name)
			}
		}
		sort.Strings(late)
		for _, name := range late {
			c.errorf(tc.call, syntax.UnknownName, "undefined: %s (used by %s before its declaration)", name, tc.call.Name)
		}
	}
}

// reachableGlobals returns the globals used by fn and every function it
// calls, transitively.
func (c *Checker) reachableGlobals(fn string) map[string]bool {
	globals := make(map[string]bool)
	visited := make(map[string]bool)
	var visit func(string)
	visit = func(name string) {
		if visited[name] {
			return
		}
		visited[name] = true
		u := c.uses[name]
		if u == nil {
			return
		}
		for g := range u.globals {
			globals[g] = true
		}
		for callee := range u.calls {
			visit(callee)
		}
	}
	visit(fn)
	return globals
}
