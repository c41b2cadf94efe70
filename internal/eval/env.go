package eval

// Env is the runtime value environment: a stack of scopes mapping names to
// values. It mirrors the checker's symbol table but is independent of it.
type Env struct {
	scopes []map[string]Value
}

// NewEnv returns an environment holding only the global scope.
func NewEnv() *Env {
	return &Env{scopes: []map[string]Value{{}}}
}

// newFrame returns an environment for a function call: the global scope of
// e plus a fresh scope for parameters.
func (e *Env) newFrame() *Env {
	return &Env{scopes: []map[string]Value{e.scopes[0], {}}}
}

// Push opens a new innermost scope.
func (e *Env) Push() {
	e.scopes = append(e.scopes, map[string]Value{})
}

// Pop closes the innermost scope. Popping the global scope panics.
func (e *Env) Pop() {
	if len(e.scopes) == 1 {
		panic("eval: pop of global scope")
	}
	e.scopes[len(e.scopes)-1] = nil
	e.scopes = e.scopes[:len(e.scopes)-1]
}

// Depth returns the number of open scopes, including the global scope.
func (e *Env) Depth() int { return len(e.scopes) }

// Declare binds name to v in the innermost scope.
func (e *Env) Declare(name string, v Value) {
	e.scopes[len(e.scopes)-1][name] = v
}

// Assign stores v in the nearest scope that binds name. It reports whether
// such a scope was found.
func (e *Env) Assign(name string, v Value) bool {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if _, ok := e.scopes[i][name]; ok {
			e.scopes[i][name] = v
			return true
		}
	}
	return false
}

// Get looks up name from the innermost scope outward.
func (e *Env) Get(name string) (Value, bool) {
	for i := len(e.scopes) - 1; i >= 0; i-- {
		if v, ok := e.scopes[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}
