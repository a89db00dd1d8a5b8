// env.go: the lexical scope chain.
package lox

// Env is a lexical environment frame with a parent link. Lookups and
// assignments walk parent-ward; Define always binds in this frame. The chain
// always has at least one frame (the global frame, created at interpreter
// start and never popped); frames are pushed and popped strictly following
// block nesting.
type Env struct {
	parent *Env
	table  map[string]Value
}

// NewEnv creates a new frame with the given parent (which may be nil).
func NewEnv(parent *Env) *Env {
	return &Env{parent: parent, table: make(map[string]Value)}
}

// Define binds name to v in the current frame, shadowing or overwriting any
// same-named binding in this exact frame. This is declaration, not
// reassignment.
func (e *Env) Define(name string, v Value) {
	e.table[name] = v
}

// Assign updates the nearest existing binding of name. It reports false when
// no visible frame contains the name; it never creates a binding.
func (e *Env) Assign(name string, v Value) bool {
	for f := e; f != nil; f = f.parent {
		if _, ok := f.table[name]; ok {
			f.table[name] = v
			return true
		}
	}
	return false
}

// Get retrieves the nearest visible binding for name, innermost first.
func (e *Env) Get(name string) (Value, bool) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.table[name]; ok {
			return v, true
		}
	}
	return Value{}, false
}
