// scope.go — the chained lexical environment
//
// A Scope is a frame mapping names to values (and to mixin/function
// definitions), linked to at most one parent. Reads walk the chain outward
// at read time — nothing is cached — so a global write becomes visible to
// every scope sharing the root the moment it lands, including scopes created
// afterwards and scopes inside mixin bodies. A plain write stays in the
// innermost frame: it overwrites a binding already present there, otherwise
// it creates one there, and it never reaches into a parent.

package grass

import "fmt"

// Scope is one frame of the lexical chain.
type Scope struct {
	parent *Scope
	vars   map[string]Value
	mixins map[string]*Mixin
	funcs  map[string]*Function
}

// NewScope creates a frame with the given parent (nil for the root).
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent: parent,
		vars:   make(map[string]Value),
		mixins: make(map[string]*Mixin),
		funcs:  make(map[string]*Function),
	}
}

func (s *Scope) root() *Scope {
	r := s
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// GetVar resolves a variable by walking the chain outward. Exhausting the
// chain is an error, never a silent default.
func (s *Scope) GetVar(name string, span Span) (Value, error) {
	for f := s; f != nil; f = f.parent {
		if v, ok := f.vars[name]; ok {
			return v, nil
		}
	}
	return Value{}, errSpan(fmt.Sprintf("Undefined variable: $%s.", name), span)
}

// VarExists reports whether the name resolves anywhere in the chain.
func (s *Scope) VarExists(name string) bool {
	for f := s; f != nil; f = f.parent {
		if _, ok := f.vars[name]; ok {
			return true
		}
	}
	return false
}

// SetVar binds in the current frame only: overwrite if present here, create
// here otherwise. Parent frames are never written.
func (s *Scope) SetVar(name string, v Value) {
	s.vars[name] = v
}

// SetGlobalVar binds in the outermost frame unconditionally. Every scope
// sharing that root observes the new value on its next read.
func (s *Scope) SetGlobalVar(name string, v Value) {
	s.root().vars[name] = v
}

// GetMixin resolves a mixin definition by outward walk.
func (s *Scope) GetMixin(name string, span Span) (*Mixin, error) {
	for f := s; f != nil; f = f.parent {
		if m, ok := f.mixins[name]; ok {
			return m, nil
		}
	}
	return nil, errSpan(fmt.Sprintf("Undefined mixin '%s'.", name), span)
}

// SetMixin records a mixin definition in the current frame.
func (s *Scope) SetMixin(name string, m *Mixin) {
	s.mixins[name] = m
}

// GetFunction resolves a user-defined function by outward walk. Absence is
// reported with ok=false rather than an error: an unresolved call falls back
// to builtin dispatch and then to plain-CSS forwarding.
func (s *Scope) GetFunction(name string) (*Function, bool) {
	for f := s; f != nil; f = f.parent {
		if fn, ok := f.funcs[name]; ok {
			return fn, true
		}
	}
	return nil, false
}

// SetFunction records a function definition in the current frame.
func (s *Scope) SetFunction(name string, fn *Function) {
	s.funcs[name] = fn
}
