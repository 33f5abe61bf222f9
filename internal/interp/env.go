package interp

import (
	"github.com/kolkov/ulox/internal/token"
	"github.com/kolkov/ulox/internal/types"
)

// Environment is one scope in the chain of lexical scopes. Every block,
// loop body and function call gets its own Environment whose enclosing
// scope is the one active where it was created. A closure keeps its
// defining Environment reachable after that scope has exited.
type Environment struct {
	values    map[string]types.Value
	enclosing *Environment
}

// NewEnvironment creates an empty scope nested in enclosing (nil for the
// global scope).
func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{
		values:    make(map[string]types.Value),
		enclosing: enclosing,
	}
}

// Enclosing returns the surrounding scope, or nil for the global scope.
func (e *Environment) Enclosing() *Environment {
	return e.enclosing
}

// Define binds name in this scope only. Redefining a name in the same scope
// replaces the previous value.
func (e *Environment) Define(name string, v types.Value) {
	e.values[name] = v
}

// Get returns the value bound to name in the nearest scope that defines it.
func (e *Environment) Get(name token.Token) (types.Value, error) {
	if v, ok := e.Lookup(name.Lexeme); ok {
		return v, nil
	}
	return types.Nil(), errorf(name, "Undefined variable '%s'", name.Lexeme)
}

// Assign updates name in the nearest scope that defines it. It never creates
// a new binding.
func (e *Environment) Assign(name token.Token, v types.Value) error {
	for env := e; env != nil; env = env.enclosing {
		if _, ok := env.values[name.Lexeme]; ok {
			env.values[name.Lexeme] = v
			return nil
		}
	}
	return errorf(name, "Undefined variable '%s'", name.Lexeme)
}

// Lookup searches the scope chain for name.
func (e *Environment) Lookup(name string) (types.Value, bool) {
	for env := e; env != nil; env = env.enclosing {
		if v, ok := env.values[name]; ok {
			return v, true
		}
	}
	return types.Nil(), false
}
