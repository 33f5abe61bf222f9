package interp

import (
	"github.com/kolkov/ulox/internal/ast"
	"github.com/kolkov/ulox/internal/types"
)

// Function is a user-defined function together with the environment it was
// declared in.
type Function struct {
	decl    *ast.FuncDecl
	closure *Environment
	interp  *Interpreter
}

// Name returns the declared function name.
func (f *Function) Name() string {
	return f.decl.Name.Lexeme
}

// Arity returns the number of declared parameters.
func (f *Function) Arity() int {
	return len(f.decl.Params)
}

// Call binds args to the parameters in a fresh scope enclosed by the closure
// and runs the body there. A function without a return statement yields nil.
func (f *Function) Call(args []types.Value) (types.Value, error) {
	env := NewEnvironment(f.closure)
	for i, param := range f.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	c, err := f.interp.executeBlock(f.decl.Body, env)
	if err != nil {
		return types.Nil(), err
	}
	if c.kind == flowReturn {
		return c.value, nil
	}
	return types.Nil(), nil
}

func (f *Function) String() string {
	return "<fn " + f.Name() + ">"
}

// NativeFunc implements a native function body. The interpreter has already
// checked len(args) against the arity. A returned error that is not a
// *RuntimeError is reported at the call site.
type NativeFunc func(args []types.Value) (types.Value, error)

// Native is a function implemented in Go.
type Native struct {
	name  string
	arity int
	fn    NativeFunc
}

// NewNative creates a native function.
func NewNative(name string, arity int, fn NativeFunc) *Native {
	return &Native{name: name, arity: arity, fn: fn}
}

// Name returns the global name the native is bound to.
func (n *Native) Name() string {
	return n.name
}

// Arity returns the fixed number of arguments.
func (n *Native) Arity() int {
	return n.arity
}

// Call runs the native.
func (n *Native) Call(args []types.Value) (types.Value, error) {
	return n.fn(args)
}

func (n *Native) String() string {
	return "<native fn>"
}

var (
	_ types.Callable = (*Function)(nil)
	_ types.Callable = (*Native)(nil)
)
