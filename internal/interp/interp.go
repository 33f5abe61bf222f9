// Package interp implements the tree-walking evaluator for ulox.
//
// Statements execute against an explicit *Environment parameter, so leaving
// a block restores the outer scope on every exit path without any saved
// state. Return and break are reported as completion values, never as
// errors; the only errors produced are *RuntimeError values, write errors
// from the output writer and ErrBadProgram.
package interp

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/kolkov/ulox/internal/ast"
	"github.com/kolkov/ulox/internal/runtime"
	"github.com/kolkov/ulox/internal/token"
	"github.com/kolkov/ulox/internal/types"
)

// flow tells the caller of execute how a statement completed.
type flow uint8

const (
	flowNormal flow = iota // fell off the end
	flowReturn             // return statement; value holds the result
	flowBreak              // break statement
)

// completion is the result of executing one statement.
type completion struct {
	kind  flow
	value types.Value
}

var normal = completion{}

// Interpreter executes ulox programs. It is not safe for concurrent use.
type Interpreter struct {
	globals *Environment
	out     io.Writer
	regexes *runtime.RegexCache
	now     func() time.Time
}

// ErrBadProgram is returned by Run for a tree that still holds statements
// that failed to parse.
var ErrBadProgram = errors.New("program contains statements that failed to parse")

// Option configures an Interpreter created by New.
type Option func(*Interpreter)

// WithRegexCache makes the regex natives use c, which may be shared with
// other interpreters.
func WithRegexCache(c *runtime.RegexCache) Option {
	return func(in *Interpreter) { in.regexes = c }
}

// WithOutput sets the writer print statements write to.
func WithOutput(w io.Writer) Option {
	return func(in *Interpreter) { in.out = w }
}

// New creates an interpreter writing print output to os.Stdout, with the
// native functions defined in its global scope.
func New(opts ...Option) *Interpreter {
	in := &Interpreter{
		globals: NewEnvironment(nil),
		out:     os.Stdout,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(in)
	}
	if in.regexes == nil {
		in.regexes = runtime.NewRegexCache(runtime.DefaultCacheSize)
	}
	in.defineNatives()
	return in
}

// SetOutput sets the writer print statements write to.
func (in *Interpreter) SetOutput(w io.Writer) {
	in.out = w
}

// SetVar defines a global string variable, overwriting any existing binding.
func (in *Interpreter) SetVar(name, value string) {
	in.globals.Define(name, types.Str(value))
}

// Globals returns the global scope.
func (in *Interpreter) Globals() *Environment {
	return in.globals
}

// Run executes a parsed program. A program holding a *ast.BadStmt is
// rejected with ErrBadProgram before any statement runs.
func (in *Interpreter) Run(prog *ast.Program) error {
	if prog.HasErrors() {
		return ErrBadProgram
	}
	return in.Interpret(prog.Stmts)
}

// Interpret executes stmts in order in the global scope. It stops at the
// first runtime error and returns it; later statements do not run.
func (in *Interpreter) Interpret(stmts []ast.Stmt) error {
	for _, s := range stmts {
		if _, err := in.execute(s, in.globals); err != nil {
			return err
		}
	}
	return nil
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (in *Interpreter) execute(s ast.Stmt, env *Environment) (completion, error) {
	switch n := s.(type) {
	case *ast.ExprStmt:
		_, err := in.evaluate(n.Expr, env)
		return normal, err

	case *ast.PrintStmt:
		v, err := in.evaluate(n.Expr, env)
		if err != nil {
			return normal, err
		}
		_, err = fmt.Fprintln(in.out, v.String())
		return normal, err

	case *ast.VarDecl:
		v := types.Nil()
		if n.Init != nil {
			var err error
			if v, err = in.evaluate(n.Init, env); err != nil {
				return normal, err
			}
		}
		env.Define(n.Name.Lexeme, v)
		return normal, nil

	case *ast.BlockStmt:
		return in.executeBlock(n.Stmts, NewEnvironment(env))

	case *ast.IfStmt:
		cond, err := in.evaluate(n.Cond, env)
		if err != nil {
			return normal, err
		}
		if cond.Truthy() {
			return in.execute(n.Then, env)
		}
		if n.Else != nil {
			return in.execute(n.Else, env)
		}
		return normal, nil

	case *ast.WhileStmt:
		return in.executeWhile(n, env)

	case *ast.BreakStmt:
		return completion{kind: flowBreak}, nil

	case *ast.FuncDecl:
		fn := &Function{decl: n, closure: env, interp: in}
		env.Define(n.Name.Lexeme, types.Func(fn))
		return normal, nil

	case *ast.ReturnStmt:
		v := types.Nil()
		if n.Value != nil {
			var err error
			if v, err = in.evaluate(n.Value, env); err != nil {
				return normal, err
			}
		}
		return completion{kind: flowReturn, value: v}, nil

	case *ast.BadStmt:
		return normal, fmt.Errorf("interp: cannot execute statement with syntax errors at line %d", n.Line())

	default:
		return normal, fmt.Errorf("interp: unexpected statement %T", s)
	}
}

// executeBlock runs stmts in env, stopping at the first statement that does
// not complete normally.
func (in *Interpreter) executeBlock(stmts []ast.Stmt, env *Environment) (completion, error) {
	for _, s := range stmts {
		c, err := in.execute(s, env)
		if err != nil || c.kind != flowNormal {
			return c, err
		}
	}
	return normal, nil
}

// executeWhile consumes a break from its body and passes a return through.
func (in *Interpreter) executeWhile(n *ast.WhileStmt, env *Environment) (completion, error) {
	for {
		cond, err := in.evaluate(n.Cond, env)
		if err != nil {
			return normal, err
		}
		if !cond.Truthy() {
			return normal, nil
		}

		c, err := in.execute(n.Body, env)
		if err != nil {
			return normal, err
		}
		switch c.kind {
		case flowBreak:
			return normal, nil
		case flowReturn:
			return c, nil
		}
	}
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

func (in *Interpreter) evaluate(e ast.Expr, env *Environment) (types.Value, error) {
	switch n := e.(type) {
	case *ast.Literal:
		return n.Value, nil

	case *ast.GroupExpr:
		return in.evaluate(n.Expr, env)

	case *ast.Ident:
		return env.Get(n.Name)

	case *ast.AssignExpr:
		v, err := in.evaluate(n.Value, env)
		if err != nil {
			return types.Nil(), err
		}
		if err := env.Assign(n.Name, v); err != nil {
			return types.Nil(), err
		}
		return v, nil

	case *ast.UnaryExpr:
		return in.evaluateUnary(n, env)

	case *ast.BinaryExpr:
		return in.evaluateBinary(n, env)

	case *ast.LogicalExpr:
		left, err := in.evaluate(n.Left, env)
		if err != nil {
			return types.Nil(), err
		}
		if n.Op.Kind == token.OR {
			if left.Truthy() {
				return left, nil
			}
		} else if !left.Truthy() {
			return left, nil
		}
		return in.evaluate(n.Right, env)

	case *ast.CallExpr:
		return in.evaluateCall(n, env)

	default:
		return types.Nil(), fmt.Errorf("interp: unexpected expression %T", e)
	}
}

func (in *Interpreter) evaluateUnary(n *ast.UnaryExpr, env *Environment) (types.Value, error) {
	right, err := in.evaluate(n.Right, env)
	if err != nil {
		return types.Nil(), err
	}

	switch n.Op.Kind {
	case token.MINUS:
		if !right.IsNum() {
			return types.Nil(), errorf(n.Op, "Operand must be a number")
		}
		return types.Num(-right.AsNum()), nil
	case token.BANG:
		return types.Bool(!right.Truthy()), nil
	default:
		return types.Nil(), errorf(n.Op, "Unknown unary operator '%s'", n.Op.Lexeme)
	}
}

func (in *Interpreter) evaluateBinary(n *ast.BinaryExpr, env *Environment) (types.Value, error) {
	left, err := in.evaluate(n.Left, env)
	if err != nil {
		return types.Nil(), err
	}
	right, err := in.evaluate(n.Right, env)
	if err != nil {
		return types.Nil(), err
	}

	switch n.Op.Kind {
	case token.EQUAL_EQUAL:
		return types.Bool(types.Equal(left, right)), nil
	case token.BANG_EQUAL:
		return types.Bool(!types.Equal(left, right)), nil

	case token.PLUS:
		switch {
		case left.IsNum() && right.IsNum():
			return types.Num(left.AsNum() + right.AsNum()), nil
		case left.IsStr() && right.IsStr():
			return types.Str(left.AsStr() + right.AsStr()), nil
		}
		return types.Nil(), errorf(n.Op, "Operands must be two numbers or two strings")
	}

	if !left.IsNum() || !right.IsNum() {
		return types.Nil(), errorf(n.Op, "Operands must be numbers")
	}
	a, b := left.AsNum(), right.AsNum()

	switch n.Op.Kind {
	case token.MINUS:
		return types.Num(a - b), nil
	case token.STAR:
		return types.Num(a * b), nil
	case token.SLASH:
		return types.Num(a / b), nil
	case token.GREATER:
		return types.Bool(a > b), nil
	case token.GREATER_EQUAL:
		return types.Bool(a >= b), nil
	case token.LESS:
		return types.Bool(a < b), nil
	case token.LESS_EQUAL:
		return types.Bool(a <= b), nil
	default:
		return types.Nil(), errorf(n.Op, "Unknown binary operator '%s'", n.Op.Lexeme)
	}
}

func (in *Interpreter) evaluateCall(n *ast.CallExpr, env *Environment) (types.Value, error) {
	callee, err := in.evaluate(n.Callee, env)
	if err != nil {
		return types.Nil(), err
	}

	args := make([]types.Value, len(n.Args))
	for i, arg := range n.Args {
		if args[i], err = in.evaluate(arg, env); err != nil {
			return types.Nil(), err
		}
	}

	fn, ok := callee.AsCallable()
	if !ok {
		return types.Nil(), errorf(n.Paren, "Can only call functions and classes")
	}
	if len(args) != fn.Arity() {
		return types.Nil(), errorf(n.Paren, "Expected %d but got %d arguments", fn.Arity(), len(args))
	}

	result, err := fn.Call(args)
	if err != nil {
		if _, ok := err.(*RuntimeError); ok {
			return types.Nil(), err
		}
		if _, ok := fn.(*Native); ok {
			return types.Nil(), &RuntimeError{Token: n.Paren, Message: err.Error()}
		}
		return types.Nil(), err
	}
	return result, nil
}
