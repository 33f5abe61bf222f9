package ast

import (
	"github.com/kolkov/ulox/internal/token"
	"github.com/kolkov/ulox/internal/types"
)

// -----------------------------------------------------------------------------
// Atoms
// -----------------------------------------------------------------------------

// Literal represents a constant.
// Examples: 42, 3.14, "hi", true, nil
type Literal struct {
	BaseExpr
	Value types.Value
}

// GroupExpr represents a parenthesized expression.
// Example: (a + b)
type GroupExpr struct {
	BaseExpr
	Expr Expr
}

// -----------------------------------------------------------------------------
// Variables
// -----------------------------------------------------------------------------

// Ident represents a variable reference.
type Ident struct {
	BaseExpr
	Name token.Token // IDENTIFIER token; used for lookup and error lines
}

// AssignExpr represents an assignment to an existing variable.
// Example: x = y = 3
type AssignExpr struct {
	BaseExpr
	Name  token.Token // Target variable
	Value Expr
}

// -----------------------------------------------------------------------------
// Operations
// -----------------------------------------------------------------------------

// UnaryExpr represents a prefix operator.
// Examples: -x, !done
type UnaryExpr struct {
	BaseExpr
	Op    token.Token // MINUS or BANG
	Right Expr
}

// BinaryExpr represents an arithmetic, comparison or equality operation.
// Examples: a + b, x <= 10, s == "y"
type BinaryExpr struct {
	BaseExpr
	Left  Expr
	Op    token.Token
	Right Expr
}

// LogicalExpr represents a short-circuit 'and' or 'or'.
type LogicalExpr struct {
	BaseExpr
	Left  Expr
	Op    token.Token // AND or OR
	Right Expr
}

// -----------------------------------------------------------------------------
// Calls
// -----------------------------------------------------------------------------

// CallExpr represents a function call.
// Examples: f(), add(1, 2), make()(3)
type CallExpr struct {
	BaseExpr
	Callee Expr
	Paren  token.Token // Closing parenthesis; its line is reported by call errors
	Args   []Expr
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Expr = (*Literal)(nil)
	_ Expr = (*GroupExpr)(nil)
	_ Expr = (*Ident)(nil)
	_ Expr = (*AssignExpr)(nil)
	_ Expr = (*UnaryExpr)(nil)
	_ Expr = (*BinaryExpr)(nil)
	_ Expr = (*LogicalExpr)(nil)
	_ Expr = (*CallExpr)(nil)
)
