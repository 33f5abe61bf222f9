// Package ast defines the abstract syntax tree for ulox programs.
//
// Node hierarchy:
//
//	Node (interface)
//	├── Expr (interface) - expressions that produce values
//	│   ├── Literal, GroupExpr - atoms
//	│   ├── Ident, AssignExpr - variable access
//	│   ├── UnaryExpr, BinaryExpr, LogicalExpr - operations
//	│   └── CallExpr - calls
//	├── Stmt (interface) - statements that perform actions
//	│   ├── ExprStmt, PrintStmt, VarDecl - basic
//	│   ├── BlockStmt, IfStmt, WhileStmt - structured
//	│   ├── FuncDecl, ReturnStmt, BreakStmt - functions and control
//	│   └── BadStmt - placeholder for a declaration that failed to parse
//	└── Program - top-level statement list
//
// Nodes are never mutated after the parser builds them, so a tree may be
// shared by any number of interpreters.
package ast

import "github.com/kolkov/ulox/internal/types"

// Node is the interface implemented by all AST nodes.
type Node interface {
	// Line returns the source line of the node's first token.
	Line() int
}

// Expr is the interface for all expression nodes.
// Expressions are AST nodes that evaluate to a value.
type Expr interface {
	Node
	exprNode() // marker method to prevent external implementations
}

// Stmt is the interface for all statement nodes.
// Statements are AST nodes that perform actions.
type Stmt interface {
	Node
	stmtNode() // marker method to prevent external implementations
}

// BaseExpr provides common fields for all expression nodes.
type BaseExpr struct {
	StartLine int // Line of first token
}

func (b *BaseExpr) Line() int { return b.StartLine }
func (b *BaseExpr) exprNode() {}

// BaseStmt provides common fields for all statement nodes.
type BaseStmt struct {
	StartLine int // Line of first token
}

func (b *BaseStmt) Line() int { return b.StartLine }
func (b *BaseStmt) stmtNode() {}

// IsAssignable returns true if the expression may appear on the left-hand
// side of '='. Only bare variables qualify.
func IsAssignable(e Expr) bool {
	_, ok := e.(*Ident)
	return ok
}

// -----------------------------------------------------------------------------
// Constructor helpers
// -----------------------------------------------------------------------------

// MakeBaseExpr creates a BaseExpr starting at the given line.
func MakeBaseExpr(line int) BaseExpr {
	return BaseExpr{StartLine: line}
}

// MakeBaseStmt creates a BaseStmt starting at the given line.
func MakeBaseStmt(line int) BaseStmt {
	return BaseStmt{StartLine: line}
}

// Lit creates a literal node.
func Lit(line int, v types.Value) *Literal {
	return &Literal{BaseExpr: MakeBaseExpr(line), Value: v}
}
