package ast

import "github.com/kolkov/ulox/internal/token"

// -----------------------------------------------------------------------------
// Basic statements
// -----------------------------------------------------------------------------

// ExprStmt represents an expression evaluated for its side effects.
// Example: f(1);
type ExprStmt struct {
	BaseStmt
	Expr Expr
}

// PrintStmt writes the printed form of a value followed by a newline.
// Example: print a + 1;
type PrintStmt struct {
	BaseStmt
	Expr Expr
}

// VarDecl declares a variable in the current scope.
// Examples: var a; var b = 2;
type VarDecl struct {
	BaseStmt
	Name token.Token
	Init Expr // nil means the variable starts as nil
}

// BlockStmt introduces a new scope.
// Example: { var a = 1; print a; }
type BlockStmt struct {
	BaseStmt
	Stmts []Stmt
}

// -----------------------------------------------------------------------------
// Control flow
// -----------------------------------------------------------------------------

// IfStmt represents an if or if-else statement. A dangling else binds to the
// nearest if.
type IfStmt struct {
	BaseStmt
	Cond Expr
	Then Stmt
	Else Stmt // nil if no else
}

// WhileStmt represents a while loop. for loops are desugared into it.
type WhileStmt struct {
	BaseStmt
	Cond Expr
	Body Stmt
}

// BreakStmt exits the innermost enclosing loop.
type BreakStmt struct {
	BaseStmt
	Keyword token.Token
}

// -----------------------------------------------------------------------------
// Functions
// -----------------------------------------------------------------------------

// FuncDecl declares a named function in the current scope.
// Example: fun add(a, b) { return a + b; }
type FuncDecl struct {
	BaseStmt
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

// ReturnStmt exits the enclosing function.
type ReturnStmt struct {
	BaseStmt
	Keyword token.Token
	Value   Expr // nil means return nil
}

// -----------------------------------------------------------------------------
// Errors
// -----------------------------------------------------------------------------

// BadStmt is a placeholder for a declaration containing syntax errors.
// From and To delimit the tokens skipped during recovery.
type BadStmt struct {
	BaseStmt
	From token.Token
	To   token.Token
}

// -----------------------------------------------------------------------------
// Compile-time checks
// -----------------------------------------------------------------------------

var (
	_ Stmt = (*ExprStmt)(nil)
	_ Stmt = (*PrintStmt)(nil)
	_ Stmt = (*VarDecl)(nil)
	_ Stmt = (*BlockStmt)(nil)
	_ Stmt = (*IfStmt)(nil)
	_ Stmt = (*WhileStmt)(nil)
	_ Stmt = (*BreakStmt)(nil)
	_ Stmt = (*FuncDecl)(nil)
	_ Stmt = (*ReturnStmt)(nil)
	_ Stmt = (*BadStmt)(nil)
)
