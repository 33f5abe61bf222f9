package ast_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/kolkov/ulox/internal/ast"
	"github.com/kolkov/ulox/internal/token"
	"github.com/kolkov/ulox/internal/types"
)

func ident(name string, line int) token.Token {
	return token.Token{Kind: token.IDENTIFIER, Lexeme: name, Line: line}
}

func op(kind token.Kind, lexeme string) token.Token {
	return token.Token{Kind: kind, Lexeme: lexeme, Line: 1}
}

// TestNodeLine verifies all node types report their starting line.
func TestNodeLine(t *testing.T) {
	base := ast.MakeBaseExpr(7)
	sbase := ast.MakeBaseStmt(7)

	tests := []struct {
		name string
		node ast.Node
	}{
		{"Literal", &ast.Literal{BaseExpr: base}},
		{"GroupExpr", &ast.GroupExpr{BaseExpr: base}},
		{"Ident", &ast.Ident{BaseExpr: base}},
		{"AssignExpr", &ast.AssignExpr{BaseExpr: base}},
		{"UnaryExpr", &ast.UnaryExpr{BaseExpr: base}},
		{"BinaryExpr", &ast.BinaryExpr{BaseExpr: base}},
		{"LogicalExpr", &ast.LogicalExpr{BaseExpr: base}},
		{"CallExpr", &ast.CallExpr{BaseExpr: base}},

		{"ExprStmt", &ast.ExprStmt{BaseStmt: sbase}},
		{"PrintStmt", &ast.PrintStmt{BaseStmt: sbase}},
		{"VarDecl", &ast.VarDecl{BaseStmt: sbase}},
		{"BlockStmt", &ast.BlockStmt{BaseStmt: sbase}},
		{"IfStmt", &ast.IfStmt{BaseStmt: sbase}},
		{"WhileStmt", &ast.WhileStmt{BaseStmt: sbase}},
		{"BreakStmt", &ast.BreakStmt{BaseStmt: sbase}},
		{"FuncDecl", &ast.FuncDecl{BaseStmt: sbase}},
		{"ReturnStmt", &ast.ReturnStmt{BaseStmt: sbase}},
		{"BadStmt", &ast.BadStmt{BaseStmt: sbase}},

		{"Program", &ast.Program{Stmts: []ast.Stmt{&ast.ExprStmt{BaseStmt: sbase}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.node.Line(); got != 7 {
				t.Errorf("Line() = %d, want 7", got)
			}
		})
	}

	if got := (&ast.Program{}).Line(); got != 1 {
		t.Errorf("empty Program Line() = %d, want 1", got)
	}
}

func TestIsAssignable(t *testing.T) {
	tests := []struct {
		name   string
		expr   ast.Expr
		expect bool
	}{
		{"Ident", &ast.Ident{Name: ident("x", 1)}, true},
		{"Literal", ast.Lit(1, types.Num(1)), false},
		{"GroupExpr", &ast.GroupExpr{Expr: &ast.Ident{Name: ident("x", 1)}}, false},
		{"CallExpr", &ast.CallExpr{Callee: &ast.Ident{Name: ident("f", 1)}}, false},
		{"AssignExpr", &ast.AssignExpr{Name: ident("x", 1), Value: ast.Lit(1, types.Nil())}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.IsAssignable(tt.expr); got != tt.expect {
				t.Errorf("IsAssignable(%s) = %v, want %v", tt.name, got, tt.expect)
			}
		})
	}
}

// TestWalk verifies AST walking works correctly.
func TestWalk(t *testing.T) {
	// Build: fun f(a) { print a + b; } if (x) f(1);
	prog := &ast.Program{
		Stmts: []ast.Stmt{
			&ast.FuncDecl{
				Name:   ident("f", 1),
				Params: []token.Token{ident("a", 1)},
				Body: []ast.Stmt{
					&ast.PrintStmt{
						Expr: &ast.BinaryExpr{
							Left:  &ast.Ident{Name: ident("a", 1)},
							Op:    op(token.PLUS, "+"),
							Right: &ast.Ident{Name: ident("b", 1)},
						},
					},
				},
			},
			&ast.IfStmt{
				Cond: &ast.Ident{Name: ident("x", 2)},
				Then: &ast.ExprStmt{
					Expr: &ast.CallExpr{
						Callee: &ast.Ident{Name: ident("f", 2)},
						Args:   []ast.Expr{ast.Lit(2, types.Num(1))},
					},
				},
			},
		},
	}

	var identCount, binaryCount, totalCount int

	ast.Walk(prog, func(n ast.Node) bool {
		totalCount++
		switch n.(type) {
		case *ast.Ident:
			identCount++
		case *ast.BinaryExpr:
			binaryCount++
		}
		return true
	})

	if identCount != 4 {
		t.Errorf("identCount = %d, want 4", identCount)
	}
	if binaryCount != 1 {
		t.Errorf("binaryCount = %d, want 1", binaryCount)
	}
	// Program, FuncDecl, PrintStmt, BinaryExpr, 2 Ident, IfStmt, Ident,
	// ExprStmt, CallExpr, Ident, Literal
	if totalCount != 12 {
		t.Errorf("totalCount = %d, want 12", totalCount)
	}
}

func TestWalkSkipsChildren(t *testing.T) {
	prog := &ast.Program{
		Stmts: []ast.Stmt{
			&ast.BlockStmt{Stmts: []ast.Stmt{
				&ast.PrintStmt{Expr: ast.Lit(1, types.Num(1))},
			}},
		},
	}

	var seenPrint bool
	ast.Walk(prog, func(n ast.Node) bool {
		if _, ok := n.(*ast.PrintStmt); ok {
			seenPrint = true
		}
		_, isBlock := n.(*ast.BlockStmt)
		return !isBlock
	})
	if seenPrint {
		t.Error("Walk visited children of a node whose callback returned false")
	}
}

// TestInspectWithParent verifies parent tracking in Inspect.
func TestInspectWithParent(t *testing.T) {
	group := &ast.GroupExpr{Expr: ast.Lit(1, types.Num(1))}
	prog := &ast.Program{
		Stmts: []ast.Stmt{&ast.ExprStmt{Expr: &ast.UnaryExpr{Op: op(token.MINUS, "-"), Right: group}}},
	}

	var litParent, rootParent ast.Node
	ast.Inspect(prog, func(n, parent ast.Node) bool {
		switch n.(type) {
		case *ast.Literal:
			litParent = parent
		case *ast.Program:
			rootParent = parent
		}
		return true
	})

	if litParent != group {
		t.Errorf("Literal parent = %T, want *GroupExpr", litParent)
	}
	if rootParent != nil {
		t.Errorf("Program parent = %T, want nil", rootParent)
	}
}

// TestPrinter verifies AST pretty-printing.
func TestPrinter(t *testing.T) {
	tests := []struct {
		name   string
		node   ast.Node
		expect string
	}{
		{"number", ast.Lit(1, types.Num(42)), "42"},
		{"float", ast.Lit(1, types.Num(3.14)), "3.14"},
		{"string", ast.Lit(1, types.Str("hi")), `"hi"`},
		{"nil", ast.Lit(1, types.Nil()), "nil"},
		{"bool", ast.Lit(1, types.Bool(true)), "true"},
		{"ident", &ast.Ident{Name: ident("x", 1)}, "x"},
		{
			"binary",
			&ast.BinaryExpr{
				Left: ast.Lit(1, types.Num(1)),
				Op:   op(token.PLUS, "+"),
				Right: &ast.BinaryExpr{
					Left:  ast.Lit(1, types.Num(2)),
					Op:    op(token.STAR, "*"),
					Right: ast.Lit(1, types.Num(3)),
				},
			},
			"(+ 1 (* 2 3))",
		},
		{
			"unary group",
			&ast.UnaryExpr{Op: op(token.MINUS, "-"), Right: &ast.GroupExpr{Expr: ast.Lit(1, types.Num(4))}},
			"(- (group 4))",
		},
		{
			"logical",
			&ast.LogicalExpr{Left: &ast.Ident{Name: ident("a", 1)}, Op: op(token.OR, "or"), Right: ast.Lit(1, types.Bool(false))},
			"(or a false)",
		},
		{
			"assign",
			&ast.AssignExpr{Name: ident("x", 1), Value: ast.Lit(1, types.Num(2))},
			"(= x 2)",
		},
		{
			"call",
			&ast.CallExpr{Callee: &ast.Ident{Name: ident("f", 1)}, Args: []ast.Expr{ast.Lit(1, types.Num(1)), ast.Lit(1, types.Str("s"))}},
			`(call f 1 "s")`,
		},
		{"print", &ast.PrintStmt{Expr: ast.Lit(1, types.Num(1))}, "print 1;"},
		{"var", &ast.VarDecl{Name: ident("a", 1)}, "var a;"},
		{"var init", &ast.VarDecl{Name: ident("a", 1), Init: ast.Lit(1, types.Num(1))}, "var a = 1;"},
		{"return", &ast.ReturnStmt{}, "return;"},
		{"break", &ast.BreakStmt{}, "break;"},
		{"bad", &ast.BadStmt{BaseStmt: ast.MakeBaseStmt(3)}, "<bad statement at line 3>"},
		{
			"if else",
			&ast.IfStmt{
				Cond: &ast.Ident{Name: ident("c", 1)},
				Then: &ast.PrintStmt{Expr: ast.Lit(1, types.Num(1))},
				Else: &ast.PrintStmt{Expr: ast.Lit(1, types.Num(2))},
			},
			"if c print 1; else print 2;",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ast.String(tt.node); got != tt.expect {
				t.Errorf("String() = %q, want %q", got, tt.expect)
			}
		})
	}
}

func TestProgramPrint(t *testing.T) {
	prog := &ast.Program{
		Stmts: []ast.Stmt{
			&ast.FuncDecl{
				Name:   ident("add", 1),
				Params: []token.Token{ident("a", 1), ident("b", 1)},
				Body: []ast.Stmt{
					&ast.ReturnStmt{Value: &ast.BinaryExpr{
						Left:  &ast.Ident{Name: ident("a", 1)},
						Op:    op(token.PLUS, "+"),
						Right: &ast.Ident{Name: ident("b", 1)},
					}},
				},
			},
			&ast.WhileStmt{
				Cond: ast.Lit(2, types.Bool(true)),
				Body: &ast.BlockStmt{Stmts: []ast.Stmt{&ast.BreakStmt{}}},
			},
		},
	}

	want := strings.Join([]string{
		"fun add(a, b) {",
		"    return (+ a b);",
		"}",
		"while true {",
		"    break;",
		"}",
		"",
	}, "\n")

	if got := ast.String(prog); got != want {
		t.Errorf("String() =\n%s\nwant:\n%s", got, want)
	}
}

func TestProgramHelpers(t *testing.T) {
	f := &ast.FuncDecl{Name: ident("f", 1)}
	g := &ast.FuncDecl{Name: ident("g", 3)}
	prog := &ast.Program{Stmts: []ast.Stmt{f, &ast.PrintStmt{Expr: ast.Lit(2, types.Nil())}, g}}

	funcs := prog.Functions()
	if len(funcs) != 2 || funcs[0] != f || funcs[1] != g {
		t.Errorf("Functions() = %v, want [f g]", funcs)
	}
	if prog.HasErrors() {
		t.Error("HasErrors() = true for a clean program")
	}

	prog.Stmts = append(prog.Stmts, &ast.BlockStmt{Stmts: []ast.Stmt{&ast.BadStmt{}}})
	if !prog.HasErrors() {
		t.Error("HasErrors() = false with a nested BadStmt")
	}
}

type failWriter struct{ n int }

func (w *failWriter) Write(p []byte) (int, error) {
	w.n++
	return 0, errors.New("write failed")
}

func TestPrinterStopsAfterWriteError(t *testing.T) {
	w := &failWriter{}
	prog := &ast.Program{Stmts: []ast.Stmt{
		&ast.PrintStmt{Expr: ast.Lit(1, types.Num(1))},
		&ast.PrintStmt{Expr: ast.Lit(2, types.Num(2))},
	}}

	if err := ast.NewPrinter(w).Print(prog); err == nil {
		t.Fatal("Print() error = nil, want write error")
	}
	if w.n != 1 {
		t.Errorf("writer called %d times after failure, want 1", w.n)
	}
}
