package ast

import (
	"fmt"
	"io"
	"strings"
)

// Printer provides pretty-printing for AST nodes.
// Statements are printed in source form; expressions are printed as fully
// parenthesized prefix forms, e.g. (+ 1 (* 2 3)), so precedence and
// associativity are explicit.
type Printer struct {
	w      io.Writer
	indent int
	err    error
}

// NewPrinter creates a new Printer that writes to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes a pretty-printed representation of the node to the writer.
func (p *Printer) Print(node Node) error {
	p.printNode(node)
	return p.err
}

func (p *Printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

func (p *Printer) writeIndent() {
	if p.err != nil {
		return
	}
	for i := 0; i < p.indent; i++ {
		_, p.err = io.WriteString(p.w, "    ")
	}
}

func (p *Printer) printNode(node Node) {
	if node == nil {
		p.printf("<nil>")
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			p.printStmt(s)
			p.printf("\n")
		}
	case Expr:
		p.printExpr(n)
	case Stmt:
		p.printStmt(n)
	default:
		p.printf("<%T>", node)
	}
}

func (p *Printer) printExpr(e Expr) {
	if e == nil {
		p.printf("<nil>")
		return
	}

	switch n := e.(type) {
	case *Literal:
		if n.Value.IsStr() {
			p.printf("%q", n.Value.AsStr())
		} else {
			p.printf("%s", n.Value)
		}

	case *GroupExpr:
		p.parenthesize("group", n.Expr)

	case *Ident:
		p.printf("%s", n.Name.Lexeme)

	case *AssignExpr:
		p.printf("(= %s ", n.Name.Lexeme)
		p.printExpr(n.Value)
		p.printf(")")

	case *UnaryExpr:
		p.parenthesize(n.Op.Lexeme, n.Right)

	case *BinaryExpr:
		p.parenthesize(n.Op.Lexeme, n.Left, n.Right)

	case *LogicalExpr:
		p.parenthesize(n.Op.Lexeme, n.Left, n.Right)

	case *CallExpr:
		p.parenthesize("call", append([]Expr{n.Callee}, n.Args...)...)

	default:
		p.printf("<%T>", e)
	}
}

func (p *Printer) parenthesize(name string, exprs ...Expr) {
	p.printf("(%s", name)
	for _, e := range exprs {
		p.printf(" ")
		p.printExpr(e)
	}
	p.printf(")")
}

func (p *Printer) printBlock(stmts []Stmt) {
	p.printf("{\n")
	p.indent++
	for _, stmt := range stmts {
		p.writeIndent()
		p.printStmt(stmt)
		p.printf("\n")
	}
	p.indent--
	p.writeIndent()
	p.printf("}")
}

func (p *Printer) printStmt(s Stmt) {
	if s == nil {
		p.printf("<nil>")
		return
	}

	switch n := s.(type) {
	case *ExprStmt:
		p.printExpr(n.Expr)
		p.printf(";")

	case *PrintStmt:
		p.printf("print ")
		p.printExpr(n.Expr)
		p.printf(";")

	case *VarDecl:
		p.printf("var %s", n.Name.Lexeme)
		if n.Init != nil {
			p.printf(" = ")
			p.printExpr(n.Init)
		}
		p.printf(";")

	case *BlockStmt:
		p.printBlock(n.Stmts)

	case *IfStmt:
		p.printf("if ")
		p.printExpr(n.Cond)
		p.printf(" ")
		p.printStmt(n.Then)
		if n.Else != nil {
			p.printf(" else ")
			p.printStmt(n.Else)
		}

	case *WhileStmt:
		p.printf("while ")
		p.printExpr(n.Cond)
		p.printf(" ")
		p.printStmt(n.Body)

	case *BreakStmt:
		p.printf("break;")

	case *FuncDecl:
		params := make([]string, len(n.Params))
		for i, param := range n.Params {
			params[i] = param.Lexeme
		}
		p.printf("fun %s(%s) ", n.Name.Lexeme, strings.Join(params, ", "))
		p.printBlock(n.Body)

	case *ReturnStmt:
		p.printf("return")
		if n.Value != nil {
			p.printf(" ")
			p.printExpr(n.Value)
		}
		p.printf(";")

	case *BadStmt:
		p.printf("<bad statement at line %d>", n.StartLine)

	default:
		p.printf("<%T>", s)
	}
}

// String returns a string representation of the node.
func String(node Node) string {
	var sb strings.Builder
	p := NewPrinter(&sb)
	p.Print(node)
	return sb.String()
}
