package ast

// Walk traverses an AST in depth-first order.
// For each node, it calls fn(node). If fn returns false,
// the children of that node are not visited.
//
// Example: Count all variable references
//
//	count := 0
//	ast.Walk(program, func(n ast.Node) bool {
//	    if _, ok := n.(*ast.Ident); ok {
//	        count++
//	    }
//	    return true // continue traversal
//	})
func Walk(node Node, fn func(Node) bool) {
	Inspect(node, func(n, _ Node) bool { return fn(n) })
}

// Inspect traverses an AST like Walk but also passes each node's parent
// (nil for the root).
func Inspect(node Node, fn func(node, parent Node) bool) {
	inspect(node, nil, fn)
}

func inspect(node, parent Node, fn func(node, parent Node) bool) {
	if node == nil || !fn(node, parent) {
		return
	}

	switch n := node.(type) {
	case *Program:
		for _, s := range n.Stmts {
			inspect(s, n, fn)
		}

	// Expressions
	case *Literal, *Ident:
		// leaves

	case *GroupExpr:
		inspect(n.Expr, n, fn)

	case *AssignExpr:
		inspect(n.Value, n, fn)

	case *UnaryExpr:
		inspect(n.Right, n, fn)

	case *BinaryExpr:
		inspect(n.Left, n, fn)
		inspect(n.Right, n, fn)

	case *LogicalExpr:
		inspect(n.Left, n, fn)
		inspect(n.Right, n, fn)

	case *CallExpr:
		inspect(n.Callee, n, fn)
		for _, arg := range n.Args {
			inspect(arg, n, fn)
		}

	// Statements
	case *ExprStmt:
		inspect(n.Expr, n, fn)

	case *PrintStmt:
		inspect(n.Expr, n, fn)

	case *VarDecl:
		inspect(n.Init, n, fn)

	case *BlockStmt:
		for _, s := range n.Stmts {
			inspect(s, n, fn)
		}

	case *IfStmt:
		inspect(n.Cond, n, fn)
		inspect(n.Then, n, fn)
		inspect(n.Else, n, fn)

	case *WhileStmt:
		inspect(n.Cond, n, fn)
		inspect(n.Body, n, fn)

	case *FuncDecl:
		for _, s := range n.Body {
			inspect(s, n, fn)
		}

	case *ReturnStmt:
		inspect(n.Value, n, fn)

	case *BreakStmt, *BadStmt:
		// no children
	}
}
