package ast

// Program represents a complete ulox script or one REPL line: a sequence of
// declarations executed in order.
type Program struct {
	// Top-level declarations. A declaration that failed to parse is kept as
	// a *BadStmt so statement positions are preserved.
	Stmts []Stmt
}

// Line returns the line of the first statement, or 1 for an empty program.
func (p *Program) Line() int {
	if len(p.Stmts) == 0 {
		return 1
	}
	return p.Stmts[0].Line()
}

// Functions returns the top-level function declarations in source order.
func (p *Program) Functions() []*FuncDecl {
	var funcs []*FuncDecl
	for _, s := range p.Stmts {
		if f, ok := s.(*FuncDecl); ok {
			funcs = append(funcs, f)
		}
	}
	return funcs
}

// HasErrors reports whether any statement in the program failed to parse.
func (p *Program) HasErrors() bool {
	bad := false
	Walk(p, func(n Node) bool {
		if _, ok := n.(*BadStmt); ok {
			bad = true
		}
		return !bad
	})
	return bad
}

var _ Node = (*Program)(nil)
