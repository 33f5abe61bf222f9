package parser

import (
	"errors"

	"github.com/kolkov/ulox/internal/ast"
	"github.com/kolkov/ulox/internal/lexer"
	"github.com/kolkov/ulox/internal/token"
	"github.com/kolkov/ulox/internal/types"
)

// Limits on call arguments and function parameters.
const (
	maxArgs   = 255
	maxParams = 255
)

// synchronizing statement starters
var syncKinds = [...]token.Kind{
	token.CLASS, token.FUN, token.VAR, token.FOR,
	token.IF, token.WHILE, token.PRINT, token.RETURN,
}

// bailout unwinds the parser to the nearest declaration after an error that
// leaves it without a sensible way to continue.
type bailout struct{}

// Parser is a recursive descent parser for ulox programs.
type Parser struct {
	toks   []token.Token // Token stream, always terminated by EOF
	pos    int           // Index of the current token
	errors ErrorList     // Accumulated errors

	// Parsing state
	funcDepth int // nesting depth of function bodies (for return validation)
	loopDepth int // nesting depth of loops in the current function (for break validation)
}

// Parse lexes and parses a ulox program from source code.
// Lexical and syntax errors are joined into the returned error.
func Parse(src string) (*ast.Program, error) {
	toks, lexErrs := lexer.Scan(src)
	prog, parseErrs := ParseTokens(toks)
	if err := errors.Join(lexErrs.Err(), parseErrs.Err()); err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseTokens parses a token stream. The program is always returned: each
// declaration that failed to parse appears as an *ast.BadStmt.
func ParseTokens(toks []token.Token) (*ast.Program, ErrorList) {
	p := newParser(toks)
	prog := p.parseProgram()
	return prog, p.errors
}

// ParseExpr parses a single expression (useful for testing).
func ParseExpr(src string) (expr ast.Expr, err error) {
	toks, lexErrs := lexer.Scan(src)
	if err := lexErrs.Err(); err != nil {
		return nil, err
	}
	p := newParser(toks)

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			expr, err = nil, p.errors
		}
	}()

	expr = p.expression()
	if !p.atEnd() {
		p.fail(p.peek(), "Expect end of expression")
	}
	if err := p.errors.Err(); err != nil {
		return nil, err
	}
	return expr, nil
}

func newParser(toks []token.Token) *Parser {
	if n := len(toks); n == 0 || toks[n-1].Kind != token.EOF {
		line := 1
		if n > 0 {
			line = toks[n-1].Line
		}
		toks = append(toks[:n:n], token.Token{Kind: token.EOF, Line: line})
	}
	return &Parser{toks: toks}
}

// -----------------------------------------------------------------------------
// Token handling
// -----------------------------------------------------------------------------

func (p *Parser) peek() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) previous() token.Token {
	if p.pos == 0 {
		return p.toks[0]
	}
	return p.toks[p.pos-1]
}

func (p *Parser) atEnd() bool {
	return p.peek().Kind == token.EOF
}

// advance consumes the current token and returns it. It never moves past EOF.
func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.pos++
	}
	return p.previous()
}

// check reports whether the current token is of the given kind.
func (p *Parser) check(kind token.Kind) bool {
	return !p.atEnd() && p.peek().Kind == kind
}

// match consumes the current token if it is one of kinds.
func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// expect consumes a token of the given kind or bails out with msg.
func (p *Parser) expect(kind token.Kind, msg string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.fail(p.peek(), msg)
	panic("unreachable")
}

// error records a parse error without interrupting the parse.
func (p *Parser) error(tok token.Token, msg string) {
	p.errors.Add(tok, msg)
}

// fail records a parse error and abandons the current declaration.
func (p *Parser) fail(tok token.Token, msg string) {
	p.error(tok, msg)
	panic(bailout{})
}

// synchronize discards tokens until just after a ';' or before a token that
// starts a statement.
func (p *Parser) synchronize() {
	p.advance()
	for !p.atEnd() {
		if p.previous().Kind == token.SEMICOLON {
			return
		}
		for _, k := range syncKinds {
			if p.peek().Kind == k {
				return
			}
		}
		p.advance()
	}
}

// -----------------------------------------------------------------------------
// Declarations
// -----------------------------------------------------------------------------

func (p *Parser) parseProgram() *ast.Program {
	prog := &ast.Program{}
	for !p.atEnd() {
		prog.Stmts = append(prog.Stmts, p.declaration())
	}
	return prog
}

// declaration parses one declaration. On a syntax error it resynchronizes
// and returns a *ast.BadStmt covering the skipped tokens.
func (p *Parser) declaration() (stmt ast.Stmt) {
	from := p.peek()
	funcDepth, loopDepth := p.funcDepth, p.loopDepth

	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(bailout); !ok {
				panic(r)
			}
			p.funcDepth, p.loopDepth = funcDepth, loopDepth
			p.synchronize()
			stmt = &ast.BadStmt{
				BaseStmt: ast.MakeBaseStmt(from.Line),
				From:     from,
				To:       p.previous(),
			}
		}
	}()

	switch {
	case p.match(token.FUN):
		return p.funDecl()
	case p.match(token.VAR):
		return p.varDecl()
	default:
		return p.statement()
	}
}

func (p *Parser) funDecl() *ast.FuncDecl {
	keyword := p.previous()
	name := p.expect(token.IDENTIFIER, "Expect function name")
	p.expect(token.LEFT_PAREN, "Expect '(' after function name")

	var params []token.Token
	seen := make(map[string]bool)
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(params) >= maxParams {
				p.error(p.peek(), "Can't have more than 255 parameters")
			}
			param := p.expect(token.IDENTIFIER, "Expect parameter name")
			if seen[param.Lexeme] {
				p.error(param, "Duplicate parameter '"+param.Lexeme+"'")
			}
			seen[param.Lexeme] = true
			params = append(params, param)
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	p.expect(token.RIGHT_PAREN, "Expect ')' after parameters")
	p.expect(token.LEFT_BRACE, "Expect '{' before function body")

	// break never crosses a function boundary
	loopDepth := p.loopDepth
	p.funcDepth++
	p.loopDepth = 0
	body := p.block()
	p.funcDepth--
	p.loopDepth = loopDepth

	return &ast.FuncDecl{
		BaseStmt: ast.MakeBaseStmt(keyword.Line),
		Name:     name,
		Params:   params,
		Body:     body,
	}
}

func (p *Parser) varDecl() *ast.VarDecl {
	keyword := p.previous()
	name := p.expect(token.IDENTIFIER, "Expect variable name")

	var init ast.Expr
	if p.match(token.EQUAL) {
		init = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after variable declaration")

	return &ast.VarDecl{
		BaseStmt: ast.MakeBaseStmt(keyword.Line),
		Name:     name,
		Init:     init,
	}
}

// -----------------------------------------------------------------------------
// Statements
// -----------------------------------------------------------------------------

func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.FOR):
		return p.forStmt()
	case p.match(token.IF):
		return p.ifStmt()
	case p.match(token.PRINT):
		return p.printStmt()
	case p.match(token.RETURN):
		return p.returnStmt()
	case p.match(token.WHILE):
		return p.whileStmt()
	case p.match(token.BREAK):
		return p.breakStmt()
	case p.match(token.LEFT_BRACE):
		line := p.previous().Line
		return &ast.BlockStmt{BaseStmt: ast.MakeBaseStmt(line), Stmts: p.block()}
	default:
		return p.exprStmt()
	}
}

// block parses declarations up to and including the closing '}'.
// The opening '{' has already been consumed.
func (p *Parser) block() []ast.Stmt {
	var stmts []ast.Stmt
	for !p.check(token.RIGHT_BRACE) && !p.atEnd() {
		stmts = append(stmts, p.declaration())
	}
	p.expect(token.RIGHT_BRACE, "Expect '}' after block")
	return stmts
}

func (p *Parser) printStmt() *ast.PrintStmt {
	line := p.previous().Line
	value := p.expression()
	p.expect(token.SEMICOLON, "Expect ';' after value")
	return &ast.PrintStmt{BaseStmt: ast.MakeBaseStmt(line), Expr: value}
}

func (p *Parser) exprStmt() *ast.ExprStmt {
	line := p.peek().Line
	expr := p.expression()
	p.expect(token.SEMICOLON, "Expect ';' after expression")
	return &ast.ExprStmt{BaseStmt: ast.MakeBaseStmt(line), Expr: expr}
}

func (p *Parser) ifStmt() *ast.IfStmt {
	line := p.previous().Line
	p.expect(token.LEFT_PAREN, "Expect '(' after 'if'")
	cond := p.expression()
	p.expect(token.RIGHT_PAREN, "Expect ')' after if condition")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.ELSE) {
		els = p.statement()
	}

	return &ast.IfStmt{
		BaseStmt: ast.MakeBaseStmt(line),
		Cond:     cond,
		Then:     then,
		Else:     els,
	}
}

func (p *Parser) whileStmt() *ast.WhileStmt {
	line := p.previous().Line
	p.expect(token.LEFT_PAREN, "Expect '(' after 'while'")
	cond := p.expression()
	p.expect(token.RIGHT_PAREN, "Expect ')' after condition")

	return &ast.WhileStmt{
		BaseStmt: ast.MakeBaseStmt(line),
		Cond:     cond,
		Body:     p.loopBody(),
	}
}

// forStmt desugars
//
//	for (init; cond; incr) body
//
// into
//
//	{ init; while (cond) { body; incr; } }
//
// with a missing condition replaced by true.
func (p *Parser) forStmt() *ast.BlockStmt {
	line := p.previous().Line
	p.expect(token.LEFT_PAREN, "Expect '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(token.SEMICOLON):
	case p.match(token.VAR):
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.SEMICOLON) {
		cond = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after loop condition")

	var incr ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		incr = p.expression()
	}
	p.expect(token.RIGHT_PAREN, "Expect ')' after for clauses")

	body := p.loopBody()

	if incr != nil {
		body = &ast.BlockStmt{
			BaseStmt: ast.MakeBaseStmt(body.Line()),
			Stmts: []ast.Stmt{
				body,
				&ast.ExprStmt{BaseStmt: ast.MakeBaseStmt(incr.Line()), Expr: incr},
			},
		}
	}
	if cond == nil {
		cond = ast.Lit(line, types.Bool(true))
	}
	loop := &ast.WhileStmt{BaseStmt: ast.MakeBaseStmt(line), Cond: cond, Body: body}

	outer := &ast.BlockStmt{BaseStmt: ast.MakeBaseStmt(line)}
	if init != nil {
		outer.Stmts = append(outer.Stmts, init)
	}
	outer.Stmts = append(outer.Stmts, loop)
	return outer
}

// loopBody parses a loop body with proper loop depth tracking.
func (p *Parser) loopBody() ast.Stmt {
	p.loopDepth++
	body := p.statement()
	p.loopDepth--
	return body
}

func (p *Parser) returnStmt() *ast.ReturnStmt {
	keyword := p.previous()
	if p.funcDepth == 0 {
		p.error(keyword, "Can't return from top-level code")
	}

	var value ast.Expr
	if !p.check(token.SEMICOLON) {
		value = p.expression()
	}
	p.expect(token.SEMICOLON, "Expect ';' after return value")

	return &ast.ReturnStmt{
		BaseStmt: ast.MakeBaseStmt(keyword.Line),
		Keyword:  keyword,
		Value:    value,
	}
}

func (p *Parser) breakStmt() *ast.BreakStmt {
	keyword := p.previous()
	if p.loopDepth == 0 {
		p.error(keyword, "Can't use 'break' outside of a loop")
	}
	p.expect(token.SEMICOLON, "Expect ';' after 'break'")

	return &ast.BreakStmt{BaseStmt: ast.MakeBaseStmt(keyword.Line), Keyword: keyword}
}

// -----------------------------------------------------------------------------
// Expressions
// -----------------------------------------------------------------------------

func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is right-associative. The target is parsed as an ordinary
// expression first and then checked, so a bad target is reported without
// losing the rest of the expression.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.EQUAL) {
		equals := p.previous()
		value := p.assignment()

		if ast.IsAssignable(expr) {
			id := expr.(*ast.Ident)
			return &ast.AssignExpr{
				BaseExpr: ast.MakeBaseExpr(id.Line()),
				Name:     id.Name,
				Value:    value,
			}
		}
		p.error(equals, "Invalid assignment target")
	}
	return expr
}

func (p *Parser) or() ast.Expr {
	return p.parseLogicalLeft(p.and, token.OR)
}

func (p *Parser) and() ast.Expr {
	return p.parseLogicalLeft(p.equality, token.AND)
}

func (p *Parser) equality() ast.Expr {
	return p.parseBinaryLeft(p.comparison, token.BANG_EQUAL, token.EQUAL_EQUAL)
}

func (p *Parser) comparison() ast.Expr {
	return p.parseBinaryLeft(p.term, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL)
}

func (p *Parser) term() ast.Expr {
	return p.parseBinaryLeft(p.factor, token.MINUS, token.PLUS)
}

func (p *Parser) factor() ast.Expr {
	return p.parseBinaryLeft(p.unary, token.SLASH, token.STAR)
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.BANG, token.MINUS) {
		op := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{BaseExpr: ast.MakeBaseExpr(op.Line), Op: op, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for p.match(token.LEFT_PAREN) {
		expr = p.finishCall(expr)
	}
	return expr
}

func (p *Parser) finishCall(callee ast.Expr) *ast.CallExpr {
	var args []ast.Expr
	if !p.check(token.RIGHT_PAREN) {
		for {
			if len(args) >= maxArgs {
				p.error(p.peek(), "Can't have more than 255 arguments")
			}
			args = append(args, p.expression())
			if !p.match(token.COMMA) {
				break
			}
		}
	}
	paren := p.expect(token.RIGHT_PAREN, "Expect ')' after arguments")

	return &ast.CallExpr{
		BaseExpr: ast.MakeBaseExpr(callee.Line()),
		Callee:   callee,
		Paren:    paren,
		Args:     args,
	}
}

func (p *Parser) primary() ast.Expr {
	tok := p.peek()

	switch {
	case p.match(token.FALSE):
		return ast.Lit(tok.Line, types.Bool(false))
	case p.match(token.TRUE):
		return ast.Lit(tok.Line, types.Bool(true))
	case p.match(token.NIL):
		return ast.Lit(tok.Line, types.Nil())
	case p.match(token.NUMBER, token.STRING):
		return ast.Lit(tok.Line, types.FromLiteral(tok.Literal))
	case p.match(token.IDENTIFIER):
		return &ast.Ident{BaseExpr: ast.MakeBaseExpr(tok.Line), Name: tok}
	case p.match(token.LEFT_PAREN):
		expr := p.expression()
		p.expect(token.RIGHT_PAREN, "Expect ')' after expression")
		return &ast.GroupExpr{BaseExpr: ast.MakeBaseExpr(tok.Line), Expr: expr}
	}

	p.fail(tok, "Expect expression")
	panic("unreachable")
}

// -----------------------------------------------------------------------------
// Helper functions
// -----------------------------------------------------------------------------

// parseBinaryLeft parses left-associative binary operators.
func (p *Parser) parseBinaryLeft(higher func() ast.Expr, ops ...token.Kind) ast.Expr {
	expr := higher()
	for p.match(ops...) {
		op := p.previous()
		right := higher()
		expr = &ast.BinaryExpr{
			BaseExpr: ast.MakeBaseExpr(expr.Line()),
			Left:     expr,
			Op:       op,
			Right:    right,
		}
	}
	return expr
}

// parseLogicalLeft parses left-associative short-circuit operators.
func (p *Parser) parseLogicalLeft(higher func() ast.Expr, op token.Kind) ast.Expr {
	expr := higher()
	for p.match(op) {
		opTok := p.previous()
		right := higher()
		expr = &ast.LogicalExpr{
			BaseExpr: ast.MakeBaseExpr(expr.Line()),
			Left:     expr,
			Op:       opTok,
			Right:    right,
		}
	}
	return expr
}
