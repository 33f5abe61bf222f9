// Package lexer provides ulox source code tokenization.
package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/kolkov/ulox/internal/token"
)

// Lexer tokenizes ulox source code.
// It never stops on bad input: errors are collected and scanning resumes
// with the next character.
type Lexer struct {
	src    []byte // Source code
	start  int    // Offset of the first byte of the current lexeme
	offset int    // Offset of the next unread byte
	line   int    // Current line (1-indexed)

	errors ErrorList
}

// New creates a new Lexer for the given source code.
func New(src []byte) *Lexer {
	return &Lexer{src: src, line: 1}
}

// NewFromString creates a new Lexer from a string.
func NewFromString(src string) *Lexer {
	return New([]byte(src))
}

// Scan tokenizes src completely. The returned slice always ends with exactly
// one EOF token, even when errors were reported.
func Scan(src string) ([]token.Token, ErrorList) {
	l := NewFromString(src)
	return l.ScanAll(), l.Errors()
}

// ScanAll scans the remaining input and returns every token up to and
// including EOF.
func (l *Lexer) ScanAll() []token.Token {
	var toks []token.Token
	for {
		tok := l.Scan()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Errors returns the lexical errors recorded so far.
func (l *Lexer) Errors() ErrorList {
	return l.errors
}

// Scan scans and returns the next token. After the input is exhausted it
// keeps returning EOF.
func (l *Lexer) Scan() token.Token {
	for !l.atEnd() {
		l.start = l.offset
		if tok, ok := l.scan(); ok {
			return tok
		}
	}
	l.start = l.offset
	return token.Token{Kind: token.EOF, Line: l.line}
}

// scan consumes one lexeme. It reports false for input that produces no
// token (whitespace, comments, errors).
func (l *Lexer) scan() (token.Token, bool) {
	ch := l.next()

	switch ch {
	case '(':
		return l.emit(token.LEFT_PAREN), true
	case ')':
		return l.emit(token.RIGHT_PAREN), true
	case '{':
		return l.emit(token.LEFT_BRACE), true
	case '}':
		return l.emit(token.RIGHT_BRACE), true
	case ',':
		return l.emit(token.COMMA), true
	case '.':
		return l.emit(token.DOT), true
	case '-':
		return l.emit(token.MINUS), true
	case '+':
		return l.emit(token.PLUS), true
	case ';':
		return l.emit(token.SEMICOLON), true
	case '*':
		return l.emit(token.STAR), true

	case '!':
		if l.match('=') {
			return l.emit(token.BANG_EQUAL), true
		}
		return l.emit(token.BANG), true
	case '=':
		if l.match('=') {
			return l.emit(token.EQUAL_EQUAL), true
		}
		return l.emit(token.EQUAL), true
	case '<':
		if l.match('=') {
			return l.emit(token.LESS_EQUAL), true
		}
		return l.emit(token.LESS), true
	case '>':
		if l.match('=') {
			return l.emit(token.GREATER_EQUAL), true
		}
		return l.emit(token.GREATER), true

	case '/':
		switch {
		case l.match('/'):
			l.skipLineComment()
			return token.Token{}, false
		case l.match('*'):
			l.skipBlockComment()
			return token.Token{}, false
		}
		return l.emit(token.SLASH), true

	case ' ', '\r', '\t':
		return token.Token{}, false
	case '\n':
		l.line++
		return token.Token{}, false

	case '"':
		return l.scanString()

	default:
		if isDigit(ch) {
			return l.scanNumber(), true
		}
		if isIdentStart(ch) {
			return l.scanIdent(), true
		}
		l.unexpected()
		return token.Token{}, false
	}
}

func (l *Lexer) scanString() (token.Token, bool) {
	for l.peek() != '"' && !l.atEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		l.next()
	}

	if l.atEnd() {
		l.errors.Add(l.line, "Unterminated string")
		return token.Token{}, false
	}
	l.next() // closing quote

	value := string(l.src[l.start+1 : l.offset-1])
	return l.emitLiteral(token.STRING, value), true
}

func (l *Lexer) scanNumber() token.Token {
	for isDigit(l.peek()) {
		l.next()
	}
	// A trailing '.' without a digit after it belongs to the next token.
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.next()
		for isDigit(l.peek()) {
			l.next()
		}
	}

	n, _ := strconv.ParseFloat(string(l.src[l.start:l.offset]), 64)
	return l.emitLiteral(token.NUMBER, n)
}

func (l *Lexer) scanIdent() token.Token {
	for isIdentContinue(l.peek()) {
		l.next()
	}
	return l.emit(token.LookupIdent(string(l.src[l.start:l.offset])))
}

func (l *Lexer) skipLineComment() {
	for l.peek() != '\n' && !l.atEnd() {
		l.next()
	}
}

// skipBlockComment consumes up to and including the first "*/". Nesting is
// not supported; an unclosed comment runs to the end of input.
func (l *Lexer) skipBlockComment() {
	for !l.atEnd() {
		ch := l.next()
		if ch == '\n' {
			l.line++
		}
		if ch == '*' && l.peek() == '/' {
			l.next()
			return
		}
	}
}

// unexpected records the character starting at l.start as an error.
// Multi-byte UTF-8 sequences are consumed and reported as one character.
func (l *Lexer) unexpected() {
	r, size := utf8.DecodeRune(l.src[l.start:])
	if size > 1 {
		l.offset = l.start + size
	}
	l.errors.Add(l.line, "Unexpected character '%c'", r)
}

func (l *Lexer) emit(kind token.Kind) token.Token {
	return l.emitLiteral(kind, nil)
}

func (l *Lexer) emitLiteral(kind token.Kind, literal any) token.Token {
	return token.Token{
		Kind:    kind,
		Lexeme:  string(l.src[l.start:l.offset]),
		Literal: literal,
		Line:    l.line,
	}
}

// Character helpers

func (l *Lexer) atEnd() bool {
	return l.offset >= len(l.src)
}

func (l *Lexer) next() byte {
	ch := l.src[l.offset]
	l.offset++
	return ch
}

func (l *Lexer) match(expected byte) bool {
	if l.atEnd() || l.src[l.offset] != expected {
		return false
	}
	l.offset++
	return true
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.offset]
}

func (l *Lexer) peekNext() byte {
	if l.offset+1 >= len(l.src) {
		return 0
	}
	return l.src[l.offset+1]
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isIdentStart(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentContinue(ch byte) bool {
	return isIdentStart(ch) || isDigit(ch)
}
