// Package token defines lexical tokens for ulox.
package token

import "fmt"

// Kind represents a lexical token category.
type Kind uint8

const (
	// Special tokens
	ILLEGAL Kind = iota // <illegal>
	EOF                 // EOF

	// Operators and delimiters
	operatorStart
	LEFT_PAREN    // (
	RIGHT_PAREN   // )
	LEFT_BRACE    // {
	RIGHT_BRACE   // }
	COMMA         // ,
	DOT           // .
	MINUS         // -
	PLUS          // +
	SEMICOLON     // ;
	SLASH         // /
	STAR          // *
	BANG          // !
	BANG_EQUAL    // !=
	EQUAL         // =
	EQUAL_EQUAL   // ==
	GREATER       // >
	GREATER_EQUAL // >=
	LESS          // <
	LESS_EQUAL    // <=
	operatorEnd

	// Literals
	IDENTIFIER // identifier
	STRING     // string
	NUMBER     // number

	// Keywords
	keywordStart
	AND    // and
	BREAK  // break
	CLASS  // class
	ELSE   // else
	FALSE  // false
	FOR    // for
	FUN    // fun
	IF     // if
	NIL    // nil
	OR     // or
	PRINT  // print
	RETURN // return
	SUPER  // super
	THIS   // this
	TRUE   // true
	VAR    // var
	WHILE  // while
	keywordEnd
)

var kindNames = [...]string{
	ILLEGAL:       "ILLEGAL",
	EOF:           "EOF",
	LEFT_PAREN:    "LEFT_PAREN",
	RIGHT_PAREN:   "RIGHT_PAREN",
	LEFT_BRACE:    "LEFT_BRACE",
	RIGHT_BRACE:   "RIGHT_BRACE",
	COMMA:         "COMMA",
	DOT:           "DOT",
	MINUS:         "MINUS",
	PLUS:          "PLUS",
	SEMICOLON:     "SEMICOLON",
	SLASH:         "SLASH",
	STAR:          "STAR",
	BANG:          "BANG",
	BANG_EQUAL:    "BANG_EQUAL",
	EQUAL:         "EQUAL",
	EQUAL_EQUAL:   "EQUAL_EQUAL",
	GREATER:       "GREATER",
	GREATER_EQUAL: "GREATER_EQUAL",
	LESS:          "LESS",
	LESS_EQUAL:    "LESS_EQUAL",
	IDENTIFIER:    "IDENTIFIER",
	STRING:        "STRING",
	NUMBER:        "NUMBER",
	AND:           "AND",
	BREAK:         "BREAK",
	CLASS:         "CLASS",
	ELSE:          "ELSE",
	FALSE:         "FALSE",
	FOR:           "FOR",
	FUN:           "FUN",
	IF:            "IF",
	NIL:           "NIL",
	OR:            "OR",
	PRINT:         "PRINT",
	RETURN:        "RETURN",
	SUPER:         "SUPER",
	THIS:          "THIS",
	TRUE:          "TRUE",
	VAR:           "VAR",
	WHILE:         "WHILE",
}

// String returns the upper-case name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// IsOperator returns true if the kind is an operator or delimiter.
func (k Kind) IsOperator() bool {
	return k > operatorStart && k < operatorEnd
}

// IsKeyword returns true if the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

// IsLiteral returns true for identifiers, strings and numbers.
func (k Kind) IsLiteral() bool {
	return k == IDENTIFIER || k == STRING || k == NUMBER
}

// keywords maps reserved words to their token kinds.
var keywords = map[string]Kind{
	"and":    AND,
	"break":  BREAK,
	"class":  CLASS,
	"else":   ELSE,
	"false":  FALSE,
	"for":    FOR,
	"fun":    FUN,
	"if":     IF,
	"nil":    NIL,
	"or":     OR,
	"print":  PRINT,
	"return": RETURN,
	"super":  SUPER,
	"this":   THIS,
	"true":   TRUE,
	"var":    VAR,
	"while":  WHILE,
}

// LookupIdent returns the keyword kind for ident, or IDENTIFIER.
func LookupIdent(ident string) Kind {
	if k, ok := keywords[ident]; ok {
		return k
	}
	return IDENTIFIER
}

// Token is a scanned lexeme. Tokens are values and never change after the
// lexer creates them.
type Token struct {
	Kind    Kind
	Lexeme  string // exact source text
	Literal any    // float64 for NUMBER, string for STRING, nil otherwise
	Line    int    // 1-based source line
}

// String formats the token as "KIND lexeme literal".
func (t Token) String() string {
	lit := "null"
	switch v := t.Literal.(type) {
	case float64:
		lit = fmt.Sprint(v)
	case string:
		lit = v
	}
	return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, lit)
}
