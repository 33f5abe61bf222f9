// Package parser provides a ulox recursive descent parser.
package parser

import (
	"fmt"

	"github.com/kolkov/ulox/internal/token"
)

// ParseError represents a syntax error encountered during parsing.
// It implements the error interface and records the offending token.
type ParseError struct {
	Token   token.Token // Token where the error was detected
	Message string      // Human-readable error message
}

// Line returns the source line of the offending token.
func (e *ParseError) Line() int {
	return e.Token.Line
}

// Error returns "<message> at token '<lexeme>' at line N", or
// "<message> at end at line N" when the parser ran out of input.
func (e *ParseError) Error() string {
	if e.Token.Kind == token.EOF {
		return fmt.Sprintf("%s at end at line %d", e.Message, e.Token.Line)
	}
	return fmt.Sprintf("%s at token '%s' at line %d", e.Message, e.Token.Lexeme, e.Token.Line)
}

// ErrorList is a list of parse errors.
type ErrorList []*ParseError

// Error returns a combined error message for all errors.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		return fmt.Sprintf("%s (and %d more errors)", el[0].Error(), len(el)-1)
	}
}

// Add appends an error to the list.
func (el *ErrorList) Add(tok token.Token, msg string) {
	*el = append(*el, &ParseError{Token: tok, Message: msg})
}

// Err returns an error if there are any errors, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}
