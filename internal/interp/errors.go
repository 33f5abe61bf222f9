package interp

import (
	"fmt"

	"github.com/kolkov/ulox/internal/token"
)

// RuntimeError is a fatal error raised while executing a program: an operand
// of the wrong type, an undefined variable, a call to a non-callable value or
// an arity mismatch.
type RuntimeError struct {
	Token   token.Token // Token whose line is reported
	Message string      // Human-readable error message
}

// Line returns the source line of the offending token.
func (e *RuntimeError) Line() int {
	return e.Token.Line
}

// Error returns the message in the form "<message>: [line N]".
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: [line %d]", e.Message, e.Token.Line)
}

// errorf creates a RuntimeError at tok with a formatted message.
func errorf(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}
