package lexer

import (
	"fmt"
	"strings"
)

// Error is a lexical error: an unexpected character or an unterminated string.
type Error struct {
	Line    int
	Message string
}

// Error returns the message in the form "<message> at line <N>".
func (e *Error) Error() string {
	return fmt.Sprintf("%s at line %d", e.Message, e.Line)
}

// ErrorList is an ordered list of lexical errors.
type ErrorList []*Error

// Add appends an error to the list.
func (el *ErrorList) Add(line int, format string, args ...any) {
	*el = append(*el, &Error{Line: line, Message: fmt.Sprintf(format, args...)})
}

// Err returns an error if there are any errors, nil otherwise.
func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// Error joins all messages, one per line.
func (el ErrorList) Error() string {
	switch len(el) {
	case 0:
		return "no errors"
	case 1:
		return el[0].Error()
	default:
		var sb strings.Builder
		sb.WriteString(el[0].Error())
		for _, e := range el[1:] {
			sb.WriteByte('\n')
			sb.WriteString(e.Error())
		}
		return sb.String()
	}
}
