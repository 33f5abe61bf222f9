package ulox

import (
	"errors"
	"fmt"
	"strings"
)

// Process exit codes, following the BSD sysexits convention.
const (
	ExitOK       = 0  // success
	ExitUsage    = 64 // command line usage error
	ExitDataErr  = 65 // lexical or syntax error in the source
	ExitSoftware = 70 // runtime error
)

// DiagnosticKind tells which stage reported a Diagnostic.
type DiagnosticKind uint8

const (
	Lexical DiagnosticKind = iota // unexpected character, unterminated string
	Syntax                        // unexpected or missing token, invalid target, limits
)

func (k DiagnosticKind) String() string {
	if k == Lexical {
		return "lexical"
	}
	return "syntax"
}

// Diagnostic is one lexical or syntax error.
type Diagnostic struct {
	Kind    DiagnosticKind
	Line    int    // 1-based line number
	Message string // Complete one-line description including the line
}

func (d Diagnostic) String() string {
	return d.Message
}

// CompileError lists every lexical and syntax error found in a program.
// Lexical errors come first, each group in source order.
type CompileError struct {
	Diagnostics []Diagnostic
}

// Error returns the diagnostics, one per line.
func (e *CompileError) Error() string {
	msgs := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		msgs[i] = d.Message
	}
	return strings.Join(msgs, "\n")
}

// RuntimeError represents an error during execution. Execution stops at the
// first runtime error.
type RuntimeError struct {
	Line    int    // 1-based line number
	Message string // Error description
}

// Error returns "<message>: [line N]".
func (e *RuntimeError) Error() string {
	return fmt.Sprintf("%s: [line %d]", e.Message, e.Line)
}

// ExitCode returns the process exit status for err: ExitOK for nil,
// ExitDataErr for a *CompileError and ExitSoftware for anything else.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var ce *CompileError
	if errors.As(err, &ce) {
		return ExitDataErr
	}
	return ExitSoftware
}
