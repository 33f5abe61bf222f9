package ulox

import (
	"bytes"
	"errors"
	"strings"

	"github.com/kolkov/ulox/internal/ast"
	"github.com/kolkov/ulox/internal/interp"
	"github.com/kolkov/ulox/internal/runtime"
	"github.com/kolkov/ulox/internal/token"
)

// Program represents a parsed program ready for execution.
// It is safe for concurrent use; each call to Run creates an
// independent interpreter with its own globals.
type Program struct {
	tree   *ast.Program
	tokens []token.Token
	source string // Original source for debugging
}

// Run executes the program with the given configuration.
// Returns the output as a string, or an error if execution fails.
//
// If config is nil, default configuration is used.
// If config.Output is set, output is written there and the returned
// string will be empty.
// On a runtime error the output produced before the error is returned
// along with a *RuntimeError.
func (p *Program) Run(config *Config) (string, error) {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()

	in := newInterpreter(&cfg)

	// Set output capture if not provided
	var outputBuf *bytes.Buffer
	if cfg.Output == nil {
		outputBuf = &bytes.Buffer{}
		in.SetOutput(outputBuf)
	}

	err := convertError(in.Run(p.tree))

	if outputBuf != nil {
		return outputBuf.String(), err
	}
	return "", err
}

// Source returns the original source code.
func (p *Program) Source() string {
	return p.source
}

// AST returns a human-readable dump of the syntax tree. Statements are shown
// in source form and expressions fully parenthesized, with for loops in
// their desugared while form.
func (p *Program) AST() string {
	return ast.String(p.tree)
}

// Functions returns the names of the top-level function declarations in
// source order.
func (p *Program) Functions() []string {
	decls := p.tree.Functions()
	names := make([]string, len(decls))
	for i, fn := range decls {
		names[i] = fn.Name.Lexeme
	}
	return names
}

// Tokens returns the token stream, one token per line.
func (p *Program) Tokens() string {
	var sb strings.Builder
	for _, tok := range p.tokens {
		sb.WriteString(tok.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// newInterpreter creates an interpreter configured from cfg.
// cfg must have defaults applied.
func newInterpreter(cfg *Config) *interp.Interpreter {
	opts := []interp.Option{interp.WithRegexCache(runtime.NewRegexCache(cfg.RegexCacheSize))}
	if cfg.Output != nil {
		opts = append(opts, interp.WithOutput(cfg.Output))
	}
	in := interp.New(opts...)
	for name, value := range cfg.Variables {
		in.SetVar(name, value)
	}
	return in
}

// convertError converts an interpreter error to the public type.
// Other errors (such as a failed write) are returned unchanged.
func convertError(err error) error {
	var rerr *interp.RuntimeError
	if errors.As(err, &rerr) {
		return &RuntimeError{Line: rerr.Line(), Message: rerr.Message}
	}
	return err
}
