package ulox

import (
	"io"

	"github.com/kolkov/ulox/internal/lexer"
	"github.com/kolkov/ulox/internal/parser"
)

// Version is the ulox version string.
const Version = "0.1.0"

// Run executes a program and returns its output.
// This is a convenience function for one-off execution.
// For repeated execution of the same program, use Compile followed by Program.Run.
//
// Example:
//
//	output, err := ulox.Run(`print "a" + "b";`, nil)
//	// output: "ab\n"
func Run(src string, config *Config) (string, error) {
	prog, err := Compile(src)
	if err != nil {
		return "", err
	}
	return prog.Run(config)
}

// Compile scans and parses a program. On failure it returns a
// *CompileError holding every lexical and syntax error; nothing runs.
//
// Example:
//
//	prog, err := ulox.Compile(`var a = 1; print a;`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	output, _ := prog.Run(nil)
func Compile(src string) (*Program, error) {
	toks, lexErrs := lexer.Scan(src)
	tree, parseErrs := parser.ParseTokens(toks)

	if len(lexErrs) > 0 || len(parseErrs) > 0 {
		ce := &CompileError{}
		for _, e := range lexErrs {
			ce.Diagnostics = append(ce.Diagnostics, Diagnostic{
				Kind:    Lexical,
				Line:    e.Line,
				Message: e.Error(),
			})
		}
		for _, e := range parseErrs {
			ce.Diagnostics = append(ce.Diagnostics, Diagnostic{
				Kind:    Syntax,
				Line:    e.Line(),
				Message: e.Error(),
			})
		}
		return nil, ce
	}

	return &Program{
		tree:   tree,
		tokens: toks,
		source: src,
	}, nil
}

// Exec runs a program writing print output to output.
//
// Example:
//
//	err := ulox.Exec(`print clock() > 0;`, os.Stdout, nil)
func Exec(src string, output io.Writer, config *Config) error {
	prog, err := Compile(src)
	if err != nil {
		return err
	}

	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	cfg.Output = output

	_, err = prog.Run(&cfg)
	return err
}

// MustCompile is like Compile but panics if the program cannot be compiled.
// It simplifies initialization of global program variables.
func MustCompile(src string) *Program {
	prog, err := Compile(src)
	if err != nil {
		panic(err)
	}
	return prog
}
