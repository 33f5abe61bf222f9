package ulox

import (
	"github.com/kolkov/ulox/internal/interp"
)

// Session evaluates source incrementally against one persistent set of
// globals, as a read-eval-print loop does. Each call to Eval is compiled on
// its own; there is no statement continuation across calls.
// A Session is not safe for concurrent use.
type Session struct {
	in *interp.Interpreter
}

// NewSession creates a session. If config.Output is nil, print output goes
// to os.Stdout.
func NewSession(config *Config) *Session {
	cfg := Config{}
	if config != nil {
		cfg = *config
	}
	cfg.applyDefaults()
	return &Session{in: newInterpreter(&cfg)}
}

// Eval compiles and runs src. A *CompileError leaves the session untouched;
// after a *RuntimeError, globals defined before the failing statement
// remain.
func (s *Session) Eval(src string) error {
	prog, err := Compile(src)
	if err != nil {
		return err
	}
	return convertError(s.in.Run(prog.tree))
}

// Lookup returns the printed form of the global variable name, as print
// would show it, and whether it is defined.
func (s *Session) Lookup(name string) (string, bool) {
	v, ok := s.in.Globals().Lookup(name)
	if !ok {
		return "", false
	}
	return v.String(), true
}
