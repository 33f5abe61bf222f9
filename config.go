package ulox

import (
	"io"

	"github.com/kolkov/ulox/internal/runtime"
)

// Config holds configuration options for program execution.
type Config struct {
	// Output is the writer for print statements.
	// If nil, Program.Run captures output and returns it; a Session
	// writes to os.Stdout.
	Output io.Writer

	// Variables contains pre-defined global variables, bound as strings
	// before the first statement runs.
	// Example: map[string]string{"name": "world"}
	Variables map[string]string

	// RegexCacheSize is the number of compiled patterns kept by the
	// matches and replace natives (default: 100).
	RegexCacheSize int
}

// applyDefaults fills in default values for unset Config fields.
func (c *Config) applyDefaults() {
	if c.RegexCacheSize <= 0 {
		c.RegexCacheSize = runtime.DefaultCacheSize
	}
}
