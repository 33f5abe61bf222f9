// Package runtime provides regular expression support for the ulox natives.
package runtime

import (
	"sync"

	"github.com/coregx/coregex"
)

// DefaultCacheSize is the number of compiled patterns a RegexCache keeps when
// no size is configured.
const DefaultCacheSize = 100

// Regex wraps a compiled coregex pattern.
type Regex struct {
	pattern string
	re      *coregex.Regexp
}

// Compile creates a new Regex from pattern. Matching is leftmost-first
// (Perl-like), and '.' does not match a newline.
func Compile(pattern string) (*Regex, error) {
	re, err := coregex.Compile(pattern)
	if err != nil {
		return nil, err
	}
	return &Regex{pattern: pattern, re: re}, nil
}

// MustCompile creates a Regex, panicking on error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Pattern returns the original pattern string.
func (r *Regex) Pattern() string {
	return r.pattern
}

// MatchString reports whether s contains any match.
func (r *Regex) MatchString(s string) bool {
	return r.re.MatchString(s)
}

// ReplaceAllString replaces all matches with repl. Inside repl, $1 or ${1}
// expands to the text of the first submatch.
func (r *Regex) ReplaceAllString(s, repl string) string {
	return r.re.ReplaceAllString(s, repl)
}

// RegexCache holds compiled regexes with FIFO eviction.
// It is safe for concurrent use.
type RegexCache struct {
	mu      sync.Mutex
	cache   map[string]*Regex
	order   []string // FIFO order for eviction
	maxSize int
}

// NewRegexCache creates a cache holding at most maxSize patterns.
// A non-positive maxSize selects DefaultCacheSize.
func NewRegexCache(maxSize int) *RegexCache {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &RegexCache{
		cache:   make(map[string]*Regex, maxSize),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
	}
}

// Get returns a compiled regex, compiling and caching if needed.
// Patterns that fail to compile are not cached.
func (c *RegexCache) Get(pattern string) (*Regex, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if re, ok := c.cache[pattern]; ok {
		return re, nil
	}

	re, err := Compile(pattern)
	if err != nil {
		return nil, err
	}

	c.cache[pattern] = re
	c.order = append(c.order, pattern)

	// Evict oldest if over capacity
	for len(c.order) > c.maxSize {
		delete(c.cache, c.order[0])
		c.order = c.order[1:]
	}
	return re, nil
}

// Len returns the number of cached regexes.
func (c *RegexCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.cache)
}

// Clear removes all cached regexes.
func (c *RegexCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.cache)
	c.order = c.order[:0]
}
