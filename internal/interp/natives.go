package interp

import (
	"fmt"

	"github.com/kolkov/ulox/internal/types"
)

// defineNatives binds the built-in functions in the global scope.
func (in *Interpreter) defineNatives() {
	natives := []*Native{
		NewNative("clock", 0, in.clock),
		NewNative("matches", 2, in.matches),
		NewNative("replace", 3, in.replace),
	}
	for _, n := range natives {
		in.globals.Define(n.Name(), types.Func(n))
	}
}

// Native errors become runtime error messages shown to the user as
// "<message>: [line N]", so they are capitalized like every other runtime
// message.
func nativeError(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}

// clock returns the current time in seconds since the Unix epoch.
func (in *Interpreter) clock(args []types.Value) (types.Value, error) {
	return types.Num(float64(in.now().UnixNano()) / 1e9), nil
}

// matches(text, pattern) reports whether pattern matches anywhere in text.
func (in *Interpreter) matches(args []types.Value) (types.Value, error) {
	if !args[0].IsStr() || !args[1].IsStr() {
		return types.Nil(), nativeError("Arguments to 'matches' must be strings")
	}
	re, err := in.regexes.Get(args[1].AsStr())
	if err != nil {
		return types.Nil(), nativeError("Invalid pattern: %v", err)
	}
	return types.Bool(re.MatchString(args[0].AsStr())), nil
}

// replace(text, pattern, replacement) replaces every match of pattern in
// text. $1 in replacement expands to the first submatch.
func (in *Interpreter) replace(args []types.Value) (types.Value, error) {
	for _, a := range args {
		if !a.IsStr() {
			return types.Nil(), nativeError("Arguments to 'replace' must be strings")
		}
	}
	re, err := in.regexes.Get(args[1].AsStr())
	if err != nil {
		return types.Nil(), nativeError("Invalid pattern: %v", err)
	}
	return types.Str(re.ReplaceAllString(args[0].AsStr(), args[2].AsStr())), nil
}
