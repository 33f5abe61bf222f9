// Package types defines runtime value types for ulox.
package types

import (
	"fmt"
	"math"
	"strconv"
)

// Kind represents the type of a runtime value.
type Kind uint8

const (
	KindNil      Kind = iota // nil
	KindNum                  // double-precision number
	KindStr                  // string
	KindBool                 // boolean
	KindCallable             // user-defined or native function
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindNil:
		return "nil"
	case KindNum:
		return "number"
	case KindStr:
		return "string"
	case KindBool:
		return "boolean"
	case KindCallable:
		return "function"
	default:
		return "unknown"
	}
}

// Callable is implemented by every value that can appear as a callee.
type Callable interface {
	// Arity is the exact number of arguments Call expects.
	Arity() int

	// Call runs the callable. len(args) == Arity() is guaranteed by the caller.
	Call(args []Value) (Value, error)

	// String is the printed form, e.g. "<fn add>".
	String() string
}

// Value represents a runtime value.
// Uses tagged union pattern; the zero Value is nil.
type Value struct {
	kind Kind
	num  float64
	str  string
	b    bool
	fn   Callable
}

// Constructors

// Nil returns the nil value.
func Nil() Value {
	return Value{}
}

// Num creates a numeric value.
func Num(n float64) Value {
	return Value{kind: KindNum, num: n}
}

// Str creates a string value.
func Str(s string) Value {
	return Value{kind: KindStr, str: s}
}

// Bool creates a boolean value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// Func wraps a callable.
func Func(fn Callable) Value {
	return Value{kind: KindCallable, fn: fn}
}

// FromLiteral converts a token literal (nil, float64, string or bool) to a Value.
func FromLiteral(lit any) Value {
	switch v := lit.(type) {
	case float64:
		return Num(v)
	case string:
		return Str(v)
	case bool:
		return Bool(v)
	default:
		return Nil()
	}
}

// Accessors

// Kind returns the value's type.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNil returns true if the value is nil.
func (v Value) IsNil() bool {
	return v.kind == KindNil
}

// IsNum returns true if the value is a number.
func (v Value) IsNum() bool {
	return v.kind == KindNum
}

// IsStr returns true if the value is a string.
func (v Value) IsStr() bool {
	return v.kind == KindStr
}

// IsBool returns true if the value is a boolean.
func (v Value) IsBool() bool {
	return v.kind == KindBool
}

// AsNum returns the number held by v, or 0 for other kinds.
func (v Value) AsNum() float64 {
	return v.num
}

// AsStr returns the string held by v, or "" for other kinds.
func (v Value) AsStr() string {
	return v.str
}

// AsBool returns the boolean held by v, or false for other kinds.
// Use Truthy for conditional contexts.
func (v Value) AsBool() bool {
	return v.b
}

// AsCallable returns the callable held by v and whether v is callable.
func (v Value) AsCallable() (Callable, bool) {
	return v.fn, v.kind == KindCallable
}

// Truthy reports whether v counts as true in a condition.
// Only nil and false are falsy; 0 and "" are truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNil:
		return false
	case KindBool:
		return v.b
	default:
		return true
	}
}

// String returns the printed form of the value, as used by print.
func (v Value) String() string {
	switch v.kind {
	case KindNum:
		return FormatNum(v.num)
	case KindStr:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindCallable:
		return v.fn.String()
	default:
		return "nil"
	}
}

// GoString returns a debug representation of the value.
func (v Value) GoString() string {
	switch v.kind {
	case KindNum:
		return fmt.Sprintf("Num(%s)", FormatNum(v.num))
	case KindStr:
		return fmt.Sprintf("Str(%q)", v.str)
	case KindBool:
		return fmt.Sprintf("Bool(%t)", v.b)
	case KindCallable:
		return fmt.Sprintf("Func(%s)", v.fn)
	default:
		return "Nil()"
	}
}

// Comparison

// Equal reports whether a and b are equal without any type coercion.
// Values of different kinds are never equal; nil equals only nil.
// Callables compare by identity.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNil:
		return true
	case KindNum:
		return a.num == b.num
	case KindStr:
		return a.str == b.str
	case KindBool:
		return a.b == b.b
	case KindCallable:
		return a.fn == b.fn
	default:
		return false
	}
}

// Number Formatting

// FormatNum formats a number for output using the shortest representation
// that round-trips. Integral values print without a fractional part ("7",
// not "7.0"); very large and very small magnitudes use exponent form.
func FormatNum(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}

	if abs := math.Abs(n); n == 0 || (abs >= 1e-6 && abs < 1e21) {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	return strconv.FormatFloat(n, 'g', -1, 64)
}
