package oneway

import (
	"math/big"
	"strings"
)

// A Value is a single datum on a stack. The four implementations are
// Bool, Num, Str, and Type; the set is closed. Values are immutable
// once created, so they may be freely shared between stacks.
type Value interface {
	// Type reports the runtime type of the value.
	Type() Type

	value()
}

// Type is a runtime type descriptor. Types are themselves values, so a
// program can push them, compare them, and take typeof of them.
type Type int

const (
	BoolType Type = iota
	NumType
	StrType
	TypeType
)

// Type reports TypeType: the type of any type descriptor is type.
func (Type) Type() Type { return TypeType }

func (Type) value() {}

func (t Type) String() string {
	switch t {
	case BoolType:
		return "bool"
	case NumType:
		return "num"
	case StrType:
		return "str"
	case TypeType:
		return "type"
	}
	return "invalid"
}

// Bool is a ONE WAY boolean.
type Bool bool

func (Bool) Type() Type { return BoolType }

func (Bool) value() {}

// Num is a ONE WAY number: an exact rational in lowest terms. The
// wrapped Rat is never mutated after construction, so a Num may be
// duplicated by copying the pointer. A Num with a zero denominator is
// not constructible through any language operation.
type Num struct {
	Rat *big.Rat
}

func (Num) Type() Type { return NumType }

func (Num) value() {}

// NumFromInt creates the number n/1.
func NumFromInt(n int64) Num {
	return Num{Rat: new(big.Rat).SetInt64(n)}
}

// Str is a ONE WAY string: an ordered sequence of Unicode scalar
// values.
type Str string

func (Str) Type() Type { return StrType }

func (Str) value() {}

// Equal reports whether two values are equal. Equality requires both
// the runtime type and the value to match: a boolean is never equal to
// a number, even when numerically coincident.
func Equal(a, b Value) bool {
	if a.Type() != b.Type() {
		return false
	}
	switch x := a.(type) {
	case Bool:
		return x == b.(Bool)
	case Num:
		return x.Rat.Cmp(b.(Num).Rat) == 0
	case Str:
		return x == b.(Str)
	case Type:
		return x == b.(Type)
	}
	return false
}

var strEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`)

// Repr renders a value in its literal form. Booleans render as true
// and false, integral numbers as the bare integer and other numbers as
// numerator/denominator, types as their names, and strings as an
// opening quote followed by the body with backslashes and newlines
// escaped. A string repr carries no closing quote, matching what
// EvalLiteral accepts, so Repr of any value is itself a valid literal
// denoting the same value.
func Repr(v Value) string {
	switch x := v.(type) {
	case Bool:
		if x {
			return "true"
		}
		return "false"
	case Num:
		// RatString renders a/b, or just a when b is 1.
		return x.Rat.RatString()
	case Str:
		return `"` + strEscaper.Replace(string(x))
	case Type:
		return x.String()
	}
	return ""
}
