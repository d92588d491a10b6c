package oneway

import (
	"errors"
	"math/big"
	"strings"
)

// errBadLiteral reports a token that denotes no value. Callers wrap it
// into a LiteralError at load time or a LiteralException at run time.
var errBadLiteral = errors.New("not a valid literal")

// EvalLiteral parses a literal token into a value. A literal is one of
// the keywords true and false, a type name, a quoted string, or a
// numeral. Anything else fails with an error.
func EvalLiteral(token string) (Value, error) {
	switch token {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "bool":
		return BoolType, nil
	case "num":
		return NumType, nil
	case "str":
		return StrType, nil
	case "type":
		return TypeType, nil
	}
	if strings.HasPrefix(token, `"`) {
		return evalString(token[1:])
	}
	return evalNumeral(token)
}

// evalString decodes a quoted string body. The only escapes are \n and
// \\; any other escape, including a dangling backslash at the end of
// the token, is malformed. A closing quote is not required: the body
// runs to the end of the token and interior quotes are taken
// literally.
func evalString(body string) (Value, error) {
	var b strings.Builder
	for i := 0; i < len(body); {
		if body[i] != '\\' {
			b.WriteByte(body[i])
			i++
			continue
		}
		if i+1 >= len(body) {
			return nil, errBadLiteral
		}
		switch body[i+1] {
		case 'n':
			b.WriteByte('\n')
		case '\\':
			b.WriteByte('\\')
		default:
			return nil, errBadLiteral
		}
		i += 2
	}
	return Str(b.String()), nil
}

// evalNumeral parses a numeral: an optional leading -, decimal digits,
// and at most one . or / separator. The rational it denotes is reduced
// to lowest terms; a zero denominator is malformed.
func evalNumeral(token string) (Value, error) {
	body := strings.TrimPrefix(token, "-")
	neg := len(body) < len(token)
	sep := byte(0)
	sepAt := -1
	for i := 0; i < len(body); i++ {
		switch c := body[i]; {
		case c == '.' || c == '/':
			if sep != 0 {
				return nil, errBadLiteral
			}
			sep, sepAt = c, i
		case c < '0' || c > '9':
			return nil, errBadLiteral
		}
	}
	r := new(big.Rat)
	switch sep {
	case 0:
		n, ok := new(big.Int).SetString(body, 10)
		if !ok {
			return nil, errBadLiteral
		}
		r.SetInt(n)
	case '/':
		n, ok := new(big.Int).SetString(body[:sepAt], 10)
		if !ok {
			return nil, errBadLiteral
		}
		d, ok := new(big.Int).SetString(body[sepAt+1:], 10)
		if !ok || d.Sign() == 0 {
			return nil, errBadLiteral
		}
		r.SetFrac(n, d)
	case '.':
		// Digits may sit on either side of the point, so .5 and 5.
		// are both numerals; a lone . is not.
		frac := body[sepAt+1:]
		n, ok := new(big.Int).SetString(body[:sepAt]+frac, 10)
		if !ok {
			return nil, errBadLiteral
		}
		d := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(len(frac))), nil)
		r.SetFrac(n, d)
	}
	if neg {
		r.Neg(r)
	}
	return Num{Rat: r}, nil
}
