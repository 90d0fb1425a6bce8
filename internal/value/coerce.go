package value

import (
	"fmt"

	"github.com/knight-lang/go-knight/internal/errors"
	"github.com/knight-lang/go-knight/internal/text"
)

func typeError(v Value, target string) error {
	return errors.NewRuntimeError(errors.TypeError, "cannot convert %s to %s", v.Kind(), target)
}

// ToInteger implements the coercion table's "To Integer" column, parsing
// String operands at the full 64-bit width with silent wraparound. Callers
// that must honor check-overflow on a String-to-Integer coercion (the `+`
// family coercing a String right-hand side, for instance) use
// ToIntegerChecked instead.
func ToInteger(v Value) (int64, error) {
	n, _, err := ToIntegerChecked(v, 64)
	return n, err
}

// ToIntegerChecked is ToInteger's overflow-aware counterpart: bits selects
// the active integer width and overflowed reports whether a String operand's
// digit run didn't fit it. Callers under check-overflow turn a true
// overflowed into an IntegerOverflow RuntimeError; callers without the
// check simply ignore it and keep the wrapped value.
func ToIntegerChecked(v Value, bits int) (n int64, overflowed bool, err error) {
	switch x := v.(type) {
	case Null:
		return 0, false, nil
	case Boolean:
		if x {
			return 1, false, nil
		}
		return 0, false, nil
	case Integer:
		return text.WrapSigned(int64(x), bits), false, nil
	case String:
		parsed, didOverflow := text.ParseInt(string(x), bits)
		return parsed, didOverflow, nil
	case List:
		return int64(len(x)), false, nil
	default:
		return 0, false, typeError(v, "Integer")
	}
}

// ToBoolean implements the coercion table's "To Boolean" column.
func ToBoolean(v Value) (bool, error) {
	switch x := v.(type) {
	case Null:
		return false, nil
	case Boolean:
		return bool(x), nil
	case Integer:
		return x != 0, nil
	case String:
		return text.ToBoolean(string(x)), nil
	case List:
		return len(x) != 0, nil
	default:
		return false, typeError(v, "Boolean")
	}
}

// ToString implements the coercion table's "To String" column.
//
// Null coerces to the empty string. Some historical Knight implementations
// print the word "null" instead; this implementation picks "" because it
// matches `O N` printing a blank line rather than the literal text "null".
// `D` (dump) always spells out "null" regardless — see Dump below.
func ToString(v Value) (string, error) {
	switch x := v.(type) {
	case Null:
		return "", nil
	case Boolean:
		if x {
			return "true", nil
		}
		return "false", nil
	case Integer:
		return x.String(), nil
	case String:
		return string(x), nil
	case List:
		return x.String(), nil
	default:
		return "", typeError(v, "String")
	}
}

// ToList implements the coercion table's "To List" column.
//
// Integer -> List yields the sequence of decimal digit values of |n|; a
// negative n negates its first (most-significant) digit rather than
// carrying a separate sign element (see integerToList).
// String -> List yields one single-character String per byte.
func ToList(v Value) (List, error) {
	switch x := v.(type) {
	case Null:
		return List{}, nil
	case Boolean:
		if x {
			return List{Boolean(true)}, nil
		}
		return List{}, nil
	case Integer:
		return integerToList(int64(x)), nil
	case String:
		elems := make(List, len(x))
		for i := 0; i < len(x); i++ {
			elems[i] = String(x[i : i+1])
		}
		return elems, nil
	case List:
		return x, nil
	default:
		return nil, typeError(v, "List")
	}
}

func integerToList(n int64) List {
	if n == 0 {
		return List{Integer(0)}
	}
	neg := n < 0
	mag := n
	if neg {
		mag = -mag
	}
	var digits []int64
	for mag > 0 {
		digits = append(digits, mag%10)
		mag /= 10
	}
	elems := make(List, len(digits))
	for i, d := range digits {
		elems[len(digits)-1-i] = Integer(d)
	}
	if neg {
		elems[0] = Integer(-int64(elems[0].(Integer)))
	}
	return elems
}

// Dump renders v the way the `D` operator writes it: integers as decimal,
// booleans as true/false, null as the literal word "null", strings quoted
// with backslash escapes, and lists as "[a, b, c]".
func Dump(v Value) string {
	switch x := v.(type) {
	case Null:
		return "null"
	case Boolean:
		return x.String()
	case Integer:
		return x.String()
	case String:
		return dumpString(string(x))
	case List:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = Dump(e)
		}
		return "[" + joinComma(parts) + "]"
	default:
		return fmt.Sprintf("<%s>", v.Kind())
	}
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

func dumpString(s string) string {
	out := make([]byte, 0, len(s)+2)
	out = append(out, '"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"':
			out = append(out, '\\', '"')
		case '\\':
			out = append(out, '\\', '\\')
		case '\n':
			out = append(out, '\\', 'n')
		case '\r':
			out = append(out, '\\', 'r')
		case '\t':
			out = append(out, '\\', 't')
		default:
			out = append(out, c)
		}
	}
	out = append(out, '"')
	return string(out)
}
