package value

import "github.com/knight-lang/go-knight/internal/errors"

// Equal implements `?`: reflexive within a kind, never equal across kinds.
// Under check-equals-params, comparing a Block — or a List that
// transitively contains one — is itself a TypeError rather than silently
// false.
func Equal(a, b Value, checkEqualsParams bool) (bool, error) {
	if checkEqualsParams {
		if containsBlock(a) || containsBlock(b) {
			return false, errors.NewRuntimeError(errors.TypeError, "cannot compare a Block with `?`")
		}
	}
	if a.Kind() != b.Kind() {
		return false, nil
	}
	return equalSameKind(a, b), nil
}

func equalSameKind(a, b Value) bool {
	switch x := a.(type) {
	case Null:
		return true
	case Boolean:
		return x == b.(Boolean)
	case Integer:
		return x == b.(Integer)
	case String:
		return x == b.(String)
	case List:
		y := b.(List)
		if len(x) != len(y) {
			return false
		}
		for i := range x {
			if !equalValuesOfUnknownKind(x[i], y[i]) {
				return false
			}
		}
		return true
	case Variable:
		return x.Name == b.(Variable).Name
	case Block:
		return false
	default:
		return false
	}
}

// equalValuesOfUnknownKind compares two list elements, which may be of
// different kinds (cross-kind is simply unequal, same as top-level `?`).
func equalValuesOfUnknownKind(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	return equalSameKind(a, b)
}

func containsBlock(v Value) bool {
	switch x := v.(type) {
	case Block:
		return true
	case List:
		for _, e := range x {
			if containsBlock(e) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// Compare implements `<` and `>`: only Integer, String, Boolean, and List
// are orderable. b is coerced to a's kind first, so "< 1 '2'" compares
// integers while "< '1' 2" compares strings.
func Compare(a, b Value) (int, error) {
	switch x := a.(type) {
	case Integer:
		n, err := ToInteger(b)
		if err != nil {
			return 0, err
		}
		return compareInt(int64(x), n), nil
	case String:
		s, err := ToString(b)
		if err != nil {
			return 0, err
		}
		return compareString(string(x), s), nil
	case Boolean:
		bb, err := ToBoolean(b)
		if err != nil {
			return 0, err
		}
		return compareBool(bool(x), bb), nil
	case List:
		bl, err := ToList(b)
		if err != nil {
			return 0, err
		}
		return compareList(x, bl)
	default:
		return 0, errors.NewRuntimeError(errors.TypeError, "%s is not orderable", a.Kind())
	}
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareString(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func compareBool(a, b bool) int {
	if a == b {
		return 0
	}
	if !a {
		return -1
	}
	return 1
}

func compareList(a, b List) (int, error) {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		// Lists compare lexicographically after recursively coercing
		// elements to the first operand's own kind.
		elemB, err := coerceTo(b[i], a[i].Kind())
		if err != nil {
			return 0, err
		}
		c, err := Compare(a[i], elemB)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return compareInt(int64(len(a)), int64(len(b))), nil
}

func coerceTo(v Value, k Kind) (Value, error) {
	switch k {
	case KindInteger:
		n, err := ToInteger(v)
		return Integer(n), err
	case KindString:
		s, err := ToString(v)
		return String(s), err
	case KindBoolean:
		b, err := ToBoolean(v)
		return Boolean(b), err
	case KindList:
		l, err := ToList(v)
		return l, err
	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "%s is not orderable", k)
	}
}
