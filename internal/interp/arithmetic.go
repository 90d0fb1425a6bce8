package interp

import (
	"strings"

	"github.com/knight-lang/go-knight/internal/ast"
	"github.com/knight-lang/go-knight/internal/errors"
	"github.com/knight-lang/go-knight/internal/value"
)

// evalArith dispatches `+ - * / % ^` by the first operand's kind, matching
// the coercion table's rule that the left operand picks the operation's
// type rather than some fixed promotion order.
func (e *Evaluator) evalArith(n *ast.Call) (value.Value, error) {
	a, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}

	switch x := a.(type) {
	case value.Integer:
		b, err := e.Eval(n.Args[1])
		if err != nil {
			return nil, err
		}
		return e.arithInt(n.Op, int64(x), b)
	case value.String:
		b, err := e.Eval(n.Args[1])
		if err != nil {
			return nil, err
		}
		return e.arithString(n.Op, string(x), b)
	case value.List:
		b, err := e.Eval(n.Args[1])
		if err != nil {
			return nil, err
		}
		return e.arithList(n.Op, x, b)
	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "%s does not support %s", a.Kind(), n.Op)
	}
}

func (e *Evaluator) arithInt(op string, a int64, bv value.Value) (value.Value, error) {
	bits := e.Env.Flags.IntegerBits()

	var b int64
	var overflowed bool
	var err error
	if e.Env.Flags.CheckOverflow {
		b, overflowed, err = value.ToIntegerChecked(bv, bits)
	} else {
		b, err = value.ToInteger(bv)
	}
	if err != nil {
		return nil, err
	}
	if overflowed && e.Env.Flags.CheckOverflow {
		return nil, errors.NewRuntimeError(errors.IntegerOverflow, "integer literal overflowed %d-bit width", bits)
	}

	var result int64
	switch op {
	case ast.OpAdd:
		result = a + b
	case ast.OpSub:
		result = a - b
	case ast.OpMul:
		result = a * b
	case ast.OpDiv:
		if b == 0 {
			return nil, errors.NewRuntimeError(errors.DivisionByZero, "division by zero")
		}
		result = a / b
	case ast.OpMod:
		if b == 0 {
			return nil, errors.NewRuntimeError(errors.DivisionByZero, "modulo by zero")
		}
		if e.Env.Flags.CheckIntegerFunctionBounds && (a < 0 || b < 0) {
			return nil, errors.NewRuntimeError(errors.DomainError, "modulo requires non-negative operands")
		}
		result = a % b
	case ast.OpPow:
		if e.Env.Flags.CheckIntegerFunctionBounds && b < 0 {
			return nil, errors.NewRuntimeError(errors.DomainError, "exponent must be non-negative")
		}
		if e.Env.Flags.CheckOverflow && a != 0 && a != 1 && a != -1 {
			for acc, i := int64(1), int64(0); i < b; i++ {
				next := acc * a
				if next/a != acc || e.wrap(next) != next {
					return nil, errors.NewRuntimeError(errors.IntegerOverflow, "%s overflowed %d-bit width", op, bits)
				}
				acc = next
			}
		}
		return value.Integer(e.wrap(intPow(a, b))), nil
	}

	if e.Env.Flags.CheckOverflow && overflows(op, a, b, result, bits) {
		return nil, errors.NewRuntimeError(errors.IntegerOverflow, "%s overflowed %d-bit width", op, bits)
	}
	return value.Integer(e.wrap(result)), nil
}

// overflows reports whether an arithmetic result truncated under the
// active integer width. `+`/`-` at 64 bits are checked by sign; `*` is
// checked via a reverse division (dividing the result back out) rather
// than widening to 128 bits, which Go has no native type for; `/` only
// overflows for the most negative value divided by -1. `%` always reports
// false, and `^` is checked in arithInt itself.
func overflows(op string, a, b, result int64, bits int) bool {
	wrapped := result
	if bits < 64 {
		full := result
		masked := full & (int64(1)<<uint(bits) - 1)
		signBit := int64(1) << uint(bits-1)
		if masked&signBit != 0 {
			masked -= int64(1) << uint(bits)
		}
		wrapped = masked
	}
	switch op {
	case ast.OpAdd:
		if bits >= 64 {
			return (a >= 0) == (b >= 0) && (result >= 0) != (a >= 0)
		}
		return wrapped != a+b
	case ast.OpSub:
		if bits >= 64 {
			return (a >= 0) != (b >= 0) && (result >= 0) != (a >= 0)
		}
		return wrapped != a-b
	case ast.OpMul:
		if a == 0 {
			return false
		}
		return wrapped/a != b || wrapped != result
	case ast.OpDiv:
		return wrapped != result || (b == -1 && a == -1<<63)
	default:
		return false
	}
}

func intPow(base, exp int64) int64 {
	if exp < 0 {
		switch base {
		case 0:
			return 0
		case 1:
			return 1
		case -1:
			if exp%2 == 0 {
				return 1
			}
			return -1
		default:
			return 0
		}
	}
	result := int64(1)
	for i := int64(0); i < exp; i++ {
		result *= base
	}
	return result
}

func (e *Evaluator) arithString(op string, a string, bv value.Value) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		b, err := value.ToString(bv)
		if err != nil {
			return nil, err
		}
		return value.String(a + b), nil
	case ast.OpMul:
		n, err := value.ToInteger(bv)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, errors.NewRuntimeError(errors.DomainError, "cannot repeat a string a negative number of times")
		}
		out := make([]byte, 0, len(a)*int(n))
		for i := int64(0); i < n; i++ {
			out = append(out, a...)
		}
		return value.String(out), nil
	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "String does not support %s", op)
	}
}

func (e *Evaluator) arithList(op string, a value.List, bv value.Value) (value.Value, error) {
	switch op {
	case ast.OpAdd:
		b, err := value.ToList(bv)
		if err != nil {
			return nil, err
		}
		out := make(value.List, 0, len(a)+len(b))
		out = append(out, a...)
		out = append(out, b...)
		return out, nil
	case ast.OpMul:
		n, err := value.ToInteger(bv)
		if err != nil {
			return nil, err
		}
		if n < 0 {
			return nil, errors.NewRuntimeError(errors.DomainError, "cannot repeat a list a negative number of times")
		}
		out := make(value.List, 0, len(a)*int(n))
		for i := int64(0); i < n; i++ {
			out = append(out, a...)
		}
		return out, nil
	case ast.OpPow:
		sep, err := value.ToString(bv)
		if err != nil {
			return nil, err
		}
		parts := make([]string, len(a))
		for i, v := range a {
			s, err := value.ToString(v)
			if err != nil {
				return nil, err
			}
			parts[i] = s
		}
		return value.String(strings.Join(parts, string(sep))), nil
	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "List does not support %s", op)
	}
}
