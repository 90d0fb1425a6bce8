package errors

import "fmt"

// Kind classifies a runtime (post-parse) error. The evaluator raises one of
// these for every documented failure mode; CLI and embedding callers can
// switch on Kind without parsing Error() strings.
type Kind int

const (
	// TypeError is raised by an operator given an operand of the wrong kind,
	// including treating a Block as anything but CALL's argument.
	TypeError Kind = iota
	// DomainError is raised for an argument that is the right kind but an
	// invalid value: out-of-bounds index/length, negative `%`/`^` operands
	// under check-integer-function-bounds, ASCII of an invalid code point.
	DomainError
	// DivisionByZero is raised by `/` and `%` with a zero divisor.
	DivisionByZero
	// IntegerOverflow is raised by arithmetic that over/underflows the
	// active integer width, under check-overflow.
	IntegerOverflow
	// ContainerTooLarge classifies a String or List exceeding the 31-bit
	// length bound. Only the parser checks that bound (on string literals,
	// under check-container-length, with its own parser error kind); the
	// evaluator never raises this Kind.
	ContainerTooLarge
	// UndefinedVariable is raised by reading a variable that was never
	// assigned, unless unassigned-variables-default-to-null is set.
	UndefinedVariable
	// IoError is raised by a failed system command or USE read.
	IoError
	// CustomError classifies a user-raised error. A YEET that escapes every
	// HANDLE surfaces as a *YeetError, not as a RuntimeError of this Kind.
	CustomError
	// StackOverflow is raised when CALL/BLOCK recursion exceeds the
	// configured maximum depth.
	StackOverflow
)

func (k Kind) String() string {
	switch k {
	case TypeError:
		return "TypeError"
	case DomainError:
		return "DomainError"
	case DivisionByZero:
		return "DivisionByZero"
	case IntegerOverflow:
		return "IntegerOverflow"
	case ContainerTooLarge:
		return "ContainerTooLarge"
	case UndefinedVariable:
		return "UndefinedVariable"
	case IoError:
		return "IoError"
	case CustomError:
		return "CustomError"
	case StackOverflow:
		return "StackOverflow"
	default:
		return "UnknownError"
	}
}

// RuntimeError is the error type every evaluator failure surfaces as. It
// carries a typed Kind, a short message, and — when the stacktrace flag is
// on — the shadow call stack captured at the point of failure.
type RuntimeError struct {
	Kind    Kind
	Message string
	Stack   StackTrace
}

// NewRuntimeError builds a RuntimeError with no captured stack trace.
func NewRuntimeError(kind Kind, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	if len(e.Stack) == 0 {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s\n%s", e.Kind, e.Message, e.Stack.Reverse().String())
}

// WithStack returns a copy of e carrying the given stack trace.
func (e *RuntimeError) WithStack(st StackTrace) *RuntimeError {
	cp := *e
	cp.Stack = st
	return &cp
}
