// Package flags holds the compile-time-shaped, runtime-checked switches that
// gate Knight's compliance checks and extension operators.
//
// Compliance flags turn one of the language's undefined-behavior cases into
// a typed error when enabled; when disabled the interpreter falls back to a
// documented default (wrapping arithmetic, and so on). Out-of-range GET/SET
// indices raise DomainError whatever the flags.
// Extension flags turn on parser and evaluator paths for operators and
// behaviors that are not part of the core language.
package flags

// Flags is an immutable snapshot built once per Environment. Passing it by
// value keeps the hot evaluation path free of pointer chasing or locking.
type Flags struct {
	// Compliance checks.
	KnightEncoding             bool
	I32Integer                 bool
	CheckOverflow              bool
	CheckContainerLength       bool
	VerifyVariableNames        bool
	ForbidTrailingTokens       bool
	CheckQuitBounds            bool
	CheckCallArg               bool
	LimitRandRange             bool
	CheckEqualsParams          bool
	CheckIntegerFunctionBounds bool
	StackTrace                 bool
	MaxRecursionDepth          int

	// Extension operators.
	ValueFunction  bool
	EvalFunction   bool
	HandleFunction bool
	YeetFunction   bool
	UseFunction    bool
	SystemFunction bool
	XSRand         bool
	XRange         bool
	XReverse       bool

	// Extension behaviors.
	NegativeIndexing bool
	ListLiteral      bool
	TypeGetters      bool
	AssignToPrompt   bool
	AssignToOutput   bool
	AssignToSystem   bool
	AssignToList     bool
	AssignToText     bool

	// Iffy extensions: these change the meaning of already well-defined programs.
	NegatingListInvertsIt      bool
	UnassignedVariablesAreNull bool
	NegativeRandomIntegers     bool
}

// Option configures a Flags value. Options compose via New, mirroring the
// functional-options style used throughout the embedding API.
type Option func(*Flags)

// Default returns the flag set a bare `knight` binary runs with: wrapping
// 64-bit arithmetic, byte-sequence strings, no extensions, no stack traces.
func Default() Flags {
	return Flags{
		MaxRecursionDepth: 4096,
	}
}

// New builds a Flags snapshot from Default plus the given options.
func New(opts ...Option) Flags {
	f := Default()
	for _, opt := range opts {
		opt(&f)
	}
	return f
}

// Strict returns the flag set that enables every compliance check plus the
// i32-integer width, matching a "knight -c" conformance-testing profile.
func Strict() Flags {
	f := Default()
	f.KnightEncoding = true
	f.I32Integer = true
	f.CheckOverflow = true
	f.CheckContainerLength = true
	f.VerifyVariableNames = true
	f.ForbidTrailingTokens = true
	f.CheckQuitBounds = true
	f.CheckCallArg = true
	f.LimitRandRange = true
	f.CheckEqualsParams = true
	f.CheckIntegerFunctionBounds = true
	return f
}

// WithCompliance turns on every compliance check (the boolean knobs in the
// first half of Flags), leaving extensions and recursion depth untouched.
func WithCompliance(on bool) Option {
	return func(f *Flags) {
		f.KnightEncoding = on
		f.I32Integer = on
		f.CheckOverflow = on
		f.CheckContainerLength = on
		f.VerifyVariableNames = on
		f.ForbidTrailingTokens = on
		f.CheckQuitBounds = on
		f.CheckCallArg = on
		f.LimitRandRange = on
		f.CheckEqualsParams = on
		f.CheckIntegerFunctionBounds = on
	}
}

// WithStackTrace enables or disables the evaluator's shadow call stack.
func WithStackTrace(on bool) Option {
	return func(f *Flags) { f.StackTrace = on }
}

// WithMaxRecursionDepth bounds the evaluator's CALL/BLOCK recursion depth.
// A value of 0 disables the bound.
func WithMaxRecursionDepth(depth int) Option {
	return func(f *Flags) { f.MaxRecursionDepth = depth }
}

// IntegerBits returns the active signed integer width: 32 under I32Integer,
// otherwise 64.
func (f Flags) IntegerBits() int {
	if f.I32Integer {
		return 32
	}
	return 64
}
