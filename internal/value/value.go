// Package value implements Knight's runtime value model: the closed,
// seven-kind tagged union (Null, Boolean, Integer, String, List, Variable,
// Block) and the type-directed coercions every operator relies on.
//
// Values are immutable once constructed. Containers share their element
// storage by reference, so copying a List or String value is always O(1);
// "mutation" in Knight is replacing the value in a variable slot, never
// editing a container in place.
package value

import (
	"strconv"
	"strings"
)

// Kind is the runtime tag of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBoolean
	KindInteger
	KindString
	KindList
	KindVariable
	KindBlock
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBoolean:
		return "Boolean"
	case KindInteger:
		return "Integer"
	case KindString:
		return "String"
	case KindList:
		return "List"
	case KindVariable:
		return "Variable"
	case KindBlock:
		return "Block"
	default:
		return "Unknown"
	}
}

// Value is implemented by every runtime value kind. It intentionally stays
// narrow — Kind and String — so that the wide surface of conversions and
// comparisons lives in free functions below, where each can carry its own
// flag- and error-handling needs instead of bloating the interface.
type Value interface {
	Kind() Kind
	String() string
}

// Null is Knight's singleton absent value. The zero value is ready to use;
// Null{} and any other Null{} are the same value.
type Null struct{}

func (Null) Kind() Kind     { return KindNull }
func (Null) String() string { return "" }

// Boolean is Knight's true/false value.
type Boolean bool

func (Boolean) Kind() Kind { return KindBoolean }
func (b Boolean) String() string {
	if b {
		return "true"
	}
	return "false"
}

// Integer is Knight's signed integer value. It is always stored as a Go
// int64; the active width (32 or 64 bits, per Flags.I32Integer) only matters
// at arithmetic and coercion boundaries, via WrapSigned.
type Integer int64

func (Integer) Kind() Kind { return KindInteger }
func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}

// String is Knight's immutable byte-sequence value.
type String string

func (String) Kind() Kind     { return KindString }
func (s String) String() string { return string(s) }

// List is Knight's immutable, ordered sequence of Values. The backing slice
// is never mutated after construction; every list-producing operator
// allocates a fresh slice (or reuses one it just allocated itself).
type List []Value

func (List) Kind() Kind { return KindList }
func (l List) String() string {
	parts := make([]string, len(l))
	for i, v := range l {
		s, _ := ToString(v)
		parts[i] = s
	}
	return strings.Join(parts, "\n")
}

// Variable is the Value-kind counterpart of an environment slot. No core
// operator ever evaluates to a Variable — VarRef nodes resolve straight to
// their stored Value, and `=` consumes its left-hand AST node without
// evaluating it — but the kind is part of the closed value union, and the
// coercion table's "Variable: coercion fails" row needs a concrete type to
// fail on.
type Variable struct {
	Name string
}

func (Variable) Kind() Kind       { return KindVariable }
func (v Variable) String() string { return v.Name }

// Block is a suspended, unevaluated AST node captured by `BLOCK expr`. Node
// is declared as interface{} here (rather than importing internal/ast) to
// keep this package free of a dependency on the AST; internal/interp stores
// the concrete *ast.Call/*ast.Literal/*ast.VarRef and type-asserts it back
// on CALL.
type Block struct {
	Node interface{}
}

func (Block) Kind() Kind     { return KindBlock }
func (Block) String() string { return "<block>" }
