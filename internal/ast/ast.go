// Package ast defines Knight's three-node program representation — Literal,
// VarRef, and Call — plus the operator identity table every Call dispatches
// through.
//
// Knight's grammar is small enough that it needs no separate statement/
// expression distinction: every construct is an expression, and every
// expression is one of these three node kinds.
package ast

import (
	"github.com/knight-lang/go-knight/internal/token"
	"github.com/knight-lang/go-knight/internal/value"
)

// Node is implemented by every AST node.
type Node interface {
	Position() token.Position
	String() string
}

// Literal wraps a constant value.Value produced directly by the parser:
// integer and string literals. The TRUE/FALSE/NULL/"@" nullary forms are
// not folded; they parse as arity-0 Calls.
type Literal struct {
	Value value.Value
	Pos   token.Position
}

func (n *Literal) Position() token.Position { return n.Pos }
func (n *Literal) String() string           { return n.Value.String() }

// VarRef names a variable lookup. Evaluating it reads the named slot from
// the active Environment; it is also the left-hand side `=` consumes
// without evaluating, so ast.Call never stores a VarRef pre-evaluated.
type VarRef struct {
	Name string
	Pos  token.Position
}

func (n *VarRef) Position() token.Position { return n.Pos }
func (n *VarRef) String() string           { return n.Name }

// Call is an operator application: Op names which of the fixed built-in
// operators to run, and Args holds exactly Arity(Op) unevaluated operand
// nodes — unevaluated because some operators (=, WHILE, AND, OR, IF's
// untaken branch) must control whether and how many times each argument
// is evaluated.
type Call struct {
	Op   string
	Args []Node
	Pos  token.Position
}

func (n *Call) Position() token.Position { return n.Pos }
func (n *Call) String() string           { return "(" + n.Op + " ...)" }
