// Package interp is Knight's evaluator (component C7): it walks an
// internal/ast tree against an internal/runtime.Environment, dispatching
// each Call node by its operator identity.
//
// Most operators evaluate every argument eagerly, left to right, before
// doing their work — arithmetic coercion, comparisons, I/O. A handful
// control their own evaluation order instead: AND/OR short-circuit, IF and
// WHILE evaluate only the branch taken, ASSIGN never evaluates its
// left-hand VarRef, and BLOCK never evaluates its argument at all.
package interp

import (
	"github.com/knight-lang/go-knight/internal/ast"
	"github.com/knight-lang/go-knight/internal/errors"
	"github.com/knight-lang/go-knight/internal/runtime"
	"github.com/knight-lang/go-knight/internal/text"
	"github.com/knight-lang/go-knight/internal/token"
	"github.com/knight-lang/go-knight/internal/value"
)

// Evaluator runs a parsed Knight program against a single Environment.
type Evaluator struct {
	Env   *runtime.Environment
	stack *callStack
}

// New creates an Evaluator over env, sizing its recursion bound and
// deciding whether it records stack traces from env.Flags.
func New(env *runtime.Environment) *Evaluator {
	return &Evaluator{
		Env:   env,
		stack: newCallStack(env.Flags.MaxRecursionDepth, env.Flags.StackTrace),
	}
}

// Eval evaluates node and returns its result, or the RuntimeError (or
// *errors.YeetError, or *errors.QuitError) that interrupted it.
func (e *Evaluator) Eval(node ast.Node) (value.Value, error) {
	switch n := node.(type) {
	case *ast.Literal:
		return n.Value, nil
	case *ast.VarRef:
		return e.evalVarRef(n)
	case *ast.Call:
		return e.evalCall(n)
	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "unrecognized AST node %T", node)
	}
}

func (e *Evaluator) evalVarRef(n *ast.VarRef) (value.Value, error) {
	v := e.Env.Var(n.Name)
	if !v.Assigned {
		if e.Env.Flags.UnassignedVariablesAreNull {
			return value.Null{}, nil
		}
		return nil, errors.NewRuntimeError(errors.UndefinedVariable, "undefined variable %q", n.Name)
	}
	return v.Value, nil
}

func (e *Evaluator) evalCall(n *ast.Call) (value.Value, error) {
	switch n.Op {
	// Arity 0.
	case ast.OpTrue:
		return value.Boolean(true), nil
	case ast.OpFalse:
		return value.Boolean(false), nil
	case ast.OpNull:
		return value.Null{}, nil
	case ast.OpEmptyList:
		return value.List{}, nil
	case ast.OpPrompt:
		return e.evalPrompt()
	case ast.OpRandom:
		return value.Integer(e.Env.Random()), nil

	// Arity 1, control flow / structural.
	case ast.OpBlock:
		return value.Block{Node: n.Args[0]}, nil
	case ast.OpCall:
		return e.evalCallOp(n)
	case ast.OpNoop:
		return e.Eval(n.Args[0])
	case ast.OpQuit:
		return e.evalQuit(n)
	case ast.OpNot:
		return e.evalNot(n)
	case ast.OpNeg:
		return e.evalNeg(n)
	case ast.OpLength:
		return e.evalLength(n)
	case ast.OpDump:
		return e.evalDump(n)
	case ast.OpOutput:
		return e.evalOutput(n)
	case ast.OpAscii:
		return e.evalAscii(n)
	case ast.OpSystem, ast.OpSystemExt:
		return e.evalSystem(n)
	case ast.OpBox:
		return e.evalBox(n)
	case ast.OpHead:
		return e.evalHead(n)
	case ast.OpTail:
		return e.evalTail(n)

	// Arity 1, extensions.
	case ast.OpValue:
		return e.evalValueOf(n)
	case ast.OpEval:
		return e.evalEval(n)
	case ast.OpYeet:
		return e.evalYeet(n)
	case ast.OpUse:
		return e.evalUse(n)
	case ast.OpXSRand:
		return e.evalXSRand(n)
	case ast.OpXReverse:
		return e.evalXReverse(n)

	// Arity 2.
	case ast.OpAdd, ast.OpSub, ast.OpMul, ast.OpDiv, ast.OpMod, ast.OpPow:
		return e.evalArith(n)
	case ast.OpLth:
		return e.evalCompare(n, func(c int) bool { return c < 0 })
	case ast.OpGth:
		return e.evalCompare(n, func(c int) bool { return c > 0 })
	case ast.OpEql:
		return e.evalEql(n)
	case ast.OpAnd:
		return e.evalAnd(n)
	case ast.OpOr:
		return e.evalOr(n)
	case ast.OpThen:
		return e.evalThen(n)
	case ast.OpAssign:
		return e.evalAssign(n)
	case ast.OpWhile:
		return e.evalWhile(n)
	case ast.OpHandle:
		return e.evalHandle(n)
	case ast.OpXRange:
		return e.evalXRange(n)

	// Arity 3 / 4.
	case ast.OpIf:
		return e.evalIf(n)
	case ast.OpGet:
		return e.evalGet(n)
	case ast.OpSet:
		return e.evalSet(n)

	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "unimplemented operator %q", n.Op)
	}
}

func (e *Evaluator) evalPrompt() (value.Value, error) {
	if v, ok := e.Env.DequeuePrompt(); ok {
		return e.resolveInjected(v)
	}
	line, ok := e.Env.ReadPromptLine()
	if !ok {
		return value.Null{}, nil
	}
	return value.String(line), nil
}

// resolveInjected turns a queued prompt/system response into a Value: a
// queued String is returned as-is, a queued Block is evaluated and its
// result coerced to String (letting an embedding host script a computed
// response).
func (e *Evaluator) resolveInjected(v value.Value) (value.Value, error) {
	if b, ok := v.(value.Block); ok {
		node, ok := b.Node.(ast.Node)
		if !ok {
			return nil, errors.NewRuntimeError(errors.TypeError, "queued block holds no AST node")
		}
		r, err := e.Eval(node)
		if err != nil {
			return nil, err
		}
		s, err := value.ToString(r)
		if err != nil {
			return nil, err
		}
		return value.String(s), nil
	}
	return v, nil
}

func (e *Evaluator) evalCallOp(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	b, ok := v.(value.Block)
	if !ok {
		if e.Env.Flags.CheckCallArg {
			return nil, errors.NewRuntimeError(errors.TypeError, "CALL requires a Block, got %s", v.Kind())
		}
		return v, nil
	}
	node, ok := b.Node.(ast.Node)
	if !ok {
		return nil, errors.NewRuntimeError(errors.TypeError, "CALL requires a Block, got %s", v.Kind())
	}
	if err := e.stack.push("CALL", posOf(node)); err != nil {
		return nil, err
	}
	defer e.stack.pop()
	result, err := e.Eval(node)
	if err != nil {
		if rerr, ok := err.(*errors.RuntimeError); ok && e.Env.Flags.StackTrace {
			return nil, rerr.WithStack(e.stack.trace())
		}
		return nil, err
	}
	return result, nil
}

func posOf(n ast.Node) *token.Position {
	p := n.Position()
	return &p
}

func (e *Evaluator) evalQuit(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	code, err := value.ToInteger(v)
	if err != nil {
		return nil, err
	}
	if e.Env.Flags.CheckQuitBounds && (code < 0 || code > 127) {
		return nil, errors.NewRuntimeError(errors.DomainError, "quit code %d is out of the 0..127 range", code)
	}
	return nil, &errors.QuitError{Code: int(code)}
}

func (e *Evaluator) evalNot(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	b, err := value.ToBoolean(v)
	if err != nil {
		return nil, err
	}
	return value.Boolean(!b), nil
}

func (e *Evaluator) evalNeg(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	if l, ok := v.(value.List); ok && e.Env.Flags.NegatingListInvertsIt {
		return reverseList(l), nil
	}
	i, err := value.ToInteger(v)
	if err != nil {
		return nil, err
	}
	return value.Integer(e.wrap(-i)), nil
}

func (e *Evaluator) evalLength(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	l, err := value.ToList(v)
	if err != nil {
		return nil, err
	}
	return value.Integer(len(l)), nil
}

func (e *Evaluator) evalDump(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	e.Env.Dump(value.Dump(v))
	return v, nil
}

func (e *Evaluator) evalOutput(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	s, err := value.ToString(v)
	if err != nil {
		return nil, err
	}
	if len(s) > 0 && s[len(s)-1] == '\\' {
		e.Env.OutputNoNewline(s[:len(s)-1])
	} else {
		e.Env.Output(s)
	}
	return value.Null{}, nil
}

func (e *Evaluator) evalAscii(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case value.Integer:
		if x < 0 || x > 255 {
			return nil, errors.NewRuntimeError(errors.DomainError, "ASCII code %d is out of byte range", x)
		}
		return value.String(string([]byte{byte(x)})), nil
	case value.String:
		if len(x) == 0 {
			return nil, errors.NewRuntimeError(errors.DomainError, "ASCII requires a non-empty string")
		}
		return value.Integer(x[0]), nil
	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "ASCII requires an Integer or String, got %s", v.Kind())
	}
}

func (e *Evaluator) evalSystem(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	cmd, err := value.ToString(v)
	if err != nil {
		return nil, err
	}
	if queued, ok := e.Env.DequeueSystem(); ok {
		return e.resolveInjected(queued)
	}
	out, err := e.Env.RunSystemCommand(cmd)
	if err != nil {
		return nil, errors.NewRuntimeError(errors.IoError, "%s", err.Error())
	}
	return value.String(out), nil
}

// evalBox implements `,`: wrap the evaluated argument in a length-1 list.
func (e *Evaluator) evalBox(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	return value.List{v}, nil
}

// evalHead implements `[`: the first character/element of a String/List.
func (e *Evaluator) evalHead(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case value.String:
		if len(x) == 0 {
			return nil, errors.NewRuntimeError(errors.DomainError, "HEAD requires a non-empty String")
		}
		return value.String(x[:1]), nil
	case value.List:
		if len(x) == 0 {
			return nil, errors.NewRuntimeError(errors.DomainError, "HEAD requires a non-empty List")
		}
		return x[0], nil
	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "HEAD requires a String or List, got %s", v.Kind())
	}
}

// evalTail implements `]`: everything but the first character/element.
func (e *Evaluator) evalTail(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case value.String:
		if len(x) == 0 {
			return nil, errors.NewRuntimeError(errors.DomainError, "TAIL requires a non-empty String")
		}
		return value.String(x[1:]), nil
	case value.List:
		if len(x) == 0 {
			return nil, errors.NewRuntimeError(errors.DomainError, "TAIL requires a non-empty List")
		}
		out := make(value.List, len(x)-1)
		copy(out, x[1:])
		return out, nil
	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "TAIL requires a String or List, got %s", v.Kind())
	}
}

func (e *Evaluator) evalAnd(n *ast.Call) (value.Value, error) {
	a, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	ok, err := value.ToBoolean(a)
	if err != nil {
		return nil, err
	}
	if !ok {
		return a, nil
	}
	return e.Eval(n.Args[1])
}

func (e *Evaluator) evalOr(n *ast.Call) (value.Value, error) {
	a, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	ok, err := value.ToBoolean(a)
	if err != nil {
		return nil, err
	}
	if ok {
		return a, nil
	}
	return e.Eval(n.Args[1])
}

func (e *Evaluator) evalThen(n *ast.Call) (value.Value, error) {
	if _, err := e.Eval(n.Args[0]); err != nil {
		return nil, err
	}
	return e.Eval(n.Args[1])
}

func (e *Evaluator) evalAssign(n *ast.Call) (value.Value, error) {
	target, ok := n.Args[0].(*ast.VarRef)
	if !ok {
		return nil, errors.NewRuntimeError(errors.TypeError, "assignment requires a variable on the left, got %T", n.Args[0])
	}
	v, err := e.Eval(n.Args[1])
	if err != nil {
		return nil, err
	}
	e.Env.Set(target.Name, v)
	return v, nil
}

func (e *Evaluator) evalWhile(n *ast.Call) (value.Value, error) {
	for {
		cond, err := e.Eval(n.Args[0])
		if err != nil {
			return nil, err
		}
		ok, err := value.ToBoolean(cond)
		if err != nil {
			return nil, err
		}
		if !ok {
			return value.Null{}, nil
		}
		if _, err := e.Eval(n.Args[1]); err != nil {
			return nil, err
		}
	}
}

func (e *Evaluator) evalIf(n *ast.Call) (value.Value, error) {
	cond, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	ok, err := value.ToBoolean(cond)
	if err != nil {
		return nil, err
	}
	if ok {
		return e.Eval(n.Args[1])
	}
	return e.Eval(n.Args[2])
}

func (e *Evaluator) evalCompare(n *ast.Call, ok func(int) bool) (value.Value, error) {
	a, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	b, err := e.Eval(n.Args[1])
	if err != nil {
		return nil, err
	}
	c, err := value.Compare(a, b)
	if err != nil {
		return nil, err
	}
	return value.Boolean(ok(c)), nil
}

func (e *Evaluator) evalEql(n *ast.Call) (value.Value, error) {
	a, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	b, err := e.Eval(n.Args[1])
	if err != nil {
		return nil, err
	}
	ok, err := value.Equal(a, b, e.Env.Flags.CheckEqualsParams)
	if err != nil {
		return nil, err
	}
	return value.Boolean(ok), nil
}

func (e *Evaluator) evalGet(n *ast.Call) (value.Value, error) {
	container, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	start, length, err := e.evalRange(n.Args[1], n.Args[2])
	if err != nil {
		return nil, err
	}
	switch x := container.(type) {
	case value.String:
		start = e.normalizeIndex(start, len(x))
		if start < 0 || length < 0 || start+length > len(x) {
			return nil, errors.NewRuntimeError(errors.DomainError, "GET range [%d, %d) out of bounds for length %d", start, start+length, len(x))
		}
		return value.String(x[start : start+length]), nil
	case value.List:
		start = e.normalizeIndex(start, len(x))
		if start < 0 || length < 0 || start+length > len(x) {
			return nil, errors.NewRuntimeError(errors.DomainError, "GET range [%d, %d) out of bounds for length %d", start, start+length, len(x))
		}
		out := make(value.List, length)
		copy(out, x[start:start+length])
		return out, nil
	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "GET requires a String or List, got %s", container.Kind())
	}
}

// normalizeIndex turns a negative start index into one counting from the
// end of a length-n container, under flags.NegativeIndexing. Without the
// flag a negative index is left alone, which GET/SET's bounds check then
// rejects as out of range.
func (e *Evaluator) normalizeIndex(start, n int) int {
	if e.Env.Flags.NegativeIndexing && start < 0 {
		return start + n
	}
	return start
}

func (e *Evaluator) evalSet(n *ast.Call) (value.Value, error) {
	container, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	start, length, err := e.evalRange(n.Args[1], n.Args[2])
	if err != nil {
		return nil, err
	}
	replacement, err := e.Eval(n.Args[3])
	if err != nil {
		return nil, err
	}
	switch x := container.(type) {
	case value.String:
		start = e.normalizeIndex(start, len(x))
		if start < 0 || length < 0 || start+length > len(x) {
			return nil, errors.NewRuntimeError(errors.DomainError, "SET range [%d, %d) out of bounds for length %d", start, start+length, len(x))
		}
		rep, err := value.ToString(replacement)
		if err != nil {
			return nil, err
		}
		return value.String(string(x[:start]) + rep + string(x[start+length:])), nil
	case value.List:
		start = e.normalizeIndex(start, len(x))
		if start < 0 || length < 0 || start+length > len(x) {
			return nil, errors.NewRuntimeError(errors.DomainError, "SET range [%d, %d) out of bounds for length %d", start, start+length, len(x))
		}
		rep, err := value.ToList(replacement)
		if err != nil {
			return nil, err
		}
		out := make(value.List, 0, len(x)-length+len(rep))
		out = append(out, x[:start]...)
		out = append(out, rep...)
		out = append(out, x[start+length:]...)
		return out, nil
	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "SET requires a String or List, got %s", container.Kind())
	}
}

func (e *Evaluator) evalRange(startNode, lengthNode ast.Node) (start, length int, err error) {
	sv, err := e.Eval(startNode)
	if err != nil {
		return 0, 0, err
	}
	s, err := value.ToInteger(sv)
	if err != nil {
		return 0, 0, err
	}
	lv, err := e.Eval(lengthNode)
	if err != nil {
		return 0, 0, err
	}
	l, err := value.ToInteger(lv)
	if err != nil {
		return 0, 0, err
	}
	return int(s), int(l), nil
}

// wrap applies the active integer width (32 or 64 bits) to an arithmetic
// result, matching flags.I32Integer.
func (e *Evaluator) wrap(v int64) int64 {
	return text.WrapSigned(v, e.Env.Flags.IntegerBits())
}

func reverseList(l value.List) value.List {
	out := make(value.List, len(l))
	for i, v := range l {
		out[len(l)-1-i] = v
	}
	return out
}
