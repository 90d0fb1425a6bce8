package interp

import (
	"github.com/knight-lang/go-knight/internal/ast"
	"github.com/knight-lang/go-knight/internal/errors"
	"github.com/knight-lang/go-knight/internal/lexer"
	"github.com/knight-lang/go-knight/internal/parser"
	"github.com/knight-lang/go-knight/internal/value"
)

func (e *Evaluator) evalValueOf(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	name, err := value.ToString(v)
	if err != nil {
		return nil, err
	}
	variable := e.Env.Var(name)
	if !variable.Assigned {
		if e.Env.Flags.UnassignedVariablesAreNull {
			return value.Null{}, nil
		}
		return nil, errors.NewRuntimeError(errors.UndefinedVariable, "undefined variable %q", name)
	}
	return variable.Value, nil
}

func (e *Evaluator) evalEval(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	src, err := value.ToString(v)
	if err != nil {
		return nil, err
	}
	return e.evalSource(src)
}

func (e *Evaluator) evalUse(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	path, err := value.ToString(v)
	if err != nil {
		return nil, err
	}
	src, err := e.Env.ReadFile(path)
	if err != nil {
		return nil, errors.NewRuntimeError(errors.IoError, "%s", err.Error())
	}
	return e.evalSource(src)
}

// evalSource lexes, parses, and evaluates src under this Evaluator's
// Environment flags — the shared implementation behind EVAL and USE.
func (e *Evaluator) evalSource(src string) (value.Value, error) {
	l := lexer.New(src)
	p := parser.New(l, e.Env.Flags)
	node, err := p.Parse()
	if err != nil {
		return nil, errors.NewRuntimeError(errors.DomainError, "%s", err.Error())
	}
	return e.Eval(node)
}

func (e *Evaluator) evalYeet(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	return nil, &errors.YeetError{Value: v}
}

func (e *Evaluator) evalHandle(n *ast.Call) (value.Value, error) {
	result, err := e.Eval(n.Args[0])
	if err == nil {
		return result, nil
	}
	if qe, ok := err.(*errors.QuitError); ok {
		return nil, qe
	}

	var caught value.Value
	if ye, ok := err.(*errors.YeetError); ok {
		if v, ok := ye.Value.(value.Value); ok {
			caught = v
		} else {
			caught = value.Null{}
		}
	} else {
		caught = value.String(err.Error())
	}
	e.Env.Set("_errmsg", caught)
	return e.Eval(n.Args[1])
}

func (e *Evaluator) evalXSRand(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	seed, err := value.ToInteger(v)
	if err != nil {
		return nil, err
	}
	e.Env.Seed(seed)
	return value.Null{}, nil
}

func (e *Evaluator) evalXRange(n *ast.Call) (value.Value, error) {
	av, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	bv, err := e.Eval(n.Args[1])
	if err != nil {
		return nil, err
	}

	if as, ok := av.(value.String); ok {
		bs, ok := bv.(value.String)
		if !ok || len(as) != 1 || len(bs) != 1 {
			return nil, errors.NewRuntimeError(errors.TypeError, "XRANGE over strings requires two single-byte strings")
		}
		start, end := as[0], bs[0]
		if start > end {
			return value.List{}, nil
		}
		out := make(value.List, 0, int(end-start))
		for c := start; c <= end; c++ {
			out = append(out, value.String(string([]byte{c})))
			if c == 255 {
				break
			}
		}
		return out, nil
	}

	start, err := value.ToInteger(av)
	if err != nil {
		return nil, err
	}
	end, err := value.ToInteger(bv)
	if err != nil {
		return nil, err
	}
	if start >= end {
		return value.List{}, nil
	}
	out := make(value.List, 0, end-start)
	for i := start; i < end; i++ {
		out = append(out, value.Integer(i))
	}
	return out, nil
}

func (e *Evaluator) evalXReverse(n *ast.Call) (value.Value, error) {
	v, err := e.Eval(n.Args[0])
	if err != nil {
		return nil, err
	}
	switch x := v.(type) {
	case value.String:
		b := []byte(x)
		for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
			b[i], b[j] = b[j], b[i]
		}
		return value.String(b), nil
	case value.List:
		return reverseList(x), nil
	default:
		return nil, errors.NewRuntimeError(errors.TypeError, "XREVERSE requires a String or List, got %s", v.Kind())
	}
}
