package interp

import (
	"github.com/knight-lang/go-knight/internal/errors"
	"github.com/knight-lang/go-knight/internal/token"
)

// callStack is the evaluator's shadow stack: a bound on CALL/BLOCK
// recursion depth, and — when flags.StackTrace is on — the frame history a
// RuntimeError reports on unwind. maxDepth <= 0 disables the bound.
type callStack struct {
	frames   errors.StackTrace
	depth    int
	maxDepth int
	tracing  bool
}

func newCallStack(maxDepth int, tracing bool) *callStack {
	return &callStack{frames: errors.NewStackTrace(), maxDepth: maxDepth, tracing: tracing}
}

// push records entry into a CALL. The recursion bound applies regardless
// of whether stack traces are being recorded; frames are only retained
// (for later RuntimeError reporting) when tracing is on.
func (s *callStack) push(functionName string, pos *token.Position) error {
	if s.maxDepth > 0 && s.depth+1 > s.maxDepth {
		return errors.NewRuntimeError(errors.StackOverflow, "recursion depth exceeded %d", s.maxDepth)
	}
	s.depth++
	if s.tracing {
		s.frames = append(s.frames, errors.NewStackFrame(functionName, "", pos))
	}
	return nil
}

func (s *callStack) pop() {
	if s.depth > 0 {
		s.depth--
	}
	if s.tracing && len(s.frames) > 0 {
		s.frames = s.frames[:len(s.frames)-1]
	}
}

func (s *callStack) trace() errors.StackTrace {
	return s.frames
}
