package errors

import "fmt"

// QuitError unwinds the whole evaluation to report the exit code requested
// by the `Q` operator. Unlike RuntimeError it is not a failure — callers
// (cmd/knight, pkg/knight) type-assert for it specifically and translate
// it into a process exit code rather than an error message.
type QuitError struct {
	Code int
}

func (e *QuitError) Error() string {
	return fmt.Sprintf("quit(%d)", e.Code)
}
