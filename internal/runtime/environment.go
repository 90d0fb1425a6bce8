// Package runtime implements Knight's Environment: the variable table, I/O
// handles, RNG, prompt/system injection queues, and flags snapshot that an
// Evaluator reads and writes while executing a program.
//
// Environment owns every piece of mutable state a Knight program can touch.
// Values themselves stay immutable; "mutation" is always the Environment
// replacing what a variable slot points to.
package runtime

import (
	"bufio"
	"io"
	"math/rand"
	"strings"

	"github.com/knight-lang/go-knight/internal/flags"
	"github.com/knight-lang/go-knight/internal/value"
)

// SystemRunner executes a host shell command and returns its captured
// stdout. It is the narrow interface the `$` extension calls through; the
// CLI and embedding layers supply the concrete implementation (os/exec, a
// sandboxed stub, or an error for hosts that forbid it).
type SystemRunner func(cmd string) (string, error)

// FileReader reads a host file's contents for the `USE` extension.
type FileReader func(path string) (string, error)

// Variable is a named slot in an Environment's variable table. Reading an
// unassigned Variable is either an UndefinedVariable error or, under the
// unassigned-variables-default-to-null extension, Null — callers resolve
// that policy themselves via Assigned.
type Variable struct {
	Name     string
	Value    value.Value
	Assigned bool
}

// Environment holds everything a running Knight program can observe or
// change outside of the values flowing through its AST: variables, I/O,
// randomness, and the queues that let an embedding host script PROMPT/$
// responses ahead of time.
type Environment struct {
	Flags flags.Flags

	vars map[string]*Variable

	stdin  *bufio.Reader
	stdout io.Writer

	systemRunner SystemRunner
	fileReader   FileReader

	rng *rand.Rand

	promptQueue []value.Value
	systemQueue []value.Value
}

// Option configures an Environment at construction time.
type Option func(*Environment)

// WithFlags sets the Environment's compliance/extension flag snapshot.
func WithFlags(f flags.Flags) Option {
	return func(e *Environment) { e.Flags = f }
}

// WithStdin supplies the line source PROMPT reads from absent a queued
// injection.
func WithStdin(r io.Reader) Option {
	return func(e *Environment) { e.stdin = bufio.NewReader(r) }
}

// WithStdout supplies the sink OUTPUT and DUMP write to.
func WithStdout(w io.Writer) Option {
	return func(e *Environment) { e.stdout = w }
}

// SetStdout replaces the sink OUTPUT and DUMP write to after construction,
// letting an embedding host redirect a program's output mid-flight (for
// example to capture it into a buffer right before a particular Eval
// call).
func (e *Environment) SetStdout(w io.Writer) {
	e.stdout = w
}

// SetStdin replaces the line source PROMPT reads from after construction.
func (e *Environment) SetStdin(r io.Reader) {
	e.stdin = bufio.NewReader(r)
}

// WithSystemRunner supplies the shell-command collaborator for `$`.
func WithSystemRunner(run SystemRunner) Option {
	return func(e *Environment) { e.systemRunner = run }
}

// WithFileReader supplies the file-read collaborator for `USE`.
func WithFileReader(read FileReader) Option {
	return func(e *Environment) { e.fileReader = read }
}

// WithRandSeed seeds the Environment's RNG deterministically. Absent this
// option the RNG is seeded from the runtime's own entropy source.
func WithRandSeed(seed int64) Option {
	return func(e *Environment) { e.rng = rand.New(rand.NewSource(seed)) }
}

// New creates an Environment ready to run a program. Defaults: no stdin (an
// unseeded PROMPT reads EOF), stdout discarded, no system/file
// collaborators (an unconfigured `$`/`USE` call fails with IoError),
// entropy-seeded RNG.
func New(opts ...Option) *Environment {
	e := &Environment{
		vars:   make(map[string]*Variable),
		stdout: io.Discard,
		rng:    rand.New(rand.NewSource(rand.Int63())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Var interns a variable by name, returning the same *Variable on every
// call with the same name. This is the only way new variable slots come
// into existence.
func (e *Environment) Var(name string) *Variable {
	if v, ok := e.vars[name]; ok {
		return v
	}
	v := &Variable{Name: name}
	e.vars[name] = v
	return v
}

// Set assigns val to the named variable's slot, creating the slot if it
// does not already exist.
func (e *Environment) Set(name string, val value.Value) {
	v := e.Var(name)
	v.Value = val
	v.Assigned = true
}

// Output writes s to stdout, matching Knight's `O` when a string does not
// end with the escape backslash that suppresses its trailing newline.
func (e *Environment) Output(s string) {
	io.WriteString(e.stdout, s)
	io.WriteString(e.stdout, "\n")
}

// OutputNoNewline writes s to stdout with no trailing newline, matching `O`
// when s ends with `\`.
func (e *Environment) OutputNoNewline(s string) {
	io.WriteString(e.stdout, s)
}

// Dump writes s to stdout verbatim with no trailing newline of its own,
// used by the `D` operator to print its quoted/escaped representation.
func (e *Environment) Dump(s string) {
	io.WriteString(e.stdout, s)
}

// EnqueuePrompt appends a String or Block value to the prompt injection
// queue; the next `P` consumes it instead of reading real stdin.
func (e *Environment) EnqueuePrompt(v value.Value) {
	e.promptQueue = append(e.promptQueue, v)
}

// DequeuePrompt pops the next queued prompt response, if any.
func (e *Environment) DequeuePrompt() (value.Value, bool) {
	if len(e.promptQueue) == 0 {
		return nil, false
	}
	v := e.promptQueue[0]
	e.promptQueue = e.promptQueue[1:]
	return v, true
}

// EnqueueSystem appends a String or Block value to the system injection
// queue; the next `$` consumes it instead of running a real command.
func (e *Environment) EnqueueSystem(v value.Value) {
	e.systemQueue = append(e.systemQueue, v)
}

// DequeueSystem pops the next queued system response, if any.
func (e *Environment) DequeueSystem() (value.Value, bool) {
	if len(e.systemQueue) == 0 {
		return nil, false
	}
	v := e.systemQueue[0]
	e.systemQueue = e.systemQueue[1:]
	return v, true
}

// ReadPromptLine reads the next line from stdin for `P`, stripping a single
// trailing "\n" and, if present, a trailing "\r" before it. Returns ok=false
// on EOF, which the evaluator turns into Null.
func (e *Environment) ReadPromptLine() (line string, ok bool) {
	if e.stdin == nil {
		return "", false
	}
	s, err := e.stdin.ReadString('\n')
	if s == "" && err != nil {
		return "", false
	}
	s = strings.TrimSuffix(s, "\n")
	s = strings.TrimSuffix(s, "\r")
	return s, true
}

// RunSystemCommand runs cmd through the configured SystemRunner, returning
// a *NoCollaboratorError if none was configured (the evaluator reports it
// as IoError).
func (e *Environment) RunSystemCommand(cmd string) (string, error) {
	if e.systemRunner == nil {
		return "", &NoCollaboratorError{What: "system command runner"}
	}
	return e.systemRunner(cmd)
}

// ReadFile reads path through the configured FileReader, returning a
// *NoCollaboratorError if none was configured (the evaluator reports it as
// IoError).
func (e *Environment) ReadFile(path string) (string, error) {
	if e.fileReader == nil {
		return "", &NoCollaboratorError{What: "file reader"}
	}
	return e.fileReader(path)
}

// Random returns the next random integer per the active RNG policy: full
// non-negative 32-bit range by default, [0, 0x7FFF] under limit-rand-range,
// or the full signed range under negative-random-integers.
func (e *Environment) Random() int64 {
	switch {
	case e.Flags.LimitRandRange:
		return int64(e.rng.Int31n(0x8000))
	case e.Flags.NegativeRandomIntegers:
		return int64(e.rng.Uint64())
	default:
		return int64(e.rng.Uint32())
	}
}

// Seed reseeds the RNG deterministically, used by the `XSRAND` extension.
func (e *Environment) Seed(seed int64) {
	e.rng = rand.New(rand.NewSource(seed))
}

// NoCollaboratorError reports that an Environment was asked to perform I/O
// (a system command, a file read) with no collaborator configured for it.
type NoCollaboratorError struct {
	What string
}

func (e *NoCollaboratorError) Error() string {
	return "no " + e.What + " configured for this environment"
}
