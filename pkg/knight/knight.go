// Package knight is the embedding API for the Knight interpreter: a small
// Engine wrapping a parser and evaluator over one long-lived Environment,
// for hosts that want to run Knight programs without shelling out to
// cmd/knight.
package knight

import (
	"io"
	"os"

	"github.com/knight-lang/go-knight/internal/errors"
	"github.com/knight-lang/go-knight/internal/flags"
	"github.com/knight-lang/go-knight/internal/interp"
	"github.com/knight-lang/go-knight/internal/lexer"
	"github.com/knight-lang/go-knight/internal/parser"
	"github.com/knight-lang/go-knight/internal/runtime"
	"github.com/knight-lang/go-knight/internal/value"
)

// Engine runs Knight programs against one persistent Environment, so
// variables and RNG state carry over between successive Eval calls.
type Engine struct {
	flags flags.Flags
	env   *runtime.Environment
}

// Option configures an Engine at construction time.
type Option func(*config)

type config struct {
	flagOpts     []flags.Option
	stdin        io.Reader
	stdout       io.Writer
	systemRunner runtime.SystemRunner
	fileReader   runtime.FileReader
	seeded       bool
	seed         int64
}

// WithCompliance enables or disables every compliance check at once.
func WithCompliance(on bool) Option {
	return func(c *config) { c.flagOpts = append(c.flagOpts, flags.WithCompliance(on)) }
}

// WithFlagOptions appends raw flags.Option values, for callers that want
// finer control than the named With* options below give.
func WithFlagOptions(opts ...flags.Option) Option {
	return func(c *config) { c.flagOpts = append(c.flagOpts, opts...) }
}

// WithFlags replaces the Engine's entire flag snapshot, for callers (like
// cmd/knight) that have already assembled a complete flags.Flags from
// their own command-line surface.
func WithFlags(f flags.Flags) Option {
	return func(c *config) {
		c.flagOpts = append(c.flagOpts, func(ff *flags.Flags) { *ff = f })
	}
}

// WithStdin sets the Engine's PROMPT source. Defaults to os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(c *config) { c.stdin = r }
}

// WithStdout sets the Engine's OUTPUT/DUMP sink. Defaults to os.Stdout.
func WithStdout(w io.Writer) Option {
	return func(c *config) { c.stdout = w }
}

// WithSystemRunner supplies the collaborator backing `` ` `` / `$`.
func WithSystemRunner(run runtime.SystemRunner) Option {
	return func(c *config) { c.systemRunner = run }
}

// WithFileReader supplies the collaborator backing `USE`.
func WithFileReader(read runtime.FileReader) Option {
	return func(c *config) { c.fileReader = read }
}

// WithSeed seeds the Engine's RNG deterministically, for reproducible
// tests and demos.
func WithSeed(seed int64) Option {
	return func(c *config) { c.seeded = true; c.seed = seed }
}

// New creates an Engine. Absent options it runs with flags.Default(),
// reads PROMPT from os.Stdin, and writes OUTPUT/DUMP to os.Stdout.
func New(opts ...Option) (*Engine, error) {
	c := &config{stdin: os.Stdin, stdout: os.Stdout}
	for _, opt := range opts {
		opt(c)
	}

	f := flags.New(c.flagOpts...)
	envOpts := []runtime.Option{
		runtime.WithFlags(f),
		runtime.WithStdin(c.stdin),
		runtime.WithStdout(c.stdout),
	}
	if c.systemRunner != nil {
		envOpts = append(envOpts, runtime.WithSystemRunner(c.systemRunner))
	}
	if c.fileReader != nil {
		envOpts = append(envOpts, runtime.WithFileReader(c.fileReader))
	}
	if c.seeded {
		envOpts = append(envOpts, runtime.WithRandSeed(c.seed))
	}

	return &Engine{flags: f, env: runtime.New(envOpts...)}, nil
}

// SetOutput redirects the Engine's OUTPUT/DUMP sink, for capturing a
// single Eval call's output into a buffer.
func (e *Engine) SetOutput(w io.Writer) {
	e.env.SetStdout(w)
}

// SetInput redirects the Engine's PROMPT source.
func (e *Engine) SetInput(r io.Reader) {
	e.env.SetStdin(r)
}

// EnqueuePrompt queues a scripted PROMPT response, consumed by the next
// PROMPT instead of reading real input.
func (e *Engine) EnqueuePrompt(s string) {
	e.env.EnqueuePrompt(value.String(s))
}

// EnqueueSystem queues a scripted `` ` ``/`$` response.
func (e *Engine) EnqueueSystem(s string) {
	e.env.EnqueueSystem(value.String(s))
}

// Result reports the outcome of one Eval call.
type Result struct {
	// Success is false when evaluation raised an error, or when the
	// program ran QUIT with a non-zero code.
	Success bool
	// Value is the expression's result. Zero value (nil) when Success
	// is false.
	Value value.Value
	// Quit is true when the program ended via QUIT rather than running
	// to completion; ExitCode is only meaningful then.
	Quit     bool
	ExitCode int
}

// Eval parses and runs one Knight program, sharing this Engine's
// Environment (and so its variables, RNG state, and queued
// PROMPT/`` ` ``/`$` responses) with every other call.
func (e *Engine) Eval(src string) (Result, error) {
	l := lexer.New(src)
	p := parser.New(l, e.flags)
	node, err := p.Parse()
	if err != nil {
		return Result{Success: false}, err
	}

	ev := interp.New(e.env)
	v, err := ev.Eval(node)
	if err != nil {
		if qe, ok := err.(*errors.QuitError); ok {
			return Result{Success: qe.Code == 0, Quit: true, ExitCode: qe.Code}, nil
		}
		return Result{Success: false}, err
	}
	return Result{Success: true, Value: v}, nil
}
