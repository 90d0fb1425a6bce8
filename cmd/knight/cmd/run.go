package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	knighterrors "github.com/knight-lang/go-knight/internal/errors"
	"github.com/knight-lang/go-knight/internal/flags"
	"github.com/knight-lang/go-knight/internal/parser"
	"github.com/knight-lang/go-knight/pkg/knight"
)

var (
	exprFlag string
	fileFlag string

	strictFlag bool

	knightEncoding             bool
	i32Integer                 bool
	checkOverflow              bool
	checkContainerLength       bool
	verifyVariableNames        bool
	forbidTrailingTokens       bool
	checkQuitBounds            bool
	checkCallArg               bool
	limitRandRange             bool
	checkEqualsParams          bool
	checkIntegerFunctionBounds bool
	stackTrace                 bool
	maxRecursionDepth          int

	valueFunction  bool
	evalFunction   bool
	handleFunction bool
	yeetFunction   bool
	useFunction    bool
	systemFunction bool
	xsrand         bool
	xrange         bool
	xreverse       bool

	negativeIndexing           bool
	negatingListInvertsIt      bool
	unassignedVariablesAreNull bool
	negativeRandomIntegers     bool
)

func init() {
	rootCmd.Flags().StringVarP(&exprFlag, "expr", "e", "", "evaluate the given program text instead of reading a file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "read and execute the file at PATH; mutually exclusive with -e")

	rootCmd.Flags().BoolVarP(&strictFlag, "strict", "c", false, "enable every compliance check and the 32-bit integer width")

	rootCmd.Flags().BoolVar(&knightEncoding, "knight-encoding", false, "reject string literals containing bytes outside the Knight encoding")
	rootCmd.Flags().BoolVar(&i32Integer, "i32", false, "use 32-bit wrapping integer arithmetic instead of 64-bit")
	rootCmd.Flags().BoolVar(&checkOverflow, "check-overflow", false, "raise an error on integer overflow instead of wrapping")
	rootCmd.Flags().BoolVar(&checkContainerLength, "check-container-length", false, "raise an error when a string literal exceeds the 31-bit length bound")
	rootCmd.Flags().BoolVar(&verifyVariableNames, "verify-variable-names", false, "raise an error on overlong variable names")
	rootCmd.Flags().BoolVar(&forbidTrailingTokens, "forbid-trailing-tokens", false, "raise an error if the program has tokens after its first expression")
	rootCmd.Flags().BoolVar(&checkQuitBounds, "check-quit-bounds", false, "raise an error when QUIT is given a code outside 0..127")
	rootCmd.Flags().BoolVar(&checkCallArg, "check-call-arg", false, "raise an error when CALL is given a non-Block")
	rootCmd.Flags().BoolVar(&limitRandRange, "limit-rand-range", false, "limit RANDOM to the 0..0x7FFF range")
	rootCmd.Flags().BoolVar(&checkEqualsParams, "check-equals-params", false, "raise an error comparing a Block with `?`")
	rootCmd.Flags().BoolVar(&checkIntegerFunctionBounds, "check-integer-function-bounds", false, "raise an error on negative `%` operands or a negative `^` exponent")
	rootCmd.Flags().BoolVar(&stackTrace, "stack-trace", false, "record a call stack and attach it to runtime errors")
	rootCmd.Flags().IntVar(&maxRecursionDepth, "max-recursion-depth", 4096, "bound CALL/BLOCK recursion depth; 0 disables the bound")

	rootCmd.Flags().BoolVar(&valueFunction, "ext-value", false, "enable the VALUE extension")
	rootCmd.Flags().BoolVar(&evalFunction, "ext-eval", false, "enable the EVAL extension")
	rootCmd.Flags().BoolVar(&handleFunction, "ext-handle", false, "enable the HANDLE extension")
	rootCmd.Flags().BoolVar(&yeetFunction, "ext-yeet", false, "enable the YEET extension")
	rootCmd.Flags().BoolVar(&useFunction, "ext-use", false, "enable the USE extension")
	rootCmd.Flags().BoolVar(&systemFunction, "ext-system", false, "enable the `$` spelling of SYSTEM")
	rootCmd.Flags().BoolVar(&xsrand, "ext-xsrand", false, "enable the XSRAND extension")
	rootCmd.Flags().BoolVar(&xrange, "ext-xrange", false, "enable the XRANGE extension")
	rootCmd.Flags().BoolVar(&xreverse, "ext-xreverse", false, "enable the XREVERSE extension")

	rootCmd.Flags().BoolVar(&negativeIndexing, "ext-negative-indexing", false, "let GET/SET's start index count from the end when negative")
	rootCmd.Flags().BoolVar(&negatingListInvertsIt, "iffy-negate-list-inverts", false, "make `~` reverse a List instead of negating its length")
	rootCmd.Flags().BoolVar(&unassignedVariablesAreNull, "iffy-unassigned-null", false, "read an unassigned variable as Null instead of raising UndefinedVariable")
	rootCmd.Flags().BoolVar(&negativeRandomIntegers, "iffy-negative-random", false, "let RANDOM return the full signed integer range instead of only non-negative values")

	rootCmd.RunE = runKnight
}

func runKnight(c *cobra.Command, args []string) error {
	src, file, err := sourceText(args)
	if err != nil {
		return err
	}

	f := buildFlags()

	engine, err := knight.New(
		knight.WithFlags(f),
		knight.WithSystemRunner(runShell),
		knight.WithFileReader(readFile),
	)
	if err != nil {
		return err
	}

	result, err := engine.Eval(src)
	if err != nil {
		printEvalError(err, src, file)
		os.Exit(1)
	}
	if result.Quit {
		os.Exit(result.ExitCode)
	}
	return nil
}

// printEvalError reports a parse or runtime failure. Parse errors carry a
// source position, so they get the source-context/caret rendering; anything
// else is printed as-is.
func printEvalError(err error, src, file string) {
	if perr, ok := err.(*parser.Error); ok {
		ce := knighterrors.NewCompilerError(perr.Pos, perr.Message, src, file)
		fmt.Fprintln(os.Stderr, ce.FormatWithContext(1, false))
		return
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "knight: %s\n", err)
	} else {
		fmt.Fprintln(os.Stderr, err)
	}
}

func sourceText(args []string) (src, file string, err error) {
	if exprFlag != "" && fileFlag != "" {
		return "", "", fmt.Errorf("-e and -f are mutually exclusive")
	}
	if exprFlag != "" {
		return exprFlag, "", nil
	}
	path := fileFlag
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return "", "", fmt.Errorf("expected -e PROGRAM, -f PATH, or a file argument")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	return string(data), path, nil
}

func buildFlags() flags.Flags {
	if strictFlag {
		return flags.Strict()
	}
	return flags.New(
		func(f *flags.Flags) {
			f.KnightEncoding = knightEncoding
			f.I32Integer = i32Integer
			f.CheckOverflow = checkOverflow
			f.CheckContainerLength = checkContainerLength
			f.VerifyVariableNames = verifyVariableNames
			f.ForbidTrailingTokens = forbidTrailingTokens
			f.CheckQuitBounds = checkQuitBounds
			f.CheckCallArg = checkCallArg
			f.LimitRandRange = limitRandRange
			f.CheckEqualsParams = checkEqualsParams
			f.CheckIntegerFunctionBounds = checkIntegerFunctionBounds
			f.StackTrace = stackTrace
			f.MaxRecursionDepth = maxRecursionDepth

			f.ValueFunction = valueFunction
			f.EvalFunction = evalFunction
			f.HandleFunction = handleFunction
			f.YeetFunction = yeetFunction
			f.UseFunction = useFunction
			f.SystemFunction = systemFunction
			f.XSRand = xsrand
			f.XRange = xrange
			f.XReverse = xreverse

			f.NegativeIndexing = negativeIndexing
			f.NegatingListInvertsIt = negatingListInvertsIt
			f.UnassignedVariablesAreNull = unassignedVariablesAreNull
			f.NegativeRandomIntegers = negativeRandomIntegers
		},
	)
}

// runShell backs `` ` ``/`$`: it runs cmd through the host shell and
// returns its stdout.
func runShell(cmdline string) (string, error) {
	out, err := exec.Command("sh", "-c", cmdline).Output()
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// readFile backs USE.
func readFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

