package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/knight-lang/go-knight/internal/flags"
	"github.com/knight-lang/go-knight/internal/lexer"
	"github.com/knight-lang/go-knight/internal/parser"
	"github.com/knight-lang/go-knight/internal/runtime"
	"github.com/knight-lang/go-knight/internal/value"
)

func run(t *testing.T, src string, opts ...runtime.Option) (value.Value, *runtime.Environment) {
	t.Helper()
	f := flags.Default()
	for _, o := range opts {
		// flags-affecting options are applied to the environment below;
		// this loop exists only to keep the call site uniform.
		_ = o
	}
	env := runtime.New(append([]runtime.Option{runtime.WithFlags(f)}, opts...)...)
	l := lexer.New(src)
	p := parser.New(l, env.Flags)
	node, err := p.Parse()
	if err != nil {
		t.Fatalf("parse(%q): %v", src, err)
	}
	ev := New(env)
	v, err := ev.Eval(node)
	if err != nil {
		t.Fatalf("eval(%q): %v", src, err)
	}
	return v, env
}

func runWithFlags(t *testing.T, src string, f flags.Flags) (value.Value, error) {
	t.Helper()
	env := runtime.New(runtime.WithFlags(f))
	l := lexer.New(src)
	p := parser.New(l, f)
	node, err := p.Parse()
	if err != nil {
		return nil, err
	}
	ev := New(env)
	return ev.Eval(node)
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		src  string
		want value.Value
	}{
		{"+ 1 2", value.Integer(3)},
		{"- 5 2", value.Integer(3)},
		{"* 3 4", value.Integer(12)},
		{"/ 7 2", value.Integer(3)},
		{"% 7 2", value.Integer(1)},
		{"^ 2 10", value.Integer(1024)},
		{`+ "foo" "bar"`, value.String("foobar")},
		{`* "ab" 3`, value.String("ababab")},
	}
	for _, c := range cases {
		got, _ := run(t, c.src)
		if got != c.want {
			t.Errorf("%s = %v, want %v", c.src, got, c.want)
		}
	}
}

func TestCheckOverflowAppliesToEveryOperator(t *testing.T) {
	f := flags.New(func(fl *flags.Flags) { fl.CheckOverflow = true })
	_, err := runWithFlags(t, `* 2 "99999999999999999999"`, f)
	if err == nil {
		t.Fatal("expected an IntegerOverflow error from coercing the oversized string operand")
	}
}

func TestDivisionByZero(t *testing.T) {
	_, err := runWithFlags(t, "/ 1 0", flags.Default())
	if err == nil {
		t.Fatal("expected a division-by-zero error")
	}
}

func TestComparisonAndEquality(t *testing.T) {
	cases := []struct {
		src  string
		want value.Value
	}{
		{"< 1 2", value.Boolean(true)},
		{"> 1 2", value.Boolean(false)},
		{"? 1 1", value.Boolean(true)},
		{`? 1 "1"`, value.Boolean(false)},
	}
	for _, c := range cases {
		got, _ := run(t, c.src)
		if got != c.want {
			t.Errorf("%s = %v, want %v", c.src, got, c.want)
		}
	}
}

func TestAssignmentAndVariableLookup(t *testing.T) {
	got, _ := run(t, "; = x 10 x")
	if got != value.Integer(10) {
		t.Errorf("got %v, want 10", got)
	}
}

func TestWhileLoop(t *testing.T) {
	src := `; = i 0 ; = total 0 ; WHILE < i 5 ; = total + total i = i + i 1 total`
	got, _ := run(t, src)
	if got != value.Integer(10) {
		t.Errorf("got %v, want 10 (0+1+2+3+4)", got)
	}
}

func TestIfBranching(t *testing.T) {
	got, _ := run(t, "IF T 1 2")
	if got != value.Integer(1) {
		t.Errorf("got %v, want 1", got)
	}
	got, _ = run(t, "IF F 1 2")
	if got != value.Integer(2) {
		t.Errorf("got %v, want 2", got)
	}
}

func TestBlockAndCall(t *testing.T) {
	got, _ := run(t, "CALL BLOCK + 1 2")
	if got != value.Integer(3) {
		t.Errorf("got %v, want 3", got)
	}
}

func TestCallOnNonBlock(t *testing.T) {
	got, err := runWithFlags(t, `CALL 5`, flags.Default())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.Integer(5) {
		t.Errorf("got %v, want 5", got)
	}

	f := flags.New(func(fl *flags.Flags) { fl.CheckCallArg = true })
	_, err = runWithFlags(t, `CALL 5`, f)
	if err == nil {
		t.Fatal("expected a TypeError under CheckCallArg")
	}
}

func TestOutput(t *testing.T) {
	var buf bytes.Buffer
	_, env := run(t, `OUTPUT "hello"`, runtime.WithStdout(&buf))
	_ = env
	if buf.String() != "hello\n" {
		t.Errorf("got %q, want %q", buf.String(), "hello\n")
	}
}

func TestOutputBackslashSuppressesNewline(t *testing.T) {
	var buf bytes.Buffer
	run(t, `OUTPUT "hello\"`, runtime.WithStdout(&buf))
	if buf.String() != "hello" {
		t.Errorf("got %q, want %q", buf.String(), "hello")
	}
}

func TestGetAndSet(t *testing.T) {
	got, _ := run(t, `GET "hello world" 6 5`)
	if got != value.String("world") {
		t.Errorf("got %v, want \"world\"", got)
	}
	got, _ = run(t, `SET "hello world" 0 5 "howdy"`)
	if got != value.String("howdy world") {
		t.Errorf("got %v, want \"howdy world\"", got)
	}
}

func TestBoxHeadTail(t *testing.T) {
	got, _ := run(t, `, 5`)
	want := value.List{value.Integer(5)}
	gotList, ok := got.(value.List)
	if !ok || len(gotList) != 1 || gotList[0] != want[0] {
		t.Errorf("got %v, want %v", got, want)
	}

	got, _ = run(t, `[ "abc"`)
	if got != value.String("a") {
		t.Errorf("got %v, want \"a\"", got)
	}

	got, _ = run(t, `] "abc"`)
	if got != value.String("bc") {
		t.Errorf("got %v, want \"bc\"", got)
	}
}

func TestListJoinWithPow(t *testing.T) {
	src := `; = xs + , 1 + , 2 , 3 ^ xs ","`
	got, _ := run(t, src)
	if got != value.String("1,2,3") {
		t.Errorf("got %v, want \"1,2,3\"", got)
	}
}

func TestLength(t *testing.T) {
	got, _ := run(t, `LENGTH "hello"`)
	if got != value.Integer(5) {
		t.Errorf("got %v, want 5", got)
	}
}

func TestPromptQueueOverridesStdin(t *testing.T) {
	env := runtime.New(runtime.WithFlags(flags.Default()))
	env.EnqueuePrompt(value.String("42"))
	l := lexer.New("PROMPT")
	p := parser.New(l, env.Flags)
	node, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}
	ev := New(env)
	got, err := ev.Eval(node)
	if err != nil {
		t.Fatal(err)
	}
	if got != value.String("42") {
		t.Errorf("got %v, want \"42\"", got)
	}
}

func TestHandleAndYeet(t *testing.T) {
	f := flags.New(func(fl *flags.Flags) { fl.HandleFunction = true; fl.YeetFunction = true })
	got, err := runWithFlags(t, `HANDLE YEET "boom" _errmsg`, f)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != value.String("boom") {
		t.Errorf("got %v, want \"boom\"", got)
	}
}

func TestRecursionDepthBound(t *testing.T) {
	f := flags.New(func(fl *flags.Flags) { fl.MaxRecursionDepth = 3 })
	// A self-recursive block would run forever without the bound; this
	// program nests CALL/BLOCK deeper than the configured limit.
	src := "CALL BLOCK CALL BLOCK CALL BLOCK CALL BLOCK 1"
	_, err := runWithFlags(t, src, f)
	if err == nil {
		t.Fatal("expected a recursion-depth error")
	}
}

func TestQuit(t *testing.T) {
	env := runtime.New(runtime.WithFlags(flags.Default()))
	l := lexer.New("QUIT 7")
	p := parser.New(l, env.Flags)
	node, _ := p.Parse()
	ev := New(env)
	_, err := ev.Eval(node)
	if err == nil {
		t.Fatal("expected a QuitError")
	}
	if !strings.Contains(err.Error(), "7") {
		t.Errorf("expected quit code 7 in error, got %v", err)
	}
}
