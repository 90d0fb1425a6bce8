package value

import "testing"

func TestToIntegerCoercions(t *testing.T) {
	cases := []struct {
		in   Value
		want int64
	}{
		{Null{}, 0},
		{Boolean(true), 1},
		{Boolean(false), 0},
		{Integer(42), 42},
		{String("123"), 123},
		{String("  -5 "), -5},
		{List{Integer(1), Integer(2), Integer(3)}, 3},
	}
	for _, c := range cases {
		got, err := ToInteger(c.in)
		if err != nil {
			t.Fatalf("ToInteger(%v): unexpected error %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ToInteger(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestToIntegerCheckedOverflow(t *testing.T) {
	_, overflowed, err := ToIntegerChecked(String("999999999999"), 32)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !overflowed {
		t.Fatal("expected overflow flag to be set")
	}
}

func TestToBooleanCoercions(t *testing.T) {
	cases := []struct {
		in   Value
		want bool
	}{
		{Null{}, false},
		{Integer(0), false},
		{Integer(1), true},
		{String(""), false},
		{String("0"), true}, // non-empty string is truthy regardless of content
		{List{}, false},
		{List{Null{}}, true},
	}
	for _, c := range cases {
		got, err := ToBoolean(c.in)
		if err != nil {
			t.Fatalf("ToBoolean(%v): unexpected error %v", c.in, err)
		}
		if got != c.want {
			t.Errorf("ToBoolean(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestToStringNullIsEmpty(t *testing.T) {
	s, err := ToString(Null{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != "" {
		t.Errorf("ToString(Null) = %q, want empty string", s)
	}
}

func TestDumpNullIsTheWordNull(t *testing.T) {
	if got := Dump(Null{}); got != "null" {
		t.Errorf("Dump(Null) = %q, want \"null\"", got)
	}
}

func TestToListInteger(t *testing.T) {
	cases := []struct {
		in   int64
		want []int64
	}{
		{0, []int64{0}},
		{7, []int64{7}},
		{123, []int64{1, 2, 3}},
		{-123, []int64{-1, 2, 3}},
	}
	for _, c := range cases {
		l, err := ToList(Integer(c.in))
		if err != nil {
			t.Fatalf("ToList(%d): unexpected error %v", c.in, err)
		}
		if len(l) != len(c.want) {
			t.Fatalf("ToList(%d) = %v, want length %d", c.in, l, len(c.want))
		}
		for i, want := range c.want {
			if int64(l[i].(Integer)) != want {
				t.Errorf("ToList(%d)[%d] = %v, want %d", c.in, i, l[i], want)
			}
		}
	}
}

func TestToListString(t *testing.T) {
	l, err := ToList(String("abc"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a", "b", "c"}
	if len(l) != len(want) {
		t.Fatalf("got length %d, want %d", len(l), len(want))
	}
	for i, w := range want {
		if string(l[i].(String)) != w {
			t.Errorf("ToList(\"abc\")[%d] = %v, want %q", i, l[i], w)
		}
	}
}

func TestDumpString(t *testing.T) {
	got := Dump(String("a\"b\\c\nd"))
	want := `"a\"b\\c\nd"`
	if got != want {
		t.Errorf("Dump(String) = %q, want %q", got, want)
	}
}

func TestDumpList(t *testing.T) {
	got := Dump(List{Integer(1), String("x"), Boolean(true)})
	want := `[1, "x", true]`
	if got != want {
		t.Errorf("Dump(List) = %q, want %q", got, want)
	}
}

func TestTypeErrorOnVariableCoercion(t *testing.T) {
	if _, err := ToInteger(Variable{Name: "x"}); err == nil {
		t.Fatal("expected coercing a Variable to Integer to fail")
	}
	if _, err := ToBoolean(Block{}); err == nil {
		t.Fatal("expected coercing a Block to Boolean to fail")
	}
}
