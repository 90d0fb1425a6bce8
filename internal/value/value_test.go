package value

import "testing"

func TestKindStrings(t *testing.T) {
	cases := []struct {
		v    Value
		kind Kind
	}{
		{Null{}, KindNull},
		{Boolean(true), KindBoolean},
		{Integer(1), KindInteger},
		{String("x"), KindString},
		{List{}, KindList},
		{Variable{Name: "x"}, KindVariable},
		{Block{}, KindBlock},
	}
	for _, c := range cases {
		if c.v.Kind() != c.kind {
			t.Errorf("%#v.Kind() = %v, want %v", c.v, c.v.Kind(), c.kind)
		}
	}
}

func TestBooleanString(t *testing.T) {
	if Boolean(true).String() != "true" {
		t.Error(`Boolean(true).String() should be "true"`)
	}
	if Boolean(false).String() != "false" {
		t.Error(`Boolean(false).String() should be "false"`)
	}
}

func TestListStringJoinsWithNewline(t *testing.T) {
	l := List{String("a"), String("b"), String("c")}
	if got, want := l.String(), "a\nb\nc"; got != want {
		t.Errorf("List.String() = %q, want %q", got, want)
	}
}
