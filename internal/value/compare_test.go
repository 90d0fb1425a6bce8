package value

import "testing"

func TestEqualReflexiveWithinKind(t *testing.T) {
	cases := []struct {
		a, b Value
		want bool
	}{
		{Integer(1), Integer(1), true},
		{Integer(1), Integer(2), false},
		{String("a"), String("a"), true},
		{Boolean(true), Boolean(true), true},
		{Null{}, Null{}, true},
		{List{Integer(1)}, List{Integer(1)}, true},
		{List{Integer(1)}, List{Integer(2)}, false},
	}
	for _, c := range cases {
		got, err := Equal(c.a, c.b, false)
		if err != nil {
			t.Fatalf("Equal(%v, %v): unexpected error %v", c.a, c.b, err)
		}
		if got != c.want {
			t.Errorf("Equal(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
		}
	}
}

func TestEqualNeverTrueAcrossKinds(t *testing.T) {
	got, err := Equal(Integer(1), String("1"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got {
		t.Error("Integer(1) should never equal String(\"1\")")
	}
}

func TestEqualRejectsBlockUnderCheckEqualsParams(t *testing.T) {
	_, err := Equal(Block{}, Block{}, true)
	if err == nil {
		t.Fatal("expected comparing Blocks with check-equals-params on to fail")
	}
	_, err = Equal(Block{}, Block{}, false)
	if err != nil {
		t.Fatalf("expected no error with check-equals-params off, got %v", err)
	}
}

func TestCompareIntegerCoercesRight(t *testing.T) {
	c, err := Compare(Integer(1), String("2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c >= 0 {
		t.Errorf("Compare(1, \"2\") = %d, want negative", c)
	}
}

func TestCompareStringCoercesRight(t *testing.T) {
	c, err := Compare(String("1"), Integer(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c >= 0 {
		t.Errorf(`Compare("1", 2) = %d, want negative (string "1" < string "2")`, c)
	}
}

func TestCompareListLexicographic(t *testing.T) {
	c, err := Compare(List{Integer(1), Integer(2)}, List{Integer(1), Integer(3)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c >= 0 {
		t.Errorf("Compare([1,2], [1,3]) = %d, want negative", c)
	}

	c, err = Compare(List{Integer(1)}, List{Integer(1), Integer(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c >= 0 {
		t.Errorf("Compare([1], [1,2]) = %d, want negative (shorter prefix)", c)
	}
}

func TestCompareVariableIsNotOrderable(t *testing.T) {
	if _, err := Compare(Variable{Name: "x"}, Integer(1)); err == nil {
		t.Fatal("expected Variable to be unorderable")
	}
}
