package parser

import "testing"

func TestValueAppendTo(t *testing.T) {
	cases := []struct {
		name  string
		value Value
		want  string
	}{
		{"integer", Number("42"), "42"},
		{"real preserves lexeme", Number("1.50e-3"), "1.50e-3"},
		{"string", Str("widget"), "'widget'"},
		{"string with escaped quote", Str("it''s"), "'it''s'"},
		{"empty string", Str(""), "''"},
		{"enumeration", Enum("TRUE"), ".TRUE."},
		{"reference", Ref(123), "#123"},
		{"omitted", Omitted(), "$"},
		{"derived", Derived(), "*"},
		{"empty list", List(), "()"},
		{"nested list", List(Number("0."), List(Ref(5), Enum("F"))), "(0.,(#5,.F.))"},
		{"typed", Typed("LENGTH_MEASURE", Number("0.001")), "LENGTH_MEASURE(0.001)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.value.String(); got != tc.want {
				t.Errorf("String() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestValueEqual(t *testing.T) {
	t.Run("numbers compare by lexeme", func(t *testing.T) {
		if Number("1.0").Equal(Number("1.")) {
			t.Error("distinct lexemes must not be Equal")
		}
		if !Number("1.0").Equal(Number("1.0")) {
			t.Error("identical lexemes must be Equal")
		}
	})

	t.Run("kind mismatch", func(t *testing.T) {
		if Str("5").Equal(Number("5")) {
			t.Error("string and number must not be Equal")
		}
		if Omitted().Equal(Derived()) {
			t.Error("$ and * must not be Equal")
		}
	})

	t.Run("references compare by id", func(t *testing.T) {
		if !Ref(7).Equal(Ref(7)) || Ref(7).Equal(Ref(8)) {
			t.Error("reference equality must follow target id")
		}
	})

	t.Run("lists compare element-wise", func(t *testing.T) {
		a := List(Ref(1), Enum("T"))
		b := List(Ref(1), Enum("T"))
		c := List(Ref(1), Enum("F"))
		if !a.Equal(b) {
			t.Error("identical lists must be Equal")
		}
		if a.Equal(c) {
			t.Error("lists with different elements must not be Equal")
		}
		if a.Equal(List(Ref(1))) {
			t.Error("lists of different lengths must not be Equal")
		}
	})

	t.Run("typed compares keyword and inner", func(t *testing.T) {
		a := Typed("LENGTH_MEASURE", Number("0.01"))
		if !a.Equal(Typed("LENGTH_MEASURE", Number("0.01"))) {
			t.Error("identical typed params must be Equal")
		}
		if a.Equal(Typed("PLANE_ANGLE_MEASURE", Number("0.01"))) {
			t.Error("typed params with different keywords must not be Equal")
		}
	})
}

func TestValueKindString(t *testing.T) {
	kinds := map[ValueKind]string{
		KindNumber:   "number",
		KindString:   "string",
		KindEnum:     "enumeration",
		KindRef:      "reference",
		KindList:     "list",
		KindOmitted:  "omitted",
		KindDerived:  "derived",
		KindTyped:    "typed",
		ValueKind(0xff): "unknown",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("ValueKind(%d).String() = %q, want %q", k, got, want)
		}
	}
}
