package parser

import (
	"errors"
	"testing"

	"github.com/rmoseley/steptools/steperrors"
)

func mustParseStatement(t *testing.T, text string) *Entity {
	t.Helper()
	e, err := parseEntityStatement(statement{text: text})
	if err != nil {
		t.Fatalf("parseEntityStatement(%q): %v", text, err)
	}
	return e
}

func TestParseEntityStatement(t *testing.T) {
	t.Run("simple entity", func(t *testing.T) {
		e := mustParseStatement(t, "#10=CARTESIAN_POINT('origin',(0.,0.,0.))")
		if e.ID != 10 {
			t.Errorf("ID = %d, want 10", e.ID)
		}
		if e.Type != "CARTESIAN_POINT" {
			t.Errorf("Type = %q", e.Type)
		}
		if len(e.Params) != 2 {
			t.Fatalf("expected 2 params, got %d", len(e.Params))
		}
		if e.Params[0].Kind != KindString || e.Params[0].Raw != "origin" {
			t.Errorf("first param = %+v", e.Params[0])
		}
		if e.Params[1].Kind != KindList || len(e.Params[1].List) != 3 {
			t.Errorf("second param = %+v", e.Params[1])
		}
	})

	t.Run("every value kind", func(t *testing.T) {
		e := mustParseStatement(t, "#1=X(42,-1.5E+2,.5,'a''b',.TRUE.,#99,(#2,$),*,LENGTH_MEASURE(0.001))")
		wantKinds := []ValueKind{
			KindNumber, KindNumber, KindNumber, KindString,
			KindEnum, KindRef, KindList, KindDerived, KindTyped,
		}
		if len(e.Params) != len(wantKinds) {
			t.Fatalf("expected %d params, got %d", len(wantKinds), len(e.Params))
		}
		for i, want := range wantKinds {
			if e.Params[i].Kind != want {
				t.Errorf("param %d kind = %v, want %v", i, e.Params[i].Kind, want)
			}
		}
		if e.Params[1].Raw != "-1.5E+2" {
			t.Errorf("real lexeme = %q, want verbatim -1.5E+2", e.Params[1].Raw)
		}
		if e.Params[5].Ref != 99 {
			t.Errorf("reference = %d, want 99", e.Params[5].Ref)
		}
		if e.Params[8].Raw != "LENGTH_MEASURE" || e.Params[8].List[0].Raw != "0.001" {
			t.Errorf("typed param = %+v", e.Params[8])
		}
	})

	t.Run("empty parameter list", func(t *testing.T) {
		e := mustParseStatement(t, "#5=GEOMETRIC_SET()")
		if len(e.Params) != 0 || e.Params == nil {
			t.Errorf("expected empty non-nil params, got %#v", e.Params)
		}
	})

	t.Run("whitespace between tokens", func(t *testing.T) {
		e := mustParseStatement(t, "#7 = LINE ( 'l' , #1 , #2 )")
		if e.Type != "LINE" || len(e.Params) != 3 {
			t.Errorf("entity = %+v", e)
		}
	})

	t.Run("complex entity", func(t *testing.T) {
		e := mustParseStatement(t, "#12=(NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.)LENGTH_UNIT())")
		if !e.IsComplex() {
			t.Fatal("expected complex entity")
		}
		if len(e.Complex) != 3 {
			t.Fatalf("expected 3 sub-records, got %d", len(e.Complex))
		}
		if e.Complex[0].Type != "NAMED_UNIT" || e.Complex[1].Type != "SI_UNIT" {
			t.Errorf("sub-records = %+v", e.Complex)
		}
		if len(e.Complex[1].Params) != 2 {
			t.Errorf("SI_UNIT params = %+v", e.Complex[1].Params)
		}
	})

	t.Run("reference cache is sorted and deduplicated", func(t *testing.T) {
		e := mustParseStatement(t, "#3=FOO(#9,#2,#9,'not #5 a ref',#2)")
		got := e.References()
		want := []int64{2, 9}
		if len(got) != len(want) {
			t.Fatalf("References() = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("References() = %v, want %v", got, want)
			}
		}
	})

	t.Run("user-defined keyword", func(t *testing.T) {
		e := mustParseStatement(t, "#4=!USER_THING('x')")
		if e.Type != "!USER_THING" {
			t.Errorf("Type = %q", e.Type)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		inputs := []string{
			"#10=CARTESIAN_POINT('',(0.,0.,0.))",
			"#12=(NAMED_UNIT(*)SI_UNIT(.MILLI.,.METRE.)LENGTH_UNIT())",
			"#3=X(42,$,*,.F.,#1,LENGTH_MEASURE(1.E-5))",
		}
		for _, input := range inputs {
			e := mustParseStatement(t, input)
			if got := e.String(); got != input {
				t.Errorf("round trip of %q produced %q", input, got)
			}
		}
	})
}

func TestParseEntityStatementErrors(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"missing hash", "1=FOO($)"},
		{"missing id", "#=FOO($)"},
		{"missing equals", "#1 FOO($)"},
		{"missing type keyword", "#1=($)"},
		{"lower-case keyword", "#1=foo($)"},
		{"missing open paren", "#1=FOO"},
		{"missing close paren", "#1=FOO('x'"},
		{"bare comma", "#1=FOO(,)"},
		{"trailing garbage", "#1=FOO($) extra"},
		{"hash without digits", "#1=FOO(#)"},
		{"empty enum", "#1=FOO(..)"},
		{"unclosed enum", "#1=FOO(.TRUE)"},
		{"typed with two values", "#1=FOO(LENGTH_MEASURE(1.,2.))"},
		{"empty complex entity", "#1=()"},
		{"sign without digits", "#1=FOO(-)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := parseEntityStatement(statement{text: tc.input})
			if err == nil {
				t.Fatalf("expected error for %q", tc.input)
			}
			if !errors.Is(err, steperrors.ErrSyntax) {
				t.Errorf("expected ErrSyntax, got %v", err)
			}
		})
	}

	t.Run("offset accounts for statement base", func(t *testing.T) {
		_, err := parseEntityStatement(statement{text: "#1=FOO(,)", offset: 100})
		var synErr *steperrors.SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatalf("expected SyntaxError, got %v", err)
		}
		if synErr.Offset != 107 {
			t.Errorf("offset = %d, want 107 (base 100 + position of ',')", synErr.Offset)
		}
	})

	t.Run("unterminated string reports opening quote", func(t *testing.T) {
		_, err := parseEntityStatement(statement{text: "#1=FOO('oops"})
		var synErr *steperrors.SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatalf("expected SyntaxError, got %v", err)
		}
		if synErr.Offset != 7 {
			t.Errorf("offset = %d, want 7", synErr.Offset)
		}
	})
}
