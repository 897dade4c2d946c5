package reducer

import (
	"testing"

	"github.com/rmoseley/steptools/parser"
)

func TestNormalizeNumber(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.0", "1."},
		{"1.", "1."},
		{"1.00000", "1."},
		{".5", "0.5"},
		{"0.5", "0.5"},
		{"-0.0", "0."},
		{"0.", "0."},
		{"1.0E-3", "0.001"},
		{"1.0e-3", "0.001"},
		{"2.5e+2", "250."},
		{"0.1E1", "1."},
		{"10.0E-1", "1."},
		{"1.5E2", "150."},
		{"1.5E-2", "0.015"},
		{"123.456", "123.456"},
		{"-123.4500", "-123.45"},
		{"007.0", "7."},
		{"1E5", "100000."},
		{"6.28E0", "6.28"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := normalizeNumber(tc.in); got != tc.want {
				t.Errorf("normalizeNumber(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestTruncateNumber(t *testing.T) {
	cases := []struct {
		in          string
		maxDecimals int
		want        string
	}{
		{"1.23456", 3, "1.234"},
		{"1.23456", 0, "1."},
		{"1.2", 3, "1.2"},
		{"1.0001", 3, "1."},
		{"-1.9999", 2, "-1.99"},
		{"9.99999E-1", 2, "0.99"},
		{"0.0001", 3, "0."},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			if got := truncateNumber(tc.in, tc.maxDecimals); got != tc.want {
				t.Errorf("truncateNumber(%q, %d) = %q, want %q", tc.in, tc.maxDecimals, got, tc.want)
			}
		})
	}
}

func TestIsRealLexeme(t *testing.T) {
	reals := []string{"1.", "0.5", "1E5", "2e-3", "1.5E+2"}
	for _, s := range reals {
		if !isRealLexeme(s) {
			t.Errorf("isRealLexeme(%q) = false, want true", s)
		}
	}
	ints := []string{"1", "-42", "+7", "0"}
	for _, s := range ints {
		if isRealLexeme(s) {
			t.Errorf("isRealLexeme(%q) = true, want false", s)
		}
	}
}

func TestExtractUncertainty(t *testing.T) {
	parse := func(t *testing.T, records string) *parser.StepFile {
		t.Helper()
		result, err := parser.New().ParseBytes([]byte("DATA;\n" + records + "ENDSEC;\n"))
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		return result.File
	}

	t.Run("simple entity", func(t *testing.T) {
		file := parse(t, "#1=UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(0.001),$,'distance_accuracy_value','');\n")
		n, ok := extractUncertainty(file)
		if !ok || n != 4 {
			t.Errorf("got (%d, %v), want (4, true)", n, ok)
		}
	})

	t.Run("complex entity sub-record", func(t *testing.T) {
		file := parse(t, "#1=(CONVERSION_BASED_UNIT('',$)UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(0.01),$,'',''));\n")
		n, ok := extractUncertainty(file)
		if !ok || n != 3 {
			t.Errorf("got (%d, %v), want (3, true)", n, ok)
		}
	})

	t.Run("no uncertainty declared", func(t *testing.T) {
		file := parse(t, "#1=CARTESIAN_POINT('',(0.,0.,0.));\n")
		if _, ok := extractUncertainty(file); ok {
			t.Error("expected ok=false")
		}
	})

	t.Run("non-positive uncertainty ignored", func(t *testing.T) {
		file := parse(t, "#1=UNCERTAINTY_MEASURE_WITH_UNIT(LENGTH_MEASURE(0.),$,'','');\n")
		if _, ok := extractUncertainty(file); ok {
			t.Error("expected ok=false for zero uncertainty")
		}
	})
}
