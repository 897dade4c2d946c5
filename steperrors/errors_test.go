package steperrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestMalformedRecordError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &MalformedRecordError{
			Offset:  42,
			Message: "unterminated string",
			Cause:   cause,
		}
		msg := err.Error()
		if msg != "malformed record at byte 42: unterminated string: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with offset only", func(t *testing.T) {
		err := &MalformedRecordError{Offset: 7}
		if err.Error() != "malformed record at byte 7" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &MalformedRecordError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrMalformedRecord", func(t *testing.T) {
		err := &MalformedRecordError{Offset: 1}
		if !errors.Is(err, ErrMalformedRecord) {
			t.Error("MalformedRecordError should match ErrMalformedRecord")
		}
	})

	t.Run("Is does not match other sentinels", func(t *testing.T) {
		err := &MalformedRecordError{}
		if errors.Is(err, ErrSyntax) {
			t.Error("MalformedRecordError should not match ErrSyntax")
		}
		if errors.Is(err, ErrInternal) {
			t.Error("MalformedRecordError should not match ErrInternal")
		}
	})
}

func TestSyntaxError(t *testing.T) {
	t.Run("Error message with expected and found", func(t *testing.T) {
		err := &SyntaxError{
			Offset:   15,
			Expected: "')'",
			Found:    "';'",
		}
		expected := "syntax error at byte 15: expected ')', found ';'"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with found only", func(t *testing.T) {
		err := &SyntaxError{Offset: 3, Found: "'@'"}
		if err.Error() != "syntax error at byte 3: unexpected '@'" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrSyntax", func(t *testing.T) {
		err := &SyntaxError{Offset: 1}
		if !errors.Is(err, ErrSyntax) {
			t.Error("SyntaxError should match ErrSyntax")
		}
	})

	t.Run("As extracts SyntaxError", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &SyntaxError{Offset: 99, Expected: "value"})
		var synErr *SyntaxError
		if !errors.As(err, &synErr) {
			t.Fatal("errors.As should succeed")
		}
		if synErr.Offset != 99 {
			t.Errorf("unexpected offset: %d", synErr.Offset)
		}
	})
}

func TestDanglingReferenceError(t *testing.T) {
	t.Run("Error message with source entity", func(t *testing.T) {
		err := &DanglingReferenceError{From: 3, Target: 99}
		expected := "dangling reference: entity #3 references nonexistent #99"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message without source entity", func(t *testing.T) {
		err := &DanglingReferenceError{Target: 12}
		if err.Error() != "dangling reference: nonexistent #12" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrDanglingReference", func(t *testing.T) {
		err := &DanglingReferenceError{Target: 1}
		if !errors.Is(err, ErrDanglingReference) {
			t.Error("DanglingReferenceError should match ErrDanglingReference")
		}
	})
}

func TestUnsupportedConstructError(t *testing.T) {
	t.Run("Error message", func(t *testing.T) {
		err := &UnsupportedConstructError{Construct: "ANCHOR section", Offset: 120}
		if err.Error() != `unsupported construct "ANCHOR section" at byte 120` {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrUnsupported", func(t *testing.T) {
		err := &UnsupportedConstructError{Construct: "&SCOPE"}
		if !errors.Is(err, ErrUnsupported) {
			t.Error("UnsupportedConstructError should match ErrUnsupported")
		}
	})
}

func TestInternalError(t *testing.T) {
	t.Run("Error message identifies the stage", func(t *testing.T) {
		err := &InternalError{Stage: "canonicalizer", Message: "id 7 assigned to two classes"}
		msg := err.Error()
		if msg != "internal error in canonicalizer: id 7 assigned to two classes (this is a bug in steptools, not a problem with the input file)" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Is matches ErrInternal only", func(t *testing.T) {
		err := &InternalError{Stage: "compactor"}
		if !errors.Is(err, ErrInternal) {
			t.Error("InternalError should match ErrInternal")
		}
		if errors.Is(err, ErrMalformedRecord) {
			t.Error("InternalError should not match ErrMalformedRecord")
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with option and cause", func(t *testing.T) {
		cause := errors.New("yaml: line 3: mapping values are not allowed")
		err := &ConfigError{Option: "profile", Message: "cannot decode", Cause: cause}
		msg := err.Error()
		expected := "configuration error: profile: cannot decode: yaml: line 3: mapping values are not allowed"
		if msg != expected {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Is matches ErrConfig", func(t *testing.T) {
		err := &ConfigError{Option: "max decimals"}
		if !errors.Is(err, ErrConfig) {
			t.Error("ConfigError should match ErrConfig")
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("boom")
		err := &ConfigError{Cause: cause}
		if !errors.Is(err, cause) {
			t.Error("cause should be reachable through the error chain")
		}
	})
}
