package steperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrMalformedRecord indicates an unterminated or unbalanced lexical structure.
	ErrMalformedRecord = errors.New("malformed record")

	// ErrSyntax indicates a grammar violation during entity parsing.
	ErrSyntax = errors.New("syntax error")

	// ErrDanglingReference indicates a reference to a nonexistent entity id.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrUnsupported indicates a recognized but unhandled STEP construct.
	ErrUnsupported = errors.New("unsupported construct")

	// ErrInternal indicates an engine invariant violation. This is a defect
	// in the engine, never a property of the input file.
	ErrInternal = errors.New("internal error")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")
)

// MalformedRecordError represents an unterminated or unbalanced lexical
// structure: a statement without a terminating semicolon, an unclosed quoted
// string, or an unclosed comment at end of input.
type MalformedRecordError struct {
	// Offset is the byte offset where the offending structure begins
	Offset int64
	// Message describes the lexical failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *MalformedRecordError) Error() string {
	msg := fmt.Sprintf("malformed record at byte %d", e.Offset)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *MalformedRecordError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *MalformedRecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}

// SyntaxError represents a grammar violation while parsing an entity's
// parameter list. It carries the byte offset within the input and an
// expected-versus-found description.
type SyntaxError struct {
	// Offset is the byte offset of the unexpected token
	Offset int64
	// Expected describes what the grammar required at this position
	Expected string
	// Found describes what was actually present
	Found string
	// Message provides additional context, if any
	Message string
}

// Error returns a human-readable error message.
func (e *SyntaxError) Error() string {
	msg := fmt.Sprintf("syntax error at byte %d", e.Offset)
	if e.Expected != "" {
		msg += fmt.Sprintf(": expected %s", e.Expected)
		if e.Found != "" {
			msg += fmt.Sprintf(", found %s", e.Found)
		}
	} else if e.Found != "" {
		msg += fmt.Sprintf(": unexpected %s", e.Found)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *SyntaxError) Is(target error) bool {
	return target == ErrSyntax
}

// DanglingReferenceError represents a reference value whose target id does
// not exist in the DATA section.
type DanglingReferenceError struct {
	// From is the id of the entity containing the reference (0 if unknown)
	From int64
	// Target is the referenced id that does not exist
	Target int64
}

// Error returns a human-readable error message.
func (e *DanglingReferenceError) Error() string {
	if e.From > 0 {
		return fmt.Sprintf("dangling reference: entity #%d references nonexistent #%d", e.From, e.Target)
	}
	return fmt.Sprintf("dangling reference: nonexistent #%d", e.Target)
}

// Is reports whether target matches this error type.
func (e *DanglingReferenceError) Is(target error) bool {
	return target == ErrDanglingReference
}

// UnsupportedConstructError represents STEP syntax the engine recognizes but
// does not handle, such as ANCHOR/REFERENCE/SIGNATURE sections or &SCOPE
// blocks. The engine fails fast rather than guessing at semantics.
type UnsupportedConstructError struct {
	// Construct names the unsupported syntax feature
	Construct string
	// Offset is the byte offset where the construct begins
	Offset int64
}

// Error returns a human-readable error message.
func (e *UnsupportedConstructError) Error() string {
	return fmt.Sprintf("unsupported construct %q at byte %d", e.Construct, e.Offset)
}

// Is reports whether target matches this error type.
func (e *UnsupportedConstructError) Is(target error) bool {
	return target == ErrUnsupported
}

// InternalError represents an engine invariant violation, such as an entity
// id assigned to two equivalence classes. Internal errors are defects in the
// engine and are reported distinctly from input-caused errors so callers can
// tell "bad input" from "engine bug".
type InternalError struct {
	// Stage names the pipeline stage that detected the violation
	Stage string
	// Message describes the violated invariant
	Message string
}

// Error returns a human-readable error message.
func (e *InternalError) Error() string {
	msg := "internal error"
	if e.Stage != "" {
		msg += " in " + e.Stage
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg + " (this is a bug in steptools, not a problem with the input file)"
}

// Is reports whether target matches this error type.
func (e *InternalError) Is(target error) bool {
	return target == ErrInternal
}

// ConfigError represents an invalid option value or reduction profile.
type ConfigError struct {
	// Option names the offending option or profile field
	Option string
	// Message describes why the value is invalid
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += ": " + e.Option
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}
