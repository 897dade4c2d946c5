// Package steperrors provides structured error types for the steptools library.
//
// Import path: github.com/rmoseley/steptools/steperrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
// The package provides six core error types:
//
//   - [MalformedRecordError]: unterminated or unbalanced lexical structure
//   - [SyntaxError]: grammar violation during entity parsing, with byte offset
//   - [DanglingReferenceError]: a reference targets a nonexistent entity id
//   - [UnsupportedConstructError]: recognized but unhandled STEP syntax
//   - [InternalError]: an engine invariant violation (a bug, not bad input)
//   - [ConfigError]: invalid options or reduction profile
//
// # Sentinel Errors
//
// Each error type has a corresponding sentinel error for use with errors.Is():
//
//   - [ErrMalformedRecord]: Matches any [MalformedRecordError]
//   - [ErrSyntax]: Matches any [SyntaxError]
//   - [ErrDanglingReference]: Matches any [DanglingReferenceError]
//   - [ErrUnsupported]: Matches any [UnsupportedConstructError]
//   - [ErrInternal]: Matches any [InternalError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
// Check error category with errors.Is():
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("part.step"))
//	if errors.Is(err, steperrors.ErrMalformedRecord) {
//	    // Handle lexical error
//	}
//
// Extract error details with errors.As():
//
//	var refErr *steperrors.DanglingReferenceError
//	if errors.As(err, &refErr) {
//	    fmt.Printf("entity #%d references missing #%d\n", refErr.From, refErr.Target)
//	}
//
// Distinguishing input errors from engine defects:
//
//	if errors.Is(err, steperrors.ErrInternal) {
//	    // Not caused by the input file; report as a bug.
//	}
//
// # Error Chaining
//
// Error types that wrap an underlying failure support chaining via the Cause
// field and Unwrap() method, so root causes remain reachable through the
// standard error chain.
package steperrors
