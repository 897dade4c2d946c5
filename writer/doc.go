// Package writer serializes parsed STEP files back to ISO 10303-21 text.
//
// The writer guarantees syntactic validity of its output (any conforming
// STEP reader can parse it) but not byte-identical formatting to the
// input: entity statements are emitted one per line from their parsed
// parameter trees, so multi-line wrapping and incidental whitespace from
// hand-authored files do not survive. Number and string lexemes are
// preserved verbatim, and the HEADER section and trailer pass through
// unchanged, so semantic identity always holds.
package writer
