// Package parser provides parsing for STEP (ISO 10303-21) exchange files.
//
// The parser splits a STEP file into its HEADER, DATA, and trailer regions,
// converts every DATA-section record into a typed [Entity] with a recursive
// [Value] parameter tree, and validates referential integrity: every #NNN
// reference must resolve to an entity in the same DATA section.
//
// # Quick Start
//
// Parse a file using functional options:
//
//	result, err := parser.ParseWithOptions(
//		parser.WithFilePath("part.step"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("entities: %d\n", result.Stats.EntityCount)
//
// Or create a reusable Parser instance:
//
//	p := parser.New()
//	result1, _ := p.Parse("a.step")
//	result2, _ := p.Parse("b.step")
//
// # Data Model
//
// A parsed file is a [StepFile]: an opaque [HeaderSection] blob that is
// passed through to output unchanged, a [DataSection] of entities in source
// order, and the raw trailer text. Each [Entity] is either a simple record
// (#1=CARTESIAN_POINT('',(0.,0.,0.))) or a complex multi-record entity
// (#2=(A(...)B(...))). Parameters form a tagged-variant tree over numbers,
// strings, enumerations, references, nested lists, typed parameters, and the
// $ and * markers. Number and string lexemes are preserved verbatim so that
// re-serialization never rewrites a value.
//
// # Errors
//
// All failures are structured errors from the steperrors package:
// lexical problems surface as MalformedRecordError, grammar violations as
// SyntaxError with a byte offset, references to missing ids as
// DanglingReferenceError, and recognized-but-unhandled syntax (ANCHOR
// sections, &SCOPE blocks, multiple DATA sections) as
// UnsupportedConstructError. The parser never recovers from a malformed
// entity: partial data could silently drop references.
//
// # Reference Scanning
//
// [CollectReferences] and [RemapReferences] operate on raw record text with
// a dedicated byte scanner. Reference extraction is the hottest path in the
// reduction pipeline, so it avoids both regular expressions and value-tree
// traversal; see the package benchmarks.
package parser
