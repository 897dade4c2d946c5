// Package steptools provides tools for losslessly reducing STEP (ISO 10303-21)
// CAD exchange files.
//
// steptools shrinks STEP files by deduplicating semantically identical
// entities, repointing every reference at the surviving representative,
// removing unreachable entities, and renumbering the result into a compact,
// deterministic DATA section. Reduction is purely structural: no geometry is
// approximated and no numeric value in the output is rewritten.
//
// # Overview
//
// The library consists of three primary packages:
//
//   - parser: Parse STEP files into a typed entity graph
//   - reducer: Deduplicate, rewrite references, prune orphans, and compact ids
//   - writer: Serialize the reduced graph back to valid STEP text
//
// # Installation
//
// Install the library using go get:
//
//	go get github.com/rmoseley/steptools
//
// # Quick Start
//
// Reduce a STEP file in one call:
//
//	import "github.com/rmoseley/steptools/reducer"
//
//	data, err := os.ReadFile("part.step")
//	if err != nil {
//		log.Fatal(err)
//	}
//	reduced, err := reducer.ReduceBytes(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	os.WriteFile("part.reduced.step", reduced, 0o644)
//
// Or drive the stages separately:
//
//	result, err := parser.ParseWithOptions(parser.WithFilePath("part.step"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	r := reducer.New()
//	reduction, err := r.Reduce(result.File)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, err := writer.Write(reduction.File)
//
// # Error Handling
//
// All failure modes surface as structured errors from the steperrors package
// and can be classified with errors.Is and errors.As:
//
//	if errors.Is(err, steperrors.ErrDanglingReference) {
//	    // the input references an entity id that does not exist
//	}
//
// The engine never writes partial output: a parse or reduction error aborts
// the run before any bytes are produced.
package steptools
