// Package reducer implements the STEP reduction engine: entity
// deduplication, reference rewriting, orphan removal, and id compaction.
//
// # Quick Start
//
// Reduce raw STEP bytes in one call:
//
//	reduced, err := reducer.ReduceBytes(data)
//
// Or with options:
//
//	result, err := reducer.ReduceWithOptions(
//		reducer.WithFilePath("part.step"),
//		reducer.WithStepPrecision(true),
//	)
//
// # How Reduction Works
//
// The engine computes equivalence classes of semantically identical entities
// by fixed-point iteration. Each entity gets a content signature over its
// type and parameter tree; references inside the signature are expressed as
// the referenced entity's current class representative, not its original id.
// Iterating re-partitions the graph until no class assignment changes, which
// resolves transitive duplicates: once two children merge, their parents'
// signatures coincide on the next iteration and the parents merge too.
//
// Each iteration is a pure function from the previous partition to the next,
// so per-entity signature computation is sharded across workers with a
// barrier between iterations. The iteration count is capped at the entity
// count; reaching the cap (possible only with reference cycles) is a valid
// terminal state.
//
// After canonicalization the surviving representatives are rewritten so
// every reference points at a representative, unreachable entities are
// removed (see below), and the survivors are renumbered contiguously from
// #1 in source order. The output is deterministic: reducing the same input
// twice yields byte-identical results, and reducing a reduced file is a
// no-op.
//
// # What Never Merges
//
// Entity types that carry product identity (PRODUCT, SHAPE_REPRESENTATION,
// APPLICATION_CONTEXT, ...) are never deduplicated even when their content
// is byte-identical: two occurrences of the same part in an assembly are
// distinct objects. The default set matches common AP203/AP214 structure
// and can be overridden via a reduction profile.
//
// # Orphan Removal
//
// Entities unreachable from any structural root (PRODUCT_DEFINITION,
// SHAPE_DEFINITION_REPRESENTATION, ...) are dropped before compaction. If a
// file contains no known root type, orphan removal is skipped entirely
// rather than deleting the whole model. Disable with WithKeepOrphans.
//
// # Numeric Comparison
//
// Comparison of number parameters uses a canonical form: scientific notation
// expanded, redundant zeros stripped. Optionally numbers may be compared
// only to a maximum number of decimals, either fixed (WithMaxDecimals) or
// derived from the file's UNCERTAINTY_MEASURE_WITH_UNIT length measure
// (WithStepPrecision). Normalization affects comparison only: emitted output
// always uses the surviving entity's original lexemes, so the engine never
// rewrites a number.
package reducer
