package reducer

import (
	"time"

	"github.com/rmoseley/steptools/parser"
	"github.com/rmoseley/steptools/steperrors"
)

// Reducer handles structural reduction of parsed STEP files
type Reducer struct {
	// MaxDecimals bounds numeric comparison to at most N decimal places.
	// Negative disables truncation (numbers are still normalized).
	MaxDecimals int
	// UseStepPrecision derives the comparison precision from the file's
	// UNCERTAINTY_MEASURE_WITH_UNIT length measure. When both this and
	// MaxDecimals apply, the smaller precision wins.
	UseStepPrecision bool
	// KeepOrphans disables removal of entities unreachable from a GC root.
	KeepOrphans bool
	// MaskNames blanks the leading quoted name parameter of each entity
	// during comparison, merging entities that differ only in label.
	MaskNames bool
	// IdentityTypes overrides DefaultIdentityTypes. nil means default.
	IdentityTypes []string
	// GCRootTypes overrides DefaultGCRootTypes. nil means default.
	GCRootTypes []string
	// Workers caps signature-computation concurrency. 0 means GOMAXPROCS.
	Workers int
	// Logger is the structured logger for reduction diagnostics.
	// If nil, logging is disabled (default)
	Logger parser.Logger
}

// New creates a new Reducer instance with default settings
func New() *Reducer {
	return &Reducer{MaxDecimals: -1}
}

// log returns the configured logger, or a no-op logger if none is set.
func (r *Reducer) log() parser.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return parser.NopLogger{}
}

// ReduceStats summarizes what a reduction run did.
type ReduceStats struct {
	// InputEntities is the entity count before reduction
	InputEntities int
	// OutputEntities is the entity count after reduction
	OutputEntities int
	// MergedEntities is the number of entities removed as duplicates
	MergedEntities int
	// OrphansRemoved is the number of entities removed as unreachable
	OrphansRemoved int
}

// ReduceResult contains the results of a reduction run.
type ReduceResult struct {
	// File is the reduced entity graph, ready for the writer. The header
	// and footer are carried over from the input unchanged.
	File *parser.StepFile
	// Mapping resolves original entity ids to output ids
	Mapping *IDMapping
	// Classes lists the final equivalence classes in output order
	Classes []EquivalenceClass
	// Stats summarizes the reduction
	Stats ReduceStats
	// Iterations is the number of fixed-point iterations taken
	Iterations int
	// SourcePath is the path of the input file, when parsed from one
	SourcePath string
	// Duration is the wall time the reduction took (excluding parsing)
	Duration time.Duration
}

// Reduce runs the full reduction pipeline on a parsed file: canonicalize,
// rewrite references, prune orphans, compact ids. The input file is not
// modified; the result owns a new DataSection.
//
// Reduction either completes fully or fails atomically. The only error
// condition is an internal invariant violation, which indicates an engine
// bug rather than a property of the input.
func (r *Reducer) Reduce(file *parser.StepFile) (*ReduceResult, error) {
	start := time.Now()
	logger := r.log()

	maxDecimals := -1
	if r.MaxDecimals >= 0 {
		maxDecimals = r.MaxDecimals
	}
	if r.UseStepPrecision {
		if n, ok := extractUncertainty(file); ok {
			if maxDecimals < 0 || n < maxDecimals {
				maxDecimals = n
			}
			logger.Debug("derived precision from STEP uncertainty", "decimals", n)
		}
	}

	sc := &sigContext{
		maxDecimals: maxDecimals,
		maskNames:   r.MaskNames,
		identity:    typeSet(r.IdentityTypes, DefaultIdentityTypes),
	}

	partition, iterations, err := canonicalize(file.Data, sc, r.Workers, logger)
	if err != nil {
		return nil, err
	}

	survivors := rewriteSurvivors(file.Data, partition)

	orphansRemoved := 0
	if !r.KeepOrphans {
		pruned := pruneOrphans(survivors, typeSet(r.GCRootTypes, DefaultGCRootTypes))
		orphansRemoved = len(survivors) - len(pruned)
		survivors = pruned
	}

	compacted, toCompacted := compact(survivors)

	data := parser.NewDataSection()
	for _, e := range compacted {
		if err := data.Add(e); err != nil {
			return nil, &steperrors.InternalError{
				Stage:   "compactor",
				Message: "compacted ids collide: " + err.Error(),
			}
		}
	}

	result := &ReduceResult{
		File: &parser.StepFile{
			Header: file.Header,
			Data:   data,
			Footer: file.Footer,
		},
		Mapping: &IDMapping{
			ToRepresentative: partition.repMap(),
			ToCompacted:      toCompacted,
		},
		Classes: partition.Classes(file.Data),
		Stats: ReduceStats{
			InputEntities:  file.Data.Len(),
			OutputEntities: data.Len(),
			MergedEntities: file.Data.Len() - partition.ClassCount(),
			OrphansRemoved: orphansRemoved,
		},
		Iterations: iterations,
		Duration:   time.Since(start),
	}

	logger.Info("reduced STEP file",
		"input_entities", result.Stats.InputEntities,
		"output_entities", result.Stats.OutputEntities,
		"merged", result.Stats.MergedEntities,
		"orphans_removed", result.Stats.OrphansRemoved,
		"iterations", result.Iterations,
		"duration", result.Duration)
	return result, nil
}
