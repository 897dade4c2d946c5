package reducer

import (
	"fmt"
	"io"

	"github.com/rmoseley/steptools/internal/options"
	"github.com/rmoseley/steptools/parser"
	"github.com/rmoseley/steptools/writer"
)

// Option is a function that configures a reduce operation
type Option func(*reduceConfig) error

// reduceConfig holds configuration for a reduce operation
type reduceConfig struct {
	// Input source (exactly one must be set)
	filePath *string
	reader   io.Reader
	bytes    []byte

	// Comparison policy
	maxDecimals      int
	truncate         bool
	useStepPrecision bool
	maskNames        bool

	// Structural policy
	keepOrphans   bool
	identityTypes []string
	gcRootTypes   []string

	// Serialization policy
	preserveHeaderComments bool

	// Execution
	workers        int
	logger         parser.Logger
	maxEntityCount int
	sourceName     *string
}

// ReduceWithOptions parses and reduces a STEP file using functional options.
//
// Example:
//
//	result, err := reducer.ReduceWithOptions(
//	    reducer.WithFilePath("part.step"),
//	    reducer.WithStepPrecision(true),
//	)
func ReduceWithOptions(opts ...Option) (*ReduceResult, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("reducer: invalid options: %w", err)
	}
	return reduceWithConfig(cfg)
}

// ReduceBytes parses, reduces, and re-serializes a STEP file in one call.
// This is the library's primary entry point for byte-in/byte-out use.
func ReduceBytes(data []byte, opts ...Option) ([]byte, error) {
	cfg, err := applyOptions(append(opts, WithBytes(data))...)
	if err != nil {
		return nil, fmt.Errorf("reducer: invalid options: %w", err)
	}
	result, err := reduceWithConfig(cfg)
	if err != nil {
		return nil, err
	}
	w := writer.New()
	w.PreserveHeaderComments = cfg.preserveHeaderComments
	return w.Write(result.File)
}

func reduceWithConfig(cfg *reduceConfig) (*ReduceResult, error) {
	parseOpts := []parser.Option{}
	switch {
	case cfg.filePath != nil:
		parseOpts = append(parseOpts, parser.WithFilePath(*cfg.filePath))
	case cfg.reader != nil:
		parseOpts = append(parseOpts, parser.WithReader(cfg.reader))
	default:
		parseOpts = append(parseOpts, parser.WithBytes(cfg.bytes))
	}
	if cfg.logger != nil {
		parseOpts = append(parseOpts, parser.WithLogger(cfg.logger))
	}
	if cfg.maxEntityCount > 0 {
		parseOpts = append(parseOpts, parser.WithMaxEntityCount(cfg.maxEntityCount))
	}
	if cfg.sourceName != nil {
		parseOpts = append(parseOpts, parser.WithSourceName(*cfg.sourceName))
	}

	parsed, err := parser.ParseWithOptions(parseOpts...)
	if err != nil {
		return nil, err
	}

	r := &Reducer{
		MaxDecimals:      -1,
		UseStepPrecision: cfg.useStepPrecision,
		KeepOrphans:      cfg.keepOrphans,
		MaskNames:        cfg.maskNames,
		IdentityTypes:    cfg.identityTypes,
		GCRootTypes:      cfg.gcRootTypes,
		Workers:          cfg.workers,
		Logger:           cfg.logger,
	}
	if cfg.truncate {
		r.MaxDecimals = cfg.maxDecimals
	}

	result, err := r.Reduce(parsed.File)
	if err != nil {
		return nil, err
	}
	result.SourcePath = parsed.SourcePath
	return result, nil
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*reduceConfig, error) {
	cfg := &reduceConfig{
		maxDecimals:            -1,
		preserveHeaderComments: true,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	// Validate exactly one input source is specified
	if err := options.ValidateSingleInputSource(
		"reducer: must specify an input source (use WithFilePath, WithReader, or WithBytes)",
		"reducer: must specify exactly one input source",
		cfg.filePath != nil, cfg.reader != nil, cfg.bytes != nil,
	); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithFilePath specifies a file path as the input source
func WithFilePath(path string) Option {
	return func(cfg *reduceConfig) error {
		cfg.filePath = &path
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *reduceConfig) error {
		if r == nil {
			return fmt.Errorf("reducer: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *reduceConfig) error {
		if data == nil {
			return fmt.Errorf("reducer: bytes cannot be nil")
		}
		cfg.bytes = data
		return nil
	}
}

// WithMaxDecimals bounds numeric comparison to at most n decimal places.
// Default: no truncation (normalization only)
func WithMaxDecimals(n int) Option {
	return func(cfg *reduceConfig) error {
		if n < 0 {
			return fmt.Errorf("reducer: max decimals cannot be negative: %d", n)
		}
		cfg.maxDecimals = n
		cfg.truncate = true
		return nil
	}
}

// WithStepPrecision derives the numeric comparison precision from the
// file's UNCERTAINTY_MEASURE_WITH_UNIT declaration.
// Default: false
func WithStepPrecision(enabled bool) Option {
	return func(cfg *reduceConfig) error {
		cfg.useStepPrecision = enabled
		return nil
	}
}

// WithKeepOrphans disables removal of unreachable entities.
// Default: false (orphans are removed)
func WithKeepOrphans(enabled bool) Option {
	return func(cfg *reduceConfig) error {
		cfg.keepOrphans = enabled
		return nil
	}
}

// WithMaskNames merges entities that differ only in their leading quoted
// name parameter.
// Default: false
func WithMaskNames(enabled bool) Option {
	return func(cfg *reduceConfig) error {
		cfg.maskNames = enabled
		return nil
	}
}

// WithIdentityTypes overrides the set of entity types that never merge.
// Default: DefaultIdentityTypes
func WithIdentityTypes(types []string) Option {
	return func(cfg *reduceConfig) error {
		cfg.identityTypes = types
		return nil
	}
}

// WithGCRootTypes overrides the orphan-removal root types.
// Default: DefaultGCRootTypes
func WithGCRootTypes(types []string) Option {
	return func(cfg *reduceConfig) error {
		cfg.gcRootTypes = types
		return nil
	}
}

// WithPreserveHeaderComments controls whether /* */ comments in the HEADER
// section survive serialization. Only consulted by ReduceBytes.
// Default: true
func WithPreserveHeaderComments(enabled bool) Option {
	return func(cfg *reduceConfig) error {
		cfg.preserveHeaderComments = enabled
		return nil
	}
}

// WithWorkers caps signature-computation concurrency.
// Default: 0 (GOMAXPROCS)
func WithWorkers(n int) Option {
	return func(cfg *reduceConfig) error {
		if n < 0 {
			return fmt.Errorf("reducer: workers cannot be negative: %d", n)
		}
		cfg.workers = n
		return nil
	}
}

// WithLogger sets the structured logger for reduction diagnostics.
// Default: no logging
func WithLogger(l parser.Logger) Option {
	return func(cfg *reduceConfig) error {
		cfg.logger = l
		return nil
	}
}

// WithMaxEntityCount caps the number of entities accepted by the parser.
// Default: 0 (no limit)
func WithMaxEntityCount(limit int) Option {
	return func(cfg *reduceConfig) error {
		if limit < 0 {
			return fmt.Errorf("reducer: max entity count cannot be negative: %d", limit)
		}
		cfg.maxEntityCount = limit
		return nil
	}
}

// WithSourceName overrides the source path recorded in the result.
func WithSourceName(name string) Option {
	return func(cfg *reduceConfig) error {
		cfg.sourceName = &name
		return nil
	}
}

// WithProfile applies a reduction profile. Options given after the profile
// override its settings.
func WithProfile(p *Profile) Option {
	return func(cfg *reduceConfig) error {
		if p == nil {
			return fmt.Errorf("reducer: profile cannot be nil")
		}
		p.apply(cfg)
		return nil
	}
}

// WithProfilePath loads and applies a YAML reduction profile from disk.
func WithProfilePath(path string) Option {
	return func(cfg *reduceConfig) error {
		p, err := LoadProfile(path)
		if err != nil {
			return err
		}
		p.apply(cfg)
		return nil
	}
}
