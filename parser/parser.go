package parser

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rmoseley/steptools/steperrors"
)

// Parser handles STEP file parsing
type Parser struct {
	// Logger is the structured logger for debug output
	// If nil, logging is disabled (default)
	Logger Logger

	// MaxEntityCount caps the number of DATA-section entities accepted.
	// 0 means no limit. Parsing fails with a ConfigError-wrapped
	// MalformedRecordError when the cap is exceeded, protecting callers
	// that accept untrusted input.
	MaxEntityCount int
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{}
}

// log returns the configured logger, or a no-op logger if none is set.
func (p *Parser) log() Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return NopLogger{}
}

// ParseResult contains the parsed STEP file and metadata about the parse.
type ParseResult struct {
	// File is the parsed entity graph
	File *StepFile
	// SourcePath is the path the file was read from ("" for byte input)
	SourcePath string
	// Stats contains statistical information about the file
	Stats FileStats
	// Duration is the wall time the parse took
	Duration time.Duration
}

// Parse reads and parses the STEP file at the given path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("parser: reading %s: %w", path, err)
	}
	result, err := p.ParseBytes(data)
	if result != nil {
		result.SourcePath = path
	}
	return result, err
}

// ParseReader parses STEP content from an io.Reader.
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("parser: reading input: %w", err)
	}
	return p.ParseBytes(data)
}

// ParseBytes parses STEP content from a byte buffer. This is the engine's
// primary entry point: the buffer must contain a complete ISO-10303-21 file
// (HEADER section, DATA section, trailer).
//
// The returned graph is fully validated for referential integrity: every
// #NNN reference resolves to an entity in the DATA section, or parsing fails
// with a DanglingReferenceError.
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	start := time.Now()
	logger := p.log()

	secs, err := splitSections(data)
	if err != nil {
		return nil, err
	}

	file := &StepFile{
		Header: HeaderSection{Raw: secs.header},
		Data:   NewDataSection(),
		Footer: secs.footer,
	}

	for _, stmt := range secs.records {
		if p.MaxEntityCount > 0 && file.Data.Len() >= p.MaxEntityCount {
			return nil, &steperrors.MalformedRecordError{
				Offset:  stmt.offset,
				Message: fmt.Sprintf("entity count exceeds limit of %d", p.MaxEntityCount),
			}
		}
		entity, err := parseEntityStatement(stmt)
		if err != nil {
			return nil, err
		}
		if err := file.Data.Add(entity); err != nil {
			return nil, err
		}
	}

	if err := validateReferences(file.Data); err != nil {
		return nil, err
	}

	result := &ParseResult{
		File:     file,
		Stats:    GetFileStats(file),
		Duration: time.Since(start),
	}
	logger.Debug("parsed STEP file",
		"entities", result.Stats.EntityCount,
		"references", result.Stats.ReferenceCount,
		"types", len(result.Stats.TypeCounts),
		"duration", result.Duration)
	return result, nil
}

// validateReferences checks that every one-level reference in the DATA
// section resolves to an existing entity id.
func validateReferences(data *DataSection) error {
	for _, e := range data.Entities {
		for _, target := range e.References() {
			if !data.Contains(target) {
				return &steperrors.DanglingReferenceError{From: e.ID, Target: target}
			}
		}
	}
	return nil
}
