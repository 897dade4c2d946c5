package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rmoseley/steptools/parser"
)

type inspectInput struct {
	Spec  stepInput `json:"spec"            jsonschema:"The STEP file to inspect"`
	Types bool      `json:"types,omitempty" jsonschema:"Include a per-type entity count breakdown"`
}

type inspectOutput struct {
	Source          string         `json:"source"`
	Schema          string         `json:"schema,omitempty"`
	EntityCount     int            `json:"entity_count"`
	ReferenceCount  int            `json:"reference_count"`
	ComplexCount    int            `json:"complex_count"`
	DistinctTypes   int            `json:"distinct_types"`
	TypeCounts      map[string]int `json:"type_counts,omitempty"`
	ParseDurationMS int64          `json:"parse_duration_ms"`
}

func handleInspect(_ context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	opts, err := input.Spec.parseOptions()
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	result, err := parser.ParseWithOptions(opts...)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	output := inspectOutput{
		Source:          result.SourcePath,
		Schema:          fileSchema(result.File.Header.Raw),
		EntityCount:     result.Stats.EntityCount,
		ReferenceCount:  result.Stats.ReferenceCount,
		ComplexCount:    result.Stats.ComplexCount,
		DistinctTypes:   len(result.Stats.TypeCounts),
		ParseDurationMS: result.Duration.Milliseconds(),
	}
	if input.Types {
		output.TypeCounts = result.Stats.TypeCounts
	}

	return nil, output, nil
}

// fileSchema extracts the first declared schema name from the raw HEADER
// text, e.g. AUTOMOTIVE_DESIGN from FILE_SCHEMA(('AUTOMOTIVE_DESIGN')).
// Returns "" when no FILE_SCHEMA record is present.
func fileSchema(header string) string {
	i := strings.Index(header, "FILE_SCHEMA")
	if i < 0 {
		return ""
	}
	rest := header[i:]
	start := strings.IndexByte(rest, '\'')
	if start < 0 {
		return ""
	}
	rest = rest[start+1:]
	end := strings.IndexByte(rest, '\'')
	if end < 0 {
		return ""
	}
	return rest[:end]
}
