package mcpserver

import (
	"context"
	"fmt"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/rmoseley/steptools/reducer"
	"github.com/rmoseley/steptools/writer"
)

type reduceInput struct {
	Spec             stepInput `json:"spec"                          jsonschema:"The STEP file to reduce"`
	Output           string    `json:"output,omitempty"              jsonschema:"Write the reduced file to this path instead of returning it inline"`
	MaxDecimals      *int      `json:"max_decimals,omitempty"        jsonschema:"Bound numeric comparison to at most N decimal places"`
	UseStepPrecision bool      `json:"use_step_precision,omitempty"  jsonschema:"Derive comparison precision from the file's uncertainty declaration"`
	KeepOrphans      bool      `json:"keep_orphans,omitempty"        jsonschema:"Keep entities unreachable from any structural root"`
	MaskNames        bool      `json:"mask_names,omitempty"          jsonschema:"Merge entities that differ only in their name string"`
	Profile          string    `json:"profile,omitempty"             jsonschema:"Path to a YAML reduction profile applied before the other settings"`
}

type reduceOutput struct {
	Source         string `json:"source"`
	InputEntities  int    `json:"input_entities"`
	OutputEntities int    `json:"output_entities"`
	MergedEntities int    `json:"merged_entities"`
	OrphansRemoved int    `json:"orphans_removed"`
	Iterations     int    `json:"iterations"`
	OutputFile     string `json:"output_file,omitempty"`
	Reduced        string `json:"reduced,omitempty"`
}

func handleReduce(_ context.Context, _ *mcp.CallToolRequest, input reduceInput) (*mcp.CallToolResult, reduceOutput, error) {
	opts, err := input.Spec.reduceOptions()
	if err != nil {
		return errResult(err), reduceOutput{}, nil
	}
	if input.Profile != "" {
		opts = append(opts, reducer.WithProfilePath(input.Profile))
	}
	if input.MaxDecimals != nil {
		opts = append(opts, reducer.WithMaxDecimals(*input.MaxDecimals))
	}
	if input.UseStepPrecision {
		opts = append(opts, reducer.WithStepPrecision(true))
	}
	if input.KeepOrphans {
		opts = append(opts, reducer.WithKeepOrphans(true))
	}
	if input.MaskNames {
		opts = append(opts, reducer.WithMaskNames(true))
	}

	result, err := reducer.ReduceWithOptions(opts...)
	if err != nil {
		return errResult(err), reduceOutput{}, nil
	}

	data, err := writer.Write(result.File)
	if err != nil {
		return errResult(err), reduceOutput{}, nil
	}

	output := reduceOutput{
		Source:         result.SourcePath,
		InputEntities:  result.Stats.InputEntities,
		OutputEntities: result.Stats.OutputEntities,
		MergedEntities: result.Stats.MergedEntities,
		OrphansRemoved: result.Stats.OrphansRemoved,
		Iterations:     result.Iterations,
	}

	if input.Output != "" {
		if err := os.WriteFile(input.Output, data, 0600); err != nil {
			return errResult(fmt.Errorf("writing output file: %w", err)), reduceOutput{}, nil
		}
		output.OutputFile = input.Output
	} else {
		output.Reduced = string(data)
	}

	return nil, output, nil
}
