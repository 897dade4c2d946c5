package mcpserver

import (
	"fmt"

	"github.com/rmoseley/steptools/parser"
	"github.com/rmoseley/steptools/reducer"
)

// stepInput represents the two ways a STEP file can be provided to a tool.
// Exactly one of File or Content must be set.
type stepInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a STEP file on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline STEP file content"`
}

// inlineSourceName is the source label recorded for content inputs.
const inlineSourceName = "<inline>"

func (in stepInput) validate() error {
	switch {
	case in.File != "" && in.Content != "":
		return fmt.Errorf("mcpserver: provide file or content, not both")
	case in.File == "" && in.Content == "":
		return fmt.Errorf("mcpserver: no input provided (set file or content)")
	}
	return nil
}

// parseOptions returns the parser input-source options for this input.
func (in stepInput) parseOptions() ([]parser.Option, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.File != "" {
		return []parser.Option{parser.WithFilePath(in.File)}, nil
	}
	return []parser.Option{
		parser.WithBytes([]byte(in.Content)),
		parser.WithSourceName(inlineSourceName),
	}, nil
}

// reduceOptions returns the reducer input-source options for this input.
func (in stepInput) reduceOptions() ([]reducer.Option, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if in.File != "" {
		return []reducer.Option{reducer.WithFilePath(in.File)}, nil
	}
	return []reducer.Option{
		reducer.WithBytes([]byte(in.Content)),
		reducer.WithSourceName(inlineSourceName),
	}, nil
}
