package commands

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rmoseley/steptools"
	"github.com/rmoseley/steptools/internal/cliutil"
	"github.com/rmoseley/steptools/parser"
)

// ParseFlags contains flags for the parse command
type ParseFlags struct {
	Types     bool
	MaxEntity int
}

// SetupParseFlags creates and configures a FlagSet for the parse command.
// Returns the FlagSet and a ParseFlags struct with bound flag variables.
func SetupParseFlags() (*flag.FlagSet, *ParseFlags) {
	fs := flag.NewFlagSet("parse", flag.ContinueOnError)
	flags := &ParseFlags{}

	fs.BoolVar(&flags.Types, "types", false, "print a per-type entity count breakdown")
	fs.IntVar(&flags.MaxEntity, "max-entities", 0, "fail when the file holds more than N entities (0: no limit)")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: steptools parse [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Parse a STEP (ISO 10303-21) file and report its structure without\n")
		cliutil.Writef(fs.Output(), "modifying it. Fails on syntax errors and dangling references.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  steptools parse part.step\n")
		cliutil.Writef(fs.Output(), "  steptools parse --types part.step.gz\n")
		cliutil.Writef(fs.Output(), "  cat part.step | steptools parse -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    File parsed cleanly\n")
		cliutil.Writef(fs.Output(), "  1    Syntax error, dangling reference, or unsupported construct\n")
	}

	return fs, flags
}

// HandleParse executes the parse command
func HandleParse(args []string) error {
	fs, flags := SetupParseFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("parse command requires exactly one file path or '-' for stdin")
	}

	inputPath := fs.Arg(0)
	data, err := ReadInput(inputPath)
	if err != nil {
		return err
	}

	parseOpts := []parser.Option{
		parser.WithBytes(data),
		parser.WithSourceName(FormatSpecPath(inputPath)),
	}
	if flags.MaxEntity > 0 {
		parseOpts = append(parseOpts, parser.WithMaxEntityCount(flags.MaxEntity))
	}

	startTime := time.Now()
	result, err := parser.ParseWithOptions(parseOpts...)
	totalTime := time.Since(startTime)
	if err != nil {
		return fmt.Errorf("parsing file: %w", err)
	}

	cliutil.Writef(os.Stdout, "STEP File Parser\n")
	cliutil.Writef(os.Stdout, "================\n\n")
	cliutil.Writef(os.Stdout, "steptools version: %s\n", steptools.Version())
	cliutil.Writef(os.Stdout, "Input: %s\n", result.SourcePath)
	cliutil.Writef(os.Stdout, "Source Size: %s bytes\n", statsPrinter.Sprintf("%d", len(data)))
	cliutil.Writef(os.Stdout, "Entities: %s\n", statsPrinter.Sprintf("%d", result.Stats.EntityCount))
	cliutil.Writef(os.Stdout, "References: %s\n", statsPrinter.Sprintf("%d", result.Stats.ReferenceCount))
	cliutil.Writef(os.Stdout, "Complex Entities: %s\n", statsPrinter.Sprintf("%d", result.Stats.ComplexCount))
	cliutil.Writef(os.Stdout, "Distinct Types: %d\n", len(result.Stats.TypeCounts))
	cliutil.Writef(os.Stdout, "Load Time: %v\n", totalTime)

	if flags.Types {
		cliutil.Writef(os.Stdout, "\nEntity Types:\n")
		for _, tc := range sortedTypeCounts(result.Stats.TypeCounts) {
			cliutil.Writef(os.Stdout, "  %8s  %s\n", statsPrinter.Sprintf("%d", tc.count), tc.name)
		}
	}

	cliutil.Writef(os.Stdout, "\n✓ File parsed cleanly\n")
	return nil
}

type typeCount struct {
	name  string
	count int
}

// sortedTypeCounts orders the type breakdown by descending count, then name.
func sortedTypeCounts(counts map[string]int) []typeCount {
	out := make([]typeCount, 0, len(counts))
	for name, count := range counts {
		out = append(out, typeCount{name: name, count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].count != out[j].count {
			return out[i].count > out[j].count
		}
		return out[i].name < out[j].name
	})
	return out
}
