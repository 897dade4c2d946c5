package main

import (
	"fmt"
	"os"

	"github.com/rmoseley/steptools"
	"github.com/rmoseley/steptools/cmd/steptools/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("steptools v%s\n", steptools.Version())
	case "help", "-h", "--help":
		printUsage()
	case "reduce":
		if err := commands.HandleReduce(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "parse":
		if err := commands.HandleParse(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`steptools - STEP (ISO 10303-21) File Tools

Usage:
  steptools <command> [options]

Commands:
  reduce      Losslessly reduce a STEP file (merge duplicates, drop orphans)
  parse       Parse a STEP file and report its structure
  mcp         Run an MCP server exposing steptools over stdio
  version     Show version information
  help        Show this help message

Examples:
  steptools reduce part.step -o part-reduced.step
  steptools reduce --use-step-precision part.step.gz -o reduced.step.gz
  steptools parse --types part.step
  cat part.step | steptools reduce -q - > reduced.step

Run 'steptools <command> --help' for more information on a command.`)
}
