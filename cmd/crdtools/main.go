package main

import (
	"fmt"
	"os"

	"github.com/crdtools/crdtools"
	"github.com/crdtools/crdtools/cmd/crdtools/commands"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]

	switch command {
	case "version", "-v", "--version":
		fmt.Printf("crdtools v%s\n", crdtools.Version())
	case "help", "-h", "--help":
		printUsage()
	case "validate":
		if err := commands.HandleValidate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "shapes":
		if err := commands.HandleShapes(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "generate":
		if err := commands.HandleGenerate(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "merge":
		if err := commands.HandleMerge(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "convert":
		if err := commands.HandleConvert(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "serve":
		if err := commands.HandleServe(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "mcp":
		if err := commands.HandleMCP(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if suggestion := suggestCommand(command); suggestion != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", suggestion)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		os.Exit(1)
	}
}

// suggestCommand returns the closest known command within edit distance 2,
// or the empty string when nothing is close enough.
func suggestCommand(input string) string {
	known := []string{"validate", "shapes", "generate", "merge", "convert", "serve", "mcp", "version", "help"}

	best := ""
	bestDist := 3
	for _, cmd := range known {
		if d := editDistance(input, cmd); d < bestDist {
			best = cmd
			bestDist = d
		}
	}
	return best
}

// editDistance computes the Levenshtein distance between two strings.
func editDistance(a, b string) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(b)]
}

func printUsage() {
	fmt.Println(`crdtools - multi-version record schema tools

Usage:
  crdtools <command> [options]

Commands:
  validate    Validate a schema file's item lifecycles
  shapes      Show the record type's shape at each version
  generate    Generate Go types and converters from a schema file
  merge       Merge all versions into a single schema document
  convert     Convert an object between declared versions
  serve       Serve conversion over the ConversionReview webhook protocol
  mcp         Run the MCP server over stdio
  version     Show version information
  help        Show this help message

Examples:
  crdtools validate person.yaml
  crdtools shapes --version v1 person.yaml
  crdtools generate -o ./gen -package person person.yaml
  crdtools merge -o person-crd.yaml --stored v1 person.yaml
  crdtools convert --from v1alpha1 --to v1 --object person.json person.yaml
  crdtools serve --addr :8443 --cert tls.crt --key tls.key person.yaml

Run 'crdtools <command> --help' for more information on a command.`)
}
