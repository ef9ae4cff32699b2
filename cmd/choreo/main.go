// Package main is the entry point for the choreo CLI.
//
// Usage:
//
//	choreo [flags] <command> [args]
//
// Commands:
//
//	build      - Build bone graphs from a corpus and store them
//	shuffle    - Resequence a clip and bridge its discontinuities
//	integrate  - Integrate a Lorenz trajectory
//	dot        - Render a bone graph as Graphviz DOT
package main

import (
	"fmt"
	"os"

	"github.com/katalvlaran/choreo/cmd/choreo/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
