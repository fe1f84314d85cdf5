// Command stcore is a thin CLI harness around the semantic core: it feeds a
// JSON-serialized CompilationUnit (see wire.go) into stcore.Analyze and
// prints the resulting diagnostics. It lives outside the core's module
// boundary (spec §6) — nothing under internal/ imports this package.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
)

var rootCmd = &cobra.Command{
	Use:     "stcore",
	Short:   "Semantic analysis core for IEC 61131-3 Structured Text",
	Version: Version,
	Long: `stcore runs the Structured Text semantic analysis pipeline — Index
construction, constant evaluation, annotation, and validation — over a
serialized CompilationUnit and reports the diagnostics it finds.

This binary is a development harness, not a compiler frontend: it has no
lexer or parser of its own and expects its input already parsed to JSON.`,
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("stcore version {{.Version}} (%s)\n", GitCommit))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
