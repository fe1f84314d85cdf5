package main

import (
	"fmt"
	"io"
	"os"

	"github.com/iec61131/stcore/internal/semantic/diagnostics"
	"github.com/iec61131/stcore/pkg/stcore"
	"github.com/spf13/cobra"
)

var (
	checkColor         bool
	checkMaxIterations int
)

var checkCmd = &cobra.Command{
	Use:   "check [file.json]",
	Short: "Run semantic analysis over a serialized CompilationUnit",
	Long: `Decode a JSON-serialized CompilationUnit and run it through the full
semantic pipeline, printing one line per diagnostic.

If no file is given, the unit is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkColor, "color", false, "colorize diagnostic severities")
	checkCmd.Flags().IntVar(&checkMaxIterations, "max-iterations", 0, "cap the constant-evaluator fix-point sweep (0 = core default)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	var data []byte
	var err error
	if len(args) > 0 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	provider := stcore.NewIdProvider()
	unit, err := decodeUnit(data, provider)
	if err != nil {
		return err
	}
	unit.Ids = provider

	opts := stcore.DefaultAnalysisOptions()
	if checkMaxIterations > 0 {
		opts.MaxFixPointIterations = checkMaxIterations
	}

	result, err := stcore.Analyze(unit, opts)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	if result.Diagnostics == nil || len(result.Diagnostics.All()) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no diagnostics")
		return nil
	}

	for _, d := range result.Diagnostics.All() {
		printDiagnostic(cmd.OutOrStdout(), d)
	}
	return nil
}

func printDiagnostic(w io.Writer, d diagnostics.Diagnostic) {
	severity := d.Severity.String()
	if checkColor {
		severity = colorizeSeverity(d.Severity, severity)
	}
	fmt.Fprintf(w, "%s %s: %s\n", severity, d.Code, d.Message)
}

func colorizeSeverity(sev diagnostics.Severity, text string) string {
	const reset = "\x1b[0m"
	var code string
	switch sev {
	case diagnostics.SeverityError:
		code = "\x1b[31m" // red
	case diagnostics.SeverityWarning:
		code = "\x1b[33m" // yellow
	default:
		code = "\x1b[36m" // cyan
	}
	return code + text + reset
}
