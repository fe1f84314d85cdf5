// Package stcore is the public surface of the ST semantic core: a
// CompilationUnit in, a Result (Index, Annotation Map, diagnostics,
// dependency graph) out. Everything under internal/ is an implementation
// detail; this package re-exports the parts a caller needs.
package stcore

import (
	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/internal/semantic"
	"github.com/iec61131/stcore/internal/semantic/diagnostics"
)

// CompilationUnit is the parser->core contract (spec §6): one source file's
// global declarations, types, POUs, and implementations, plus the line table
// a diagnostic renderer needs. It is a type alias, not a wrapper, so callers
// that already build an internal/ast.CompilationUnit (e.g. a parser package
// living outside this module) need no conversion step.
type CompilationUnit = ast.CompilationUnit

// AnalysisOptions configures Analyze.
type AnalysisOptions = semantic.AnalysisOptions

// DefaultAnalysisOptions returns Analyze's default tuning.
func DefaultAnalysisOptions() AnalysisOptions { return semantic.DefaultAnalysisOptions() }

// Result is everything semantic analysis of one CompilationUnit produces.
type Result = semantic.Result

// Diagnostic is one structural or semantic finding.
type Diagnostic = diagnostics.Diagnostic

// NewIdProvider creates a fresh node-ID source for building a
// CompilationUnit to pass to Analyze.
func NewIdProvider() *ast.IdProvider { return ast.NewIdProvider() }

// Analyze runs the full semantic pipeline — Index construction, constant
// evaluation, annotation, and validation — over unit and returns the
// combined result. err is non-nil only for an internal invariant violation
// (spec §7); ordinary semantic errors are diagnostics inside the returned
// Result, not a Go error.
func Analyze(unit *CompilationUnit, opts AnalysisOptions) (*Result, error) {
	return semantic.Analyze(unit, opts)
}
