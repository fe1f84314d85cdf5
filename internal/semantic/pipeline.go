package semantic

import (
	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/internal/semantic/diagnostics"
)

// AnalysisOptions configures the four-stage pipeline (SPEC_FULL.md §A.2).
// The core reads no environment variables or files; this struct is its
// entire configuration surface.
type AnalysisOptions struct {
	// MaxFixPointIterations bounds EvaluateConstants's sweep count. Zero
	// (the default) or a negative value means unbounded-but-monotone: Analyze
	// allows one sweep per const-expression entry plus one, which is always
	// enough to reach the fix-point. A positive value is a defensive cap
	// against pathological input; entries still unresolved when it is hit are
	// reported as CodeUnresolvedConstant with reason "iteration limit
	// exceeded" rather than looping indefinitely.
	MaxFixPointIterations int
	// TreatOverflowAsError upgrades the constant evaluator's overflow
	// diagnostic from warning to error severity (resolves spec §9 Open
	// Question 3; see DESIGN.md).
	TreatOverflowAsError bool
	// Locale is unused by the core itself; it is threaded through so a CLI
	// layer can wire it to golang.org/x/text/language without changing the
	// core's surface.
	Locale string
}

// DefaultAnalysisOptions returns the pipeline's default tuning.
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{MaxFixPointIterations: 0, TreatOverflowAsError: false, Locale: "en"}
}

// Result bundles everything a downstream consumer (codegen, an IDE
// integration, a linter) needs out of one compilation unit's semantic
// analysis.
type Result struct {
	Index        *Index
	Annotations  *AnnotationMap
	Diagnostics  *diagnostics.Report
	Dependencies *DependencyGraph
}

// InternalError wraps a recovered panic from an internal invariant
// violation (spec §7). It is surfaced as a CodeInternal ("E000") diagnostic
// rather than propagating, except under the stdebug build tag (see
// internal_error_debug.go / internal_error_release.go).
type InternalError struct {
	Value any
}

func (e *InternalError) Error() string {
	return "internal compiler error (this is a bug): recovered panic"
}

// Analyze runs the four-stage pipeline in order — Index construction,
// constant evaluation, annotation, validation — matching the teacher
// compiler's Pass/PassManager sequencing (see doc.go). Each stage runs even
// if an earlier one produced error diagnostics; the core never aborts
// mid-pipeline (spec §7 "diagnostics are data, not exceptions").
//
// A panic from any stage — an internal invariant violation, never a
// user-input error, which are always reported as ordinary diagnostics — is
// recovered at this boundary and reported as a CodeInternal diagnostic,
// unless stdebugPropagatesPanics is true (stdebug build tag).
func Analyze(unit *ast.CompilationUnit, opts AnalysisOptions) (result *Result, err error) {
	report := &diagnostics.Report{}
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if stdebugPropagatesPanics {
			panic(r)
		}
		report.Add(diagnostics.Diagnostic{
			Code:     diagnostics.CodeInternal,
			Severity: diagnostics.SeverityError,
			Message:  "internal compiler error (this is a bug)",
		})
		result = &Result{Diagnostics: report}
		err = &InternalError{Value: r}
	}()

	idx := BuildIndex(unit, report)

	maxIterations := opts.MaxFixPointIterations
	if maxIterations <= 0 {
		// Every sweep that makes progress settles at least one entry, so one
		// sweep per entry plus a final no-progress sweep reaches the fix-point.
		maxIterations = len(idx.AllConstHandles()) + 1
	}
	EvaluateConstantsWithOptions(idx, unit.Ids, maxIterations, opts.TreatOverflowAsError, report)
	annotations := Annotate(unit, idx, report)
	Validate(idx, report)
	deps := BuildDependencyGraph(unit, idx)

	return &Result{
		Index:        idx,
		Annotations:  annotations,
		Diagnostics:  report,
		Dependencies: deps,
	}, nil
}
