// Package diagnostics defines the fixed E0xx error-code catalog the
// semantic core emits (spec §6) and the ordered report that accumulates
// them. Diagnostics are data, never exceptions (spec §7): every validator
// and pass appends to a Report instead of returning an error.
package diagnostics

import (
	"fmt"

	"github.com/iec61131/stcore/internal/ast"
)

// Code is one of the fixed E0xx diagnostic codes the core can emit.
type Code string

const (
	CodeInternal               Code = "E000"
	CodeRecursiveAggregate     Code = "E029"
	CodeUnresolvedConstant     Code = "E033"
	CodeBadBlockModifier       Code = "E034"
	CodeBadConstantFBInstance  Code = "E035"
	CodeOverflowWarning        Code = "E038"
	CodeIllegalVLADeclaration  Code = "E044"
	CodeVLAByRefAdvisory       Code = "E047"
	CodeInvertedRange          Code = "E097"
	CodeBadReferenceToDecl     Code = "E099"
)

// Severity classifies how a diagnostic should be treated by a pipeline
// consumer; the core itself never aborts on any severity (spec §7).
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "info"
	}
}

// Diagnostic is one structural or semantic finding, with a primary source
// location and any number of secondary locations (e.g. the other nodes in
// a recursive-aggregate cycle).
type Diagnostic struct {
	Code       Code
	Severity   Severity
	Message    string
	Primary    ast.SourceRange
	Secondary  []ast.SourceRange
}

// Report accumulates diagnostics in emission order. Emission order is
// deterministic given deterministic traversal order upstream (spec §5).
type Report struct {
	entries []Diagnostic
}

// Add appends a diagnostic to the report.
func (r *Report) Add(d Diagnostic) { r.entries = append(r.entries, d) }

// Errorf is a convenience for the common case of an error-severity
// diagnostic with no secondary locations.
func (r *Report) Errorf(code Code, primary ast.SourceRange, format string, args ...any) {
	r.Add(Diagnostic{Code: code, Severity: SeverityError, Message: fmt.Sprintf(format, args...), Primary: primary})
}

// Warnf is Errorf for warning severity.
func (r *Report) Warnf(code Code, primary ast.SourceRange, format string, args ...any) {
	r.Add(Diagnostic{Code: code, Severity: SeverityWarning, Message: fmt.Sprintf(format, args...), Primary: primary})
}

// All returns every diagnostic added so far, in emission order.
func (r *Report) All() []Diagnostic { return r.entries }

// HasErrors reports whether any SeverityError diagnostic was recorded.
func (r *Report) HasErrors() bool {
	for _, d := range r.entries {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}
