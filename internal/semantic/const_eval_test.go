package semantic

import (
	"testing"

	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/internal/semantic/diagnostics"
)

func TestEvaluateConstantsFoldsArithmetic(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()
	expr := ast.NewTestBinary(p, ast.NewTestInt(p, "4"), ast.OpMul, ast.NewTestInt(p, "5"))
	h := idx.NewConstHandle(expr, "")

	report := &diagnostics.Report{}
	EvaluateConstants(idx, p, 64, report)

	entry := idx.ConstEntryFor(h)
	if entry.State != ConstResolved {
		t.Fatalf("expected resolved, got %v (%s)", entry.State, entry.Reason)
	}
	lit, ok := entry.Result.(*ast.IntegerLiteral)
	if !ok || lit.Text != "20" {
		t.Errorf("4 * 5 should fold to 20, got %+v", entry.Result)
	}
}

func TestEvaluateConstantsDivisionByZeroIsUnresolvable(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()
	expr := ast.NewTestBinary(p, ast.NewTestInt(p, "1"), ast.OpDiv, ast.NewTestInt(p, "0"))
	h := idx.NewConstHandle(expr, "")

	report := &diagnostics.Report{}
	EvaluateConstants(idx, p, 64, report)

	entry := idx.ConstEntryFor(h)
	if entry.State != ConstUnresolvable {
		t.Fatalf("expected unresolvable, got %v", entry.State)
	}
}

func TestEvaluateConstantsDependencyOrderingAcrossSweeps(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()

	// base := 2 + 3
	base := ast.NewTestBinary(p, ast.NewTestInt(p, "2"), ast.OpAdd, ast.NewTestInt(p, "3"))
	baseHandle := idx.NewConstHandle(base, "")
	idx.RegisterGlobal(&VariableEntry{QualifiedName: "Base", Constant: true, InitialValue: baseHandle})

	// derived := Base * 2, registered before Base resolves, relying on the
	// fix-point sweep to retry until the dependency settles.
	derived := ast.NewTestBinary(p, ast.NewTestIdent(p, "Base"), ast.OpMul, ast.NewTestInt(p, "2"))
	derivedHandle := idx.NewConstHandle(derived, "")

	report := &diagnostics.Report{}
	EvaluateConstants(idx, p, 64, report)

	entry := idx.ConstEntryFor(derivedHandle)
	if entry.State != ConstResolved {
		t.Fatalf("expected derived constant to resolve via fix-point, got %v (%s)", entry.State, entry.Reason)
	}
	lit, ok := entry.Result.(*ast.IntegerLiteral)
	if !ok || lit.Text != "10" {
		t.Errorf("(2 + 3) * 2 should fold to 10, got %+v", entry.Result)
	}
}

// TestEvaluateConstantsOverflowEmitsE038 resolves spec §9 Open Question 3:
// overflow during folding is reported as diagnostic E038, at warning
// severity unless the pipeline opts into TreatOverflowAsError.
func TestEvaluateConstantsOverflowEmitsE038(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()
	huge := ast.NewTestInt(p, "170141183460469231731687303715884105727") // Int128Max
	expr := ast.NewTestBinary(p, huge, ast.OpAdd, ast.NewTestInt(p, "1"))
	idx.NewConstHandle(expr, "")

	report := &diagnostics.Report{}
	EvaluateConstants(idx, p, 64, report)

	var found *diagnostics.Diagnostic
	for i, d := range report.All() {
		if d.Code == diagnostics.CodeOverflowWarning {
			found = &report.All()[i]
		}
	}
	if found == nil {
		t.Fatal("expected a CodeOverflowWarning (E038) diagnostic")
	}
	if found.Severity != diagnostics.SeverityWarning {
		t.Errorf("default policy should report overflow as a warning, got %v", found.Severity)
	}
}

func TestEvaluateConstantsOverflowAsErrorWhenConfigured(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()
	huge := ast.NewTestInt(p, "170141183460469231731687303715884105727")
	expr := ast.NewTestBinary(p, huge, ast.OpAdd, ast.NewTestInt(p, "1"))
	idx.NewConstHandle(expr, "")

	report := &diagnostics.Report{}
	EvaluateConstantsWithOptions(idx, p, 64, true, report)

	var found *diagnostics.Diagnostic
	for i, d := range report.All() {
		if d.Code == diagnostics.CodeOverflowWarning {
			found = &report.All()[i]
		}
	}
	if found == nil {
		t.Fatal("expected a CodeOverflowWarning (E038) diagnostic")
	}
	if found.Severity != diagnostics.SeverityError {
		t.Errorf("TreatOverflowAsError should raise overflow to error severity, got %v", found.Severity)
	}
}
