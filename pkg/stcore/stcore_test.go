package stcore_test

import (
	"testing"

	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/pkg/stcore"
)

// TestAnalyzeEmptyUnit exercises the public surface end-to-end with the
// smallest possible input: a unit with nothing in it should analyze cleanly
// and produce no diagnostics.
func TestAnalyzeEmptyUnit(t *testing.T) {
	unit := &stcore.CompilationUnit{FileName: "empty.st", Ids: stcore.NewIdProvider()}

	result, err := stcore.Analyze(unit, stcore.DefaultAnalysisOptions())
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics for an empty unit: %+v", result.Diagnostics.All())
	}
	if result.Index == nil || result.Annotations == nil || result.Dependencies == nil {
		t.Fatal("Result should populate Index, Annotations, and Dependencies even for an empty unit")
	}
}

// TestAnalyzeSimpleProgram exercises a minimal but non-trivial program
// through the public API exactly as an out-of-module parser would: build a
// CompilationUnit with the ast package's exported constructors, hand it to
// Analyze, and read back the Result.
func TestAnalyzeSimpleProgram(t *testing.T) {
	p := stcore.NewIdProvider()

	pou := ast.PouDecl{
		Name: "Main",
		Kind: ast.PouProgram,
		Blocks: []ast.VariableBlock{
			ast.NewTestVarBlock(ast.BlockLocal, ast.NewTestVar(p, "Flag", "BOOL")),
		},
	}
	assign := ast.NewTestAssign(p, ast.NewTestIdent(p, "Flag"), ast.NewTestBool(p, true))
	impl := ast.Implementation{Name: "Main", Body: []ast.Statement{assign}}

	unit := &stcore.CompilationUnit{
		FileName:        "main.st",
		Pous:            []ast.PouDecl{pou},
		Implementations: []ast.Implementation{impl},
		Ids:             p,
	}

	result, err := stcore.Analyze(unit, stcore.DefaultAnalysisOptions())
	if err != nil {
		t.Fatalf("Analyze returned error: %v", err)
	}
	if result.Diagnostics.HasErrors() {
		t.Fatalf("unexpected diagnostics: %+v", result.Diagnostics.All())
	}

	dt, ok := result.Annotations.TypeOf(assign.Right)
	if !ok || dt.Name != "BOOL" {
		t.Errorf("expected the literal true to be typed BOOL, got %+v (ok=%v)", dt, ok)
	}
}

// TestAnalyzeReportsDiagnosticAsData confirms diagnostics never surface as a
// Go error (spec §7): an undeclared identifier is a Diagnostic inside the
// Result, with a nil err.
func TestAnalyzeReportsDiagnosticAsData(t *testing.T) {
	p := stcore.NewIdProvider()
	pou := ast.PouDecl{Name: "Main", Kind: ast.PouProgram}
	impl := ast.Implementation{
		Name: "Main",
		Body: []ast.Statement{
			ast.NewTestAssign(p, ast.NewTestIdent(p, "Undeclared"), ast.NewTestInt(p, "1")),
		},
	}
	unit := &stcore.CompilationUnit{Pous: []ast.PouDecl{pou}, Implementations: []ast.Implementation{impl}, Ids: p}

	result, err := stcore.Analyze(unit, stcore.DefaultAnalysisOptions())
	if err != nil {
		t.Fatalf("ordinary semantic errors must not surface as a Go error, got: %v", err)
	}
	if !result.Diagnostics.HasErrors() {
		t.Fatal("expected the undeclared identifier to be reported as a diagnostic")
	}
}
