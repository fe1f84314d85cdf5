package semantic

import (
	"testing"

	"github.com/iec61131/stcore/internal/ast"
	"github.com/iec61131/stcore/internal/semantic/diagnostics"
	"github.com/iec61131/stcore/internal/types"
)

func TestAnnotateBinaryExprPromotesToWiderOperand(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()
	left := ast.NewIntegerLiteral(p, ast.SourceRange{}, "1", "INT") // INT-ranked
	right := ast.NewTestInt(p, "100000")                             // untyped literal, ranks as DINT
	expr := ast.NewTestBinary(p, left, ast.OpAdd, right)

	m := newAnnotationMap()
	an := &annotator{idx: idx, report: &diagnostics.Report{}, m: m, provider: p}
	dt := an.annotateExpression(expr, &visitorContext{})

	if dt == nil || dt.Name != "DINT" {
		t.Errorf("expected INT + DINT-ranged literal to promote to DINT, got %v", dt)
	}
}

func TestAnnotateComparisonLowersToBoolAndAttachesHiddenCallForNonNumeric(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()
	left := ast.NewStringLiteral(p, ast.SourceRange{}, "a", false)
	right := ast.NewStringLiteral(p, ast.SourceRange{}, "b", false)
	expr := ast.NewTestBinary(p, left, ast.OpEq, right)

	m := newAnnotationMap()
	an := &annotator{idx: idx, report: &diagnostics.Report{}, m: m, provider: p}
	dt := an.annotateExpression(expr, &visitorContext{})

	if dt == nil || dt.Name != "BOOL" {
		t.Fatalf("comparisons must type as BOOL, got %v", dt)
	}
	call, ok := m.HiddenCallFor(expr)
	if !ok {
		t.Fatal("expected a hidden call for non-numeric operands")
	}
	if name := callOperatorName(t, call); name != "GenericEqual" {
		t.Errorf("expected a GenericEqual hidden call for non-numeric operands, got %q", name)
	}
}

// callOperatorName unwraps a hidden-call expression down to the callee
// name of its single *ast.CallStatement.
func callOperatorName(t *testing.T, e ast.Expression) string {
	t.Helper()
	call, ok := e.(*ast.CallStatement)
	if !ok {
		t.Fatalf("expected *ast.CallStatement, got %T", e)
	}
	id, ok := call.Operator.(*ast.Identifier)
	if !ok {
		t.Fatalf("expected call operator to be an identifier, got %T", call.Operator)
	}
	return id.Name
}

func TestAnnotateComparisonOfNumericOperandsHasNoHiddenCall(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()
	expr := ast.NewTestBinary(p, ast.NewTestInt(p, "1"), ast.OpLt, ast.NewTestInt(p, "2"))

	m := newAnnotationMap()
	an := &annotator{idx: idx, report: &diagnostics.Report{}, m: m, provider: p}
	an.annotateExpression(expr, &visitorContext{})

	if _, ok := m.HiddenCallFor(expr); ok {
		t.Error("a numeric comparison must not synthesize a hidden comparison call")
	}
}

func TestAnnotateMemberAccessResolvesStructFieldType(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()
	idx.RegisterType(&types.DataType{
		Name:        "Point",
		Nature:      types.NatureDerived,
		Information: types.StructInfo{MemberNames: []string{"X"}, Source: types.StructSourceOriginalDeclaration},
	})
	idx.RegisterMember("Point", "X", &VariableEntry{QualifiedName: "Point.X", TypeName: "INT"})
	idx.RegisterMember("Main", "P", &VariableEntry{QualifiedName: "Main.P", TypeName: "Point"})

	ref := ast.NewReferenceExpr(p, ast.SourceRange{}, ast.NewTestIdent(p, "P"), ast.AccessMember, ast.NewTestIdent(p, "X"))

	m := newAnnotationMap()
	an := &annotator{idx: idx, report: &diagnostics.Report{}, m: m, provider: p}
	dt := an.annotateExpression(ref, &visitorContext{scope: "Main"})

	if dt == nil || dt.Name != "INT" {
		t.Errorf("expected P.X to resolve to INT, got %v", dt)
	}
}

func TestAnnotatePlanRangeCheckAttachesHiddenCallForSubRangeAssignment(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()
	idx.RegisterType(&types.DataType{
		Name:   "Percent",
		Nature: types.NatureDerived,
		Information: types.SubRangeInfo{
			ReferencedTypeName: "INT",
			Start:              types.ConstBound{Literal: 0},
			End:                types.ConstBound{Literal: 100},
		},
	})
	idx.RegisterMember("Main", "P", &VariableEntry{QualifiedName: "Main.P", TypeName: "Percent"})

	left := ast.NewTestIdent(p, "P")
	right := ast.NewTestInt(p, "50")
	assign := ast.NewTestAssign(p, left, right)

	m := newAnnotationMap()
	an := &annotator{idx: idx, report: &diagnostics.Report{}, m: m, provider: p}
	an.annotateAssignment(assign.ID(), left, right, &visitorContext{scope: "Main"})

	call, ok := m.HiddenCallFor(right)
	if !ok {
		t.Fatal("expected a range-check hidden call on the right-hand side")
	}
	stmt, ok := call.(*ast.CallStatement)
	if !ok {
		t.Fatalf("expected *ast.CallStatement, got %T", call)
	}
	if name := callOperatorName(t, call); name != "CheckRangeSigned" {
		t.Errorf("expected CheckRangeSigned for a 16-bit signed subrange base, got %q", name)
	}
	args, ok := stmt.Parameter.(*ast.ExpressionList)
	if !ok || len(args.Elements) != 3 {
		t.Fatalf("expected a 3-argument range-check call, got %#v", stmt.Parameter)
	}
	if args.Elements[0] != right {
		t.Error("expected the first range-check argument to be the assigned value")
	}
	lower, ok := args.Elements[1].(*ast.IntegerLiteral)
	if !ok || lower.Text != "0" {
		t.Errorf("expected lower bound literal 0, got %#v", args.Elements[1])
	}
	upper, ok := args.Elements[2].(*ast.IntegerLiteral)
	if !ok || upper.Text != "100" {
		t.Errorf("expected upper bound literal 100, got %#v", args.Elements[2])
	}
}

func TestAnnotateUndeclaredIdentifierIsLeftVoidTyped(t *testing.T) {
	p := ast.NewIdProvider()
	idx := NewIndex()
	report := &diagnostics.Report{}
	m := newAnnotationMap()
	an := &annotator{idx: idx, report: report, m: m, provider: p}

	dt := an.annotateExpression(ast.NewTestIdent(p, "Nope"), &visitorContext{scope: "Main"})

	if dt != nil {
		t.Errorf("expected an undeclared identifier to resolve to no type, got %v", dt)
	}
	if report.HasErrors() {
		t.Error("the annotator must not report undeclared identifiers itself; that is a validator's job")
	}
}
