package ast

import "testing"

type recordingVisitor struct {
	entered []Kind
}

func (v *recordingVisitor) Enter(n Node) bool {
	v.entered = append(v.entered, n.Kind())
	return true
}

func (v *recordingVisitor) Leave(n Node) {}

func TestWalkVisitsInLexicalOrder(t *testing.T) {
	p := NewIdProvider()
	left := NewIntegerLiteral(p, SourceRange{}, "1", "")
	right := NewIntegerLiteral(p, SourceRange{}, "2", "")
	bin := NewBinaryExpr(p, SourceRange{}, left, OpAdd, right)
	assign := NewAssignStatement(p, SourceRange{}, NewIdentifier(p, SourceRange{}, "x"), bin)

	v := &recordingVisitor{}
	Walk(v, assign)

	// The assignment visits its right-hand side before its left-hand side.
	want := []Kind{KindAssignStatement, KindBinaryExpr, KindIntegerLiteral, KindIntegerLiteral, KindIdentifier}
	if len(v.entered) != len(want) {
		t.Fatalf("entered %v, want %v", v.entered, want)
	}
	for i := range want {
		if v.entered[i] != want[i] {
			t.Errorf("entered[%d] = %v, want %v", i, v.entered[i], want[i])
		}
	}
}

type skippingVisitor struct {
	entered int
}

func (v *skippingVisitor) Enter(n Node) bool {
	v.entered++
	_, isIf := n.(*IfStatement)
	return !isIf
}

func (v *skippingVisitor) Leave(n Node) {}

func TestWalkEnterFalseSkipsChildren(t *testing.T) {
	p := NewIdProvider()
	cond := NewBoolLiteral(p, SourceRange{}, true)
	body := []Statement{NewExitStatement(p, SourceRange{})}
	ifStmt := NewIfStatement(p, SourceRange{}, []ConditionalBlock{{Condition: cond, Body: body}}, nil)

	v := &skippingVisitor{}
	Walk(v, ifStmt)

	if v.entered != 1 {
		t.Errorf("Enter returning false should prevent descent, got %d Enter calls", v.entered)
	}
}

func TestWalkNilStatementIsNoOp(t *testing.T) {
	v := &recordingVisitor{}
	Walk(v, nil)
	if len(v.entered) != 0 {
		t.Error("Walk(nil) should not call Enter")
	}
}
